package main

import (
	"context"
	"encoding/base64"
	"log"

	"checkin.net.au/checkin/core"
	"checkin.net.au/checkin/infrastructure/communication"
	"checkin.net.au/checkin/infrastructure/devops"
	"checkin.net.au/checkin/web/handlers"
	"checkin.net.au/checkin/web/middlewares"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := devops.LoadConfig(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	if cfg.DSN == "" {
		log.Fatal("no DSN configured")
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	dm, err := core.New(cfg.DSN, 10)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	if err := core.Migrate(core.ConnectDB(cfg.DSN)); err != nil {
		log.Fatal(err)
	}

	alerts := communication.ConnectSlack()

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		handlers.Register(protected, dm, cfg, alerts)
	}

	r.Run("0.0.0.0:8090")
}
