package main

import (
	"context"
	"fmt"
	"time"

	"checkin.net.au/checkin/core"
	"checkin.net.au/checkin/infrastructure/communication"
	"checkin.net.au/checkin/infrastructure/devops"
	"checkin.net.au/checkin/lambdas/autoclose/helper"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// HandleRequest runs on a CloudWatch schedule and force-closes sessions left
// open past the configured threshold, so a missed evening scan cannot keep an
// employee "checked in" forever.
func HandleRequest(ctx context.Context, event events.CloudWatchEvent) error {
	fmt.Printf("[EVENT] %+v\n", event)

	slack := communication.ConnectSlack()

	cfg, err := devops.LoadConfig(ctx)
	if err != nil {
		fmt.Printf("[ERROR] failed to load config: %v\n", err)
		slack.Error(fmt.Sprintf("autoclose: failed to load config: %v", err))
		return err
	}
	if cfg.DSN == "" {
		err := fmt.Errorf("no DSN configured")
		slack.Error("autoclose: no DSN configured")
		return err
	}

	db := core.ConnectDB(cfg.DSN)

	threshold := cfg.AutoCloseAfter()
	fmt.Printf("[INFO] closing sessions open longer than %s\n", threshold)

	stats, err := helper.Run(db, time.Now(), threshold)
	if err != nil {
		fmt.Printf("[ERROR] autoclose sweep failed: %v\n", err)
		slack.Error(fmt.Sprintf("autoclose sweep failed after closing %d of %d: %v", stats.Closed, stats.Examined, err))
		return err
	}

	fmt.Printf("[INFO] examined %d stale sessions, closed %d, %d lost to concurrent checkouts\n",
		stats.Examined, stats.Closed, stats.Conflicts)
	if stats.Closed > 0 {
		slack.Info(fmt.Sprintf("autoclose: force-closed %d stale sessions (threshold %s)", stats.Closed, threshold))
	}
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
