package handlers

import (
	"net/http"

	"checkin.net.au/checkin/core"
	web "checkin.net.au/checkin/web/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LocationCreateDTO struct {
	Name string `json:"name" binding:"required"`
}

func (ep *Endpoint) CreateLocation(c *gin.Context) {
	var body LocationCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	var loc *core.Location
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		loc, err = core.CreateLocation(db, body.Name)
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(loc))
}

func (ep *Endpoint) ListLocations(c *gin.Context) {
	var locs []core.Location
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		locs, err = core.ListLocations(db)
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(locs))
}

func (ep *Endpoint) GetLocation(c *gin.Context) {
	id := c.Param("id")

	var loc *core.Location
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		loc, err = core.FindLocationByID(db, id)
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}
	if loc == nil {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("Location not found"))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(loc))
}

func (ep *Endpoint) DeleteLocation(c *gin.Context) {
	id := c.Param("id")

	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		return core.DeleteLocation(db, id)
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
