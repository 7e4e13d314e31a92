package handlers

import (
	"net/http"
	"time"

	"checkin.net.au/checkin/core"
	web "checkin.net.au/checkin/web/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListAutoClosed feeds the operator review screen: sessions force-closed by
// the stale-session closer that nobody has corrected yet.
func (ep *Endpoint) ListAutoClosed(c *gin.Context) {
	locationID := c.Query("locationId")
	openDate := c.Query("openDate")
	if locationID == "" || openDate == "" {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Missing locationId or openDate"))
		return
	}

	var records []core.WorkRecord
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		records, err = core.ListAutoClosed(db, locationID, openDate)
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(records))
}

type FixTimesDTO struct {
	CheckInAt  int64 `json:"checkInAt" binding:"required"`
	CheckOutAt int64 `json:"checkOutAt" binding:"required"`
}

func (ep *Endpoint) FixTimes(c *gin.Context) {
	id := c.Param("id")

	var body FixTimesDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	var record *core.WorkRecord
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		record, err = core.FixTimes(db, id, body.CheckInAt, body.CheckOutAt, time.Now())
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(record))
}
