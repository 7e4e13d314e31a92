package handlers

import (
	"net/http"
	"time"

	"checkin.net.au/checkin/core"
	web "checkin.net.au/checkin/web/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ScanRequestDTO struct {
	Input      string `json:"input"`
	Identifier string `json:"identifier"`
}

// Scan toggles an employee between checked-in and checked-out. A failed
// toggle changes nothing; the kiosk shows the error and the employee scans
// again.
func (ep *Endpoint) Scan(c *gin.Context) {
	var body ScanRequestDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	input := body.Input
	if input == "" {
		input = body.Identifier
	}

	var result *core.ScanResult
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		result, err = core.ToggleScan(db, input, time.Now(), ep.Cfg.Cooldown())
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(result))
}
