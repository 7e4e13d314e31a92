package handlers

import (
	"net/http"
	"strconv"

	"checkin.net.au/checkin/core"
	web "checkin.net.au/checkin/web/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WorkRecordCreateDTO backfills a past session. The record is created closed;
// open sessions only come from the toggle.
type WorkRecordCreateDTO struct {
	EmployeeID *int64 `json:"employeeId"`
	Input      string `json:"input"`
	CheckInAt  int64  `json:"checkInAt" binding:"required"`
	CheckOutAt int64  `json:"checkOutAt" binding:"required"`
}

func (ep *Endpoint) CreateWorkRecord(c *gin.Context) {
	var body WorkRecordCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	var record *core.WorkRecord
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var emp *core.Employee
		var err error

		if body.EmployeeID != nil {
			emp, err = core.FindEmployeeByID(db, *body.EmployeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				return core.ErrEmployeeNotFound
			}
		} else {
			emp, err = core.ResolveEmployee(db, body.Input)
			if err != nil {
				return err
			}
		}

		record, err = core.CreateWorkRecord(db, emp, body.CheckInAt, body.CheckOutAt)
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(record))
}

// SearchWorkRecords returns sessions by employee or by location over a
// check-in time range.
func (ep *Endpoint) SearchWorkRecords(c *gin.Context) {
	from, errFrom := strconv.ParseInt(c.Query("from"), 10, 64)
	to, errTo := strconv.ParseInt(c.Query("to"), 10, 64)
	if errFrom != nil || errTo != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Missing from/to range"))
		return
	}

	var records []core.WorkRecord
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		if locationID := c.Query("locationId"); locationID != "" {
			records, err = core.FindWorkRecordsByLocation(db, locationID, from, to)
			return err
		}
		if employeeParam := c.Query("employeeId"); employeeParam != "" {
			employeeID, parseErr := strconv.ParseInt(employeeParam, 10, 64)
			if parseErr != nil {
				return core.ErrInvalidInput
			}
			records, err = core.FindWorkRecordsByEmployee(db, employeeID, from, to)
			return err
		}
		return core.ErrInvalidInput
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(records, int64(len(records))))
}

func (ep *Endpoint) DeleteWorkRecord(c *gin.Context) {
	id := c.Param("id")

	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		return core.DeleteWorkRecord(db, id)
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
