package handlers

import (
	"net/http"
	"strconv"
	"time"

	"checkin.net.au/checkin/core"
	web "checkin.net.au/checkin/web/common"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EmployeeCreateDTO struct {
	ID         int64  `json:"id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Identifier string `json:"identifier" binding:"required"`
	LocationID string `json:"locationId" binding:"required"`
}

// EmployeeListItemDTO decorates an employee with the advisory recent
// auto-closure flag shown in the operator UI.
type EmployeeListItemDTO struct {
	core.Employee
	HasRecentAutoClosure bool `json:"hasRecentAutoClosure"`
}

func (ep *Endpoint) CreateEmployee(c *gin.Context) {
	var body EmployeeCreateDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	emp := core.Employee{
		ID:         body.ID,
		Name:       body.Name,
		Identifier: body.Identifier,
		LocationID: body.LocationID,
	}

	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		return core.CreateEmployee(db, &emp)
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(emp))
}

func (ep *Endpoint) ListEmployees(c *gin.Context) {
	locationID := c.Query("locationId")
	if locationID == "" {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Missing locationId"))
		return
	}

	now := time.Now()

	var items []EmployeeListItemDTO
	err := ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		emps, err := core.ListEmployeesByLocation(db, locationID)
		if err != nil {
			return err
		}

		items = make([]EmployeeListItemDTO, 0, len(emps))
		for _, emp := range emps {
			flagged, err := core.HasRecentAutoClosure(db, emp.ID, now, core.RecentAutoClosureWindowDays)
			if err != nil {
				return err
			}
			items = append(items, EmployeeListItemDTO{Employee: emp, HasRecentAutoClosure: flagged})
		}
		return nil
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(items))
}

func (ep *Endpoint) GetEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	var emp *core.Employee
	err = ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		emp, err = core.FindEmployeeByID(db, id)
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}
	if emp == nil {
		c.JSON(http.StatusNotFound, web.NewErrorResponse("Employee not found"))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(emp))
}

func (ep *Endpoint) DeleteEmployee(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	err = ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		return core.DeleteEmployee(db, id)
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
