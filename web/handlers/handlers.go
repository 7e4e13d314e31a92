package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"checkin.net.au/checkin/core"
	"checkin.net.au/checkin/infrastructure/communication"
	"checkin.net.au/checkin/infrastructure/devops"
	web "checkin.net.au/checkin/web/common"
	"github.com/gin-gonic/gin"
)

type Endpoint struct {
	Dm     *core.DatabaseManager
	Cfg    *devops.RuntimeConfig
	Alerts *communication.Slack
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, cfg *devops.RuntimeConfig, alerts *communication.Slack) {
	endpoint := &Endpoint{Dm: dm, Cfg: cfg, Alerts: alerts}

	r.POST("/scan", endpoint.Scan)

	r.POST("/locations", endpoint.CreateLocation)
	r.GET("/locations", endpoint.ListLocations)
	r.GET("/locations/:id", endpoint.GetLocation)
	r.DELETE("/locations/:id", endpoint.DeleteLocation)

	r.POST("/employees", endpoint.CreateEmployee)
	r.GET("/employees", endpoint.ListEmployees)
	r.GET("/employees/:id", endpoint.GetEmployee)
	r.DELETE("/employees/:id", endpoint.DeleteEmployee)

	r.POST("/workRecords", endpoint.CreateWorkRecord)
	r.GET("/workRecords", endpoint.SearchWorkRecords)
	r.DELETE("/workRecords/:id", endpoint.DeleteWorkRecord)
	r.GET("/workRecords/autoclosed", endpoint.ListAutoClosed)
	r.POST("/workRecords/:id/fix", endpoint.FixTimes)
	r.POST("/workRecords/export", endpoint.ExportWorkRecords)
}

// respondCoreError maps the core error taxonomy onto HTTP statuses. Every
// failure is reported as itself; nothing is collapsed into a generic error.
func (ep *Endpoint) respondCoreError(c *gin.Context, err error) {
	var cooldownErr *core.CooldownError

	switch {
	case errors.Is(err, core.ErrInvalidInput), errors.Is(err, core.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
	case errors.Is(err, core.ErrEmployeeNotFound), errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, web.NewErrorResponse(err.Error()))
	case errors.As(err, &cooldownErr):
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message":      cooldownErr.Error(),
			"retryAfterMs": cooldownErr.Remaining.Milliseconds(),
		})
	case errors.Is(err, core.ErrConcurrentModification), errors.Is(err, core.ErrSessionStillOpen):
		c.JSON(http.StatusConflict, web.NewErrorResponse(err.Error()))
	case errors.Is(err, core.ErrInconsistentState):
		// Invariant violation: some earlier writer broke the one-open-session
		// rule. Page the operators, do not patch it up quietly.
		if ep.Alerts != nil {
			if alertErr := ep.Alerts.Error(fmt.Sprintf("checkin invariant violation: %v", err)); alertErr != nil {
				fmt.Printf("[ERROR] failed to alert: %v\n", alertErr)
			}
		}
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
	}
}
