package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"time"

	"checkin.net.au/checkin/core"
	"checkin.net.au/checkin/infrastructure/filesystem"
	"checkin.net.au/checkin/utils"
	web "checkin.net.au/checkin/web/common"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportRequestDTO struct {
	LocationID string         `json:"locationId" binding:"required"`
	From       web.DateOnly   `json:"from" binding:"required"`
	To         web.DateOnly   `json:"to" binding:"required"`
	Bucket     string         `json:"bucket"`
}

// ExportWorkRecords renders a location's sessions over a date range as a
// spreadsheet, one sheet per open-date. With a bucket the file is uploaded to
// S3, otherwise it is streamed back.
func (ep *Endpoint) ExportWorkRecords(c *gin.Context) {
	var body ExportRequestDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	fromMs, toMs, err := exportRange(body.From.Time, body.To.Time)
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
		return
	}

	var records []core.WorkRecord
	err = ep.Dm.Exec(c.Request.Context(), func(db *gorm.DB) error {
		var err error
		records, err = core.FindWorkRecordsByLocation(db, body.LocationID, fromMs, toMs)
		return err
	})
	if err != nil {
		ep.respondCoreError(c, err)
		return
	}

	f, err := buildWorkbook(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer f.Close()

	if body.Bucket != "" {
		var buf bytes.Buffer
		if err := f.Write(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}

		key := fmt.Sprintf("%s/%s_%s.xlsx", body.LocationID,
			body.From.Format(utils.DateLayout), body.To.Format(utils.DateLayout))
		if err := filesystem.WriteFile(body.Bucket, key, c.Request.Context(), &buf, xlsxContentType); err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{"bucket": body.Bucket, "key": key}))
		return
	}

	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="workrecords.xlsx"`)
	if err := f.Write(c.Writer); err != nil {
		fmt.Printf("[ERROR] failed to stream workbook: %v\n", err)
	}
}

// exportRange expands two calendar dates into inclusive epoch-ms bounds in
// the reference timezone.
func exportRange(from, to time.Time) (int64, int64, error) {
	if to.Before(from) {
		return 0, 0, fmt.Errorf("to %s precedes from %s", to.Format(utils.DateLayout), from.Format(utils.DateLayout))
	}

	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, utils.BrisbaneTZ)
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, utils.BrisbaneTZ).AddDate(0, 0, 1)

	return start.UnixMilli(), end.UnixMilli() - 1, nil
}

func buildWorkbook(records []core.WorkRecord) (*excelize.File, error) {
	f := excelize.NewFile()

	byDate := utils.GroupBy(records, func(r core.WorkRecord) string { return r.OpenDate })

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) == 0 {
		dates = append(dates, "Sheet1")
		byDate["Sheet1"] = nil
	}

	header := []interface{}{"Employee", "Identifier", "Check in", "Check out", "Worked minutes", "Auto closed", "Corrected"}

	for i, date := range dates {
		sheet := date
		if i == 0 {
			// excelize always creates Sheet1; rename it for the first date.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}

		rows := append([][]interface{}{header}, utils.Map(byDate[date], workbookRow)...)
		for r, row := range rows {
			for col, value := range row {
				cell, err := excelize.CoordinatesToCellName(col+1, r+1)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					return nil, err
				}
			}
		}
	}

	return f, nil
}

func workbookRow(r core.WorkRecord) []interface{} {
	checkIn := time.UnixMilli(r.CheckInAt).In(utils.BrisbaneTZ).Format("15:04")
	checkOut := ""
	if r.CheckOutAt != nil {
		checkOut = time.UnixMilli(*r.CheckOutAt).In(utils.BrisbaneTZ).Format("15:04")
	}

	return []interface{}{
		r.EmployeeName,
		r.EmployeeIdentifier,
		checkIn,
		checkOut,
		utils.Format(r.WorkedTime),
		utils.FormatBoolean(r.AutoClosed, "yes", "no"),
		utils.FormatBoolean(r.AutoClosedFixed, "yes", "no"),
	}
}
