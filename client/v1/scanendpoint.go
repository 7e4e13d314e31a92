package v1

import (
	"encoding/json"
)

type EmployeeSummaryDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	LocationID string `json:"locationId"`
}

type WorkRecordDTO struct {
	ID                 string `json:"id"`
	EmployeeID         int64  `json:"employeeId"`
	EmployeeName       string `json:"employeeName"`
	EmployeeIdentifier string `json:"employeeIdentifier"`
	LocationID         string `json:"locationId"`
	CheckInAt          int64  `json:"checkInAt"`
	CheckOutAt         *int64 `json:"checkOutAt,omitempty"`
	WorkedTime         *int64 `json:"workedTime,omitempty"`
	IsOpen             bool   `json:"isOpen"`
	OpenDate           string `json:"openDate"`
	AutoClosed         bool   `json:"autoClosed"`
	AutoClosedFixed    bool   `json:"autoClosedFixed"`
}

type ScanResultDTO struct {
	Action       string             `json:"action"`
	Employee     EmployeeSummaryDTO `json:"employee"`
	WorkRecord   *WorkRecordDTO     `json:"workRecord,omitempty"`
	WorkRecordID string             `json:"workRecordId,omitempty"`
	CheckOutAt   *int64             `json:"checkOutAt,omitempty"`
	WorkedTime   *int64             `json:"workedTime,omitempty"`
}

type scanResponse struct {
	Data ScanResultDTO `json:"data"`
}

type ScanEndpoint struct {
	transport *Transport
}

// Scan submits one badge or keypad input and returns whether it landed as a
// check-in or a check-out.
func (this *ScanEndpoint) Scan(input string) (*ScanResultDTO, error) {
	payload := map[string]string{"input": input}

	resp, err := this.transport.Post("/api/v1/scan", payload, nil)
	if err != nil {
		return nil, err
	}

	var result scanResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	return &result.Data, nil
}
