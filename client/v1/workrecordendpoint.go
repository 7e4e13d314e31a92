package v1

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type WorkRecordEndpoint struct {
	transport *Transport
}

type searchResponse struct {
	Data       []WorkRecordDTO `json:"data"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

// SearchByLocation lists a location's sessions whose check-in falls in
// [from, to], epoch milliseconds.
func (this *WorkRecordEndpoint) SearchByLocation(locationID string, from, to int64) ([]WorkRecordDTO, error) {
	resp, err := this.transport.Get("/api/v1/workRecords", map[string]string{
		"locationId": locationID,
		"from":       strconv.FormatInt(from, 10),
		"to":         strconv.FormatInt(to, 10),
	})
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

type autoClosedResponse struct {
	Data []WorkRecordDTO `json:"data"`
}

// ListAutoClosed lists sessions the scheduled closer force-closed on the
// given open-date that still await correction.
func (this *WorkRecordEndpoint) ListAutoClosed(locationID, openDate string) ([]WorkRecordDTO, error) {
	resp, err := this.transport.Get("/api/v1/workRecords/autoclosed", map[string]string{
		"locationId": locationID,
		"openDate":   openDate,
	})
	if err != nil {
		return nil, err
	}

	var result autoClosedResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	return result.Data, nil
}

type fixTimesResponse struct {
	Data WorkRecordDTO `json:"data"`
}

// FixTimes replaces both timestamps of a closed session.
func (this *WorkRecordEndpoint) FixTimes(recordID string, checkInAt, checkOutAt int64) (*WorkRecordDTO, error) {
	payload := map[string]int64{
		"checkInAt":  checkInAt,
		"checkOutAt": checkOutAt,
	}

	resp, err := this.transport.Post(fmt.Sprintf("/api/v1/workRecords/%s/fix", recordID), payload, nil)
	if err != nil {
		return nil, err
	}

	var result fixTimesResponse
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, err
	}

	return &result.Data, nil
}
