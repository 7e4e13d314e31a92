package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/scan", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tag-42", body["input"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"action":"checkin","employee":{"id":42,"name":"Alice","identifier":"tag-42","locationId":"loc-1"},"workRecord":{"id":"wr-1","employeeId":42,"checkInAt":1692594000000,"isOpen":true,"openDate":"2023-08-21"}}}`))
	}))
	defer server.Close()

	client := NewCheckinClient(server.URL, "test-token")

	result, err := client.Scans.Scan("tag-42")
	assert.NoError(t, err)
	assert.Equal(t, "checkin", result.Action)
	assert.Equal(t, int64(42), result.Employee.ID)
	assert.Equal(t, "wr-1", result.WorkRecord.ID)
	assert.True(t, result.WorkRecord.IsOpen)
}

func TestScanErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"message":"please wait 45s before scanning again"}`))
	}))
	defer server.Close()

	client := NewCheckinClient(server.URL, "")

	_, err := client.Scans.Scan("tag-42")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "please wait")
}

func TestSearchByLocationQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/workRecords", r.URL.Path)
		assert.Equal(t, "loc-1", r.URL.Query().Get("locationId"))
		assert.Equal(t, "100", r.URL.Query().Get("from"))
		assert.Equal(t, "200", r.URL.Query().Get("to"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"wr-1","employeeId":42,"checkInAt":150,"isOpen":false}],"pagination":{"total":1}}`))
	}))
	defer server.Close()

	client := NewCheckinClient(server.URL, "")

	records, err := client.WorkRecords.SearchByLocation("loc-1", 100, 200)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "wr-1", records[0].ID)
}

func TestFixTimesPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/workRecords/wr-1/fix", r.URL.Path)

		var body map[string]int64
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(100), body["checkInAt"])
		assert.Equal(t, int64(200), body["checkOutAt"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"wr-1","checkInAt":100,"checkOutAt":200,"autoClosedFixed":true}}`))
	}))
	defer server.Close()

	client := NewCheckinClient(server.URL, "")

	record, err := client.WorkRecords.FixTimes("wr-1", 100, 200)
	assert.NoError(t, err)
	assert.True(t, record.AutoClosedFixed)
	assert.Equal(t, int64(200), *record.CheckOutAt)
}
