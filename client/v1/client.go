package v1

type CheckinClient struct {
	Transport   *Transport
	Scans       *ScanEndpoint
	WorkRecords *WorkRecordEndpoint
}

// NewCheckinClient initializes the API client
func NewCheckinClient(baseURL string, token string) *CheckinClient {
	t := NewTransport(baseURL, token)
	return &CheckinClient{
		Transport:   t,
		Scans:       &ScanEndpoint{transport: t},
		WorkRecords: &WorkRecordEndpoint{transport: t},
	}
}
