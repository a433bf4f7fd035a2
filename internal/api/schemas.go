package api

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

// ErrorResponse is the single error shape of the API. Validation and
// processing failures are told apart by status and description text.
type ErrorResponse struct {
	Error string `json:"error"`
}
