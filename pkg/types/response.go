package types

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SuccessEnvelope wraps every successful JSON response.
type SuccessEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorEnvelope wraps every failed JSON response. Errors carries field level
// detail for validation failures, or the raw error outside production.
type ErrorEnvelope struct {
	Status  string `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}
