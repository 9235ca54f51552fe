package types

// SuccessEnvelope wraps read responses.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// AckEnvelope is the terse acknowledgment returned by submission endpoints.
type AckEnvelope struct {
	Success bool `json:"success"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
