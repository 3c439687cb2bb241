// Package api defines the canonical response envelope for every endpoint.
// All responses — success and failure — carry the same three fields so that
// clients never have to branch on shape, only on the success flag.
package api

// Envelope is the wire format of every HTTP response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK builds a success envelope.
func OK(message string, data interface{}) Envelope {
	return Envelope{Success: true, Message: message, Data: data}
}

// Err builds a failure envelope. Internal details must never reach this
// function — callers sanitize first (see middleware.ErrorHandler).
func Err(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// ValidationErr carries per-field failures from request validation.
type ValidationErr struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationErr {
	return &ValidationErr{Success: false, Message: "erro de validação", Fields: fields}
}
