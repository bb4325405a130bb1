package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// StreamEvent is one server-sent event; Data is JSON-encoded on the wire.
type StreamEvent struct {
	Name string
	ID   string
	Data any
}
