package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type MessageEnvelope struct {
	Message string `json:"message"`
}

// ErrorEnvelope keeps "error" a plain string for the frontend; Data carries
// the conflicting resource on 409s.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
	Data    any    `json:"data,omitempty"`
}
