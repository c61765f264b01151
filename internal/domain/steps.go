package domain

// StepError is one field-level validation failure, grouped per step.
type StepError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
