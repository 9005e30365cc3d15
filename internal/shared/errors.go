package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrStoreUnavailable = fmt.Errorf("durable store unavailable")
	ErrRecordNotFound   = fmt.Errorf("record not found")
	ErrInvalidRecord    = fmt.Errorf("invalid record")

	// Payload errors
	ErrInvalidPayload = fmt.Errorf("invalid payload")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
