package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Request pipeline errors
	ErrTransport = fmt.Errorf("could not receive response")
	ErrStatus    = fmt.Errorf("unsuccessful request")
	ErrDecode    = fmt.Errorf("could not deserialize json body")
	ErrPersist   = fmt.Errorf("could not persist data")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")
	ErrTimeout    = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
