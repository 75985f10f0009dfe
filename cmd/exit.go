package cmd

// ExitError is a custom error type that includes a specific exit code.
// main relays the code to the operating system unchanged.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}
