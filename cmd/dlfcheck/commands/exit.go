package commands

// An error type that includes an exit code
type ExitError struct {
	Code int
	Err  error
}

// Implement the error interface
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status"
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitWithCode wraps err with an exit code. A nil err still carries the
// code, so commands can fail quietly after printing their own report.
func ExitWithCode(code int, err error) *ExitError {
	return &ExitError{
		Code: code,
		Err:  err,
	}
}

type UsageError struct{ error }

func (e UsageError) Unwrap() error {
	return e.error
}
