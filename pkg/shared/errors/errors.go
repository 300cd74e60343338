package errors

// CommandError is returned by commands that want the process to exit with a
// specific code. Result carries whatever the command produced before failing.
type CommandError struct {
	ExitCode    int
	CommonError string
	Args        interface{}
	Result      interface{}
	Err         error
}

// Error implements the error interface, returning the message from the common error.
func (e *CommandError) Error() string {
	return e.CommonError
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a new CommandError instance, encapsulating args, result, and the error message.
func NewCommandError(args interface{}, result interface{}, err error, code int) *CommandError {
	return &CommandError{
		ExitCode:    code,
		CommonError: err.Error(),
		Args:        args,
		Result:      result,
		Err:         err,
	}
}
