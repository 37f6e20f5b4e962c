// Package exit carries process exit codes across the cobra error path.
package exit

import "fmt"

const (
	// CodeUsage covers configuration and argument problems.
	CodeUsage = 1
	// CodeAPI covers controller and backend failures.
	CodeAPI = 2
)

type Error struct {
	Code int
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code int, err error) error {
	return &Error{Code: code, Err: err}
}
