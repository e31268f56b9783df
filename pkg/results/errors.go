package results

import "errors"

var (
	ErrRunNotFound   = errors.New("run not found")
	ErrEmptyPath     = errors.New("database path is empty")
	ErrConnectorDone = errors.New("connector is closed")
)
