package support

import "fmt"

// NotFoundError reports a variable that the network does not contain.
type NotFoundError struct {
	Variable string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("variable %q not found in network", e.Variable)
}
