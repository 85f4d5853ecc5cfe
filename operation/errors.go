package operation

import (
	"fmt"

	"github.com/broady/opschema/ir"
)

// AccessError is returned when a method used as an operation is not
// exported. No resolution work is done before it is returned.
type AccessError struct {
	Method string // "Type#Method"
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("method %s is used as an operation, but is not exported", e.Method)
}

// InvalidSignatureError is returned when a method produces no value for an
// operation kind that needs one.
type InvalidSignatureError struct {
	Method string
	Kind   ir.OperationType
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("cannot have a void return for [%s] on method [%s]", e.Kind, e.Method)
}
