package schema

import "errors"

// Sentinel errors for payload manipulation.
var (
	ErrUnknownField = errors.New("unknown form field")
	ErrFieldType    = errors.New("value has the wrong type for field")
)
