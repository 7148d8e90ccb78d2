package models

import (
	"errors"
	"fmt"
)

// ErrStationNotFound is returned when a line has no station with the requested name
var ErrStationNotFound = errors.New("station not found")

// UnknownLineError reports a line identifier missing from the catalog
type UnknownLineError struct {
	Line LineID
}

func (e *UnknownLineError) Error() string {
	return fmt.Sprintf("unknown line %q", e.Line)
}

// InvalidRequestError reports a trip request that cannot be priced
type InvalidRequestError struct {
	Reason string
	Err    error
}

func (e *InvalidRequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid trip request: %s: %v", e.Reason, e.Err)
	}
	return "invalid trip request: " + e.Reason
}

func (e *InvalidRequestError) Unwrap() error {
	return e.Err
}
