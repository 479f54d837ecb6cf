package location

import (
	"errors"
	"fmt"
)

// ErrNoCapability indicates the host has no usable location capability at
// all (no GPS device, no radios to geolocate from). It is distinct from a
// SampleError, which is a failure of a capability that does exist.
var ErrNoCapability = errors.New("host has no location capability")

// SampleError reports a failed sampling attempt. The attempt is not retried;
// the next scheduled tick samples again.
type SampleError struct {
	Reason string
	Err    error
}

func (e *SampleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("location sample failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("location sample failed: %s", e.Reason)
}

func (e *SampleError) Unwrap() error {
	return e.Err
}
