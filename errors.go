package idxarena

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is wrapped by IndexError.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrUnset is wrapped by UnsetError.
	ErrUnset = errors.New("no value at index")

	// ErrCapacityExceeded is wrapped by CapacityError.
	ErrCapacityExceeded = errors.New("index space exhausted")
)

// IndexError reports a handle read against an arena that never allocated it.
//
// Arena.Get and Arena.Ptr panic with an *IndexError; it is a programming error,
// not a runtime condition.
type IndexError struct {
	Raw RawIdx
	Len int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index out of range: %d (len %d)", e.Raw, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// UnsetError reports a direct read of a sparse map slot that holds no value.
//
// Map.MustGet and Map.MustPtr panic with an *UnsetError.
type UnsetError struct {
	Raw    RawIdx
	Extent int
}

func (e *UnsetError) Error() string {
	if int64(e.Raw) >= int64(e.Extent) {
		return fmt.Sprintf("no value at index %d (extent %d)", e.Raw, e.Extent)
	}
	return fmt.Sprintf("no value at index %d", e.Raw)
}

func (e *UnsetError) Unwrap() error { return ErrUnset }

// CapacityError reports an allocation beyond the 32-bit index space.
//
// ErrCapacityExceeded and the underlying conversion failure (if any) are
// reachable through errors.Is and errors.As.
type CapacityError struct {
	Len   int
	cause error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("index space exhausted: cannot allocate beyond len %d", e.Len)
}

func (e *CapacityError) Unwrap() []error {
	if e.cause == nil {
		return []error{ErrCapacityExceeded}
	}
	return []error{ErrCapacityExceeded, e.cause}
}
