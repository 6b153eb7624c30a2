package apperror

import (
	"github.com/pingcap/errors"
)

var (
	// ErrInvalidInitialCapacity happens when a deque is constructed with a
	// capacity smaller than one slot.
	ErrInvalidInitialCapacity = errors.Normalize(
		"initial capacity must be a positive integer, got %v",
		errors.RFCCodeText("CDQ:ErrInvalidInitialCapacity"),
	)
	// ErrInvalidIncrementFactor happens when a deque is constructed with a
	// growth factor outside [1.1, 2.0].
	ErrInvalidIncrementFactor = errors.Normalize(
		"capacity increment factor %v is outside the allowed range [1.1, 2.0]",
		errors.RFCCodeText("CDQ:ErrInvalidIncrementFactor"),
	)
	// ErrDequeEmpty happens when a read or removal is attempted on a deque
	// that holds no items. The deque is left unchanged.
	ErrDequeEmpty = errors.Normalize(
		"deque is empty",
		errors.RFCCodeText("CDQ:ErrDequeEmpty"),
	)
	// ErrInvalidWindowSpan happens when an extremum window is constructed
	// with a non-positive time span.
	ErrInvalidWindowSpan = errors.Normalize(
		"window span must be positive, got %v",
		errors.RFCCodeText("CDQ:ErrInvalidWindowSpan"),
	)
)

// codeUnknown is returned by ErrorCode for errors this package did not raise.
const codeUnknown = errors.RFCErrorCode("CDQ:ErrUnknown")

var allErrors = []*errors.Error{
	ErrInvalidInitialCapacity,
	ErrInvalidIncrementFactor,
	ErrDequeEmpty,
	ErrInvalidWindowSpan,
}

// IsDequeEmpty reports whether err is the empty-deque error, looking through
// any annotation layers added on the way up.
func IsDequeEmpty(err error) bool {
	return ErrDequeEmpty.Equal(err)
}

// ErrorCode returns the RFC error code for the given error.
// If the error was not raised by this package, returns CDQ:ErrUnknown.
func ErrorCode(err error) errors.RFCErrorCode {
	for _, e := range allErrors {
		if e.Equal(err) {
			return e.RFCCode()
		}
	}
	return codeUnknown
}
