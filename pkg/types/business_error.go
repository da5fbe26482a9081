package types

import "errors"

// ErrorKind classifies a BusinessError. Transport layers map kinds to their
// own status codes (HTTP: 404, 400, 412).
type ErrorKind int

// Error kinds.
const (
	// KindNotFound: a referenced entity does not exist.
	KindNotFound ErrorKind = iota + 1
	// KindBadRequest: input fails a value-domain check.
	KindBadRequest
	// KindPreconditionFailed: both entities exist but the required
	// relationship between them does not hold.
	KindPreconditionFailed
)

// String returns the snake_case code of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindPreconditionFailed:
		return "precondition_failed"
	default:
		return "unknown"
	}
}

// BusinessError is a failure with a fixed, human-readable message and a kind
// tag. Services return it for every rule violation; anything else they
// return is an infrastructure failure.
type BusinessError struct {
	Kind    ErrorKind
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// NewNotFound returns a BusinessError of kind KindNotFound.
func NewNotFound(message string) *BusinessError {
	return &BusinessError{Kind: KindNotFound, Message: message}
}

// NewBadRequest returns a BusinessError of kind KindBadRequest.
func NewBadRequest(message string) *BusinessError {
	return &BusinessError{Kind: KindBadRequest, Message: message}
}

// NewPreconditionFailed returns a BusinessError of kind KindPreconditionFailed.
func NewPreconditionFailed(message string) *BusinessError {
	return &BusinessError{Kind: KindPreconditionFailed, Message: message}
}

// KindOf returns the kind of the first BusinessError in err's chain.
// ok is false when err carries no BusinessError.
func KindOf(err error) (kind ErrorKind, ok bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries a BusinessError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
