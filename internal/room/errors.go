package room

import "errors"

var (
	ErrInvalidAction    = errors.New("invalid action")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrChannelClosed    = errors.New("channel closed")
	ErrChannelFull      = errors.New("channel full")

	errRoomEvicted = errors.New("room evicted")
)

// PayloadError is a client error raised while decoding or validating a
// submitted action. Its message is safe to return to the caller.
type PayloadError struct {
	Kind    error // ErrInvalidAction or ErrMalformedPayload
	Message string
}

func (e *PayloadError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *PayloadError) Unwrap() error {
	return e.Kind
}

func invalidAction(msg string) *PayloadError {
	return &PayloadError{Kind: ErrInvalidAction, Message: msg}
}

func malformed(msg string) *PayloadError {
	return &PayloadError{Kind: ErrMalformedPayload, Message: msg}
}
