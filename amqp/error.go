package amqp

import "fmt"

// ErrorType distinguishes channel-scoped from connection-scoped protocol
// errors (spec.md §7, items 2-3). A channel-scoped error closes only the
// offending channel; a connection-scoped error tears down the connection.
type ErrorType int

const (
	ErrorOnChannel ErrorType = iota
	ErrorOnConnection
)

// Error is the decoded shape of a Channel.Close / Connection.Close method,
// and is also raised internally for protocol violations the codec or
// dispatcher detects before any such method arrives on the wire.
type Error struct {
	ErrorType ErrorType
	ReplyCode uint16
	ReplyText string
	ClassID   uint16
	MethodID  uint16
}

func (e *Error) Error() string {
	return fmt.Sprintf("amqp: code=%d reason=%q class=%d method=%d", e.ReplyCode, e.ReplyText, e.ClassID, e.MethodID)
}

// NewChannelError builds a channel-scoped protocol error.
func NewChannelError(code uint16, text string, classID, methodID uint16) *Error {
	return &Error{ErrorType: ErrorOnChannel, ReplyCode: code, ReplyText: text, ClassID: classID, MethodID: methodID}
}

// NewConnectionError builds a connection-scoped protocol error.
func NewConnectionError(code uint16, text string, classID, methodID uint16) *Error {
	return &Error{ErrorType: ErrorOnConnection, ReplyCode: code, ReplyText: text, ClassID: classID, MethodID: methodID}
}

// MalformedFrame reports a frame whose sentinel byte or length is invalid
// (spec.md §4.1). Always connection-scoped: the transport's framing is
// unrecoverable once out of sync.
func MalformedFrame(reason string) *Error {
	return NewConnectionError(ReplyFrameError, "MALFORMED_FRAME: "+reason, 0, 0)
}

// UnknownMethod reports an undispatchable (class-id, method-id) pair.
func UnknownMethod(classID, methodID uint16) *Error {
	return NewConnectionError(ReplyNotImplemented, fmt.Sprintf("UNKNOWN_METHOD: class=%d method=%d", classID, methodID), classID, methodID)
}

// UnexpectedContentFrame reports a method frame arriving on a channel that
// is mid content-assembly, or a content frame arriving with nothing to
// attach to (spec.md §4.4 "Content assembly").
func UnexpectedContentFrame(classID, methodID uint16) *Error {
	return NewChannelError(ReplyUnexpectedFrame, "UNEXPECTED_FRAME", classID, methodID)
}

// ChannelOutOfBounds is raised synchronously when a Channel is constructed
// with an id outside [0, channel_max]. Spelled correctly per spec.md §9's
// open question (the ancestor project misspells this ChannelOutOfBadError).
type ChannelOutOfBounds struct {
	ID         uint16
	ChannelMax uint16
}

func (e *ChannelOutOfBounds) Error() string {
	return fmt.Sprintf("amqp: channel id %d out of bounds [0, %d]", e.ID, e.ChannelMax)
}

// NilArgument is raised synchronously when a nil entity is registered with
// an entity base or channel table.
type NilArgument struct {
	What string
}

func (e *NilArgument) Error() string {
	return fmt.Sprintf("amqp: nil argument: %s", e.What)
}
