// Package bgperr classifies the error kinds this core distinguishes and
// maps the wire-visible ones onto BGP NOTIFICATION (code, subcode) pairs,
// re-expressed as a typed taxonomy instead of bare iota constants
// scattered through the codec.
package bgperr

import "fmt"

// Kind is the coarse classification the FSM uses to decide propagation
// policy.
type Kind int

const (
	// KindDecode is a malformed wire message.
	KindDecode Kind = iota
	// KindProtocol is semantically well-formed but disallowed.
	KindProtocol
	// KindTimeout is a hold-timer expiry or connect-timer failure.
	KindTimeout
	// KindTransport is a TCP close, connect failure or write error.
	KindTransport
	// KindPolicy is a rejected route; never surfaces at session scope.
	KindPolicy
	// KindInternal is an invariant violation; terminates only the
	// offending session.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindProtocol:
		return "protocol"
	case KindTimeout:
		return "timeout"
	case KindTransport:
		return "transport"
	case KindPolicy:
		return "policy"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// NOTIFICATION error codes.
const (
	CodeMessageHeader  = 1
	CodeOpenMessage    = 2
	CodeUpdateMessage  = 3
	CodeHoldTimerExp   = 4
	CodeFSM            = 5
	CodeCease          = 6
)

// Message Header Error subcodes.
const (
	SubConnectionNotSynchronized = 1
	SubBadMessageLength          = 2
	SubBadMessageType            = 3
)

// OPEN Message Error subcodes.
const (
	SubUnsupportedVersion      = 1
	SubBadPeerAS               = 2
	SubBadBgpIdentifier        = 3
	SubUnsupportedOptionalParam = 4
	SubUnacceptableHoldTime    = 6
	SubUnsupportedCapability   = 7
)

// UPDATE Message Error subcodes.
const (
	SubMalformedAttributeList      = 1
	SubUnrecognizedWellKnownAttrib = 2
	SubMissingWellKnownAttrib      = 3
	SubAttribFlagsError            = 4
	SubAttribLengthError           = 5
	SubInvalidOrigin               = 6
	SubInvalidNextHop               = 8
	SubOptionalAttribError          = 9
	SubInvalidNetworkField          = 10
	SubMalformedASPath              = 11
)

// Cease subcodes.
const (
	SubConnectionCollision = 7
	SubOutOfResources      = 8
)

// Error is the typed error value returned by the codec and the FSM
// runtime; Kind decides propagation, Code/Subcode are the NOTIFICATION
// values to send (when HasNotification is true).
type Error struct {
	Kind             Kind
	Code, Subcode    byte
	HasNotification  bool
	Msg              string
	Err              error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Decode builds a KindDecode error carrying the NOTIFICATION this decode
// failure maps to.
func Decode(code, subcode byte, msg string, err error) *Error {
	return &Error{Kind: KindDecode, Code: code, Subcode: subcode, HasNotification: true, Msg: msg, Err: err}
}

// Protocol builds a KindProtocol error carrying a NOTIFICATION with
// the given code and subcode.
func Protocol(code, subcode byte, msg string) *Error {
	return &Error{Kind: KindProtocol, Code: code, Subcode: subcode, HasNotification: true, Msg: msg}
}

// Timeout builds a KindTimeout error for hold-timer expiry or a failed
// connect attempt.
func Timeout(msg string) *Error {
	return &Error{Kind: KindTimeout, Code: CodeHoldTimerExp, HasNotification: true, Msg: msg}
}

// Transport builds a KindTransport error for TCP close/connect/write
// failures; these never carry an outbound NOTIFICATION since the
// transport itself is the thing that broke.
func Transport(msg string, err error) *Error {
	return &Error{Kind: KindTransport, Msg: msg, Err: err}
}

// Policy builds a KindPolicy error. It must never propagate to session
// scope — callers should log and drop, not surface it to the FSM.
func Policy(msg string) *Error {
	return &Error{Kind: KindPolicy, Msg: msg}
}

// Internal builds a KindInternal error, always mapped to Cease /
// OutOfResources.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeCease, Subcode: SubOutOfResources, HasNotification: true, Msg: msg, Err: err}
}

// SessionScoped reports whether err should propagate to the FSM (enter
// IDLE, possibly send a NOTIFICATION) rather than stay local to a
// route or caller.
func SessionScoped(err *Error) bool {
	switch err.Kind {
	case KindDecode, KindProtocol, KindTimeout, KindTransport, KindInternal:
		return true
	default:
		return false
	}
}
