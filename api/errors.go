package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors evalSig/materialize can return, grouped
// the way spec §7 groups them: structural problems with the IR, wiring
// problems (a referenced id has nothing registered for it), bad data in
// otherwise well-formed IR, and placeholder "not implemented yet" kinds.
type ErrorKind int

const (
	KindInvalidNodeId ErrorKind = iota
	KindInvalidConstId
	KindInvalidChainId
	KindInvalidEasingCurveId
	KindUnknownNodeKind
	KindUnknownOpCode
	KindUnknownStepKind
	KindUnknownCombineMode
	KindUnknownHandleKind
	KindMissingClosure
	KindMissingTriggerParam
	KindMissingOpParam
	KindMissingSourceField
	KindSourceSizeMismatch
	KindNonUnitQuaternion
	KindMat4LengthMismatch
	KindConstArrayLengthMismatch
	KindInvalidVecConstant
	KindUnsupportedStepKind
	KindUnsupportedFieldKind
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidNodeId:
		return "InvalidNodeId"
	case KindInvalidConstId:
		return "InvalidConstId"
	case KindInvalidChainId:
		return "InvalidChainId"
	case KindInvalidEasingCurveId:
		return "InvalidEasingCurveId"
	case KindUnknownNodeKind:
		return "UnknownNodeKind"
	case KindUnknownOpCode:
		return "UnknownOpCode"
	case KindUnknownStepKind:
		return "UnknownStepKind"
	case KindUnknownCombineMode:
		return "UnknownCombineMode"
	case KindUnknownHandleKind:
		return "UnknownHandleKind"
	case KindMissingClosure:
		return "MissingClosure"
	case KindMissingTriggerParam:
		return "MissingTriggerParam"
	case KindMissingOpParam:
		return "MissingOpParam"
	case KindMissingSourceField:
		return "MissingSourceField"
	case KindSourceSizeMismatch:
		return "SourceSizeMismatch"
	case KindNonUnitQuaternion:
		return "NonUnitQuaternion"
	case KindMat4LengthMismatch:
		return "Mat4LengthMismatch"
	case KindConstArrayLengthMismatch:
		return "ConstArrayLengthMismatch"
	case KindInvalidVecConstant:
		return "InvalidVecConstant"
	case KindUnsupportedStepKind:
		return "UnsupportedStepKind"
	case KindUnsupportedFieldKind:
		return "UnsupportedFieldKind"
	}
	return "UnknownErrorKind"
}

// Error is the single error type returned from evalSig and materialize.
// Code identifies the offending node, const, chain, or closure id so a
// caller can attribute the failure to a specific IR element.
type Error struct {
	Kind  ErrorKind
	Code  int64
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s(%d): %s", e.Kind, e.Code, e.cause)
	}
	return fmt.Sprintf("%s(%d)", e.Kind, e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is an *Error with the same Kind, so callers
// can use errors.Is(err, &Error{Kind: KindInvalidNodeId}) without caring
// about Code.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Kind == e.Kind
	}
	return false
}

// NewError builds an *Error for the given kind and offending id.
func NewError(kind ErrorKind, code int64) *Error {
	return &Error{Kind: kind, Code: code}
}

// Wrap builds an *Error that also carries a lower-level cause.
func Wrap(kind ErrorKind, code int64, cause error) *Error {
	return &Error{Kind: kind, Code: code, cause: cause}
}
