package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed operation so the transport layer can map it
// to a response without inspecting message text.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindConflict   ErrorKind = "conflict"
	KindNotFound   ErrorKind = "not_found"
	KindBusiness   ErrorKind = "business"
)

// Error is the typed failure every core operation surfaces for the
// conditions it rejects. Wrapped causes stay available via errors.Unwrap.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets sentinel errors of the same kind and message match wrapped copies.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func Conflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func Business(msg string) error   { return &Error{Kind: KindBusiness, Message: msg} }

// KindOf returns the kind of a typed error, or "" for plain errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

var (
	ErrOrderNotFound       = &Error{Kind: KindNotFound, Message: "order not found"}
	ErrAccountNotFound     = &Error{Kind: KindNotFound, Message: "account not found"}
	ErrTransactionNotFound = &Error{Kind: KindNotFound, Message: "transaction not found"}
	ErrUserNotFound        = &Error{Kind: KindNotFound, Message: "user not found"}

	ErrInsufficientFunds  = &Error{Kind: KindBusiness, Message: "insufficient balance"}
	ErrPendingOrderExists = &Error{Kind: KindBusiness, Message: "a pending order already exists for this user"}
	ErrPendingDeposit     = &Error{Kind: KindBusiness, Message: "a pending deposit already exists for this user"}

	ErrAccountUnavailable = &Error{Kind: KindConflict, Message: "account is not free"}
	ErrInvalidTransition  = &Error{Kind: KindConflict, Message: "order is not in the required status"}
	ErrTerminalOrder      = &Error{Kind: KindConflict, Message: "order is already completed or cancelled"}
	ErrTransactionSettled = &Error{Kind: KindConflict, Message: "transaction is not pending"}
)
