package lifecycle

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure so the HTTP boundary can map it to a
// status code and a user-facing message.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindPermission        Kind = "permission"
	KindInvalidState      Kind = "invalid_state"
	KindWrongItemType     Kind = "wrong_item_type"
	KindSelfClaim         Kind = "self_claim"
	KindAlreadyReturned   Kind = "already_returned"
	KindAlreadyClaimed    Kind = "already_claimed"
	KindDuplicateApproved Kind = "duplicate_approved"
	KindDuplicatePending  Kind = "duplicate_pending"
	KindNoApprovedClaim   Kind = "no_approved_claim"
	KindTooManyImages     Kind = "too_many_images"
	KindConflict          Kind = "conflict"
	KindStorage           Kind = "storage"
)

// ErrNotFound is returned by stores when the target row does not exist.
var ErrNotFound = errors.New("record not found")

// ErrSerialization is returned by Store.Atomically when the transaction aborts
// on a serialization conflict. The engine retries once, then surfaces
// KindConflict to the caller.
var ErrSerialization = errors.New("serialization conflict")

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrSerialization) {
		return err
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	return &Error{Kind: KindStorage, Message: "persistence failure", Err: err}
}

// KindOf returns the kind carried by err, or "" for errors outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
