// Package service implements the business operations behind the HTTP API:
// group management, expense creation, and balance sheets.
package service

// Kind classifies a service failure so the HTTP layer can map it to a
// status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindConflict
)

// Error is a service failure carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, logged but never shown to clients
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

func notFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

func unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }

func conflict(msg string) error { return &Error{Kind: KindConflict, Message: msg} }

func internal(msg string, cause error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: cause}
}
