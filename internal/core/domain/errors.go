package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the workflow unwraps to exactly one of
// these so callers can branch with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrAuthorization = errors.New("authorization error")
	ErrNotFound      = errors.New("not found")
	ErrBackend       = errors.New("backend error")
)

var (
	ErrProposalNotFound   = &Error{Kind: ErrNotFound, Msg: "proposta não encontrada"}
	ErrDocumentNotFound   = &Error{Kind: ErrNotFound, Msg: "documento não encontrado"}
	ErrUserNotFound       = &Error{Kind: ErrNotFound, Msg: "usuário não encontrado"}
	ErrInvalidTransition  = &Error{Kind: ErrValidation, Msg: "transição de status inválida"}
	ErrForbidden          = &Error{Kind: ErrAuthorization, Msg: "acesso negado"}
	ErrInvalidCredentials = &Error{Kind: ErrAuthorization, Msg: "email ou senha incorretos"}
	ErrUserExists         = &Error{Kind: ErrValidation, Msg: "usuário já cadastrado"}
)

// Error is a classified workflow error carrying a message fit for end users.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Kind == ErrBackend {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// Validationf builds an ErrValidation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Msg: fmt.Sprintf(format, args...)}
}

// Forbiddenf builds an ErrAuthorization error.
func Forbiddenf(format string, args ...any) error {
	return &Error{Kind: ErrAuthorization, Msg: fmt.Sprintf(format, args...)}
}

// Backend wraps a store failure. Errors that are already classified pass
// through untouched so a repository can return ErrProposalNotFound directly.
func Backend(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Kind: ErrBackend, Msg: op, Cause: err}
}

// IncompleteChecklistError is returned by a gated submission when required
// documents or references are missing.
type IncompleteChecklistError struct {
	Missing []ChecklistItem
}

func (e *IncompleteChecklistError) Error() string {
	keys := make([]string, 0, len(e.Missing))
	for _, it := range e.Missing {
		keys = append(keys, it.Key)
	}
	return fmt.Sprintf("checklist incompleto: faltam %v", keys)
}

func (e *IncompleteChecklistError) Unwrap() error { return ErrValidation }
