package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		ok   bool
	}{
		{"incomplete checklist", &domain.IncompleteChecklistError{}, http.StatusUnprocessableEntity, true},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, true},
		{"user exists", domain.ErrUserExists, http.StatusConflict, true},
		{"validation", domain.Validationf("cliente_nome é obrigatório"), http.StatusBadRequest, true},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusBadRequest, true},
		{"authorization", domain.ErrForbidden, http.StatusForbidden, true},
		{"not found", domain.ErrProposalNotFound, http.StatusNotFound, true},
		{"wrapped not found", fmt.Errorf("load: %w", domain.ErrDocumentNotFound), http.StatusNotFound, true},
		{"backend", domain.Backend("falha ao salvar", errors.New("timeout")), 0, false},
		{"unclassified", errors.New("boom"), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _, ok := StatusFor(tc.err)
			if code != tc.code || ok != tc.ok {
				t.Fatalf("expected (%d, %v), got (%d, %v)", tc.code, tc.ok, code, ok)
			}
		})
	}
}

func TestStatusFor_UsesUserMessage(t *testing.T) {
	_, body, _ := StatusFor(fmt.Errorf("load: %w", domain.ErrProposalNotFound))
	if body.Error != "proposta não encontrada" {
		t.Fatalf("expected domain message, got %q", body.Error)
	}
}

func TestBackendMessage(t *testing.T) {
	err := domain.Backend("falha ao salvar proposta", errors.New("connection reset"))
	if got := BackendMessage(err); got != "falha ao salvar proposta" {
		t.Fatalf("expected operation message, got %q", got)
	}
	if got := BackendMessage(errors.New("boom")); got != "internal server error" {
		t.Fatalf("expected generic message, got %q", got)
	}
}
