package ports

import (
	"context"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// ListProposalsFilter carries all query parameters for listing proposals.
// AgentID is always enforced by the service layer for agents.
type ListProposalsFilter struct {
	AgentID string // empty = no filter (admin); non-empty = scoped to agent
	Status  string // optional: filter by proposal status
	Search  string // optional: partial match on client name, tax id or code
	Page    int    // 1-based
	Limit   int    // max rows per page (capped at 100 by service)
}

// ProposalRepository defines persistence operations for proposals.
type ProposalRepository interface {
	Create(ctx context.Context, p *domain.Proposal) error
	FindByID(ctx context.Context, id string) (*domain.Proposal, error)
	// List returns a page of proposals, newest first, and the total count.
	List(ctx context.Context, filter ListProposalsFilter) ([]*domain.Proposal, int64, error)
	// UpdateWorkflow atomically writes status, note, comment, amount and the
	// updated timestamp. Either every field is written or none is.
	UpdateWorkflow(ctx context.Context, p *domain.Proposal) error
	// DeleteCascade removes the proposal with its documents and references in
	// one transaction and returns the document metadata it removed.
	DeleteCascade(ctx context.Context, id string) ([]domain.Document, error)
}

// ReferenceRepository persists commercial references. References are
// append-only.
type ReferenceRepository interface {
	Create(ctx context.Context, r *domain.CommercialReference) error
	ListByProposal(ctx context.Context, proposalID string) ([]domain.CommercialReference, error)
}

// IdempotencyStore remembers which proposal a client-supplied key created.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (proposalID string, found bool, err error)
	// Remember stores the id unless the key is already taken.
	Remember(ctx context.Context, key, proposalID string) error
	// Replace overwrites the key, used when the stored proposal is gone.
	Replace(ctx context.Context, key, proposalID string) error
}
