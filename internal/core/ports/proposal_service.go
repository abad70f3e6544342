package ports

import (
	"context"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// CreateProposalInput carries all data needed to open a new proposal.
type CreateProposalInput struct {
	ClientName     string
	ClientTaxID    string
	ClientType     string
	ClientCode     string
	IdempotencyKey string
}

// ProposalResult is returned by the service after creating a proposal.
type ProposalResult struct {
	Proposal *domain.Proposal
	// AlreadyExisted is true when the Idempotency-Key matched an earlier creation.
	AlreadyExisted bool
}

// ProposalDetail is the full proposal view with its attachments and the
// current checklist evaluation.
type ProposalDetail struct {
	Proposal   *domain.Proposal
	Documents  []domain.Document
	References []domain.CommercialReference
	Checklist  domain.Checklist
}

// ListProposalsInput carries all parameters for the list endpoint.
type ListProposalsInput struct {
	Status string
	Search string
	Page   int
	Limit  int
}

// ListProposalsResult is returned by List.
type ListProposalsResult struct {
	Items      []*domain.Proposal
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// TransitionInput is an administrative status change request.
type TransitionInput struct {
	Status  string
	Amount  string
	Comment string
	Note    string
}

// ReferenceInput is a new commercial reference.
type ReferenceInput struct {
	Company string
	Contact string
	Phone   string
}

// ProposalService defines use-case operations for proposals.
type ProposalService interface {
	Create(ctx context.Context, actor domain.Session, in CreateProposalInput) (*ProposalResult, error)
	Get(ctx context.Context, actor domain.Session, id string) (*ProposalDetail, error)
	List(ctx context.Context, actor domain.Session, in ListProposalsInput) (*ListProposalsResult, error)
	Checklist(ctx context.Context, actor domain.Session, id string) (*domain.Checklist, error)
	Submit(ctx context.Context, actor domain.Session, id string, mode domain.SubmitMode) (*domain.Proposal, error)
	Transition(ctx context.Context, actor domain.Session, id string, in TransitionInput) (*domain.Proposal, error)
	Delete(ctx context.Context, actor domain.Session, id string) error
	AddReference(ctx context.Context, actor domain.Session, id string, in ReferenceInput) (*domain.CommercialReference, error)
}
