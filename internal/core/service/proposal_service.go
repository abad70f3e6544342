package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProposalService orchestrates the proposal workflow against the stores.
// Every status change goes through domain.Workflow and is persisted with a
// single atomic update.
type ProposalService struct {
	proposals  ports.ProposalRepository
	documents  ports.DocumentRepository
	references ports.ReferenceRepository
	blobs      ports.BlobStore
	idem       ports.IdempotencyStore
	workflow   domain.Workflow
	logger     zerolog.Logger
}

func NewProposalService(
	proposals ports.ProposalRepository,
	documents ports.DocumentRepository,
	references ports.ReferenceRepository,
	blobs ports.BlobStore,
	idem ports.IdempotencyStore,
	workflow domain.Workflow,
	logger zerolog.Logger,
) *ProposalService {
	return &ProposalService{
		proposals:  proposals,
		documents:  documents,
		references: references,
		blobs:      blobs,
		idem:       idem,
		workflow:   workflow,
		logger:     logger,
	}
}

// Create opens a new draft proposal for the calling agent. If an idempotency
// key is provided and already seen, the earlier proposal is returned.
func (s *ProposalService) Create(ctx context.Context, actor domain.Session, in ports.CreateProposalInput) (*ports.ProposalResult, error) {
	if !actor.IsAgent() {
		return nil, domain.Forbiddenf("apenas vendedores podem criar propostas")
	}

	name := strings.TrimSpace(in.ClientName)
	code := strings.TrimSpace(in.ClientCode)
	taxID := digitsOnly(in.ClientTaxID)
	clientType := domain.ClientType(in.ClientType)
	switch {
	case name == "" || code == "":
		return nil, domain.Validationf("nome e código do cliente são obrigatórios")
	case len(taxID) != 11 && len(taxID) != 14:
		return nil, domain.Validationf("CPF/CNPJ inválido")
	case !clientType.Valid():
		return nil, domain.Validationf("tipo de cliente inválido: %q", in.ClientType)
	}

	// stale is set when the key points at a proposal that no longer exists.
	stale := false
	if in.IdempotencyKey != "" && s.idem != nil {
		id, found, err := s.idem.Lookup(ctx, idemKey(actor, in.IdempotencyKey))
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency lookup failed, creating anyway")
		} else if found {
			existing, err := s.proposals.FindByID(ctx, id)
			switch {
			case err == nil && existing.AgentID == actor.UserID:
				s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Str("proposal_id", id).Msg("idempotent replay")
				return &ports.ProposalResult{Proposal: existing, AlreadyExisted: true}, nil
			case err == nil || errors.Is(err, domain.ErrNotFound):
				stale = true
			}
		}
	}

	now := time.Now().UTC()
	p := &domain.Proposal{
		ID:          uuid.NewString(),
		AgentID:     actor.UserID,
		ClientName:  name,
		ClientTaxID: taxID,
		ClientType:  clientType,
		ClientCode:  code,
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.proposals.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create proposal")
		return nil, domain.Backend("falha ao criar proposta", err)
	}

	if in.IdempotencyKey != "" && s.idem != nil {
		remember := s.idem.Remember
		if stale {
			remember = s.idem.Replace
		}
		if err := remember(ctx, idemKey(actor, in.IdempotencyKey), p.ID); err != nil {
			s.logger.Warn().Err(err).Str("proposal_id", p.ID).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("proposal_id", p.ID).Str("agent_id", actor.UserID).Str("client_type", string(clientType)).Msg("proposal created")
	return &ports.ProposalResult{Proposal: p}, nil
}

// Get returns a proposal with its documents, references and checklist.
// Agents only see their own proposals; anything else reads as not found.
func (s *ProposalService) Get(ctx context.Context, actor domain.Session, id string) (*ports.ProposalDetail, error) {
	p, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	docs, refs, err := s.attachments(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &ports.ProposalDetail{
		Proposal:   p,
		Documents:  docs,
		References: refs,
		Checklist:  s.workflow.Evaluate(p.ClientType, docs, refs),
	}, nil
}

// Checklist evaluates the proposal's current document checklist.
func (s *ProposalService) Checklist(ctx context.Context, actor domain.Session, id string) (*domain.Checklist, error) {
	detail, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return &detail.Checklist, nil
}

// List returns a page of proposals. Agents are always scoped to their own.
func (s *ProposalService) List(ctx context.Context, actor domain.Session, in ports.ListProposalsInput) (*ports.ListProposalsResult, error) {
	if !actor.IsAdmin() && !actor.IsAgent() {
		return nil, domain.ErrForbidden
	}
	if in.Status != "" && !domain.ProposalStatus(in.Status).Valid() {
		return nil, domain.Validationf("status desconhecido: %q", in.Status)
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	filter := ports.ListProposalsFilter{
		Status: in.Status,
		Search: strings.TrimSpace(in.Search),
		Page:   page,
		Limit:  limit,
	}
	if !actor.IsAdmin() {
		filter.AgentID = actor.UserID
	}

	items, total, err := s.proposals.List(ctx, filter)
	if err != nil {
		return nil, domain.Backend("falha ao listar propostas", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListProposalsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Submit sends a draft or reanalysis proposal for review.
func (s *ProposalService) Submit(ctx context.Context, actor domain.Session, id string, mode domain.SubmitMode) (*domain.Proposal, error) {
	p, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	var refs []domain.CommercialReference
	if mode == domain.SubmitGated {
		if docs, refs, err = s.attachments(ctx, p.ID); err != nil {
			return nil, err
		}
	}

	next, err := s.workflow.Submit(p, actor, docs, refs, mode)
	if err != nil {
		s.logger.Info().Err(err).Str("proposal_id", id).Str("mode", string(mode)).Msg("submission refused")
		return nil, err
	}
	if err := s.proposals.UpdateWorkflow(ctx, next); err != nil {
		return nil, domain.Backend("falha ao enviar proposta", err)
	}

	s.logger.Info().
		Str("proposal_id", id).
		Str("from", string(p.Status)).
		Str("to", string(next.Status)).
		Str("mode", string(mode)).
		Msg("proposal submitted")
	return next, nil
}

// Transition applies an administrative status change.
func (s *ProposalService) Transition(ctx context.Context, actor domain.Session, id string, in ports.TransitionInput) (*domain.Proposal, error) {
	if !actor.IsAdmin() {
		return nil, domain.Forbiddenf("apenas administradores podem alterar o status")
	}
	p, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	next, err := s.workflow.Transition(p, actor, domain.ProposalStatus(in.Status), domain.TransitionFields{
		Amount:  in.Amount,
		Comment: in.Comment,
		Note:    in.Note,
	})
	if err != nil {
		return nil, err
	}
	if err := s.proposals.UpdateWorkflow(ctx, next); err != nil {
		return nil, domain.Backend("falha ao atualizar status", err)
	}

	s.logger.Info().
		Str("proposal_id", id).
		Str("from", string(p.Status)).
		Str("to", string(next.Status)).
		Str("actor", actor.UserID).
		Msg("proposal status changed")
	return next, nil
}

// Delete removes a draft proposal with its documents and references. Stored
// files are removed afterwards; a failed file removal is logged only.
func (s *ProposalService) Delete(ctx context.Context, actor domain.Session, id string) error {
	p, err := s.visible(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.workflow.CanDelete(p, actor); err != nil {
		return err
	}

	docs, err := s.proposals.DeleteCascade(ctx, p.ID)
	if err != nil {
		return domain.Backend("falha ao excluir proposta", err)
	}

	for _, d := range docs {
		if err := s.blobs.Delete(ctx, d.StoragePath); err != nil {
			s.logger.Warn().Err(err).Str("path", d.StoragePath).Msg("failed to remove stored file")
		}
	}

	s.logger.Info().Str("proposal_id", id).Int("documents", len(docs)).Msg("proposal deleted")
	return nil
}

// AddReference appends a commercial reference to a reseller proposal.
func (s *ProposalService) AddReference(ctx context.Context, actor domain.Session, id string, in ports.ReferenceInput) (*domain.CommercialReference, error) {
	p, err := s.visible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.workflow.CanEditAttachments(p, actor); err != nil {
		return nil, err
	}
	if p.ClientType != domain.ClientReseller {
		return nil, domain.Validationf("referências comerciais só se aplicam a clientes revenda")
	}

	ref := &domain.CommercialReference{
		ID:         uuid.NewString(),
		ProposalID: p.ID,
		Company:    strings.TrimSpace(in.Company),
		Contact:    strings.TrimSpace(in.Contact),
		Phone:      strings.TrimSpace(in.Phone),
		CreatedAt:  time.Now().UTC(),
	}
	if ref.Company == "" || ref.Contact == "" || ref.Phone == "" {
		return nil, domain.Validationf("preencha empresa, contato e telefone da referência")
	}

	if err := s.references.Create(ctx, ref); err != nil {
		return nil, domain.Backend("falha ao adicionar referência", err)
	}
	s.logger.Info().Str("proposal_id", p.ID).Str("reference_id", ref.ID).Msg("reference added")
	return ref, nil
}

// visible loads a proposal and hides it from agents that do not own it.
func (s *ProposalService) visible(ctx context.Context, actor domain.Session, id string) (*domain.Proposal, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrProposalNotFound
	}
	p, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Backend("falha ao buscar proposta", err)
	}
	if actor.IsAdmin() || actor.Owns(p) {
		return p, nil
	}
	return nil, domain.ErrProposalNotFound
}

func (s *ProposalService) attachments(ctx context.Context, proposalID string) ([]domain.Document, []domain.CommercialReference, error) {
	docs, err := s.documents.ListByProposal(ctx, proposalID)
	if err != nil {
		return nil, nil, domain.Backend("falha ao listar documentos", err)
	}
	refs, err := s.references.ListByProposal(ctx, proposalID)
	if err != nil {
		return nil, nil, domain.Backend("falha ao listar referências", err)
	}
	return docs, refs, nil
}

func idemKey(actor domain.Session, key string) string {
	return actor.UserID + ":" + key
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
