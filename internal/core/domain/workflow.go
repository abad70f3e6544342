package domain

import (
	"strings"
	"time"
)

// SubmitMode selects whether a submission is gated by the checklist.
type SubmitMode string

const (
	SubmitGated   SubmitMode = "gated"
	SubmitPartial SubmitMode = "partial"
)

func (m SubmitMode) Valid() bool { return m == SubmitGated || m == SubmitPartial }

// TransitionFields carries the side fields of an administrative transition.
// Amount is the raw pt-BR formatted input.
type TransitionFields struct {
	Amount  string
	Comment string
	Note    string
}

// Workflow holds the checklist rule and transition logic shared by the agent
// and admin surfaces. The zero value uses the strict rule and time.Now.
type Workflow struct {
	Rule  ChecklistRule
	Clock func() time.Time
}

// NewWorkflow returns a Workflow using rule.
func NewWorkflow(rule ChecklistRule) Workflow {
	return Workflow{Rule: rule}
}

func (w Workflow) now() time.Time {
	if w.Clock != nil {
		return w.Clock().UTC()
	}
	return time.Now().UTC()
}

func (w Workflow) rule() ChecklistRule {
	if w.Rule == "" {
		return RuleStrict
	}
	return w.Rule
}

// Evaluate runs the checklist for a proposal of client type t.
func (w Workflow) Evaluate(t ClientType, docs []Document, refs []CommercialReference) Checklist {
	return EvaluateChecklist(w.rule(), t, docs, refs)
}

// Submit moves a draft or reanalysis proposal to pending on behalf of its
// owning agent. The input proposal is never modified; on success a new value
// is returned.
func (w Workflow) Submit(p *Proposal, actor Session, docs []Document, refs []CommercialReference, mode SubmitMode) (*Proposal, error) {
	if p == nil {
		return nil, ErrProposalNotFound
	}
	if !actor.Owns(p) {
		return nil, Forbiddenf("apenas o vendedor responsável pode enviar a proposta")
	}
	if !mode.Valid() {
		return nil, Validationf("modo de envio inválido: %q", mode)
	}
	if !p.Status.CanAgentMove(StatusPending) {
		return nil, &Error{Kind: ErrValidation, Msg: "proposta com status " + string(p.Status) + " não pode ser enviada"}
	}
	if mode == SubmitGated {
		if cl := w.Evaluate(p.ClientType, docs, refs); !cl.Complete {
			return nil, &IncompleteChecklistError{Missing: cl.Missing()}
		}
	}

	next := p.Clone()
	if p.Status == StatusReanalysis {
		next.ReanalysisNote = nil
	}
	next.Status = StatusPending
	next.ApprovedAmount = nil
	next.UpdatedAt = w.now()
	return next, nil
}

// Transition applies an administrative status change. Only admins may call
// it; agents submit through Submit.
func (w Workflow) Transition(p *Proposal, actor Session, target ProposalStatus, f TransitionFields) (*Proposal, error) {
	if p == nil {
		return nil, ErrProposalNotFound
	}
	if !actor.IsAdmin() {
		return nil, Forbiddenf("apenas administradores podem alterar o status para %s", target)
	}
	if !target.Valid() {
		return nil, Validationf("status desconhecido: %q", target)
	}
	if !p.Status.CanAdminMove(target) {
		return nil, &Error{Kind: ErrValidation, Msg: "transição de " + string(p.Status) + " para " + string(target) + " não permitida"}
	}

	next := p.Clone()
	comment := strings.TrimSpace(f.Comment)

	switch target {
	case StatusApproved:
		amount, err := ParseAmount(f.Amount)
		if err != nil {
			return nil, err
		}
		next.ApprovedAmount = &amount
		next.AnalystComment = optional(comment)
		next.ReanalysisNote = nil
	case StatusRejected:
		if comment == "" {
			return nil, Validationf("motivo da reprovação é obrigatório")
		}
		next.AnalystComment = &comment
		next.ApprovedAmount = nil
		next.ReanalysisNote = nil
	case StatusReanalysis:
		note := strings.TrimSpace(f.Note)
		if note == "" {
			return nil, Validationf("informe o que está faltando para a reanálise")
		}
		next.ReanalysisNote = &note
		next.ApprovedAmount = nil
	case StatusPending:
		next.ApprovedAmount = nil
		next.ReanalysisNote = nil
	}

	next.Status = target
	next.UpdatedAt = w.now()
	return next, nil
}

// CanDelete reports whether actor may delete p.
func (w Workflow) CanDelete(p *Proposal, actor Session) error {
	if p == nil {
		return ErrProposalNotFound
	}
	if !actor.Owns(p) {
		return Forbiddenf("apenas o vendedor responsável pode excluir a proposta")
	}
	if p.Status != StatusDraft {
		return Validationf("somente propostas em rascunho podem ser excluídas")
	}
	return nil
}

// CanEditAttachments reports whether actor may add or remove documents and
// references on p.
func (w Workflow) CanEditAttachments(p *Proposal, actor Session) error {
	if p == nil {
		return ErrProposalNotFound
	}
	if !actor.Owns(p) {
		return Forbiddenf("apenas o vendedor responsável pode alterar a proposta")
	}
	if !p.Status.Editable() {
		return Validationf("proposta com status %s não aceita alterações", p.Status)
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
