package domain

import "time"

// ProposalStatus represents the lifecycle state of a credit proposal.
type ProposalStatus string

const (
	StatusDraft      ProposalStatus = "rascunho"
	StatusPending    ProposalStatus = "pendente"
	StatusApproved   ProposalStatus = "aprovado"
	StatusRejected   ProposalStatus = "reprovado"
	StatusReanalysis ProposalStatus = "reanalise"
)

// Valid reports whether s is a known status.
func (s ProposalStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusRejected, StatusReanalysis:
		return true
	}
	return false
}

// ClientType selects the document checklist a proposal is evaluated against.
type ClientType string

const (
	ClientReseller ClientType = "revenda"
	ClientBuilder  ClientType = "construtora"
)

func (t ClientType) Valid() bool {
	return t == ClientReseller || t == ClientBuilder
}

// agentTransitions are the moves an owning agent may make (submission).
var agentTransitions = map[ProposalStatus][]ProposalStatus{
	StatusDraft:      {StatusPending},
	StatusReanalysis: {StatusPending},
}

// adminTransitions are the moves an administrator may make. A draft is not
// reviewable until the agent submits it.
var adminTransitions = map[ProposalStatus][]ProposalStatus{
	StatusPending:    {StatusApproved, StatusRejected, StatusReanalysis, StatusPending},
	StatusApproved:   {StatusApproved, StatusRejected, StatusReanalysis, StatusPending},
	StatusRejected:   {StatusApproved, StatusRejected, StatusReanalysis, StatusPending},
	StatusReanalysis: {StatusApproved, StatusRejected, StatusReanalysis, StatusPending},
}

func allowed(table map[ProposalStatus][]ProposalStatus, from, to ProposalStatus) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CanAgentMove reports whether an agent may move a proposal from s to next.
func (s ProposalStatus) CanAgentMove(next ProposalStatus) bool {
	return allowed(agentTransitions, s, next)
}

// CanAdminMove reports whether an administrator may move a proposal from s to next.
func (s ProposalStatus) CanAdminMove(next ProposalStatus) bool {
	return allowed(adminTransitions, s, next)
}

// Editable reports whether documents and references may still be changed.
func (s ProposalStatus) Editable() bool {
	return s == StatusDraft || s == StatusReanalysis
}

// Proposal is the credit-analysis aggregate root.
type Proposal struct {
	ID             string         `json:"id" bson:"_id"`
	AgentID        string         `json:"vendedor_id" bson:"vendedor_id"`
	ClientName     string         `json:"cliente_nome" bson:"cliente_nome"`
	ClientTaxID    string         `json:"cliente_cpf" bson:"cliente_cpf"`
	ClientType     ClientType     `json:"tipo_cliente" bson:"tipo_cliente"`
	ClientCode     string         `json:"codigo_cliente" bson:"codigo_cliente"`
	Status         ProposalStatus `json:"status" bson:"status"`
	ReanalysisNote *string        `json:"observacao_reanalise" bson:"observacao_reanalise"`
	AnalystComment *string        `json:"comentario_analista" bson:"comentario_analista"`
	ApprovedAmount *float64       `json:"valor_aprovado" bson:"valor_aprovado"`
	CreatedAt      time.Time      `json:"criado_em" bson:"criado_em"`
	UpdatedAt      time.Time      `json:"atualizado_em" bson:"atualizado_em"`
}

// Clone returns a deep copy so engine functions never mutate their input.
func (p *Proposal) Clone() *Proposal {
	if p == nil {
		return nil
	}
	c := *p
	if p.ReanalysisNote != nil {
		v := *p.ReanalysisNote
		c.ReanalysisNote = &v
	}
	if p.AnalystComment != nil {
		v := *p.AnalystComment
		c.AnalystComment = &v
	}
	if p.ApprovedAmount != nil {
		v := *p.ApprovedAmount
		c.ApprovedAmount = &v
	}
	return &c
}

// Document is a file attached to exactly one proposal.
type Document struct {
	ID          string    `json:"id" bson:"_id"`
	ProposalID  string    `json:"analise_id" bson:"analise_id"`
	FileName    string    `json:"nome_arquivo" bson:"nome_arquivo"`
	Type        string    `json:"tipo_documento" bson:"tipo_documento"`
	StoragePath string    `json:"url" bson:"url"`
	ContentType string    `json:"content_type,omitempty" bson:"content_type,omitempty"`
	Size        int64     `json:"tamanho,omitempty" bson:"tamanho,omitempty"`
	CreatedAt   time.Time `json:"criado_em" bson:"criado_em"`
}

// CommercialReference is a third-party reference for a reseller client.
type CommercialReference struct {
	ID         string    `json:"id" bson:"_id"`
	ProposalID string    `json:"analise_id" bson:"analise_id"`
	Company    string    `json:"empresa" bson:"empresa"`
	Contact    string    `json:"contato" bson:"contato"`
	Phone      string    `json:"telefone" bson:"telefone"`
	CreatedAt  time.Time `json:"criado_em" bson:"criado_em"`
}
