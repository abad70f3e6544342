package handler

import (
	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

// --- Request types ---

type createProposalRequest struct {
	ClientName  string `json:"cliente_nome"   validate:"required"`
	ClientTaxID string `json:"cliente_cpf"    validate:"required"`
	ClientType  string `json:"tipo_cliente"   validate:"required,oneof=revenda construtora"`
	ClientCode  string `json:"codigo_cliente" validate:"required"`
}

type submitRequest struct {
	// Mode defaults to "gated" when omitted.
	Mode string `json:"mode" validate:"omitempty,oneof=gated partial"`
}

type transitionRequest struct {
	Status  string `json:"status"               validate:"required,oneof=pendente aprovado reprovado reanalise"`
	Amount  string `json:"valor_aprovado"`
	Comment string `json:"comentario_analista"`
	Note    string `json:"observacao_reanalise"`
}

type referenceRequest struct {
	Company string `json:"empresa"  validate:"required"`
	Contact string `json:"contato"  validate:"required"`
	Phone   string `json:"telefone" validate:"required"`
}

// --- Response types ---

type proposalDetailResponse struct {
	*domain.Proposal
	Documents  []domain.Document            `json:"documentos"`
	References []domain.CommercialReference `json:"referencias_comerciais"`
	Checklist  domain.Checklist             `json:"checklist"`
}

type listProposalsResponse struct {
	Items      []*domain.Proposal `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

type documentLinkResponse struct {
	URL       string `json:"url"`
	FileName  string `json:"nome_arquivo"`
	ExpiresAt string `json:"expira_em"`
}

// --- Mappers ---

func toDetailResponse(d *ports.ProposalDetail) proposalDetailResponse {
	docs := d.Documents
	if docs == nil {
		docs = []domain.Document{}
	}
	refs := d.References
	if refs == nil {
		refs = []domain.CommercialReference{}
	}
	return proposalDetailResponse{
		Proposal:   d.Proposal,
		Documents:  docs,
		References: refs,
		Checklist:  d.Checklist,
	}
}

func toListResponse(r *ports.ListProposalsResult) listProposalsResponse {
	items := r.Items
	if items == nil {
		items = []*domain.Proposal{}
	}
	return listProposalsResponse{
		Items:      items,
		Total:      r.Total,
		Page:       r.Page,
		Limit:      r.Limit,
		TotalPages: r.TotalPages,
	}
}
