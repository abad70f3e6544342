package domain

import (
	"fmt"
	"strings"
)

// DocumentTypeOther tags an upload that does not fill any checklist slot.
const DocumentTypeOther = "outro"

// Document type tags used by the checklist catalog.
const (
	DocArticles      = "contrato_social"
	DocPartners      = "documento_socios"
	DocInvoices      = "notas_fiscais"
	DocPaidBills     = "boletos_pagados"
	DocOwnerSelfie   = "selfie_responsavel"
	DocFacadePhoto   = "foto_fachada"
	DocSiteSelfie    = "selfie_obra_ou_sede"
	DocSitePhotos    = "fotos_obra"
	itemInvoicesBill = "notas_boletos"
	itemReferences   = "referencias_comerciais"
)

// MinCommercialReferences is the number of references a reseller must supply.
const MinCommercialReferences = 3

// DocumentType is a selectable upload type with its display label.
type DocumentType struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var resellerDocs = []DocumentType{
	{DocArticles, "Contrato Social / Última Alteração"},
	{DocPartners, "Documentos dos Sócios"},
	{DocInvoices, "Notas Fiscais (últ. 6 meses)"},
	{DocPaidBills, "Boletos Pagos (últ. 6 meses)"},
	{DocOwnerSelfie, "Selfie do Responsável"},
	{DocFacadePhoto, "Foto da Fachada"},
}

var builderDocs = []DocumentType{
	{DocArticles, "Contrato Social / Última Alteração"},
	{DocPartners, "Documentos dos Sócios"},
	{DocSiteSelfie, "Selfie na Obra/Sede (com placa, se possível)"},
	{DocSitePhotos, "Fotos da Obra"},
	{DocInvoices, "Notas Fiscais (últ. 6 meses)"},
	{DocPaidBills, "Boletos Pagos (últ. 6 meses)"},
}

// RequiredDocuments returns the required document catalog for a client type.
func RequiredDocuments(t ClientType) []DocumentType {
	var src []DocumentType
	switch t {
	case ClientReseller:
		src = resellerDocs
	case ClientBuilder:
		src = builderDocs
	default:
		return nil
	}
	out := make([]DocumentType, len(src))
	copy(out, src)
	return out
}

// DocumentTypes lists every tag an agent may choose when uploading.
func DocumentTypes(t ClientType) []DocumentType {
	types := RequiredDocuments(t)
	if types == nil {
		return nil
	}
	return append(types, DocumentType{DocumentTypeOther, "Outro"})
}

// ValidDocumentType reports whether tag may be attached to a proposal of type t.
func ValidDocumentType(t ClientType, tag string) bool {
	for _, d := range DocumentTypes(t) {
		if d.Value == tag {
			return true
		}
	}
	return false
}

// ChecklistRule selects how invoices and paid bills are counted.
type ChecklistRule string

const (
	// RuleStrict requires at least three invoices and three paid bills.
	RuleStrict ChecklistRule = "strict"
	// RuleCombined treats invoices and paid bills as one pool of 1 to 3 files.
	RuleCombined ChecklistRule = "combined"
)

// ParseChecklistRule accepts "strict" or "combined"; empty selects strict.
func ParseChecklistRule(s string) (ChecklistRule, error) {
	switch ChecklistRule(strings.ToLower(strings.TrimSpace(s))) {
	case "", RuleStrict:
		return RuleStrict, nil
	case RuleCombined:
		return RuleCombined, nil
	}
	return "", fmt.Errorf("unknown checklist rule %q", s)
}

const strictFinancialMin = 3

// ChecklistItem is one required entry and whether the proposal satisfies it.
// Max is zero when there is no upper bound.
type ChecklistItem struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Min       int    `json:"min"`
	Max       int    `json:"max,omitempty"`
	Count     int    `json:"count"`
	Satisfied bool   `json:"satisfied"`
}

// Checklist is the evaluation result for one proposal.
type Checklist struct {
	Items    []ChecklistItem `json:"items"`
	Complete bool            `json:"complete"`
}

// Missing returns the unsatisfied items in catalog order.
func (c Checklist) Missing() []ChecklistItem {
	var out []ChecklistItem
	for _, it := range c.Items {
		if !it.Satisfied {
			out = append(out, it)
		}
	}
	return out
}

// EvaluateChecklist is a pure function of its inputs. Documents tagged with an
// empty type count as "outro".
func EvaluateChecklist(rule ChecklistRule, t ClientType, docs []Document, refs []CommercialReference) Checklist {
	counts := make(map[string]int, len(docs))
	for _, d := range docs {
		tag := d.Type
		if tag == "" {
			tag = DocumentTypeOther
		}
		counts[tag]++
	}

	var items []ChecklistItem
	for _, dt := range RequiredDocuments(t) {
		switch {
		case rule == RuleCombined && dt.Value == DocPaidBills:
			continue
		case rule == RuleCombined && dt.Value == DocInvoices:
			n := counts[DocInvoices] + counts[DocPaidBills]
			items = append(items, ChecklistItem{
				Key:       itemInvoicesBill,
				Label:     "Notas Fiscais e/ou Boletos (1 a 3)",
				Min:       1,
				Max:       3,
				Count:     n,
				Satisfied: n >= 1 && n <= 3,
			})
		case dt.Value == DocInvoices || dt.Value == DocPaidBills:
			n := counts[dt.Value]
			items = append(items, ChecklistItem{
				Key:       dt.Value,
				Label:     dt.Label,
				Min:       strictFinancialMin,
				Count:     n,
				Satisfied: n >= strictFinancialMin,
			})
		default:
			n := counts[dt.Value]
			items = append(items, ChecklistItem{
				Key:       dt.Value,
				Label:     dt.Label,
				Min:       1,
				Count:     n,
				Satisfied: n >= 1,
			})
		}
	}

	if t == ClientReseller {
		items = append(items, ChecklistItem{
			Key:       itemReferences,
			Label:     "Referências Comerciais",
			Min:       MinCommercialReferences,
			Count:     len(refs),
			Satisfied: len(refs) >= MinCommercialReferences,
		})
	}

	complete := len(items) > 0
	for _, it := range items {
		if !it.Satisfied {
			complete = false
			break
		}
	}
	return Checklist{Items: items, Complete: complete}
}
