package service

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

// DefaultLinkTTL is how long a signed download link stays valid.
const DefaultLinkTTL = 300 * time.Second

const defaultMaxUploadBytes = 20 << 20

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".jpg": {}, ".jpeg": {}, ".png": {}, ".doc": {}, ".docx": {},
}

// DocumentOptions tunes upload limits and link lifetime.
type DocumentOptions struct {
	MaxUploadBytes int64
	LinkTTL        time.Duration
}

// DocumentService handles uploads, signed links and ZIP export of proposal
// documents.
type DocumentService struct {
	proposals ports.ProposalRepository
	documents ports.DocumentRepository
	users     ports.AuthRepository
	blobs     ports.BlobStore
	fetcher   ports.BlobFetcher
	signer    ports.LinkSigner
	workflow  domain.Workflow
	opts      DocumentOptions
	logger    zerolog.Logger
}

func NewDocumentService(
	proposals ports.ProposalRepository,
	documents ports.DocumentRepository,
	users ports.AuthRepository,
	blobs ports.BlobStore,
	fetcher ports.BlobFetcher,
	signer ports.LinkSigner,
	workflow domain.Workflow,
	opts DocumentOptions,
	logger zerolog.Logger,
) *DocumentService {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.LinkTTL <= 0 {
		opts.LinkTTL = DefaultLinkTTL
	}
	return &DocumentService{
		proposals: proposals,
		documents: documents,
		users:     users,
		blobs:     blobs,
		fetcher:   fetcher,
		signer:    signer,
		workflow:  workflow,
		opts:      opts,
		logger:    logger,
	}
}

// Upload stores the file body first and then records its metadata.
func (s *DocumentService) Upload(ctx context.Context, actor domain.Session, in ports.UploadDocumentInput) (*domain.Document, error) {
	p, err := s.loadProposal(ctx, actor, in.ProposalID)
	if err != nil {
		return nil, err
	}
	if err := s.workflow.CanEditAttachments(p, actor); err != nil {
		return nil, err
	}

	name := path.Base(strings.ReplaceAll(strings.TrimSpace(in.FileName), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return nil, domain.Validationf("nome do arquivo é obrigatório")
	}
	if _, ok := allowedExtensions[strings.ToLower(path.Ext(name))]; !ok {
		return nil, domain.Validationf("formato não aceito: use PDF, JPG, PNG, DOC ou DOCX")
	}
	if len(in.Body) == 0 {
		return nil, domain.Validationf("arquivo vazio")
	}
	if int64(len(in.Body)) > s.opts.MaxUploadBytes {
		return nil, domain.Validationf("arquivo excede o limite de %d MB", s.opts.MaxUploadBytes>>20)
	}

	docType := strings.TrimSpace(in.Type)
	if docType == "" {
		docType = domain.DocumentTypeOther
	}
	if !domain.ValidDocumentType(p.ClientType, docType) {
		return nil, domain.Validationf("tipo de documento %q não se aplica a clientes %s", docType, p.ClientType)
	}

	contentType := strings.TrimSpace(in.ContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mimetype.Detect(in.Body).String()
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:          uuid.NewString(),
		ProposalID:  p.ID,
		FileName:    name,
		Type:        docType,
		StoragePath: fmt.Sprintf("%s/%s/%d-%s", p.AgentID, p.ID, now.UnixMilli(), name),
		ContentType: contentType,
		Size:        int64(len(in.Body)),
		CreatedAt:   now,
	}

	if err := s.blobs.Upload(ctx, ports.BlobObject{Path: doc.StoragePath, ContentType: contentType, Body: in.Body}); err != nil {
		return nil, domain.Backend("falha ao enviar documento", err)
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		if delErr := s.blobs.Delete(ctx, doc.StoragePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", doc.StoragePath).Msg("failed to remove orphaned file")
		}
		return nil, domain.Backend("falha ao registrar documento", err)
	}

	s.logger.Info().
		Str("proposal_id", p.ID).
		Str("document_id", doc.ID).
		Str("type", docType).
		Int64("size", doc.Size).
		Msg("document uploaded")
	return doc, nil
}

// Delete removes a document while its proposal is still editable.
func (s *DocumentService) Delete(ctx context.Context, actor domain.Session, documentID string) error {
	doc, p, err := s.loadDocument(ctx, actor, documentID)
	if err != nil {
		return err
	}
	if err := s.workflow.CanEditAttachments(p, actor); err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, doc.ID); err != nil {
		return domain.Backend("falha ao excluir documento", err)
	}
	if err := s.blobs.Delete(ctx, doc.StoragePath); err != nil {
		s.logger.Warn().Err(err).Str("path", doc.StoragePath).Msg("failed to remove stored file")
	}

	s.logger.Info().Str("proposal_id", p.ID).Str("document_id", doc.ID).Msg("document deleted")
	return nil
}

// Link issues a time-limited download URL for a document.
func (s *DocumentService) Link(ctx context.Context, actor domain.Session, documentID string) (*ports.DocumentLink, error) {
	doc, _, err := s.loadDocument(ctx, actor, documentID)
	if err != nil {
		return nil, err
	}
	url, expires, err := s.signer.Sign(ports.LinkClaims{Path: doc.StoragePath, FileName: doc.FileName}, s.opts.LinkTTL)
	if err != nil {
		return nil, domain.Backend("falha ao gerar link", err)
	}
	return &ports.DocumentLink{URL: url, FileName: doc.FileName, ExpiresAt: expires}, nil
}

// Open resolves a signed link to the file body.
func (s *DocumentService) Open(ctx context.Context, token string) (*ports.DownloadedFile, error) {
	claims, err := s.signer.Verify(token)
	if err != nil {
		return nil, domain.Forbiddenf("link inválido ou expirado")
	}
	obj, err := s.blobs.Download(ctx, claims.Path)
	if errors.Is(err, ports.ErrBlobNotFound) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, domain.Backend("falha ao baixar documento", err)
	}
	return &ports.DownloadedFile{FileName: claims.FileName, ContentType: obj.ContentType, Body: obj.Body}, nil
}

// Export bundles every document of a proposal into a ZIP archive. Files that
// cannot be retrieved are logged and left out; the archive still completes.
func (s *DocumentService) Export(ctx context.Context, actor domain.Session, proposalID string) (*ports.ExportResult, error) {
	if !actor.IsAdmin() {
		return nil, domain.Forbiddenf("apenas administradores podem exportar documentos")
	}
	p, err := s.loadProposal(ctx, actor, proposalID)
	if err != nil {
		return nil, err
	}
	docs, err := s.documents.ListByProposal(ctx, p.ID)
	if err != nil {
		return nil, domain.Backend("falha ao listar documentos", err)
	}
	if len(docs) == 0 {
		return nil, domain.Validationf("não há documentos para baixar")
	}

	agentName := "SemVendedor"
	if u, err := s.users.FindByID(ctx, p.AgentID); err == nil && u.Name != "" {
		agentName = u.Name
	}
	folder := sanitizeName(p.ClientName, "SemNome") + " - " + sanitizeName(agentName, "SemVendedor")

	paths := make([]string, 0, len(docs))
	for _, d := range docs {
		paths = append(paths, d.StoragePath)
	}
	bodies, failures := s.fetcher.FetchAll(ctx, paths)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	result := &ports.ExportResult{FileName: folder + ".zip"}
	used := make(map[string]int, len(docs))

	for _, d := range docs {
		obj, ok := bodies[d.StoragePath]
		if !ok {
			reason := failures[d.StoragePath]
			s.logger.Error().Err(reason).Str("proposal_id", p.ID).Str("document_id", d.ID).Msg("failed to add file to archive")
			result.Failed = append(result.Failed, d.FileName)
			continue
		}

		entry := uniqueEntry(used, sanitizeFileName(d.FileName, "documento_"+d.ID))
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     folder + "/" + entry,
			Method:   zip.Deflate,
			Modified: d.CreatedAt,
		})
		if err == nil {
			_, err = w.Write(obj.Body)
		}
		if err != nil {
			s.logger.Error().Err(err).Str("document_id", d.ID).Msg("failed to write archive entry")
			result.Failed = append(result.Failed, d.FileName)
			continue
		}
		result.Included++
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export: close archive: %w", err)
	}
	result.Archive = buf.Bytes()

	s.logger.Info().
		Str("proposal_id", p.ID).
		Int("included", result.Included).
		Int("failed", len(result.Failed)).
		Msg("documents exported")
	return result, nil
}

func (s *DocumentService) loadProposal(ctx context.Context, actor domain.Session, id string) (*domain.Proposal, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrProposalNotFound
	}
	p, err := s.proposals.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Backend("falha ao buscar proposta", err)
	}
	if !actor.IsAdmin() && !actor.Owns(p) {
		return nil, domain.ErrProposalNotFound
	}
	return p, nil
}

func (s *DocumentService) loadDocument(ctx context.Context, actor domain.Session, id string) (*domain.Document, *domain.Proposal, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil, domain.ErrDocumentNotFound
	}
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		return nil, nil, domain.Backend("falha ao buscar documento", err)
	}
	p, err := s.loadProposal(ctx, actor, doc.ProposalID)
	if err != nil {
		if errors.Is(err, domain.ErrProposalNotFound) {
			return nil, nil, domain.ErrDocumentNotFound
		}
		return nil, nil, err
	}
	return doc, p, nil
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_\- ]+`)
	spaces      = regexp.MustCompile(`\s+`)
)

// sanitizeName keeps letters, digits, underscore, dash and single spaces.
func sanitizeName(s, fallback string) string {
	out := strings.TrimSpace(spaces.ReplaceAllString(unsafeChars.ReplaceAllString(s, " "), " "))
	if out == "" {
		return fallback
	}
	return out
}

// sanitizeFileName sanitizes the base name but keeps the extension.
func sanitizeFileName(name, fallback string) string {
	ext := strings.ToLower(path.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		ext = ""
	}
	return sanitizeName(strings.TrimSuffix(name, path.Ext(name)), fallback) + ext
}

func uniqueEntry(used map[string]int, name string) string {
	n := used[name]
	used[name] = n + 1
	if n == 0 {
		return name
	}
	ext := path.Ext(name)
	return fmt.Sprintf("%s (%d)%s", strings.TrimSuffix(name, ext), n+1, ext)
}
