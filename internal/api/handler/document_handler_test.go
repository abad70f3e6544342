package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

func multipartBody(t *testing.T, fileName, contentType string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	part.Write(content)
	w.Close()
	return &buf, w.FormDataContentType()
}

// ---------------------------------------------------------------------------
// Upload
// ---------------------------------------------------------------------------

func TestDocumentHandler_Upload_Success(t *testing.T) {
	e := newEcho()
	stub := &stubDocumentService{
		uploadFn: func(ctx context.Context, actor domain.Session, in ports.UploadDocumentInput) (*domain.Document, error) {
			if in.ProposalID != "p-1" || in.FileName != "nota.pdf" || in.Type != domain.DocInvoices {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.ContentType != "application/pdf" || string(in.Body) != "%PDF-1.4" {
				t.Fatalf("unexpected body: %q %q", in.ContentType, in.Body)
			}
			return &domain.Document{ID: "d-1", ProposalID: in.ProposalID, FileName: in.FileName, Type: in.Type, Size: int64(len(in.Body))}, nil
		},
	}
	h := NewDocumentHandler(stub)

	body, ct := multipartBody(t, "nota.pdf", "application/pdf", []byte("%PDF-1.4"), map[string]string{"tipo_documento": domain.DocInvoices})
	c, rec := newContext(e, http.MethodPost, "/v1/proposals/p-1/documents", body, agentSession)
	c.Request().Header.Set(echo.HeaderContentType, ct)
	c.SetParamNames("id")
	c.SetParamValues("p-1")

	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDocumentHandler_Upload_MissingFile(t *testing.T) {
	e := newEcho()
	h := NewDocumentHandler(&stubDocumentService{})

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("tipo_documento", "outro")
	w.Close()

	c, rec := newContext(e, http.MethodPost, "/v1/proposals/p-1/documents", &buf, agentSession)
	c.Request().Header.Set(echo.HeaderContentType, w.FormDataContentType())
	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDocumentHandler_Upload_Locked(t *testing.T) {
	e := newEcho()
	stub := &stubDocumentService{
		uploadFn: func(ctx context.Context, actor domain.Session, in ports.UploadDocumentInput) (*domain.Document, error) {
			return nil, domain.Validationf("documentos só podem ser alterados em rascunho ou reanálise")
		},
	}
	h := NewDocumentHandler(stub)

	body, ct := multipartBody(t, "nota.pdf", "", []byte("%PDF-1.4"), nil)
	c, rec := newContext(e, http.MethodPost, "/v1/proposals/p-1/documents", body, agentSession)
	c.Request().Header.Set(echo.HeaderContentType, ct)
	if err := h.Upload(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Links and downloads
// ---------------------------------------------------------------------------

func TestDocumentHandler_Link(t *testing.T) {
	e := newEcho()
	expires := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	stub := &stubDocumentService{
		linkFn: func(ctx context.Context, actor domain.Session, documentID string) (*ports.DocumentLink, error) {
			return &ports.DocumentLink{URL: "http://files.local/v1/files/tok1", FileName: "nota.pdf", ExpiresAt: expires}, nil
		},
	}
	h := NewDocumentHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/v1/documents/d-1/link", nil, agentSession)
	c.SetParamNames("id")
	c.SetParamValues("d-1")
	if err := h.Link(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp documentLinkResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.URL != "http://files.local/v1/files/tok1" || resp.ExpiresAt != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected link: %+v", resp)
	}
}

func TestDocumentHandler_Open(t *testing.T) {
	e := newEcho()
	stub := &stubDocumentService{
		openFn: func(ctx context.Context, token string) (*ports.DownloadedFile, error) {
			if token != "tok1" {
				t.Fatalf("unexpected token %q", token)
			}
			return &ports.DownloadedFile{FileName: "nota fiscal.pdf", ContentType: "application/pdf", Body: []byte("%PDF")}, nil
		},
	}
	h := NewDocumentHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/v1/files/tok1", nil, domain.Session{})
	c.SetParamNames("token")
	c.SetParamValues("tok1")
	if err := h.Open(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || rec.Body.String() != "%PDF" {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderContentType); got != "application/pdf" {
		t.Fatalf("unexpected content type %q", got)
	}
	if got := rec.Header().Get(echo.HeaderContentDisposition); got != `inline; filename="nota fiscal.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
}

func TestDocumentHandler_Open_InvalidToken(t *testing.T) {
	e := newEcho()
	stub := &stubDocumentService{
		openFn: func(ctx context.Context, token string) (*ports.DownloadedFile, error) {
			return nil, domain.Forbiddenf("link inválido ou expirado")
		},
	}
	h := NewDocumentHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/v1/files/bad", nil, domain.Session{})
	if err := h.Open(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Export and catalog
// ---------------------------------------------------------------------------

func TestDocumentHandler_Export(t *testing.T) {
	e := newEcho()
	stub := &stubDocumentService{
		exportFn: func(ctx context.Context, actor domain.Session, proposalID string) (*ports.ExportResult, error) {
			return &ports.ExportResult{FileName: "Casa Cia - Ana.zip", Archive: []byte("PK"), Included: 2, Failed: []string{"rg.pdf"}}, nil
		},
	}
	h := NewDocumentHandler(stub)

	c, rec := newContext(e, http.MethodGet, "/v1/proposals/p-1/export", nil, adminSession)
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	if err := h.Export(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get(echo.HeaderContentType) != "application/zip" {
		t.Fatalf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}
	if rec.Header().Get("X-Export-Failed") != "1" {
		t.Fatalf("expected failed count header, got %q", rec.Header().Get("X-Export-Failed"))
	}
	if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentDisposition), "attachment;") {
		t.Fatalf("expected attachment disposition, got %q", rec.Header().Get(echo.HeaderContentDisposition))
	}
}

func TestDocumentHandler_Types(t *testing.T) {
	e := newEcho()
	h := NewDocumentHandler(&stubDocumentService{})

	c, rec := newContext(e, http.MethodGet, "/v1/document-types?tipo_cliente=construtora", nil, agentSession)
	if err := h.Types(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var types []domain.DocumentType
	if err := json.Unmarshal(rec.Body.Bytes(), &types); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(types) == 0 || types[len(types)-1].Value != domain.DocumentTypeOther {
		t.Fatalf("expected catalog ending with outro, got %+v", types)
	}

	c, rec = newContext(e, http.MethodGet, "/v1/document-types?tipo_cliente=varejo", nil, agentSession)
	if err := h.Types(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
