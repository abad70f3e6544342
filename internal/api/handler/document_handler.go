package handler

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/distribuidora/analise-credito/internal/api/metrics"
	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

// DocumentHandler handles uploads, signed links, downloads and exports.
type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload handles POST /v1/proposals/:id/documents.
//
// @Summary      Upload a document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id              path      string  true   "Proposal id"
// @Param        file            formData  file    true   "PDF, JPG, PNG, DOC or DOCX"
// @Param        tipo_documento  formData  string  false  "Document type tag (defaults to outro)"
// @Success      201             {object}  domain.Document
// @Failure      400             {object}  errorResponse
// @Router       /v1/proposals/{id}/documents [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, domain.Validationf("arquivo é obrigatório"))
	}
	f, err := fh.Open()
	if err != nil {
		return badPayload()
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		return badPayload()
	}

	doc, err := h.service.Upload(c.Request().Context(), s, ports.UploadDocumentInput{
		ProposalID:  c.Param("id"),
		FileName:    fh.Filename,
		Type:        c.FormValue("tipo_documento"),
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        body,
	})
	if err != nil {
		return fail(c, err)
	}

	metrics.DocumentsUploadedTotal.WithLabelValues(doc.Type).Inc()
	metrics.DocumentUploadBytes.Observe(float64(doc.Size))
	return c.JSON(http.StatusCreated, doc)
}

// Delete handles DELETE /v1/documents/:id.
//
// @Summary      Remove a document
// @Tags         documents
// @Security     BearerAuth
// @Param        id  path  string  true  "Document id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/documents/{id} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), s, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Link handles GET /v1/documents/:id/link.
//
// @Summary      Get a time-limited download link
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Document id"
// @Success      200  {object}  documentLinkResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/documents/{id}/link [get]
func (h *DocumentHandler) Link(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	link, err := h.service.Link(c.Request().Context(), s, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, documentLinkResponse{
		URL:       link.URL,
		FileName:  link.FileName,
		ExpiresAt: link.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// Open handles GET /v1/files/:token. The token is the credential, so this
// route is public.
//
// @Summary      Download a file through a signed link
// @Tags         documents
// @Produce      octet-stream
// @Param        token  path  string  true  "Signed token"
// @Success      200
// @Failure      403  {object}  errorResponse
// @Router       /v1/files/{token} [get]
func (h *DocumentHandler) Open(c echo.Context) error {
	file, err := h.service.Open(c.Request().Context(), c.Param("token"))
	if err != nil {
		return fail(c, err)
	}

	ct := file.ContentType
	if ct == "" {
		ct = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("inline", map[string]string{"filename": file.FileName}))
	c.Response().Header().Set("Cache-Control", "private, no-store")
	return c.Blob(http.StatusOK, ct, file.Body)
}

// Export handles GET /v1/proposals/:id/export.
//
// @Summary      Download every document of a proposal as ZIP
// @Description  Files that cannot be read are skipped; X-Export-Failed carries their count.
// @Tags         documents
// @Produce      application/zip
// @Security     BearerAuth
// @Param        id  path  string  true  "Proposal id"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/proposals/{id}/export [get]
func (h *DocumentHandler) Export(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := h.service.Export(c.Request().Context(), s, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	metrics.ExportDuration.Observe(time.Since(start).Seconds())
	metrics.ExportFilesTotal.WithLabelValues("included").Add(float64(res.Included))
	metrics.ExportFilesTotal.WithLabelValues("failed").Add(float64(len(res.Failed)))

	c.Response().Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName}))
	c.Response().Header().Set("X-Export-Failed", strconv.Itoa(len(res.Failed)))
	return c.Blob(http.StatusOK, "application/zip", res.Archive)
}

// Types handles GET /v1/document-types.
//
// @Summary      Document type catalog for a client type
// @Tags         documents
// @Produce      json
// @Param        tipo_cliente  query     string  true  "revenda or construtora"
// @Success      200           {array}   domain.DocumentType
// @Failure      400           {object}  errorResponse
// @Router       /v1/document-types [get]
func (h *DocumentHandler) Types(c echo.Context) error {
	t := domain.ClientType(c.QueryParam("tipo_cliente"))
	if !t.Valid() {
		return fail(c, domain.Validationf("tipo_cliente deve ser revenda ou construtora"))
	}
	return c.JSON(http.StatusOK, domain.DocumentTypes(t))
}
