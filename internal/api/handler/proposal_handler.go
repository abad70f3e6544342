package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/distribuidora/analise-credito/internal/api/metrics"
	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

// ProposalHandler handles HTTP requests for credit proposals.
type ProposalHandler struct {
	service ports.ProposalService
}

func NewProposalHandler(service ports.ProposalService) *ProposalHandler {
	return &ProposalHandler{service: service}
}

// Create handles POST /v1/proposals.
//
// @Summary      Open a draft proposal
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                 false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createProposalRequest  true   "Client data"
// @Success      201              {object}  domain.Proposal
// @Success      200              {object}  domain.Proposal  "Replay of an earlier request with the same key"
// @Failure      400              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /v1/proposals [post]
func (h *ProposalHandler) Create(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req createProposalRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}

	res, err := h.service.Create(c.Request().Context(), s, ports.CreateProposalInput{
		ClientName:     req.ClientName,
		ClientTaxID:    req.ClientTaxID,
		ClientType:     req.ClientType,
		ClientCode:     req.ClientCode,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return fail(c, err)
	}

	metrics.ProposalsCreatedTotal.WithLabelValues(string(res.Proposal.ClientType), strconv.FormatBool(res.AlreadyExisted)).Inc()
	if res.AlreadyExisted {
		return c.JSON(http.StatusOK, res.Proposal)
	}
	return c.JSON(http.StatusCreated, res.Proposal)
}

// List handles GET /v1/proposals.
//
// @Summary      List proposals
// @Description  Agents only see their own proposals.
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Filter by status"
// @Param        q       query     string  false  "Search by client name, tax id or code"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listProposalsResponse
// @Failure      400     {object}  errorResponse
// @Router       /v1/proposals [get]
func (h *ProposalHandler) List(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	res, err := h.service.List(c.Request().Context(), s, ports.ListProposalsInput{
		Status: c.QueryParam("status"),
		Search: c.QueryParam("q"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toListResponse(res))
}

// Get handles GET /v1/proposals/:id.
//
// @Summary      Get a proposal with documents, references and checklist
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Proposal id"
// @Success      200  {object}  proposalDetailResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/proposals/{id} [get]
func (h *ProposalHandler) Get(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	detail, err := h.service.Get(c.Request().Context(), s, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, toDetailResponse(detail))
}

// Checklist handles GET /v1/proposals/:id/checklist.
//
// @Summary      Evaluate the document checklist
// @Tags         proposals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Proposal id"
// @Success      200  {object}  domain.Checklist
// @Failure      404  {object}  errorResponse
// @Router       /v1/proposals/{id}/checklist [get]
func (h *ProposalHandler) Checklist(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	cl, err := h.service.Checklist(c.Request().Context(), s, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, cl)
}

// Submit handles POST /v1/proposals/:id/submit.
//
// @Summary      Send a proposal for review
// @Description  mode "gated" (default) requires a complete checklist; "partial" skips it.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true   "Proposal id"
// @Param        body  body      submitRequest  false  "Submission mode"
// @Success      200   {object}  domain.Proposal
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse  "Checklist incomplete; see missing"
// @Router       /v1/proposals/{id}/submit [post]
func (h *ProposalHandler) Submit(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req submitRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return badPayload()
		}
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}
	mode := domain.SubmitMode(req.Mode)
	if mode == "" {
		mode = domain.SubmitGated
	}

	p, err := h.service.Submit(c.Request().Context(), s, c.Param("id"), mode)
	if err != nil {
		var incomplete *domain.IncompleteChecklistError
		if errors.As(err, &incomplete) {
			metrics.SubmissionsBlockedTotal.Inc()
		}
		return fail(c, err)
	}

	metrics.ProposalTransitionsTotal.WithLabelValues(string(p.Status), "submit").Inc()
	return c.JSON(http.StatusOK, p)
}

// Transition handles POST /v1/proposals/:id/transition.
//
// @Summary      Review a proposal
// @Description  aprovado needs valor_aprovado (pt-BR format), reprovado needs comentario_analista, reanalise needs observacao_reanalise.
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Proposal id"
// @Param        body  body      transitionRequest  true  "Target status and fields"
// @Success      200   {object}  domain.Proposal
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/proposals/{id}/transition [post]
func (h *ProposalHandler) Transition(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}

	p, err := h.service.Transition(c.Request().Context(), s, c.Param("id"), ports.TransitionInput{
		Status:  req.Status,
		Amount:  req.Amount,
		Comment: req.Comment,
		Note:    req.Note,
	})
	if err != nil {
		return fail(c, err)
	}

	metrics.ProposalTransitionsTotal.WithLabelValues(string(p.Status), "review").Inc()
	return c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /v1/proposals/:id.
//
// @Summary      Delete a draft proposal
// @Tags         proposals
// @Security     BearerAuth
// @Param        id  path  string  true  "Proposal id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/proposals/{id} [delete]
func (h *ProposalHandler) Delete(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), s, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// AddReference handles POST /v1/proposals/:id/references.
//
// @Summary      Add a commercial reference
// @Tags         proposals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Proposal id"
// @Param        body  body      referenceRequest  true  "Reference"
// @Success      201   {object}  domain.CommercialReference
// @Failure      400   {object}  errorResponse
// @Router       /v1/proposals/{id}/references [post]
func (h *ProposalHandler) AddReference(c echo.Context) error {
	s, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req referenceRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, err)
	}

	ref, err := h.service.AddReference(c.Request().Context(), s, c.Param("id"), ports.ReferenceInput{
		Company: req.Company,
		Contact: req.Contact,
		Phone:   req.Phone,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, ref)
}
