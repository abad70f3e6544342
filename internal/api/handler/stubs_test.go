package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/distribuidora/analise-credito/internal/api/middleware"
	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

var (
	agentSession = domain.Session{UserID: "agent-1", Name: "Ana Vendedora", Email: "ana@example.com", Role: domain.RoleAgent}
	adminSession = domain.Session{UserID: "admin-1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context carrying the claims the Auth middleware
// would inject for s. A zero session leaves the context unauthenticated.
func newContext(e *echo.Echo, method, target string, body io.Reader, s domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if s.UserID != "" {
		c.Set(middleware.CtxUserID, s.UserID)
		c.Set(middleware.CtxName, s.Name)
		c.Set(middleware.CtxEmail, s.Email)
		c.Set(middleware.CtxRole, s.Role)
	}
	return c, rec
}

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubAuthService struct {
	loginFn          func(ctx context.Context, email, password string) (string, *domain.User, error)
	registerFn       func(ctx context.Context, actor domain.Session, in ports.RegisterUserInput) (*domain.User, error)
	listUsersFn      func(ctx context.Context, actor domain.Session) ([]*domain.User, error)
	changePasswordFn func(ctx context.Context, actor domain.Session, current, next string) error
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Register(ctx context.Context, actor domain.Session, in ports.RegisterUserInput) (*domain.User, error) {
	return s.registerFn(ctx, actor, in)
}

func (s *stubAuthService) ListUsers(ctx context.Context, actor domain.Session) ([]*domain.User, error) {
	return s.listUsersFn(ctx, actor)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, actor domain.Session, current, next string) error {
	return s.changePasswordFn(ctx, actor, current, next)
}

type stubProposalService struct {
	createFn       func(ctx context.Context, actor domain.Session, in ports.CreateProposalInput) (*ports.ProposalResult, error)
	getFn          func(ctx context.Context, actor domain.Session, id string) (*ports.ProposalDetail, error)
	listFn         func(ctx context.Context, actor domain.Session, in ports.ListProposalsInput) (*ports.ListProposalsResult, error)
	checklistFn    func(ctx context.Context, actor domain.Session, id string) (*domain.Checklist, error)
	submitFn       func(ctx context.Context, actor domain.Session, id string, mode domain.SubmitMode) (*domain.Proposal, error)
	transitionFn   func(ctx context.Context, actor domain.Session, id string, in ports.TransitionInput) (*domain.Proposal, error)
	deleteFn       func(ctx context.Context, actor domain.Session, id string) error
	addReferenceFn func(ctx context.Context, actor domain.Session, id string, in ports.ReferenceInput) (*domain.CommercialReference, error)
}

func (s *stubProposalService) Create(ctx context.Context, actor domain.Session, in ports.CreateProposalInput) (*ports.ProposalResult, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubProposalService) Get(ctx context.Context, actor domain.Session, id string) (*ports.ProposalDetail, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubProposalService) List(ctx context.Context, actor domain.Session, in ports.ListProposalsInput) (*ports.ListProposalsResult, error) {
	return s.listFn(ctx, actor, in)
}

func (s *stubProposalService) Checklist(ctx context.Context, actor domain.Session, id string) (*domain.Checklist, error) {
	return s.checklistFn(ctx, actor, id)
}

func (s *stubProposalService) Submit(ctx context.Context, actor domain.Session, id string, mode domain.SubmitMode) (*domain.Proposal, error) {
	return s.submitFn(ctx, actor, id, mode)
}

func (s *stubProposalService) Transition(ctx context.Context, actor domain.Session, id string, in ports.TransitionInput) (*domain.Proposal, error) {
	return s.transitionFn(ctx, actor, id, in)
}

func (s *stubProposalService) Delete(ctx context.Context, actor domain.Session, id string) error {
	return s.deleteFn(ctx, actor, id)
}

func (s *stubProposalService) AddReference(ctx context.Context, actor domain.Session, id string, in ports.ReferenceInput) (*domain.CommercialReference, error) {
	return s.addReferenceFn(ctx, actor, id, in)
}

type stubDocumentService struct {
	uploadFn func(ctx context.Context, actor domain.Session, in ports.UploadDocumentInput) (*domain.Document, error)
	deleteFn func(ctx context.Context, actor domain.Session, documentID string) error
	linkFn   func(ctx context.Context, actor domain.Session, documentID string) (*ports.DocumentLink, error)
	openFn   func(ctx context.Context, token string) (*ports.DownloadedFile, error)
	exportFn func(ctx context.Context, actor domain.Session, proposalID string) (*ports.ExportResult, error)
}

func (s *stubDocumentService) Upload(ctx context.Context, actor domain.Session, in ports.UploadDocumentInput) (*domain.Document, error) {
	return s.uploadFn(ctx, actor, in)
}

func (s *stubDocumentService) Delete(ctx context.Context, actor domain.Session, documentID string) error {
	return s.deleteFn(ctx, actor, documentID)
}

func (s *stubDocumentService) Link(ctx context.Context, actor domain.Session, documentID string) (*ports.DocumentLink, error) {
	return s.linkFn(ctx, actor, documentID)
}

func (s *stubDocumentService) Open(ctx context.Context, token string) (*ports.DownloadedFile, error) {
	return s.openFn(ctx, token)
}

func (s *stubDocumentService) Export(ctx context.Context, actor domain.Session, proposalID string) (*ports.ExportResult, error) {
	return s.exportFn(ctx, actor, proposalID)
}
