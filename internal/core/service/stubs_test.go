package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubDocumentRepo struct {
	byID      map[string]domain.Document
	createErr error
	listErr   error
}

func newStubDocumentRepo() *stubDocumentRepo {
	return &stubDocumentRepo{byID: make(map[string]domain.Document)}
}

func (r *stubDocumentRepo) Create(_ context.Context, d *domain.Document) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[d.ID] = *d
	return nil
}

func (r *stubDocumentRepo) FindByID(_ context.Context, id string) (*domain.Document, error) {
	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return &d, nil
}

func (r *stubDocumentRepo) ListByProposal(_ context.Context, proposalID string) ([]domain.Document, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []domain.Document
	for _, d := range r.byID {
		if d.ProposalID == proposalID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubDocumentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubReferenceRepo struct {
	byID map[string]domain.CommercialReference
}

func newStubReferenceRepo() *stubReferenceRepo {
	return &stubReferenceRepo{byID: make(map[string]domain.CommercialReference)}
}

func (r *stubReferenceRepo) Create(_ context.Context, ref *domain.CommercialReference) error {
	r.byID[ref.ID] = *ref
	return nil
}

func (r *stubReferenceRepo) ListByProposal(_ context.Context, proposalID string) ([]domain.CommercialReference, error) {
	var out []domain.CommercialReference
	for _, ref := range r.byID {
		if ref.ProposalID == proposalID {
			out = append(out, ref)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// stubProposalRepo shares the document and reference maps so DeleteCascade
// can be checked for orphans.
type stubProposalRepo struct {
	byID      map[string]*domain.Proposal
	docs      *stubDocumentRepo
	refs      *stubReferenceRepo
	createErr error
	updateErr error
	deleteErr error
	updates   int
	// beforeCascade runs at the start of DeleteCascade, simulating writes
	// that land between the service's checks and the delete.
	beforeCascade func()
}

func newStubProposalRepo(docs *stubDocumentRepo, refs *stubReferenceRepo) *stubProposalRepo {
	return &stubProposalRepo{byID: make(map[string]*domain.Proposal), docs: docs, refs: refs}
}

func (r *stubProposalRepo) Create(_ context.Context, p *domain.Proposal) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[p.ID] = p.Clone()
	return nil
}

func (r *stubProposalRepo) FindByID(_ context.Context, id string) (*domain.Proposal, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProposalNotFound
	}
	return p.Clone(), nil
}

func (r *stubProposalRepo) List(_ context.Context, f ports.ListProposalsFilter) ([]*domain.Proposal, int64, error) {
	var matched []*domain.Proposal
	for _, p := range r.byID {
		if f.AgentID != "" && p.AgentID != f.AgentID {
			continue
		}
		if f.Status != "" && string(p.Status) != f.Status {
			continue
		}
		if f.Search != "" {
			q := strings.ToLower(f.Search)
			if !strings.Contains(strings.ToLower(p.ClientName), q) &&
				!strings.Contains(p.ClientTaxID, q) &&
				!strings.Contains(strings.ToLower(p.ClientCode), q) {
				continue
			}
		}
		matched = append(matched, p.Clone())
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Proposal{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubProposalRepo) UpdateWorkflow(_ context.Context, p *domain.Proposal) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[p.ID]; !ok {
		return domain.ErrProposalNotFound
	}
	r.byID[p.ID] = p.Clone()
	r.updates++
	return nil
}

func (r *stubProposalRepo) DeleteCascade(_ context.Context, id string) ([]domain.Document, error) {
	if r.deleteErr != nil {
		return nil, r.deleteErr
	}
	if r.beforeCascade != nil {
		r.beforeCascade()
	}
	if _, ok := r.byID[id]; !ok {
		return nil, domain.ErrProposalNotFound
	}
	delete(r.byID, id)
	var removed []domain.Document
	for docID, d := range r.docs.byID {
		if d.ProposalID == id {
			removed = append(removed, d)
			delete(r.docs.byID, docID)
		}
	}
	for refID, ref := range r.refs.byID {
		if ref.ProposalID == id {
			delete(r.refs.byID, refID)
		}
	}
	return removed, nil
}

type stubIdempotencyStore struct {
	keys      map[string]string
	lookupErr error
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{keys: make(map[string]string)}
}

func (s *stubIdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	if s.lookupErr != nil {
		return "", false, s.lookupErr
	}
	id, ok := s.keys[key]
	return id, ok, nil
}

func (s *stubIdempotencyStore) Remember(_ context.Context, key, proposalID string) error {
	if _, ok := s.keys[key]; !ok {
		s.keys[key] = proposalID
	}
	return nil
}

func (s *stubIdempotencyStore) Replace(_ context.Context, key, proposalID string) error {
	s.keys[key] = proposalID
	return nil
}

// ---------------------------------------------------------------------------
// Blob storage stubs
// ---------------------------------------------------------------------------

var (
	errBlobMissing = ports.ErrBlobNotFound
	errBlobBroken  = errors.New("chunk checksum mismatch")
)

type stubBlobStore struct {
	objects   map[string]ports.BlobObject
	broken    map[string]bool // Download fails for these paths
	uploadErr error
	deleteErr error
	deleted   []string
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{objects: make(map[string]ports.BlobObject), broken: make(map[string]bool)}
}

func (s *stubBlobStore) Upload(_ context.Context, obj ports.BlobObject) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.objects[obj.Path] = obj
	return nil
}

func (s *stubBlobStore) Download(_ context.Context, path string) (*ports.BlobObject, error) {
	if s.broken[path] {
		return nil, errBlobBroken
	}
	obj, ok := s.objects[path]
	if !ok {
		return nil, errBlobMissing
	}
	return &obj, nil
}

func (s *stubBlobStore) Delete(_ context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, path)
	return nil
}

// serialFetcher fetches one path at a time from the stub store.
type serialFetcher struct {
	store *stubBlobStore
}

func (f serialFetcher) FetchAll(ctx context.Context, paths []string) (map[string]*ports.BlobObject, map[string]error) {
	ok := make(map[string]*ports.BlobObject)
	failed := make(map[string]error)
	for _, p := range paths {
		obj, err := f.store.Download(ctx, p)
		if err != nil {
			failed[p] = err
			continue
		}
		ok[p] = obj
	}
	return ok, failed
}

type stubSigner struct {
	issued map[string]ports.LinkClaims
	ttl    time.Duration
}

func newStubSigner() *stubSigner {
	return &stubSigner{issued: make(map[string]ports.LinkClaims)}
}

func (s *stubSigner) Sign(claims ports.LinkClaims, ttl time.Duration) (string, time.Time, error) {
	s.ttl = ttl
	token := fmt.Sprintf("tok%d", len(s.issued)+1)
	s.issued[token] = claims
	return "http://files.local/v1/files/" + token, time.Now().Add(ttl), nil
}

func (s *stubSigner) Verify(token string) (ports.LinkClaims, error) {
	c, ok := s.issued[token]
	if !ok {
		return ports.LinkClaims{}, errors.New("invalid token")
	}
	return c, nil
}

// ---------------------------------------------------------------------------
// Stub user repository
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	users   map[string]*domain.User // keyed by ID
	nextID  int
	findErr error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	c := cloneUser(user)
	if c.ID == "" {
		r.nextID++
		c.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubAuthRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubAuthRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// ---------------------------------------------------------------------------
// Shared fixtures
// ---------------------------------------------------------------------------

var (
	agentSession      = domain.Session{UserID: "agent-1", Name: "Ana Vendedora", Role: domain.RoleAgent}
	otherAgentSession = domain.Session{UserID: "agent-2", Name: "Beto", Role: domain.RoleAgent}
	adminSession      = domain.Session{UserID: "admin-1", Name: "Carla", Role: domain.RoleAdmin}
)

// seedProposal stores a proposal owned by agent-1 in the given status.
func seedProposal(repo *stubProposalRepo, id string, t domain.ClientType, status domain.ProposalStatus) *domain.Proposal {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	p := &domain.Proposal{
		ID:          id,
		AgentID:     agentSession.UserID,
		ClientName:  "Casa & Cia Materiais",
		ClientTaxID: "12345678000190",
		ClientType:  t,
		ClientCode:  "C-" + id,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	repo.byID[id] = p.Clone()
	return p
}

// seedDocument stores document metadata and, unless body is nil, its blob.
func seedDocument(docs *stubDocumentRepo, blobs *stubBlobStore, id, proposalID, docType, name string, body []byte) domain.Document {
	d := domain.Document{
		ID:          id,
		ProposalID:  proposalID,
		FileName:    name,
		Type:        docType,
		StoragePath: "agent-1/" + proposalID + "/" + id + "-" + name,
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		CreatedAt:   time.Date(2024, 5, 10, 12, 0, len(docs.byID), 0, time.UTC),
	}
	docs.byID[id] = d
	if body != nil {
		blobs.objects[d.StoragePath] = ports.BlobObject{Path: d.StoragePath, ContentType: d.ContentType, Body: body}
	}
	return d
}

func seedReferences(refs *stubReferenceRepo, proposalID string, n int) {
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("%s-ref-%d", proposalID, i)
		refs.byID[id] = domain.CommercialReference{ID: id, ProposalID: proposalID, Company: "Empresa", Contact: "Fulano", Phone: "11999990000"}
	}
}

func isKind(err, kind error) bool { return errors.Is(err, kind) }
