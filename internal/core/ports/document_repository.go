package ports

import (
	"context"
	"errors"
	"time"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// DocumentRepository handles document metadata persistence.
type DocumentRepository interface {
	Create(ctx context.Context, d *domain.Document) error
	FindByID(ctx context.Context, id string) (*domain.Document, error)
	// ListByProposal returns the proposal's documents, oldest first.
	ListByProposal(ctx context.Context, proposalID string) ([]domain.Document, error)
	Delete(ctx context.Context, id string) error
}

// BlobObject is a stored file body.
type BlobObject struct {
	Path        string
	ContentType string
	Body        []byte
}

// ErrBlobNotFound is returned by BlobStore.Download when nothing is stored at
// the path.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore stores document bodies under a path.
type BlobStore interface {
	Upload(ctx context.Context, obj BlobObject) error
	Download(ctx context.Context, path string) (*BlobObject, error)
	Delete(ctx context.Context, path string) error
}

// LinkClaims is what a signed download link grants.
type LinkClaims struct {
	Path     string
	FileName string
}

// LinkSigner issues and verifies time-limited download links.
type LinkSigner interface {
	Sign(claims LinkClaims, ttl time.Duration) (url string, expiresAt time.Time, err error)
	Verify(token string) (LinkClaims, error)
}

// BlobFetcher retrieves many blobs; a failed path is reported in the error
// map and never aborts the others.
type BlobFetcher interface {
	FetchAll(ctx context.Context, paths []string) (map[string]*BlobObject, map[string]error)
}
