package ports

import (
	"context"
	"time"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// UploadDocumentInput is the DTO passed from the transport layer to
// DocumentService.Upload.
type UploadDocumentInput struct {
	ProposalID  string
	FileName    string
	Type        string // empty = "outro"
	ContentType string // optional, sniffed when empty
	Body        []byte
}

// DocumentLink is a time-limited download URL.
type DocumentLink struct {
	URL       string
	FileName  string
	ExpiresAt time.Time
}

// DownloadedFile is a document body resolved from a signed link.
type DownloadedFile struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ExportResult is the ZIP archive of a proposal's documents. Failed lists the
// file names that could not be retrieved.
type ExportResult struct {
	FileName string
	Archive  []byte
	Included int
	Failed   []string
}

// DocumentService manages files attached to proposals.
type DocumentService interface {
	Upload(ctx context.Context, actor domain.Session, in UploadDocumentInput) (*domain.Document, error)
	Delete(ctx context.Context, actor domain.Session, documentID string) error
	Link(ctx context.Context, actor domain.Session, documentID string) (*DocumentLink, error)
	Open(ctx context.Context, token string) (*DownloadedFile, error)
	Export(ctx context.Context, actor domain.Session, proposalID string) (*ExportResult, error)
}
