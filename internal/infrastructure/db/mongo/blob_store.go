package mongo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/distribuidora/analise-credito/internal/core/ports"
)

// GridFSBlobStore keeps document bodies in a GridFS bucket. The storage path
// is used as the GridFS file id.
type GridFSBlobStore struct {
	db *mongo.Database
}

func NewGridFSBlobStore(db *mongo.Database) *GridFSBlobStore {
	return &GridFSBlobStore{db: db}
}

// bucket returns a bucket bound to the context deadline. Deadlines are set per
// bucket, so each call gets its own.
func (s *GridFSBlobStore) bucket(ctx context.Context) (*gridfs.Bucket, error) {
	b, err := gridfs.NewBucket(s.db, options.GridFSBucket().SetName(bucketDocuments))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(defaultTimeout)
	}
	if err := b.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	if err := b.SetWriteDeadline(deadline); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *GridFSBlobStore) Upload(ctx context.Context, obj ports.BlobObject) error {
	b, err := s.bucket(ctx)
	if err != nil {
		return err
	}
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "content_type", Value: obj.ContentType}})
	if err := b.UploadFromStreamWithID(obj.Path, path.Base(obj.Path), bytes.NewReader(obj.Body), opts); err != nil {
		return fmt.Errorf("gridfs upload %s: %w", obj.Path, err)
	}
	return nil
}

func (s *GridFSBlobStore) Download(ctx context.Context, p string) (*ports.BlobObject, error) {
	b, err := s.bucket(ctx)
	if err != nil {
		return nil, err
	}
	stream, err := b.OpenDownloadStream(p)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, ports.ErrBlobNotFound
		}
		return nil, fmt.Errorf("gridfs open %s: %w", p, err)
	}
	defer stream.Close()

	body, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("gridfs read %s: %w", p, err)
	}

	obj := &ports.BlobObject{Path: p, Body: body}
	if f := stream.GetFile(); f != nil && f.Metadata != nil {
		if v, err := f.Metadata.LookupErr("content_type"); err == nil {
			obj.ContentType, _ = v.StringValueOK()
		}
	}
	return obj, nil
}

// Delete removes the file at p. A missing file is not an error.
func (s *GridFSBlobStore) Delete(ctx context.Context, p string) error {
	b, err := s.bucket(ctx)
	if err != nil {
		return err
	}
	if err := b.DeleteContext(ctx, p); err != nil && !errors.Is(err, gridfs.ErrFileNotFound) {
		return fmt.Errorf("gridfs delete %s: %w", p, err)
	}
	return nil
}
