package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/distribuidora/analise-credito/internal/core/domain"
)

// ReferenceRepository stores commercial references. There is no update or
// delete; references only go away with their proposal.
type ReferenceRepository struct {
	col *mongo.Collection
}

func NewReferenceRepository(db *mongo.Database) *ReferenceRepository {
	return &ReferenceRepository{col: db.Collection(collectionReferences)}
}

func (r *ReferenceRepository) Create(ctx context.Context, ref *domain.CommercialReference) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, ref)
	return err
}

func (r *ReferenceRepository) ListByProposal(ctx context.Context, proposalID string) ([]domain.CommercialReference, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"analise_id": proposalID},
		options.Find().SetSort(bson.D{{Key: "criado_em", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find references: %w", err)
	}
	defer cur.Close(ctx)

	refs := []domain.CommercialReference{}
	if err := cur.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("decode references: %w", err)
	}
	return refs, nil
}
