package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/distribuidora/analise-credito/internal/core/domain"
	"github.com/distribuidora/analise-credito/internal/core/ports"
)

// mongo error code returned when transactions are used on a standalone server.
const codeIllegalOperation = 20

type ProposalRepository struct {
	client *mongo.Client
	col    *mongo.Collection
	docs   *mongo.Collection
	refs   *mongo.Collection
}

func NewProposalRepository(db *mongo.Database) *ProposalRepository {
	return &ProposalRepository{
		client: db.Client(),
		col:    db.Collection(collectionProposals),
		docs:   db.Collection(collectionDocuments),
		refs:   db.Collection(collectionReferences),
	}
}

// Create inserts a new proposal document.
func (r *ProposalRepository) Create(ctx context.Context, p *domain.Proposal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*domain.Proposal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Proposal
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProposalNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns a page of proposals ordered by creation date, newest first,
// together with the total number of matches.
func (r *ProposalRepository) List(ctx context.Context, f ports.ListProposalsFilter) ([]*domain.Proposal, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.AgentID != "" {
		filter["vendedor_id"] = f.AgentID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		pattern := primitiveRegex(f.Search)
		filter["$or"] = bson.A{
			bson.M{"cliente_nome": pattern},
			bson.M{"cliente_cpf": pattern},
			bson.M{"codigo_cliente": pattern},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count proposals: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "criado_em", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find proposals: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.Proposal, 0, f.Limit)
	for cur.Next(ctx) {
		var p domain.Proposal
		if err := cur.Decode(&p); err != nil {
			return nil, 0, fmt.Errorf("decode proposal: %w", err)
		}
		items = append(items, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateWorkflow writes every workflow field in one single-document update,
// which MongoDB applies atomically.
func (r *ProposalRepository) UpdateWorkflow(ctx context.Context, p *domain.Proposal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": p.ID}, bson.M{"$set": bson.M{
		"status":               string(p.Status),
		"observacao_reanalise": p.ReanalysisNote,
		"comentario_analista":  p.AnalystComment,
		"valor_aprovado":       p.ApprovedAmount,
		"atualizado_em":        p.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update proposal: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProposalNotFound
	}
	return nil
}

// DeleteCascade removes a proposal with its document metadata and references
// inside a transaction and returns the removed documents. Standalone servers
// without transaction support fall back to deleting children first, so a
// failure never leaves orphans.
func (r *ProposalRepository) DeleteCascade(ctx context.Context, id string) ([]domain.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sess, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	res, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.deleteAll(sc, id)
	})
	if isTransactionUnsupported(err) {
		return r.deleteAll(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	docs, _ := res.([]domain.Document)
	return docs, nil
}

// deleteAll removes documents one at a time so the caller gets back exactly
// the metadata that was deleted, including uploads that raced the delete.
func (r *ProposalRepository) deleteAll(ctx context.Context, id string) ([]domain.Document, error) {
	removed := []domain.Document{}
	for {
		var d domain.Document
		err := r.docs.FindOneAndDelete(ctx, bson.M{"analise_id": id}).Decode(&d)
		if errors.Is(err, mongo.ErrNoDocuments) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("delete documents: %w", err)
		}
		removed = append(removed, d)
	}
	if _, err := r.refs.DeleteMany(ctx, bson.M{"analise_id": id}); err != nil {
		return nil, fmt.Errorf("delete references: %w", err)
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("delete proposal: %w", err)
	}
	if res.DeletedCount == 0 {
		return nil, domain.ErrProposalNotFound
	}
	return removed, nil
}

func isTransactionUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	return errors.As(err, &cmdErr) && cmdErr.Code == codeIllegalOperation
}

// primitiveRegex builds a case-insensitive substring match for user input.
func primitiveRegex(s string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(s), "$options": "i"}
}
