package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/dmarais/go-autoquote/internal/core"
)

type QuoteRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
	clock     func() time.Time
}

func NewQuoteRepo(db *mongodrv.Database, opTimeout time.Duration) *QuoteRepoMongo {
	return &QuoteRepoMongo{
		coll:      db.Collection(ColQuotes),
		opTimeout: opTimeout,
		clock:     time.Now,
	}
}

// Save inserts the quote, stamping CreatedAt exactly once. Quotes are
// never updated after the first write.
func (repo *QuoteRepoMongo) Save(ctx context.Context, q core.Quote) (core.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	if q.CreatedAt.IsZero() {
		q.CreatedAt = repo.clock().UTC()
	}

	_, err := repo.coll.InsertOne(ctx, toQuoteDoc(q))
	if err != nil {
		// map dup key -> core.ErrConflict
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.Quote{}, core.ErrConflict
				}
			}
		}
		return core.Quote{}, fmt.Errorf("quotes.insert: %w", err)
	}
	return q, nil
}

func (repo *QuoteRepoMongo) FindByID(ctx context.Context, id string) (core.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc QuoteDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Quote{}, core.ErrQuoteNotFound
		}
		return core.Quote{}, fmt.Errorf("quotes.findOne: %w", err)
	}
	return fromQuoteDoc(doc), nil
}
