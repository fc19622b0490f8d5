package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"InsightsFeeder/internal/domain"
	"InsightsFeeder/internal/ports"
)

// Ledger records which responses have already been processed. Entries are
// keyed by response identifier and written with an upsert, so marking the
// same response twice is harmless.
type Ledger struct {
	col *mongo.Collection
}

var _ ports.ResponseLedger = (*Ledger)(nil)

// NewLedger wraps the given collection as a processed-response ledger.
func NewLedger(col *mongo.Collection) *Ledger {
	return &Ledger{col: col}
}

// EnsureIndexes creates the unique index on the response identifier.
func (l *Ledger) EnsureIndexes(ctx context.Context) error {
	_, err := l.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "responseId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure ledger index: %w", err)
	}
	return nil
}

// Processed reports which of the given identifiers already have ledger
// entries.
func (l *Ledger) Processed(ctx context.Context, ids []string) (map[string]bool, error) {
	processed := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return processed, nil
	}

	filter := bson.M{"responseId": bson.M{"$in": ids}}
	opts := options.Find().SetProjection(bson.M{"responseId": 1})
	cur, err := l.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var entry struct {
			ResponseID string `bson:"responseId"`
		}
		if err := cur.Decode(&entry); err != nil {
			return nil, fmt.Errorf("decode ledger entry: %w", err)
		}
		processed[entry.ResponseID] = true
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger: %w", err)
	}
	return processed, nil
}

// MarkProcessed upserts the given ledger entry.
func (l *Ledger) MarkProcessed(ctx context.Context, entry domain.ProcessedResponse) error {
	filter := bson.M{"responseId": entry.ResponseID}
	update := bson.M{"$set": bson.M{
		"responseId":  entry.ResponseID,
		"processedAt": entry.ProcessedAt,
	}}
	if _, err := l.col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("upsert ledger entry: %w", err)
	}
	return nil
}
