package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"InsightsFeeder/internal/domain"
	"InsightsFeeder/internal/ports"
)

// Source reads response documents from the source collection.
type Source struct {
	col    *mongo.Collection
	logger *slog.Logger
}

var _ ports.ResponseSource = (*Source)(nil)

// NewSource wraps the given collection as a response source.
func NewSource(col *mongo.Collection, logger *slog.Logger) *Source {
	return &Source{col: col, logger: logger}
}

// FetchSince returns every response created at or after the cutoff.
func (s *Source) FetchSince(ctx context.Context, cutoff time.Time) ([]domain.Response, error) {
	filter := bson.M{"createdAt": bson.M{"$gte": cutoff}}
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer cur.Close(ctx)

	var responses []domain.Response
	for cur.Next(ctx) {
		resp, err := decodeResponse(cur.Current)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate responses: %w", err)
	}

	s.debug("fetched responses", "count", len(responses), "cutoff", cutoff)
	return responses, nil
}

func (s *Source) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
