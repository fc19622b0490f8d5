package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"InsightsFeeder/internal/domain"
)

// rawResponse captures the identifying fields; the full document is decoded
// separately so fallback serialization sees every field.
type rawResponse struct {
	ID        any       `bson:"_id"`
	CreatedAt time.Time `bson:"createdAt"`
}

func decodeResponse(raw bson.Raw) (domain.Response, error) {
	var typed rawResponse
	if err := bson.Unmarshal(raw, &typed); err != nil {
		return domain.Response{}, fmt.Errorf("decode response document: %w", err)
	}

	// The nested text field is optional and loosely shaped. Anything that is
	// not a string (missing, a bare value, a non-string text) leaves Text
	// empty, and the payload falls back to whole-document serialization.
	text, _ := raw.Lookup("response", "text").StringValueOK()

	var full bson.D
	if err := bson.Unmarshal(raw, &full); err != nil {
		return domain.Response{}, fmt.Errorf("decode response document: %w", err)
	}
	doc, _ := normalize(full).(map[string]any)

	return domain.Response{
		ID:        idString(typed.ID),
		Text:      text,
		Document:  doc,
		CreatedAt: typed.CreatedAt,
	}, nil
}

// idString renders any identifier type the store may hold as a stable string.
func idString(id any) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// normalize rewrites driver-specific BSON containers into plain maps and
// slices so the document serializes as ordinary JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case primitive.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case primitive.M:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = normalize(val)
		}
		return m
	case primitive.A:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = normalize(val)
		}
		return s
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339Nano)
	default:
		return v
	}
}
