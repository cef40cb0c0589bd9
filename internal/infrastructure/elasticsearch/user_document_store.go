package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/user-account-service/internal/domain/readmodel"
)

// UserDocumentStore is the projector's write surface over the users index.
// Upsert is a full document replace keyed by id, so duplicate delivery of the
// same change event always converges to the same document.
type UserDocumentStore struct {
	es    *elasticsearch.Client
	index string
}

func NewUserDocumentStore(es *elasticsearch.Client, index string) *UserDocumentStore {
	return &UserDocumentStore{es: es, index: index}
}

func (s *UserDocumentStore) Upsert(ctx context.Context, doc readmodel.UserDocument) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", doc.ID, err)
	}
	res, err := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("index document %s: %w", doc.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index document %s: %s", doc.ID, res.Status())
	}
	return nil
}

// MarkDeleted flips is_deleted on the existing document in place; the
// document itself is kept. A missing document is treated as a no-op so
// re-delivered tombstones stay idempotent.
func (s *UserDocumentStore) MarkDeleted(ctx context.Context, id string, deletedAt time.Time) error {
	body := map[string]any{
		"doc": map[string]any{
			"is_deleted": true,
			"deleted_at": deletedAt,
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode tombstone %s: %w", id, err)
	}
	res, err := esapi.UpdateRequest{
		Index:      s.index,
		DocumentID: id,
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}.Do(ctx, s.es)
	if err != nil {
		return fmt.Errorf("tombstone document %s: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == 404 {
		return nil
	}
	if res.IsError() {
		return fmt.Errorf("tombstone document %s: %s", id, res.Status())
	}
	return nil
}
