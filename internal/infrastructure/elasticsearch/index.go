package elasticsearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// usersIndexMapping keeps exact-match fields as keywords and location as a
// geo_point so the specification translations (terms, ranges, geo_distance)
// execute natively.
const usersIndexMapping = `{
  "mappings": {
    "properties": {
      "id":                 {"type": "keyword"},
      "email":              {"type": "keyword"},
      "first_name":         {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "last_name":          {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "phone_number":       {"type": "keyword"},
      "birthdate":          {"type": "date"},
      "location":           {"type": "geo_point"},
      "about_me":           {"type": "text"},
      "profile_image_name": {"type": "keyword"},
      "created_at":         {"type": "date"},
      "updated_at":         {"type": "date"},
      "last_login":         {"type": "date"},
      "deleted_at":         {"type": "date"},
      "is_deleted":         {"type": "boolean"}
    }
  }
}`

// EnsureUsersIndex creates the users index with its mapping when it does not
// exist yet. Safe to call from every process at startup.
func EnsureUsersIndex(ctx context.Context, es *elasticsearch.Client, index string) error {
	existsRes, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, es)
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	defer func() { _ = existsRes.Body.Close() }()
	if existsRes.StatusCode == 200 {
		return nil
	}

	createRes, err := esapi.IndicesCreateRequest{
		Index: index,
		Body:  strings.NewReader(usersIndexMapping),
	}.Do(ctx, es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer func() { _ = createRes.Body.Close() }()
	// A concurrent creator may win the race; that is fine.
	if createRes.IsError() && createRes.StatusCode != 400 {
		return fmt.Errorf("create index %s: %s", index, createRes.Status())
	}
	return nil
}
