package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-account-service/internal/domain/errs"
	"github.com/oksasatya/user-account-service/internal/domain/pagination"
	"github.com/oksasatya/user-account-service/internal/domain/readmodel"
	"github.com/oksasatya/user-account-service/internal/domain/repository"
	"github.com/oksasatya/user-account-service/internal/domain/specification"
)

const searchTimeout = 3 * time.Second

// sortFields whitelists sortable fields and maps them to their indexed form.
var sortFields = map[string]string{
	"created_at": "created_at",
	"updated_at": "updated_at",
	"last_login": "last_login",
	"email":      "email",
	"first_name": "first_name.raw",
	"last_name":  "last_name.raw",
}

// UserReadRepository answers specification + pagination queries against the
// Elasticsearch replica maintained by the change-event projector.
type UserReadRepository struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewUserReadRepository(es *elasticsearch.Client, index string, logger *logrus.Logger) *UserReadRepository {
	return &UserReadRepository{es: es, index: index, logger: logger}
}

func (r *UserReadRepository) GetByID(ctx context.Context, id string) (*readmodel.UserDocument, error) {
	return r.getOne(ctx, map[string]any{"term": map[string]any{"id": id}})
}

func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*readmodel.UserDocument, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx, map[string]any{"term": map[string]any{"email": email}})
}

func (r *UserReadRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	n, err := r.count(ctx, map[string]any{"term": map[string]any{"email": email}})
	return n > 0, err
}

func (r *UserReadRepository) ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error) {
	n, err := r.count(ctx, map[string]any{"term": map[string]any{"phone_number": phone}})
	return n > 0, err
}

func (r *UserReadRepository) GetUsers(ctx context.Context, spec specification.Specification, params pagination.Params) (pagination.PagedResult[readmodel.UserDocument], error) {
	var zero pagination.PagedResult[readmodel.UserDocument]

	body := map[string]any{
		"query":            spec.ElasticQuery(),
		"from":             params.Skip(),
		"size":             params.Take(),
		"track_total_hits": true,
	}
	if field, ok := sortFields[params.SortBy]; ok {
		body["sort"] = []map[string]any{{field: map[string]any{"order": params.SortDirection}}}
	} else {
		body["sort"] = []map[string]any{{"created_at": map[string]any{"order": params.SortDirection}}}
	}

	b, err := json.Marshal(body)
	if err != nil {
		return zero, errs.Infrastructure("encode search", err)
	}

	c, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()
	res, err := r.es.Search(
		r.es.Search.WithContext(c),
		r.es.Search.WithIndex(r.index),
		r.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return zero, errs.Infrastructure("search users", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return zero, errs.Infrastructure("search users: "+res.Status(), nil)
	}

	var parsed struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source readmodel.UserDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return zero, errs.Infrastructure("decode search response", err)
	}

	items := make([]readmodel.UserDocument, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		items = append(items, h.Source)
	}
	return pagination.NewPagedResult(items, parsed.Hits.Total.Value, params), nil
}

func (r *UserReadRepository) CountUsers(ctx context.Context, spec specification.Specification) (int64, error) {
	return r.count(ctx, spec.ElasticQuery())
}

func (r *UserReadRepository) AnyUsers(ctx context.Context, spec specification.Specification) (bool, error) {
	n, err := r.count(ctx, spec.ElasticQuery())
	return n > 0, err
}

func (r *UserReadRepository) getOne(ctx context.Context, query map[string]any) (*readmodel.UserDocument, error) {
	body := map[string]any{"query": query, "size": 1}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, errs.Infrastructure("encode search", err)
	}

	c, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()
	res, err := r.es.Search(
		r.es.Search.WithContext(c),
		r.es.Search.WithIndex(r.index),
		r.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, errs.Infrastructure("search user", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, errs.Infrastructure("search user: "+res.Status(), nil)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source readmodel.UserDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, errs.Infrastructure("decode search response", err)
	}
	if len(parsed.Hits.Hits) == 0 {
		return nil, errs.NotFound("user not found")
	}
	doc := parsed.Hits.Hits[0].Source
	return &doc, nil
}

func (r *UserReadRepository) count(ctx context.Context, query map[string]any) (int64, error) {
	b, err := json.Marshal(map[string]any{"query": query})
	if err != nil {
		return 0, errs.Infrastructure("encode count", err)
	}

	c, cancel := context.WithTimeout(ctx, searchTimeout)
	defer cancel()
	res, err := esapi.CountRequest{
		Index: []string{r.index},
		Body:  bytes.NewReader(b),
	}.Do(c, r.es)
	if err != nil {
		return 0, errs.Infrastructure("count users", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return 0, errs.Infrastructure("count users: "+res.Status(), nil)
	}

	var parsed struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return 0, errs.Infrastructure("decode count response", err)
	}
	return parsed.Count, nil
}

var _ repository.UserReadRepository = (*UserReadRepository)(nil)
