package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/oselo/compass/internal/config"
	"github.com/oselo/compass/internal/observability"
	"github.com/oselo/compass/internal/store"
	"github.com/oselo/compass/model"
)

// requestContext extracts the RequestContext or writes a 401 response.
func requestContext(w http.ResponseWriter, r *http.Request) (*model.RequestContext, bool) {
	rctx := model.RequestContextFrom(r.Context())
	if rctx == nil {
		WriteError(w, model.NewUnauthorizedError("missing request context"))
		return nil, false
	}
	return rctx, true
}

// decodeBody decodes a JSON request body into dst, rejecting unknown fields.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return model.NewBadRequestError("Malformed JSON body: " + err.Error())
	}
	return nil
}

// queryInt extracts an integer query param with a default.
func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// listFilters parses the common list query params into store.ListFilters.
// page is 1-based; page_size is clamped to the configured maximum.
func listFilters(r *http.Request, cfg config.DashboardConfig) store.ListFilters {
	q := r.URL.Query()

	pageSize := queryInt(r, "page_size", cfg.DefaultPageSize)
	if pageSize <= 0 {
		pageSize = cfg.DefaultPageSize
	}
	if cfg.MaxPageSize > 0 && pageSize > cfg.MaxPageSize {
		pageSize = cfg.MaxPageSize
	}
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}

	return store.ListFilters{
		CycleID:      q.Get("cycle_id"),
		AreaID:       q.Get("area_id"),
		OwnerID:      q.Get("owner_id"),
		ObjectiveID:  q.Get("objective_id"),
		InitiativeID: q.Get("initiative_id"),
		Status:       q.Get("status"),
		Priority:     q.Get("priority"),
		Type:         q.Get("type"),
		Query:        q.Get("q"),
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	}
}

// refFromQuery parses the entity_type and entity_id query params.
func refFromQuery(r *http.Request) model.EntityRef {
	return model.EntityRef{
		Type: model.EntityType(r.URL.Query().Get("entity_type")),
		ID:   r.URL.Query().Get("entity_id"),
	}
}

// recordMutation records a mutation outcome on the metrics registry.
// metrics may be nil (tests build routers without one).
func recordMutation(m *observability.Metrics, entity, op string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
		if model.ErrorCode(err) == model.ErrValidationError {
			m.RecordValidationFailure(entity, op)
		}
	}
	m.RecordMutation(entity, op, status)
}

// listResponse is the envelope for list endpoints.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	WriteJSON(w, http.StatusOK, listResponse[T]{Items: items, Count: len(items)})
}
