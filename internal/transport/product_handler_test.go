package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/apperrors"
	"stockroom/internal/command"
	"stockroom/internal/dispatch"
)

// newProductRouter wires a ProductHandler to a dispatcher with stub handlers
// that capture the dispatched request.
func newProductRouter(d *dispatch.Dispatcher) http.Handler {
	r := chi.NewRouter()
	NewProductHandler(d, zap.NewNop()).RegisterRoutes(r)
	return r
}

func TestProductHandler_Create(t *testing.T) {
	d := dispatch.New(zap.NewNop())

	var received command.CreateProductCommand
	d.Register(command.CreateProductCommand{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, cmd command.CreateProductCommand) (map[string]string, error) {
			received = cmd
			return map[string]string{"id": uuid.New().String()}, nil
		},
	), command.Validate)

	body := `{"name":"Wireless Mouse","description":"Ergonomic wireless mouse","price":29.99,"category_id":"` + uuid.New().String() + `","stock":50}`
	req := httptest.NewRequest("POST", "/api/products", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if received.Name != "Wireless Mouse" || received.Stock != 50 {
		t.Errorf("unexpected command: %+v", received)
	}
}

func TestProductHandler_CreateInvalidBody(t *testing.T) {
	d := dispatch.New(zap.NewNop())
	d.Register(command.CreateProductCommand{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, cmd command.CreateProductCommand) (any, error) {
			t.Error("handler must not run for malformed JSON")
			return nil, nil
		},
	))

	req := httptest.NewRequest("POST", "/api/products", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestProductHandler_CreateValidationFailureListsAllFields(t *testing.T) {
	d := dispatch.New(zap.NewNop())
	d.Register(command.CreateProductCommand{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, cmd command.CreateProductCommand) (any, error) {
			t.Error("handler must not run when validation fails")
			return nil, nil
		},
	), command.Validate)

	req := httptest.NewRequest("POST", "/api/products", bytes.NewBufferString(`{"price":-1,"stock":-1}`))
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Error struct {
			Details map[string]json.RawMessage `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}

	raw, ok := response.Error.Details["validation_errors"]
	if !ok {
		t.Fatal("expected validation_errors in details")
	}

	var violations map[string][]string
	if err := json.Unmarshal(raw, &violations); err != nil {
		t.Fatalf("failed to parse violations: %v", err)
	}
	for _, field := range []string{"name", "description", "price", "category_id"} {
		if _, ok := violations[field]; !ok {
			t.Errorf("expected violation for %q, got %v", field, violations)
		}
	}
}

func TestProductHandler_GetNotFound(t *testing.T) {
	d := dispatch.New(zap.NewNop())
	d.Register(command.GetProductQuery{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, q command.GetProductQuery) (any, error) {
			return nil, apperrors.NotFound("product", q.ID)
		},
	), command.Validate)

	req := httptest.NewRequest("GET", "/api/products/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestProductHandler_ListDefaultsPagination(t *testing.T) {
	d := dispatch.New(zap.NewNop())

	var received command.ListProductsQuery
	d.Register(command.ListProductsQuery{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, q command.ListProductsQuery) (any, error) {
			received = q
			return map[string]any{}, nil
		},
	), command.Validate)

	req := httptest.NewRequest("GET", "/api/products", nil)
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if received.Page != 1 || received.PageSize != 20 {
		t.Errorf("expected default pagination 1/20, got %d/%d", received.Page, received.PageSize)
	}
}

func TestProductHandler_ListRejectsOversizedPage(t *testing.T) {
	d := dispatch.New(zap.NewNop())
	d.Register(command.ListProductsQuery{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, q command.ListProductsQuery) (any, error) {
			return map[string]any{}, nil
		},
	), command.Validate)

	req := httptest.NewRequest("GET", "/api/products?page=1&page_size=500", nil)
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestProductHandler_SearchMapsQueryParam(t *testing.T) {
	d := dispatch.New(zap.NewNop())

	var received command.SearchProductsQuery
	d.Register(command.SearchProductsQuery{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, q command.SearchProductsQuery) (any, error) {
			received = q
			return map[string]any{}, nil
		},
	), command.Validate)

	req := httptest.NewRequest("GET", "/api/products/search?q=mouse&page=2", nil)
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if received.Term != "mouse" || received.Page != 2 || received.PageSize != 20 {
		t.Errorf("unexpected query: %+v", received)
	}
}

func TestProductHandler_RecentMalformedLimitFallsBack(t *testing.T) {
	d := dispatch.New(zap.NewNop())

	var received command.GetRecentProductsQuery
	d.Register(command.GetRecentProductsQuery{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, q command.GetRecentProductsQuery) (any, error) {
			received = q
			return []any{}, nil
		},
	), command.Validate)

	req := httptest.NewRequest("GET", "/api/products/recent?limit=abc", nil)
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if received.Limit != 0 {
		t.Errorf("expected limit fallback of 0, got %d", received.Limit)
	}
}

func TestProductHandler_UpdateTakesIDFromPath(t *testing.T) {
	d := dispatch.New(zap.NewNop())

	var received command.UpdateProductCommand
	d.Register(command.UpdateProductCommand{}.Kind(), dispatch.HandlerOf(
		func(ctx context.Context, cmd command.UpdateProductCommand) (any, error) {
			received = cmd
			return map[string]any{}, nil
		},
	), command.Validate)

	id := uuid.New().String()
	// Body carries a different id; the path wins.
	body := `{"id":"ignored","name":"Trackball","description":"A stationary pointing device","price":49.99,"category_id":"` + uuid.New().String() + `","stock":20}`
	req := httptest.NewRequest("PUT", "/api/products/"+id, bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	newProductRouter(d).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if received.ID != id {
		t.Errorf("expected path id %q, got %q", id, received.ID)
	}
}
