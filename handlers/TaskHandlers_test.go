package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/cache"
	"backend/models"
	"backend/storage"

	"github.com/gin-gonic/gin"
)

// memGateway accepts every write and serves nothing; route tests only care
// about the local cache state and response codes.
type memGateway struct{}

func (memGateway) Select(context.Context, string) ([]storage.Row, error) { return nil, nil }

func (memGateway) Insert(context.Context, string, []storage.Row) error { return nil }

func (memGateway) Update(context.Context, string, string, storage.Row) error { return nil }

func (memGateway) Delete(context.Context, string, string) error { return nil }

func (memGateway) DeleteAll(context.Context, string) error { return nil }

func newTestRouter(store *cache.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/tasks", GetTasks(store))
	r.POST("/api/tasks", CreateTask(store))
	r.PUT("/api/tasks/:id", UpdateTask(store))
	r.DELETE("/api/tasks/:id", DeleteTask(store))
	r.GET("/api/settings/:category", GetCatalog(store))
	return r
}

func TestTaskRoutes(t *testing.T) {
	store := cache.NewStore(memGateway{})
	r := newTestRouter(store)

	// Create.
	body := `{"title":"Trocar lampada","criticality":"Alta","situation":"Aberto"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: got %d, body %s", w.Code, w.Body.String())
	}
	var created models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("create body: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create did not assign an id")
	}

	// List.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status: got %d", w.Code)
	}
	var listed []models.Task
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("list body: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("list: %+v", listed)
	}

	// Partial update.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/tasks/"+created.ID, strings.NewReader(`{"situation":"Concluído"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update status: got %d, body %s", w.Code, w.Body.String())
	}
	if got := store.Tasks()[0]; got.Situation != "Concluído" || got.Title != "Trocar lampada" {
		t.Fatalf("after update: %+v", got)
	}

	// Delete.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/tasks/"+created.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status: got %d", w.Code)
	}
	if len(store.Tasks()) != 0 {
		t.Fatal("task not deleted")
	}
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	store := cache.NewStore(memGateway{})
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"location":"Hall"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
}

func TestUnknownSettingsCategory(t *testing.T) {
	store := cache.NewStore(memGateway{})
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/settings/colors", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", w.Code)
	}
}
