package scoremodel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestService(t *testing.T, repo Repository) (*Service, *Store) {
	t.Helper()
	store := NewStore(nil)
	sources := []Source{BuiltinSource{}}
	if repo != nil {
		sources = append(sources, RepositorySource{Repo: repo})
	}
	svc := NewService(store, repo, BaselineName, sources...)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return svc, store
}

func TestService_PublishAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	svc, store := newTestService(t, repo)

	rec, err := svc.Publish(ctx, variant("custom-v1"))
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if rec.Name != "custom-v1" || rec.PublishedAt.IsZero() {
		t.Fatalf("unexpected record %+v", rec)
	}

	if _, err := store.Catalog().Get("custom-v1"); err != nil {
		t.Fatalf("published model not live: %v", err)
	}

	list := svc.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 models, got %d", len(list))
	}
	defaults := 0
	for _, s := range list {
		if s.Default {
			defaults++
			if s.Name != BaselineName {
				t.Fatalf("wrong default %s", s.Name)
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("expected exactly one default, got %d", defaults)
	}
}

func TestService_PublishRejectsInvalid(t *testing.T) {
	svc, store := newTestService(t, NewMemoryRepository())
	before := store.Catalog()

	bad := variant("bad")
	bad.Labels = nil
	if _, err := svc.Publish(context.Background(), bad); !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
	if store.Catalog() != before {
		t.Fatal("a rejected model must not replace the catalog")
	}
}

type switchableSource struct {
	down *bool
}

func (s switchableSource) Load(ctx context.Context) ([]*Model, error) {
	if *s.down {
		return nil, errors.New("bucket unreachable")
	}
	return nil, nil
}

func TestService_PublishSurvivesReloadFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	down := false
	store := NewStore(nil)
	svc := NewService(store, repo, BaselineName, BuiltinSource{}, switchableSource{down: &down}, RepositorySource{Repo: repo})
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	live := store.Catalog()

	down = true
	rec, err := svc.Publish(ctx, variant("late-v1"))
	if err != nil {
		t.Fatalf("a saved model should publish, got %v", err)
	}
	if _, err := repo.Get(ctx, rec.Name); err != nil {
		t.Fatalf("record not saved: %v", err)
	}
	if store.Catalog() != live {
		t.Fatal("catalog changed although the reload failed")
	}

	down = false
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, err := store.Catalog().Get("late-v1"); err != nil {
		t.Fatalf("saved model not live after the next reload: %v", err)
	}
}

func TestService_ReadOnly(t *testing.T) {
	svc, _ := newTestService(t, nil)

	if _, err := svc.Publish(context.Background(), variant("x")); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestService_ReloadKeepsCatalogOnError(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(nil)
	svc := NewService(store, nil, BaselineName, BuiltinSource{}, DirSource{Dir: dir})
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	live := store.Catalog()

	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected reload to fail")
	}
	if store.Catalog() != live {
		t.Fatal("failed reload replaced the live catalog")
	}
}

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if _, err := repo.Get(ctx, "x"); !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}

	first := NewRecord(variant("x"))
	second := NewRecord(variant("x"))
	second.Version = "0.2.0"
	_ = repo.Save(ctx, first)
	_ = repo.Save(ctx, second)

	got, err := repo.Get(ctx, "x")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != second.ID || got.Version != "0.2.0" {
		t.Fatalf("expected the later save to replace the earlier one")
	}
	list, _ := repo.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected one record per name, got %d", len(list))
	}
}

func TestSQLiteRepository(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "models.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer repo.Close()

	if _, err := repo.Get(ctx, "nope"); !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}

	rec := NewRecord(variant("sqlite-v1"))
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Get(ctx, "sqlite-v1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != rec.ID || !got.PublishedAt.Equal(rec.PublishedAt) {
		t.Fatalf("record metadata changed: %+v", got)
	}
	if got.Model.Ladders.Components[SugarComponent].Score(5) != 80 {
		t.Fatal("stored model tables were not preserved")
	}

	again := NewRecord(variant("sqlite-v1"))
	again.Version = "0.2.0"
	if err := repo.Save(ctx, again); err != nil {
		t.Fatalf("save: %v", err)
	}
	_ = repo.Save(ctx, NewRecord(variant("another")))

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "another" || list[1].Version != "0.2.0" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	reloaded := make(chan struct{}, 4)

	w, err := NewWatcher(dir, func(ctx context.Context) error {
		reloaded <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	writeModel(t, dir, variant("watched"))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a reload after a model file changed")
	}
}

func setupHandler(t *testing.T, repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t, repo)
	h := NewHandler(svc)

	r := gin.New()
	r.GET("/models", h.List())
	r.GET("/models/:name", h.Get())
	r.POST("/models", h.Publish())
	return r
}

func request(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Get(t *testing.T) {
	r := setupHandler(t, nil)

	w := request(r, http.MethodGet, "/models/"+NovaName, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var m Model
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m.Name != NovaName {
		t.Fatalf("expected %s, got %s", NovaName, m.Name)
	}

	if w := request(r, http.MethodGet, "/models/unknown", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandler_Publish(t *testing.T) {
	body, _ := Encode(variant("posted-v1"))

	r := setupHandler(t, NewMemoryRepository())
	if w := request(r, http.MethodPost, "/models", string(body)); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if w := request(r, http.MethodGet, "/models/posted-v1", ""); w.Code != http.StatusOK {
		t.Fatalf("expected published model to be served, got %d", w.Code)
	}
	if w := request(r, http.MethodPost, "/models", `{"name":"x"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an incomplete model, got %d", w.Code)
	}

	readOnly := setupHandler(t, nil)
	if w := request(readOnly, http.MethodPost, "/models", string(body)); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without a repository, got %d", w.Code)
	}
}
