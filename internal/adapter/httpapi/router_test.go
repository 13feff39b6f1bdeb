package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/eslsoft/jyutcollab/internal/editor"
	"github.com/eslsoft/jyutcollab/internal/entity"
	"github.com/eslsoft/jyutcollab/internal/infrastructure/config"
	"github.com/eslsoft/jyutcollab/internal/repository"
)

type stubAuth struct {
	user *entity.User
}

func (s *stubAuth) Register(_ context.Context, name, email, _ string) (*entity.User, error) {
	return &entity.User{ID: "u1", Name: name, Email: email, Role: entity.RoleContributor}, nil
}

func (s *stubAuth) Login(context.Context, string, string) (string, *entity.User, error) {
	return "token-1", s.user, nil
}

func (s *stubAuth) Verify(_ context.Context, token string) (*entity.User, error) {
	if token != "token-1" {
		return nil, entity.ErrInvalidToken
	}
	return s.user, nil
}

func (s *stubAuth) GrantDialects(_ context.Context, _ *entity.User, userID string, dialects []string) (*entity.User, error) {
	return &entity.User{ID: userID, Dialects: dialects}, nil
}

type stubEntries struct {
	lastQuery *repository.ListEntryQuery
	created   *entity.Entry
	deleteErr error
}

func (s *stubEntries) Create(_ context.Context, actor *entity.User, e *entity.Entry) (*entity.Entry, error) {
	if actor == nil {
		return nil, entity.ErrPermissionDenied
	}
	clone := *e
	clone.ID = "e1"
	clone.CreatedBy = actor.ID
	s.created = &clone
	return &clone, nil
}

func (s *stubEntries) Update(_ context.Context, _ *entity.User, id string, _ *entity.EntryPatch) (*entity.Entry, error) {
	if id != "e1" {
		return nil, entity.ErrEntryNotFound
	}
	return &entity.Entry{ID: id}, nil
}

func (s *stubEntries) Get(_ context.Context, id string) (*entity.Entry, error) {
	if id != "e1" {
		return nil, entity.ErrEntryNotFound
	}
	return &entity.Entry{ID: id}, nil
}

func (s *stubEntries) List(_ context.Context, q *repository.ListEntryQuery) (*entity.EntryPage, error) {
	s.lastQuery = q
	return &entity.EntryPage{Items: []*entity.Entry{{ID: "e1"}}, Total: 1, Page: int(q.PageNo)}, nil
}

func (s *stubEntries) Delete(context.Context, *entity.User, string) error { return s.deleteErr }

func (s *stubEntries) Submit(_ context.Context, _ *entity.User, id string) (*entity.Entry, error) {
	return &entity.Entry{ID: id, Status: entity.StatusPendingReview}, nil
}

func (s *stubEntries) CheckDuplicate(_ context.Context, headword, _ string) ([]*entity.Entry, error) {
	if headword == "" {
		return nil, entity.ErrEmptyHeadword
	}
	if headword == "戇居" {
		return []*entity.Entry{{ID: "e1"}}, nil
	}
	return nil, nil
}

type stubReviews struct {
	conflict bool
}

func (s *stubReviews) ListPending(context.Context, *repository.ListEntryQuery) ([]*entity.Entry, int64, error) {
	return []*entity.Entry{{ID: "e1", Status: entity.StatusPendingReview}}, 1, nil
}

func (s *stubReviews) Approve(_ context.Context, _ *entity.User, entryID, _ string) (*entity.Entry, error) {
	if s.conflict {
		return nil, entity.ErrReviewConflict
	}
	return &entity.Entry{ID: entryID, Status: entity.StatusApproved}, nil
}

func (s *stubReviews) Reject(_ context.Context, _ *entity.User, entryID, _ string) (*entity.Entry, error) {
	return &entity.Entry{ID: entryID, Status: entity.StatusRejected}, nil
}

type stubHistories struct{}

func (stubHistories) List(context.Context, *repository.ListHistoryQuery) ([]*entity.EditHistory, int64, error) {
	return nil, 0, nil
}

func (stubHistories) ListByEntry(context.Context, string, repository.Pagination) ([]*entity.EditHistory, int64, error) {
	return []*entity.EditHistory{{ID: "h1", EntryID: "e1"}}, 1, nil
}

func (stubHistories) Revert(context.Context, *entity.User, string) (*entity.Entry, error) {
	return &entity.Entry{ID: "e1"}, nil
}

type stubSuggestions struct{}

func (stubSuggestions) SuggestDefinition(_ context.Context, req editor.SuggestionRequest) (*editor.DefinitionSuggestion, error) {
	return &editor.DefinitionSuggestion{Definition: "形容人愚蠢", FormalityLevel: "informal"}, nil
}

func (stubSuggestions) Categorize(context.Context, editor.SuggestionRequest) (*editor.Categorization, error) {
	return &editor.Categorization{ThemeID: 66, Confidence: 0.9}, nil
}

func (stubSuggestions) SuggestExamples(context.Context, editor.SuggestionRequest) ([]editor.ExampleSuggestion, error) {
	return []editor.ExampleSuggestion{{Text: "佢真係戇居。"}}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *stubEntries, *stubReviews) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Server.CORSOrigins = []string{"http://localhost:5173"}
	auth := &stubAuth{user: &entity.User{ID: "u1", Name: "阿明", Role: entity.RoleReviewer}}
	entries := &stubEntries{}
	reviews := &stubReviews{}
	router := NewRouter(cfg, auth, entries, reviews, stubHistories{}, stubSuggestions{})
	return router, entries, reviews
}

func doRequest(router *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListEntriesBindsFilterAndOrder(t *testing.T) {
	router, entries, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet,
		"/api/entries?page=2&per_page=10&filter="+
			`dialect+%3D%3D+%27%E9%A6%99%E6%B8%AF%E7%B2%B5%E8%AA%9E%27`+
			"&order_by=headword+asc", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	q := entries.lastQuery
	if q == nil {
		t.Fatal("list query not captured")
	}
	if q.PageNo != 2 || q.PageSize != 10 {
		t.Fatalf("pagination not bound: %+v", q.Pagination)
	}
	if q.Dialect != "香港粵語" {
		t.Fatalf("filter not bound, dialect = %q", q.Dialect)
	}
	if q.PrimaryKey != "headword" || q.PrimaryDesc {
		t.Fatalf("order not bound: %q desc=%v", q.PrimaryKey, q.PrimaryDesc)
	}
}

func TestListEntriesRejectsUnknownFilterField(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/entries?filter=secret+%3D%3D+%27x%27", "", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCreateEntryRequiresAuth(t *testing.T) {
	router, _, _ := newTestRouter(t)

	body := `{"headword":{"display":"戇居"},"dialect":{"name":"香港粵語"}}`
	if w := doRequest(router, http.MethodPost, "/api/entries", "", body); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := doRequest(router, http.MethodPost, "/api/entries", "bad-token", body); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", w.Code)
	}

	w := doRequest(router, http.MethodPost, "/api/entries", "token-1", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created entity.Entry
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID != "e1" || created.CreatedBy != "u1" {
		t.Fatalf("unexpected created entry: %+v", created)
	}
}

func TestGetEntryNotFound(t *testing.T) {
	router, _, _ := newTestRouter(t)

	if w := doRequest(router, http.MethodGet, "/api/entries/missing", "", ""); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestReviewConflictMapsTo409(t *testing.T) {
	router, _, reviews := newTestRouter(t)
	reviews.conflict = true

	w := doRequest(router, http.MethodPost, "/api/reviews/e1/approve", "token-1", `{"notes":"ok"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCheckDuplicate(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodGet, "/api/entries/check-duplicate?headword=%E6%88%87%E5%B1%85", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Duplicate bool `json:"duplicate"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Duplicate {
		t.Fatalf("expected duplicate=true, got %s", w.Body.String())
	}
}

func TestSuggestDefinitionEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := doRequest(router, http.MethodPost, "/api/ai/definitions", "token-1", `{"expression":"戇居"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var suggestion editor.DefinitionSuggestion
	if err := json.Unmarshal(w.Body.Bytes(), &suggestion); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if suggestion.Definition == "" {
		t.Fatal("expected a definition in the response")
	}

	if w := doRequest(router, http.MethodPost, "/api/ai/definitions", "token-1", `{"expression":"  "}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty expression, got %d", w.Code)
	}
}
