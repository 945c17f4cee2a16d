package genre_test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixlist/mixlist/internal/core/genre"
	"github.com/mixlist/mixlist/internal/platform/ctxutil"
	"github.com/mixlist/mixlist/internal/platform/sec"
)

func newRouter() (chi.Router, *fakeRepo) {
	service, repo, _ := newService()
	router := chi.NewRouter()
	genre.NewHandler(service).RegisterRoutes(router)
	return router, repo
}

func serve(router chi.Router, principal *sec.Principal, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, target, reader)
	if principal != nil {
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestRoutes_WriteAccess(t *testing.T) {
	tests := []struct {
		name       string
		principal  *sec.Principal
		wantStatus int
	}{
		{"management_creates", manager, http.StatusCreated},
		{"administrator_creates", administrator, http.StatusCreated},
		{"regular_user_forbidden", &sec.Principal{ID: 5, Role: sec.RoleRegularUser}, http.StatusForbidden},
		{"unregistered_forbidden", &sec.Principal{ID: 6, Role: sec.RoleUnregistered}, http.StatusForbidden},
		{"anonymous_unauthorized", nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter()

			recorder := serve(router, tt.principal, http.MethodPost, "/", `{"name":"Synthwave"}`)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestRoutes_AdministratorDeletesInUseGenre(t *testing.T) {
	router, repo := newRouter()

	recorder := serve(router, manager, http.MethodPost, "/", `{"name":"Lo-Fi"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	require.Len(t, repo.genres, 1)
	var genreID int64
	for id := range repo.genres {
		genreID = id
	}
	repo.playlists[genreID] = 3

	// The route guard must admit the administrator so the dependency check
	// can answer with a conflict instead of a blanket 403.
	recorder = serve(router, administrator, http.MethodDelete, fmt.Sprintf("/%d", genreID), "")
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "used by 3 playlist(s)")

	repo.playlists[genreID] = 0
	recorder = serve(router, administrator, http.MethodDelete, fmt.Sprintf("/%d", genreID), "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, repo.genres)
}

func TestRoutes_AdministratorUpdates(t *testing.T) {
	router, _ := newRouter()

	recorder := serve(router, manager, http.MethodPost, "/", `{"name":"Trance"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = serve(router, administrator, http.MethodPut, "/1", `{"name":"Psytrance"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Psytrance")
}
