package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/spx/spotify"
)

func tokenEndpoint(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("token endpoint hit with %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"granted","token_type":"Bearer","refresh_token":"refresh-1","expires_in":3600}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCallback(t *testing.T) {
	t.Run("Delivers Token On Valid Redirect", func(t *testing.T) {
		srv := tokenEndpoint(t)
		auth := spotify.NewAuthenticator("id", "secret", "http://127.0.0.1:3000/callback").
			WithEndpoint(srv.URL+"/authorize", srv.URL+"/api/token")
		handler := NewCallback(auth, "state-1")

		req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=state-1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Spotify Connected") {
			t.Error("success page not rendered")
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("unexpected flow error: %v", result.Error())
		}
		if result.Token == nil || result.Token.AccessToken != "granted" {
			t.Errorf("expected exchanged token, got %+v", result.Token)
		}
		if result.Token.RefreshToken != "refresh-1" {
			t.Errorf("refresh token not carried: %q", result.Token.RefreshToken)
		}
	})

	t.Run("Rejects State Mismatch", func(t *testing.T) {
		srv := tokenEndpoint(t)
		auth := spotify.NewAuthenticator("id", "secret", "http://127.0.0.1:3000/callback").
			WithEndpoint(srv.URL+"/authorize", srv.URL+"/api/token")
		handler := NewCallback(auth, "expected-state")

		req := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=forged", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := <-handler.Result()
		if result.Error() == nil {
			t.Fatal("expected error result for forged state")
		}
	})

	t.Run("Reports Provider Denial", func(t *testing.T) {
		srv := tokenEndpoint(t)
		auth := spotify.NewAuthenticator("id", "secret", "http://127.0.0.1:3000/callback").
			WithEndpoint(srv.URL+"/authorize", srv.URL+"/api/token")
		handler := NewCallback(auth, "state-1")

		req := httptest.NewRequest(http.MethodGet,
			"/callback?state=state-1&error=access_denied&error_description=user+said+no", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := <-handler.Result()
		if result.Error() == nil || !strings.Contains(result.Error().Error(), "access_denied") {
			t.Errorf("expected denial reason in error, got %v", result.Error())
		}
	})

	t.Run("Handles Only One Callback", func(t *testing.T) {
		srv := tokenEndpoint(t)
		auth := spotify.NewAuthenticator("id", "secret", "http://127.0.0.1:3000/callback").
			WithEndpoint(srv.URL+"/authorize", srv.URL+"/api/token")
		handler := NewCallback(auth, "state-1")

		first := httptest.NewRequest(http.MethodGet, "/callback?code=abc&state=state-1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, first)
		if rec.Code != http.StatusOK {
			t.Fatalf("first callback failed with %d", rec.Code)
		}

		replay := httptest.NewRequest(http.MethodGet, "/callback?code=def&state=state-1", nil)
		rec = httptest.NewRecorder()
		handler.ServeHTTP(rec, replay)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 on replay, got %d", rec.Code)
		}
	})
}

type stubHandler struct {
	routes []string
	hits   int
}

func (s *stubHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hits++
	w.WriteHeader(http.StatusNoContent)
}

func (s *stubHandler) Routes() []string { return s.routes }

func TestBasicRouter(t *testing.T) {
	t.Run("Filters By Method", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handle(http.MethodGet, "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET /ping returned %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST /ping returned %d, expected 405", rec.Code)
		}
	})

	t.Run("Applies Middleware Outermost First", func(t *testing.T) {
		var order []string
		tag := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		router := NewBasicRouter()
		router.Use(tag("outer"), tag("inner"))
		router.Handle(http.MethodGet, "/traced", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))

		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/traced", nil))

		want := []string{"outer", "inner", "handler"}
		if len(order) != len(want) {
			t.Fatalf("expected %d stages, got %v", len(want), order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("stage %d: expected %q, got %q", i, want[i], order[i])
			}
		}
	})

	t.Run("Registers Every Handler Route", func(t *testing.T) {
		stub := &stubHandler{routes: []string{"/a", "/b"}}
		router := NewBasicRouter()
		router.Handler(stub)

		for _, path := range stub.routes {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusNoContent {
				t.Errorf("route %s returned %d", path, rec.Code)
			}
		}
		if stub.hits != 2 {
			t.Errorf("expected 2 hits, got %d", stub.hits)
		}
	})
}
