package core

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestGateRedirects(t *testing.T) {

	var gate = Gate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Errorf("handler reached without credential: %s", req.URL.Path)
	}))

	for _, path := range []string{"/", "/board/some-id", "/project/some-id", "/create-board", "/logout"} {

		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusSeeOther)
			continue
		}

		location, err := url.Parse(rec.Header().Get("Location"))
		if err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if location.Path != LoginPath {
			t.Errorf("%s: redirected to %s, want %s", path, location.Path, LoginPath)
		}
		if got := location.Query().Get("redirect"); got != path {
			t.Errorf("%s: redirect parameter = %q, want the original path", path, got)
		}
	}
}

func TestGateExemptions(t *testing.T) {

	var reached string
	var gate = Gate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		reached = req.URL.Path
	}))

	// no credential cookie, still passed through
	for _, path := range []string{LoginPath, "/assets/app.js", "/static/bootstrap-4.4.1.min.css", "/favicon.ico", "/favicon", "/robots.txt"} {
		reached = ""
		gate.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		if reached != path {
			t.Errorf("%s: exempt path did not reach the handler", path)
		}
	}
}

func TestGatePassesValidSessions(t *testing.T) {

	var reached bool
	var gate = Gate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		reached = true
	}))

	for _, role := range []Role{RoleGuest, RoleUser} {
		reached = false
		req := httptest.NewRequest(http.MethodGet, "/board/some-id", nil)
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: role.String()})
		gate.ServeHTTP(httptest.NewRecorder(), req)
		if !reached {
			t.Errorf("role %v was not passed through", role)
		}
	}
}

func TestGateRejectsTamperedSessions(t *testing.T) {

	var gate = Gate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		t.Error("handler reached with tampered credential")
	}))

	req := httptest.NewRequest(http.MethodGet, "/board/some-id", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "admin"})

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestGateDeterminism(t *testing.T) {

	var gate = Gate(http.NotFoundHandler())

	var locations [2]string
	for i := range locations {
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/project/some-id", nil))
		locations[i] = rec.Header().Get("Location")
	}

	if locations[0] != locations[1] {
		t.Errorf("gate is not deterministic: %q vs %q", locations[0], locations[1])
	}
}
