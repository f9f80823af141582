package core

import (
	"net/http"
	"net/url"
	"strings"
)

// LoginPath is where the gate sends unauthenticated requests.
const LoginPath = "/login"

// Gate redirects requests without a valid credential cookie to the login
// page, keeping the originally requested path in a "redirect" query
// parameter. The login page and asset paths are exempt. The decision
// depends on the path and the Cookie header only, downstream handlers
// read the session themselves.
func Gate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if gateExempt(req.URL.Path) {
			next.ServeHTTP(w, req)
			return
		}
		if ReadRole(req) == RoleNone {
			http.Redirect(w, req, LoginPath+"?redirect="+url.QueryEscape(req.URL.Path), http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// gateExempt reports whether a path bypasses the gate. A path containing a
// dot is taken for a file and served without authentication.
func gateExempt(path string) bool {
	switch {
	case path == LoginPath:
		return true
	case strings.HasPrefix(path, "/assets/"):
		return true
	case strings.HasPrefix(path, "/static/"):
		return true
	case strings.HasPrefix(path, "/favicon"):
		return true
	case strings.Contains(path, "."):
		return true
	}
	return false
}
