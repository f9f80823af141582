package core

import (
	"net/http"
	"time"
)

// AuthCookieName is the name of the credential cookie. Its value is the
// literal role string, there is no server-side session table behind it.
// The value is not cryptographically signed, the design trusts the
// HttpOnly/Secure/SameSite attributes and the secrecy of the access codes.
const AuthCookieName = "excalidraw_auth"

const authCookieLifetime = 30 * 24 * time.Hour

// ReadRole decodes the credential cookie of a request.
// A missing cookie or an unknown value yields RoleNone.
func ReadRole(r *http.Request) Role {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return RoleNone
	}
	return ParseRole(cookie.Value)
}

// issueRole writes the credential cookie. The cookie holds exactly one
// role at a time, re-issuing replaces the previous value.
func (c *CoreDB) issueRole(w http.ResponseWriter, role Role) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    role.String(),
		Path:     c.cookiePath,
		MaxAge:   int(authCookieLifetime / time.Second),
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// revokeRole deletes the credential cookie. Revoking an absent cookie is a no-op.
func (c *CoreDB) revokeRole(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     c.cookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
