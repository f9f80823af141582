package core

import (
	"encoding/gob"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/text/language"
)

var ErrMissingCode = errors.New("access code is required")
var ErrInvalidCode = errors.New("invalid access code")
var ErrNotUserCode = errors.New("invalid user access code")

type Notification struct {
	Message string
	Style   string
}

func init() {
	gob.Register([]Notification{}) // required for storing Notifications in a session
}

var langMatcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish, // default
	language.German,
})

var monthNamesDe = strings.NewReplacer(
	"January", "Januar",
	"February", "Februar",
	"March", "März",
	"May", "Mai",
	"June", "Juni",
	"July", "Juli",
	"October", "Oktober",
	"December", "Dezember",
)

// A Request is created by CoreDB.NewRequest. Role is read from the
// credential cookie once, handlers must not cache it across responses.
type Request struct {
	db   *CoreDB
	Role Role

	// http
	writer  http.ResponseWriter
	request *http.Request

	// robustness
	statusWritten bool

	// caching
	language language.Tag
}

// NewRequest creates a Request with the given http.ResponseWriter and http.Request.
func (c *CoreDB) NewRequest(w http.ResponseWriter, httpreq *http.Request) *Request {

	var req = &Request{
		db:      c,
		Role:    ReadRole(httpreq),
		writer:  w,
		request: httpreq,
	}

	req.language, _ = language.MatchStrings(langMatcher, httpreq.Header.Get("Accept-Language"))

	return req
}

// Danger adds a "danger" notification to the session.
func (req *Request) Danger(err error) {
	req.addNotification(err.Error(), "danger")
}

// Success adds a "success" notification to the session.
func (req *Request) Success(format string, args ...interface{}) {
	req.addNotification(fmt.Sprintf(format, args...), "success")
}

// style should be a bootstrap alert style without the leading "alert-"
func (req *Request) addNotification(message, style string) {
	notifications, _ := req.db.SessionManager.Get(req.request.Context(), "notifications").([]Notification)
	notifications = append(notifications, Notification{message, style})
	req.db.SessionManager.Put(req.request.Context(), "notifications", notifications)
}

// RenderNotifications removes all notifications from the session
// and renders them into an HTML string.
// If the HTTP status had already been written, it does nothing.
func (req *Request) RenderNotifications() template.HTML {
	var r string
	if !req.statusWritten {
		notifications, _ := req.db.SessionManager.Pop(req.request.Context(), "notifications").([]Notification)
		for _, n := range notifications {
			r += `<div class="alert alert-` + n.Style + ` mt-3" role="alert">` + template.HTMLEscapeString(n.Message) + `</div>`
		}
	}
	return template.HTML(r)
}

// Cleanup destroys the notification session (which means re-setting the
// cookie with zero lifetime) if it has been modified and is empty now.
func (req *Request) Cleanup() {
	sessMan := req.db.SessionManager
	if sessMan.Status(req.request.Context()) == scs.Modified && len(sessMan.Keys(req.request.Context())) == 0 {
		_ = sessMan.Destroy(req.request.Context())
	}
}

// SeeOther sets the HTTP header to redirect to an URL.
func (req *Request) SeeOther(format string, args ...interface{}) {
	if req.statusWritten {
		return
	}
	var url = fmt.Sprintf(format, args...)
	http.Redirect(req.writer, req.request, url, http.StatusSeeOther)
	req.statusWritten = true
}

// Login verifies the code and issues the credential cookie.
// It returns ErrMissingCode or ErrInvalidCode without touching the session.
func (req *Request) Login(code string) error {
	if code == "" {
		return ErrMissingCode
	}
	var role = req.db.Codes.Verify(code)
	if role == RoleNone {
		return ErrInvalidCode
	}
	req.db.issueRole(req.writer, role)
	req.Role = role
	return nil
}

// Upgrade re-issues the credential cookie as user if the code verifies to
// user. Any other code, including the guest code, leaves the current
// session untouched and returns ErrNotUserCode.
func (req *Request) Upgrade(code string) error {
	if code == "" {
		return ErrMissingCode
	}
	if req.db.Codes.Verify(code) != RoleUser {
		return ErrNotUserCode
	}
	req.db.issueRole(req.writer, RoleUser)
	req.Role = RoleUser
	return nil
}

// Logout revokes the credential cookie. Logging out twice is fine.
func (req *Request) Logout() {
	req.db.revokeRole(req.writer)
	req.Role = RoleNone
}

func (req *Request) LoggedIn() bool {
	return req.Role != RoleNone
}

func (req *Request) IsGuest() bool {
	return req.Role == RoleGuest
}

func (req *Request) IsUser() bool {
	return req.Role == RoleUser
}

// RequireUser guards mutating operations. Hiding the buttons from guests
// is not enough, the operations themselves reject everything below user.
func (req *Request) RequireUser() error {
	if req.Role != RoleUser {
		return ErrUnauthorized
	}
	return nil
}

func (req *Request) FormatDateTime(ts int64) string {
	b, _ := req.language.Base()
	switch b.String() {
	case "de":
		return monthNamesDe.Replace(time.Unix(ts, 0).Format("2. January 2006 15:04 Uhr"))
	default:
		return time.Unix(ts, 0).Format("January 2, 2006 3:04 PM")
	}
}
