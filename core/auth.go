package core

// Role is the trust level of a request. It is derived from the session
// cookie, never from the backing store.
type Role int

const (
	RoleNone Role = iota
	RoleGuest
	RoleUser
)

func (r Role) String() string {
	switch r {
	case RoleGuest:
		return "guest"
	case RoleUser:
		return "user"
	default:
		return ""
	}
}

// ParseRole maps a stored string to a Role. Anything outside "user" and
// "guest" is RoleNone, so a tampered cookie degrades to unauthenticated.
func ParseRole(s string) Role {
	switch s {
	case "user":
		return RoleUser
	case "guest":
		return RoleGuest
	default:
		return RoleNone
	}
}

// Codes holds the two access codes. It is populated once at startup
// (config file, dotenv, environment) and injected into the CoreDB.
type Codes struct {
	User  string
	Guest string
}

// Verify maps a submitted code to a role. An empty submission is rejected
// before any comparison, so an unset code can never match. If both codes
// are equal, user wins.
func (c Codes) Verify(code string) Role {
	if code == "" {
		return RoleNone
	}
	if code == c.User {
		return RoleUser
	}
	if code == c.Guest {
		return RoleGuest
	}
	return RoleNone
}
