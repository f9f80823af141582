package core

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

type CoreDB struct {
	BoardDB
	ProjectDB
	Codes          Codes
	SessionManager *scs.SessionManager // flash notifications only, not the credential
	SecureCookies  bool

	SqlDB *sql.DB // exported because main closes it

	cookiePath string
}

// Init configures the notification session and the credential cookie path.
// base must be empty or start with a slash.
func (c *CoreDB) Init(sessionStore scs.Store, base string) {

	c.cookiePath = base + "/"

	c.SessionManager = scs.New()
	c.SessionManager.Store = sessionStore
	c.SessionManager.Cookie.Path = base + "/"
	c.SessionManager.Cookie.Persist = false                 // notifications don't outlive the browser session
	c.SessionManager.Cookie.SameSite = http.SameSiteLaxMode // good CSRF protection if HTTP GET doesn't modify anything
	c.SessionManager.Cookie.Secure = c.SecureCookies
	c.SessionManager.IdleTimeout = 12 * time.Hour
	c.SessionManager.Lifetime = 720 * time.Hour
}

// CreateBoard inserts a board with the default name and an empty canvas
// document. If projectID is not empty, the project must exist.
func (c *CoreDB) CreateBoard(projectID string) (string, error) {
	if projectID != "" {
		if _, err := c.OpenProject(projectID); err != nil {
			return "", err
		}
	}
	var id = uuid.NewString()
	return id, c.InsertBoard(id, DefaultBoardName, projectID, DefaultBoardData)
}

// CreateProject inserts a project with the default name.
func (c *CoreDB) CreateProject() (string, error) {
	var id = uuid.NewString()
	return id, c.InsertProject(id, DefaultProjectName)
}

// RenameBoard shadows BoardDB.SetBoardName.
func (c *CoreDB) RenameBoard(b DBBoard, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("board name can't be empty")
	}
	return c.SetBoardName(b, name)
}

// SaveBoard stores a new canvas document and, if given, a new name.
// Concurrent saves are not coordinated, the last write wins.
func (c *CoreDB) SaveBoard(b DBBoard, name, data string) error {
	if !json.Valid([]byte(data)) {
		return errors.New("board data is not valid JSON")
	}
	if name = strings.TrimSpace(name); name != "" && name != b.Name() {
		if err := c.SetBoardName(b, name); err != nil {
			return err
		}
	}
	return c.SetBoardData(b, data)
}

// MoveBoard shadows BoardDB.SetBoardProject. An empty projectID moves the
// board out of its project, any other projectID must exist.
func (c *CoreDB) MoveBoard(b DBBoard, projectID string) error {
	if projectID != "" {
		if _, err := c.OpenProject(projectID); err != nil {
			return err
		}
	}
	if projectID == b.ProjectID() {
		return nil
	}
	return c.SetBoardProject(b, projectID)
}

// ToggleBoardShared flips the shared flag and returns the new state.
func (c *CoreDB) ToggleBoardShared(b DBBoard) (bool, error) {
	var shared = !b.Shared()
	return shared, c.SetBoardShared(b, shared)
}

// RenameProject shadows ProjectDB.SetProjectName.
func (c *CoreDB) RenameProject(p DBProject, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("project name can't be empty")
	}
	return c.SetProjectName(p, name)
}

// DescribeProject shadows ProjectDB.SetProjectDescription.
func (c *CoreDB) DescribeProject(p DBProject, description string) error {
	return c.SetProjectDescription(p, strings.TrimSpace(description))
}

// RemoveProject unassigns the boards of a project, then deletes it.
// Boards are never deleted along with their project.
func (c *CoreDB) RemoveProject(p DBProject) error {
	if err := c.ClearProject(p.ID()); err != nil {
		return err
	}
	return c.DeleteProject(p)
}
