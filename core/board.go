package core

import (
	"errors"
)

var ErrNotFound = errors.New("not found")
var ErrUnauthorized = errors.New("unauthorized")

const DefaultBoardName = "Untitled Board"

// DefaultBoardData is an empty drawing in the format the embedded canvas
// widget saves and loads.
const DefaultBoardData = `{"elements":[],"appState":{"viewBackgroundColor":"#ffffff"},"files":{}}`

type DBBoard interface {
	ID() string
	Name() string
	ProjectID() string // empty if the board is not in a project
	Shared() bool
	Data() string // opaque canvas document, JSON
	TsCreated() int64
	TsChanged() int64
}

type BoardDB interface {
	ClearProject(projectID string) error // unassigns all boards of a project
	CountProjectBoards(projectID string, sharedOnly bool) (int, error)
	DeleteBoard(b DBBoard) error
	GetBoard(id string) (DBBoard, error)
	GetBoards(sharedOnly bool) ([]DBBoard, error)
	GetProjectBoards(projectID string, sharedOnly bool) ([]DBBoard, error)
	GetUnassignedBoards(sharedOnly bool) ([]DBBoard, error)
	InsertBoard(id, name, projectID, data string) error
	IsNotFound(err error) bool
	SetBoardData(b DBBoard, data string) error
	SetBoardName(b DBBoard, name string) error
	SetBoardProject(b DBBoard, projectID string) error
	SetBoardShared(b DBBoard, shared bool) error
}

// sharedOnly returns the listing predicate for a role. Everything below
// RoleUser is restricted to shared boards. The gate should have turned
// away unauthenticated requests already, this is the second layer.
func sharedOnly(role Role) bool {
	return role != RoleUser
}

// OpenBoard fetches a board by id, honoring the role of the caller.
// A board which is hidden from the caller yields the same ErrNotFound as
// an id that does not exist, so guests cannot probe for private boards.
func (c *CoreDB) OpenBoard(role Role, id string) (DBBoard, error) {
	board, err := c.BoardDB.GetBoard(id)
	if err != nil {
		if c.BoardDB.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sharedOnly(role) && !board.Shared() {
		return nil, ErrNotFound
	}
	return board, nil
}

// BoardsFor lists all boards visible to the role, most recently changed first.
func (c *CoreDB) BoardsFor(role Role) ([]DBBoard, error) {
	return c.GetBoards(sharedOnly(role))
}

// ProjectBoardsFor lists the boards of a project visible to the role.
// The predicate is the same as in BoardsFor, reaching a board through its
// project must not widen visibility.
func (c *CoreDB) ProjectBoardsFor(role Role, projectID string) ([]DBBoard, error) {
	return c.GetProjectBoards(projectID, sharedOnly(role))
}

// UnassignedBoardsFor lists the boards outside any project visible to the role.
func (c *CoreDB) UnassignedBoardsFor(role Role) ([]DBBoard, error) {
	return c.GetUnassignedBoards(sharedOnly(role))
}
