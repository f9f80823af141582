package core

import (
	"errors"
	"testing"
)

func containsBoard(boards []DBBoard, id string) bool {
	for _, b := range boards {
		if b.ID() == id {
			return true
		}
	}
	return false
}

func TestVisibilityListing(t *testing.T) {

	var c = newMemCoreDB()

	shared, err := c.CreateBoard("")
	if err != nil {
		t.Fatal(err)
	}
	sharedBoard, _ := c.GetBoard(shared)
	if err := c.SetBoardShared(sharedBoard, true); err != nil {
		t.Fatal(err)
	}

	private, err := c.CreateBoard("")
	if err != nil {
		t.Fatal(err)
	}

	for _, test := range []struct {
		role        Role
		wantShared  bool
		wantPrivate bool
	}{
		{RoleUser, true, true},
		{RoleGuest, true, false},
		{RoleNone, true, false}, // defense in depth, the gate should have blocked this
	} {
		boards, err := c.BoardsFor(test.role)
		if err != nil {
			t.Fatal(err)
		}
		if got := containsBoard(boards, shared); got != test.wantShared {
			t.Errorf("role %v sees shared board: %v, want %v", test.role, got, test.wantShared)
		}
		if got := containsBoard(boards, private); got != test.wantPrivate {
			t.Errorf("role %v sees private board: %v, want %v", test.role, got, test.wantPrivate)
		}
	}
}

func TestVisibilityLookup(t *testing.T) {

	var c = newMemCoreDB()

	private, err := c.CreateBoard("")
	if err != nil {
		t.Fatal(err)
	}

	// users see the board
	if _, err := c.OpenBoard(RoleUser, private); err != nil {
		t.Errorf("user lookup = %v", err)
	}

	// guests get the same answer as for a missing id
	_, errHidden := c.OpenBoard(RoleGuest, private)
	_, errMissing := c.OpenBoard(RoleGuest, "no-such-board")
	if !errors.Is(errHidden, ErrNotFound) {
		t.Errorf("guest lookup of private board = %v, want ErrNotFound", errHidden)
	}
	if errHidden != errMissing {
		t.Errorf("hidden and missing must be indistinguishable: %v vs %v", errHidden, errMissing)
	}
}

func TestVisibilityViaProject(t *testing.T) {

	var c = newMemCoreDB()

	projectID, err := c.CreateProject()
	if err != nil {
		t.Fatal(err)
	}

	shared, _ := c.CreateBoard(projectID)
	sharedBoard, _ := c.GetBoard(shared)
	c.SetBoardShared(sharedBoard, true)

	private, _ := c.CreateBoard(projectID)

	// the project itself is visible to guests
	if _, err := c.OpenProject(projectID); err != nil {
		t.Fatalf("OpenProject = %v", err)
	}

	// but its board list applies the same predicate as the top-level listing
	boards, err := c.ProjectBoardsFor(RoleGuest, projectID)
	if err != nil {
		t.Fatal(err)
	}
	if !containsBoard(boards, shared) || containsBoard(boards, private) {
		t.Errorf("guest project listing leaked: %v", boards)
	}

	// board counts follow the caller's role too
	infos, err := c.ProjectsFor(RoleGuest)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].BoardCount != 1 {
		t.Errorf("guest board count = %+v, want 1", infos)
	}
	infos, err = c.ProjectsFor(RoleUser)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].BoardCount != 2 {
		t.Errorf("user board count = %+v, want 2", infos)
	}
}

func TestCreateBoardDefaults(t *testing.T) {

	var c = newMemCoreDB()

	id, err := c.CreateBoard("")
	if err != nil {
		t.Fatal(err)
	}

	board, err := c.OpenBoard(RoleUser, id)
	if err != nil {
		t.Fatal(err)
	}
	if board.Name() != DefaultBoardName {
		t.Errorf("name = %q, want %q", board.Name(), DefaultBoardName)
	}
	if board.Data() != DefaultBoardData {
		t.Errorf("data = %q, want the empty canvas document", board.Data())
	}
	if board.Shared() {
		t.Error("new boards must not be shared")
	}

	// creating in a project that does not exist fails
	if _, err := c.CreateBoard("no-such-project"); !errors.Is(err, ErrNotFound) {
		t.Errorf("CreateBoard in missing project = %v, want ErrNotFound", err)
	}
}

func TestSaveBoard(t *testing.T) {

	var c = newMemCoreDB()

	id, _ := c.CreateBoard("")
	board, _ := c.OpenBoard(RoleUser, id)

	if err := c.SaveBoard(board, "My Drawing", `{"elements":[{"type":"rectangle"}],"appState":{"viewBackgroundColor":"#fff"},"files":{}}`); err != nil {
		t.Fatal(err)
	}
	if board.Name() != "My Drawing" {
		t.Errorf("name = %q", board.Name())
	}

	// invalid JSON is rejected
	if err := c.SaveBoard(board, "", "{broken"); err == nil {
		t.Error("SaveBoard accepted invalid JSON")
	}

	// an empty name keeps the old one
	if err := c.SaveBoard(board, "  ", `{}`); err != nil {
		t.Fatal(err)
	}
	if board.Name() != "My Drawing" {
		t.Errorf("name after empty rename = %q", board.Name())
	}
}

func TestRenameValidation(t *testing.T) {

	var c = newMemCoreDB()

	id, _ := c.CreateBoard("")
	board, _ := c.OpenBoard(RoleUser, id)

	if err := c.RenameBoard(board, "   "); err == nil {
		t.Error("RenameBoard accepted a blank name")
	}
	if err := c.RenameBoard(board, "  Sketches  "); err != nil {
		t.Fatal(err)
	}
	if board.Name() != "Sketches" {
		t.Errorf("name = %q, want trimmed", board.Name())
	}

	projectID, _ := c.CreateProject()
	project, _ := c.OpenProject(projectID)
	if err := c.RenameProject(project, ""); err == nil {
		t.Error("RenameProject accepted a blank name")
	}
}

func TestMoveBoard(t *testing.T) {

	var c = newMemCoreDB()

	projectID, _ := c.CreateProject()
	id, _ := c.CreateBoard("")
	board, _ := c.OpenBoard(RoleUser, id)

	if err := c.MoveBoard(board, "no-such-project"); !errors.Is(err, ErrNotFound) {
		t.Errorf("MoveBoard to missing project = %v, want ErrNotFound", err)
	}
	if board.ProjectID() != "" {
		t.Error("failed move changed the board")
	}

	if err := c.MoveBoard(board, projectID); err != nil {
		t.Fatal(err)
	}
	if board.ProjectID() != projectID {
		t.Errorf("projectID = %q", board.ProjectID())
	}

	if err := c.MoveBoard(board, ""); err != nil {
		t.Fatal(err)
	}
	if board.ProjectID() != "" {
		t.Error("board was not moved out of the project")
	}
}

func TestRemoveProjectKeepsBoards(t *testing.T) {

	var c = newMemCoreDB()

	projectID, _ := c.CreateProject()
	id, _ := c.CreateBoard(projectID)

	project, _ := c.OpenProject(projectID)
	if err := c.RemoveProject(project); err != nil {
		t.Fatal(err)
	}

	if _, err := c.OpenProject(projectID); !errors.Is(err, ErrNotFound) {
		t.Errorf("project still there: %v", err)
	}

	board, err := c.OpenBoard(RoleUser, id)
	if err != nil {
		t.Fatalf("board was deleted along with its project: %v", err)
	}
	if board.ProjectID() != "" {
		t.Errorf("board projectID = %q, want empty", board.ProjectID())
	}
}

func TestToggleBoardShared(t *testing.T) {

	var c = newMemCoreDB()

	id, _ := c.CreateBoard("")
	board, _ := c.OpenBoard(RoleUser, id)

	shared, err := c.ToggleBoardShared(board)
	if err != nil || !shared {
		t.Fatalf("first toggle = %v, %v", shared, err)
	}
	if _, err := c.OpenBoard(RoleGuest, id); err != nil {
		t.Errorf("guest can't see shared board: %v", err)
	}

	shared, err = c.ToggleBoardShared(board)
	if err != nil || shared {
		t.Fatalf("second toggle = %v, %v", shared, err)
	}
	if _, err := c.OpenBoard(RoleGuest, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("guest sees unshared board: %v", err)
	}
}
