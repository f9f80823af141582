package core

import (
	"database/sql"
	"errors"
	"sort"
	"time"
)

// in-memory repositories for testing the visibility layer

type memBoard struct {
	id        string
	name      string
	projectId string
	shared    bool
	data      string
	tsCreated int64
	tsChanged int64
}

func (b *memBoard) ID() string        { return b.id }
func (b *memBoard) Name() string      { return b.name }
func (b *memBoard) ProjectID() string { return b.projectId }
func (b *memBoard) Shared() bool      { return b.shared }
func (b *memBoard) Data() string      { return b.data }
func (b *memBoard) TsCreated() int64  { return b.tsCreated }
func (b *memBoard) TsChanged() int64  { return b.tsChanged }

type memBoardDB struct {
	boards map[string]*memBoard
}

func newMemBoardDB() *memBoardDB {
	return &memBoardDB{boards: make(map[string]*memBoard)}
}

func (db *memBoardDB) list(filter func(*memBoard) bool) []DBBoard {
	var result []DBBoard
	for _, b := range db.boards {
		if filter(b) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TsChanged() > result[j].TsChanged()
	})
	return result
}

func (db *memBoardDB) ClearProject(projectID string) error {
	for _, b := range db.boards {
		if b.projectId == projectID {
			b.projectId = ""
		}
	}
	return nil
}

func (db *memBoardDB) CountProjectBoards(projectID string, sharedOnly bool) (int, error) {
	return len(db.list(func(b *memBoard) bool {
		return b.projectId == projectID && (!sharedOnly || b.shared)
	})), nil
}

func (db *memBoardDB) DeleteBoard(b DBBoard) error {
	delete(db.boards, b.ID())
	return nil
}

func (db *memBoardDB) GetBoard(id string) (DBBoard, error) {
	if b, ok := db.boards[id]; ok {
		return b, nil
	}
	return nil, sql.ErrNoRows
}

func (db *memBoardDB) GetBoards(sharedOnly bool) ([]DBBoard, error) {
	return db.list(func(b *memBoard) bool {
		return !sharedOnly || b.shared
	}), nil
}

func (db *memBoardDB) GetProjectBoards(projectID string, sharedOnly bool) ([]DBBoard, error) {
	return db.list(func(b *memBoard) bool {
		return b.projectId == projectID && (!sharedOnly || b.shared)
	}), nil
}

func (db *memBoardDB) GetUnassignedBoards(sharedOnly bool) ([]DBBoard, error) {
	return db.list(func(b *memBoard) bool {
		return b.projectId == "" && (!sharedOnly || b.shared)
	}), nil
}

func (db *memBoardDB) InsertBoard(id, name, projectID, data string) error {
	var now = time.Now().Unix()
	db.boards[id] = &memBoard{id: id, name: name, projectId: projectID, data: data, tsCreated: now, tsChanged: now}
	return nil
}

func (db *memBoardDB) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (db *memBoardDB) SetBoardData(b DBBoard, data string) error {
	b.(*memBoard).data = data
	b.(*memBoard).tsChanged = time.Now().Unix()
	return nil
}

func (db *memBoardDB) SetBoardName(b DBBoard, name string) error {
	b.(*memBoard).name = name
	return nil
}

func (db *memBoardDB) SetBoardProject(b DBBoard, projectID string) error {
	b.(*memBoard).projectId = projectID
	return nil
}

func (db *memBoardDB) SetBoardShared(b DBBoard, shared bool) error {
	b.(*memBoard).shared = shared
	return nil
}

type memProject struct {
	id          string
	name        string
	description string
	tsCreated   int64
	tsChanged   int64
}

func (p *memProject) ID() string          { return p.id }
func (p *memProject) Name() string        { return p.name }
func (p *memProject) Description() string { return p.description }
func (p *memProject) TsCreated() int64    { return p.tsCreated }
func (p *memProject) TsChanged() int64    { return p.tsChanged }

type memProjectDB struct {
	projects map[string]*memProject
}

func newMemProjectDB() *memProjectDB {
	return &memProjectDB{projects: make(map[string]*memProject)}
}

func (db *memProjectDB) DeleteProject(p DBProject) error {
	delete(db.projects, p.ID())
	return nil
}

func (db *memProjectDB) GetProject(id string) (DBProject, error) {
	if p, ok := db.projects[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

func (db *memProjectDB) GetProjects() ([]DBProject, error) {
	var result []DBProject
	for _, p := range db.projects {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TsChanged() > result[j].TsChanged()
	})
	return result, nil
}

func (db *memProjectDB) InsertProject(id, name string) error {
	var now = time.Now().Unix()
	db.projects[id] = &memProject{id: id, name: name, tsCreated: now, tsChanged: now}
	return nil
}

func (db *memProjectDB) IsProjectNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (db *memProjectDB) SetProjectDescription(p DBProject, description string) error {
	p.(*memProject).description = description
	return nil
}

func (db *memProjectDB) SetProjectName(p DBProject, name string) error {
	p.(*memProject).name = name
	return nil
}

func newMemCoreDB() *CoreDB {
	var c = &CoreDB{cookiePath: "/"}
	c.BoardDB = newMemBoardDB()
	c.ProjectDB = newMemProjectDB()
	return c
}
