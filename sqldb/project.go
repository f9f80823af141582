package sqldb

import (
	"database/sql"
	"errors"
	"time"

	"github.com/wansing/boardroom/core"
)

type project struct {
	id          string
	name        string
	description string
	tsCreated   int64
	tsChanged   int64
}

func (p *project) ID() string {
	return p.id
}

func (p *project) Name() string {
	return p.name
}

func (p *project) Description() string {
	return p.description
}

func (p *project) TsCreated() int64 {
	return p.tsCreated
}

func (p *project) TsChanged() int64 {
	return p.tsChanged
}

type ProjectDB struct {
	*sql.DB
	delete         *sql.Stmt
	get            *sql.Stmt
	getAll         *sql.Stmt
	insert         *sql.Stmt
	setDescription *sql.Stmt
	setName        *sql.Stmt
}

func NewProjectDB(db *sql.DB) *ProjectDB {

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS project (
			id varchar(36) PRIMARY KEY,
			name varchar(128) NOT NULL,
			description text NOT NULL,
			tsCreated int(11) NOT NULL,
			tsChanged int(11) NOT NULL
		);`)
	if err != nil {
		panic(err)
	}

	var projectDB = &ProjectDB{}
	projectDB.DB = db
	projectDB.delete = mustPrepare(db, "DELETE FROM project WHERE id = ?")
	projectDB.get = mustPrepare(db, "SELECT id, name, description, tsCreated, tsChanged FROM project WHERE id = ?")
	projectDB.getAll = mustPrepare(db, "SELECT id, name, description, tsCreated, tsChanged FROM project ORDER BY tsChanged DESC")
	projectDB.insert = mustPrepare(db, "INSERT INTO project (id, name, description, tsCreated, tsChanged) VALUES (?, ?, '', ?, ?)")
	projectDB.setDescription = mustPrepare(db, "UPDATE project SET description = ?, tsChanged = ? WHERE id = ?")
	projectDB.setName = mustPrepare(db, "UPDATE project SET name = ?, tsChanged = ? WHERE id = ?")
	return projectDB
}

func (db *ProjectDB) DeleteProject(p core.DBProject) error {
	_, err := db.delete.Exec(p.ID())
	return err
}

func (db *ProjectDB) GetProject(id string) (core.DBProject, error) {
	var p = &project{}
	if err := db.get.QueryRow(id).Scan(&p.id, &p.name, &p.description, &p.tsCreated, &p.tsChanged); err != nil {
		return nil, err
	}
	return p, nil
}

func (db *ProjectDB) GetProjects() ([]core.DBProject, error) {

	rows, err := db.getAll.Query()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects = []core.DBProject{}

	for rows.Next() {
		var p = &project{}
		err := rows.Scan(&p.id, &p.name, &p.description, &p.tsCreated, &p.tsChanged)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

func (db *ProjectDB) InsertProject(id, name string) error {
	var now = time.Now().Unix()
	_, err := db.insert.Exec(id, name, now, now)
	return err
}

func (db *ProjectDB) IsProjectNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (db *ProjectDB) SetProjectDescription(p core.DBProject, description string) error {
	var now = time.Now().Unix()
	_, err := db.setDescription.Exec(description, now, p.ID())
	if err == nil {
		p.(*project).description = description
		p.(*project).tsChanged = now
	}
	return err
}

func (db *ProjectDB) SetProjectName(p core.DBProject, name string) error {
	var now = time.Now().Unix()
	_, err := db.setName.Exec(name, now, p.ID())
	if err == nil {
		p.(*project).name = name
		p.(*project).tsChanged = now
	}
	return err
}
