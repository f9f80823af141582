package sqldb

import (
	"database/sql"
	"errors"
	"time"

	"github.com/wansing/boardroom/core"
)

type board struct {
	id        string
	name      string
	projectId string
	shared    bool
	data      string
	tsCreated int64
	tsChanged int64
}

func (b *board) ID() string {
	return b.id
}

func (b *board) Name() string {
	return b.name
}

func (b *board) ProjectID() string {
	return b.projectId
}

func (b *board) Shared() bool {
	return b.shared
}

func (b *board) Data() string {
	return b.data
}

func (b *board) TsCreated() int64 {
	return b.tsCreated
}

func (b *board) TsChanged() int64 {
	return b.tsChanged
}

const boardCols = "id, projectId, name, shared, data, tsCreated, tsChanged"

type BoardDB struct {
	*sql.DB
	clearProject         *sql.Stmt
	countByProject       *sql.Stmt
	countByProjectShared *sql.Stmt
	delete               *sql.Stmt
	get                  *sql.Stmt
	getAll               *sql.Stmt
	getAllShared         *sql.Stmt
	getByProject         *sql.Stmt
	getByProjectShared   *sql.Stmt
	getUnassigned        *sql.Stmt
	getUnassignedShared  *sql.Stmt
	insert               *sql.Stmt
	setData              *sql.Stmt
	setName              *sql.Stmt
	setProject           *sql.Stmt
	setShared            *sql.Stmt
}

func NewBoardDB(db *sql.DB) *BoardDB {

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS board (
			id varchar(36) PRIMARY KEY,
			projectId varchar(36) NOT NULL DEFAULT '', /* empty means not in a project */
			name varchar(128) NOT NULL,
			shared int(1) NOT NULL DEFAULT 0,
			data text NOT NULL,
			tsCreated int(11) NOT NULL,
			tsChanged int(11) NOT NULL
		);`)
	if err != nil {
		panic(err)
	}

	var boardDB = &BoardDB{}
	boardDB.DB = db
	boardDB.clearProject = mustPrepare(db, "UPDATE board SET projectId = '' WHERE projectId = ?")
	boardDB.countByProject = mustPrepare(db, "SELECT COUNT(1) FROM board WHERE projectId = ?")
	boardDB.countByProjectShared = mustPrepare(db, "SELECT COUNT(1) FROM board WHERE projectId = ? AND shared = 1")
	boardDB.delete = mustPrepare(db, "DELETE FROM board WHERE id = ?")
	boardDB.get = mustPrepare(db, "SELECT "+boardCols+" FROM board WHERE id = ?")
	boardDB.getAll = mustPrepare(db, "SELECT "+boardCols+" FROM board ORDER BY tsChanged DESC")
	boardDB.getAllShared = mustPrepare(db, "SELECT "+boardCols+" FROM board WHERE shared = 1 ORDER BY tsChanged DESC")
	boardDB.getByProject = mustPrepare(db, "SELECT "+boardCols+" FROM board WHERE projectId = ? ORDER BY tsChanged DESC")
	boardDB.getByProjectShared = mustPrepare(db, "SELECT "+boardCols+" FROM board WHERE projectId = ? AND shared = 1 ORDER BY tsChanged DESC")
	boardDB.getUnassigned = mustPrepare(db, "SELECT "+boardCols+" FROM board WHERE projectId = '' ORDER BY tsChanged DESC")
	boardDB.getUnassignedShared = mustPrepare(db, "SELECT "+boardCols+" FROM board WHERE projectId = '' AND shared = 1 ORDER BY tsChanged DESC")
	boardDB.insert = mustPrepare(db, "INSERT INTO board (id, projectId, name, shared, data, tsCreated, tsChanged) VALUES (?, ?, ?, 0, ?, ?, ?)")
	boardDB.setData = mustPrepare(db, "UPDATE board SET data = ?, tsChanged = ? WHERE id = ?")
	boardDB.setName = mustPrepare(db, "UPDATE board SET name = ?, tsChanged = ? WHERE id = ?")
	boardDB.setProject = mustPrepare(db, "UPDATE board SET projectId = ?, tsChanged = ? WHERE id = ?")
	boardDB.setShared = mustPrepare(db, "UPDATE board SET shared = ?, tsChanged = ? WHERE id = ?")
	return boardDB
}

func (db *BoardDB) scanBoard(row *sql.Row) (*board, error) {
	var b = &board{}
	if err := row.Scan(&b.id, &b.projectId, &b.name, &b.shared, &b.data, &b.tsCreated, &b.tsChanged); err != nil {
		return nil, err
	}
	return b, nil
}

func (db *BoardDB) getBoards(stmt *sql.Stmt, args ...interface{}) ([]core.DBBoard, error) {

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards = []core.DBBoard{}

	for rows.Next() {
		var b = &board{}
		err := rows.Scan(&b.id, &b.projectId, &b.name, &b.shared, &b.data, &b.tsCreated, &b.tsChanged)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}

	return boards, rows.Err()
}

func (db *BoardDB) ClearProject(projectID string) error {
	_, err := db.clearProject.Exec(projectID)
	return err
}

func (db *BoardDB) CountProjectBoards(projectID string, sharedOnly bool) (int, error) {
	var stmt = db.countByProject
	if sharedOnly {
		stmt = db.countByProjectShared
	}
	var count int
	return count, stmt.QueryRow(projectID).Scan(&count)
}

func (db *BoardDB) DeleteBoard(b core.DBBoard) error {
	_, err := db.delete.Exec(b.ID())
	return err
}

func (db *BoardDB) GetBoard(id string) (core.DBBoard, error) {
	return db.scanBoard(db.get.QueryRow(id))
}

func (db *BoardDB) GetBoards(sharedOnly bool) ([]core.DBBoard, error) {
	if sharedOnly {
		return db.getBoards(db.getAllShared)
	}
	return db.getBoards(db.getAll)
}

func (db *BoardDB) GetProjectBoards(projectID string, sharedOnly bool) ([]core.DBBoard, error) {
	if sharedOnly {
		return db.getBoards(db.getByProjectShared, projectID)
	}
	return db.getBoards(db.getByProject, projectID)
}

func (db *BoardDB) GetUnassignedBoards(sharedOnly bool) ([]core.DBBoard, error) {
	if sharedOnly {
		return db.getBoards(db.getUnassignedShared)
	}
	return db.getBoards(db.getUnassigned)
}

func (db *BoardDB) InsertBoard(id, name, projectID, data string) error {
	var now = time.Now().Unix()
	_, err := db.insert.Exec(id, projectID, name, data, now, now)
	return err
}

func (db *BoardDB) IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (db *BoardDB) SetBoardData(b core.DBBoard, data string) error {
	var now = time.Now().Unix()
	_, err := db.setData.Exec(data, now, b.ID())
	if err == nil {
		b.(*board).data = data
		b.(*board).tsChanged = now
	}
	return err
}

func (db *BoardDB) SetBoardName(b core.DBBoard, name string) error {
	var now = time.Now().Unix()
	_, err := db.setName.Exec(name, now, b.ID())
	if err == nil {
		b.(*board).name = name
		b.(*board).tsChanged = now
	}
	return err
}

func (db *BoardDB) SetBoardProject(b core.DBBoard, projectID string) error {
	var now = time.Now().Unix()
	_, err := db.setProject.Exec(projectID, now, b.ID())
	if err == nil {
		b.(*board).projectId = projectID
		b.(*board).tsChanged = now
	}
	return err
}

func (db *BoardDB) SetBoardShared(b core.DBBoard, shared bool) error {
	var now = time.Now().Unix()
	_, err := db.setShared.Exec(shared, now, b.ID())
	if err == nil {
		b.(*board).shared = shared
		b.(*board).tsChanged = now
	}
	return err
}
