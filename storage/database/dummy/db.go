package dummydb

import (
	"context"
	"database/sql"
	"sync"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/course"
	"github.com/tmalu/studyhub/core/expense"
	"github.com/tmalu/studyhub/core/health"
	"github.com/tmalu/studyhub/core/planner"
	"github.com/tmalu/studyhub/core/user"
)

type (
	DB struct {
		noSQL
		txMu sync.Mutex // serializes transactions

		user    *userTable
		course  *courseTable
		expense *expenseTable
		planner *plannerTable
		health  *healthTable
	}

	userTable struct {
		sync.RWMutex
		nextID int
		table  map[int]*user.User
	}

	courseTable struct {
		sync.RWMutex
		nextCourseID  int
		nextSubjectID int
		nextRegID     int
		courses       map[int]*course.Course
		subjects      map[int]*course.Subject
		registrations map[int]*course.Registration
	}

	expenseTable struct {
		sync.RWMutex
		nextID int
		table  map[int]*expense.Expense
	}

	plannerTable struct {
		sync.RWMutex
		nextID int
		table  map[int]*planner.Task
	}

	healthTable struct {
		sync.RWMutex
		nextID int
		table  map[int]*health.WaterLog
	}
)

var _ core.DB = (*DB)(nil)

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{table: make(map[int]*user.User)},
		course: &courseTable{
			courses:       make(map[int]*course.Course),
			subjects:      make(map[int]*course.Subject),
			registrations: make(map[int]*course.Registration),
		},
		expense: &expenseTable{table: make(map[int]*expense.Expense)},
		planner: &plannerTable{table: make(map[int]*planner.Task)},
		health:  &healthTable{table: make(map[int]*health.WaterLog)},
	}
	return db, nil
}

// BeginTxx takes a database-wide lock: check-then-insert sequences are as
// serialized here as they are behind the row lock in postgres.
func (db *DB) BeginTxx(ctx context.Context, opts *sql.TxOptions) (core.DBTransactor, error) {
	db.txMu.Lock()
	return &transactor{db: db}, nil
}

type transactor struct {
	noSQL
	db   *DB
	done bool
}

func (t *transactor) Commit() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.db.txMu.Unlock()
	return nil
}

func (t *transactor) Rollback() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.db.txMu.Unlock()
	return nil
}

// noSQL satisfies core.DBExecutor; the dummy repositories work on Go maps
// and never issue raw SQL.
type noSQL struct{}

func (noSQL) Exec(query string, args ...interface{}) (sql.Result, error) {
	panic("dummydb: raw SQL not supported")
}
func (noSQL) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	panic("dummydb: raw SQL not supported")
}
func (noSQL) Query(query string, args ...interface{}) (*sql.Rows, error) {
	panic("dummydb: raw SQL not supported")
}
func (noSQL) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	panic("dummydb: raw SQL not supported")
}
func (noSQL) QueryRow(query string, args ...interface{}) *sql.Row {
	panic("dummydb: raw SQL not supported")
}
func (noSQL) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	panic("dummydb: raw SQL not supported")
}
