package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/planner"
)

type plannerRepository struct {
	db *sqlx.DB
}

var _ planner.Repository = (*plannerRepository)(nil) // interface compliance check

func NewPlannerRepository(db *sqlx.DB) *plannerRepository {
	return &plannerRepository{db: db}
}

func (repo plannerRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.db
}

const taskColumns = `id, user_id, title, due, due_time, category, note, done, created_at`

func (repo plannerRepository) CreateTask(ctx context.Context, task planner.Task, exec ...core.DBExecutor) (planner.Task, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO task (user_id, title, due, due_time, category, note, done, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		task.UserID, task.Title, task.Due, task.DueTime, task.Category, task.Note, task.Done, task.CreatedAt,
	).Scan(&task.ID)
	if err != nil {
		return planner.Task{}, errors.Wrap(err, "inserting task")
	}
	return task, nil
}

func (repo plannerRepository) QueryTasksByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]planner.Task, error) {
	rows, err := repo.getExec(exec).QueryContext(ctx,
		`SELECT `+taskColumns+` FROM task WHERE user_id = $1 ORDER BY due, id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	defer func() { _ = rows.Close() }()

	var tasks []planner.Task
	for rows.Next() {
		var task planner.Task
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Due, &task.DueTime, &task.Category, &task.Note, &task.Done, &task.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning task")
		}
		tasks = append(tasks, task)
	}
	return tasks, errors.Wrap(rows.Err(), "scanning tasks")
}

func (repo plannerRepository) GetTaskByID(ctx context.Context, id int, exec ...core.DBExecutor) (planner.Task, error) {
	var task planner.Task
	err := repo.getExec(exec).
		QueryRowContext(ctx, `SELECT `+taskColumns+` FROM task WHERE id = $1`, id).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Due, &task.DueTime, &task.Category, &task.Note, &task.Done, &task.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return planner.Task{}, planner.ErrNotFound
		}
		return planner.Task{}, errors.Wrap(err, "getting task")
	}
	return task, nil
}

func (repo plannerRepository) UpdateTask(ctx context.Context, task planner.Task, exec ...core.DBExecutor) (planner.Task, error) {
	res, err := repo.getExec(exec).ExecContext(ctx,
		`UPDATE task SET title = $1, due = $2, due_time = $3, category = $4, note = $5, done = $6 WHERE id = $7`,
		task.Title, task.Due, task.DueTime, task.Category, task.Note, task.Done, task.ID)
	if err != nil {
		return planner.Task{}, errors.Wrap(err, "updating task")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return planner.Task{}, planner.ErrNotFound
	}
	return task, nil
}

func (repo plannerRepository) DeleteTask(ctx context.Context, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM task WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting task")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return planner.ErrNotFound
	}
	return nil
}
