package dummydb

import (
	"context"
	"sort"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/planner"
)

type plannerRepository struct {
	db *plannerTable
}

var _ planner.Repository = (*plannerRepository)(nil) // interface compliance check

func NewPlannerRepository(db *DB) planner.Repository {
	return &plannerRepository{db: db.planner}
}

func (repo *plannerRepository) CreateTask(ctx context.Context, task planner.Task, exec ...core.DBExecutor) (planner.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.nextID++
	task.ID = repo.db.nextID
	repo.db.table[task.ID] = &task
	return task, nil
}

func (repo *plannerRepository) QueryTasksByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]planner.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var tasks []planner.Task
	for _, task := range repo.db.table {
		if task.UserID == userID {
			tasks = append(tasks, *task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (repo *plannerRepository) GetTaskByID(ctx context.Context, id int, exec ...core.DBExecutor) (planner.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if task, ok := repo.db.table[id]; ok {
		return *task, nil
	}
	return planner.Task{}, planner.ErrNotFound
}

func (repo *plannerRepository) UpdateTask(ctx context.Context, task planner.Task, exec ...core.DBExecutor) (planner.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[task.ID]; !ok {
		return planner.Task{}, planner.ErrNotFound
	}
	repo.db.table[task.ID] = &task
	return task, nil
}

func (repo *plannerRepository) DeleteTask(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return planner.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
