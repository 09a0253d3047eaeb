package planner

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/user"
)

var (
	// errors
	ErrNotFound = errors.New("task not found")

	errInvalidDate = errors.New("date must look like 2006-01-02")
)

type (
	Repository interface {
		CreateTask(ctx context.Context, task Task, exec ...core.DBExecutor) (Task, error)
		QueryTasksByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]Task, error)
		GetTaskByID(ctx context.Context, id int, exec ...core.DBExecutor) (Task, error)
		UpdateTask(ctx context.Context, task Task, exec ...core.DBExecutor) (Task, error)
		DeleteTask(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service interface {
		Add(ctx context.Context, nt NewTask) (Task, error)
		List(ctx context.Context, email string) ([]Task, error)
		Get(ctx context.Context, id int) (Task, error)
		// Toggle flips a task's done state.
		Toggle(ctx context.Context, id int) (Task, error)
		SetNote(ctx context.Context, id int, note string) (Task, error)
		Delete(ctx context.Context, id int) error
	}

	service struct {
		repo   Repository
		usrSvc user.Service
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, usrSvc user.Service) Service {
	return &service{
		repo:   repo,
		usrSvc: usrSvc,
	}
}

func (svc *service) Add(ctx context.Context, nt NewTask) (Task, error) {
	if err := nt.Validate(); err != nil {
		return Task{}, err
	}
	usr, err := svc.usrSvc.GetByEmail(ctx, nt.Email)
	if err != nil {
		return Task{}, err
	}

	due, err := time.Parse("2006-01-02", nt.Date)
	if err != nil {
		return Task{}, core.NewValidationError(errInvalidDate, core.FieldError{Field: "date", Error: errInvalidDate.Error()})
	}

	task := Task{
		UserID:    usr.ID,
		Title:     nt.Title,
		Due:       due,
		DueTime:   nt.Time,
		Category:  nt.Category,
		Note:      null.NewString(nt.Note, nt.Note != ""),
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.CreateTask(ctx, task)
}

func (svc *service) List(ctx context.Context, email string) ([]Task, error) {
	usr, err := svc.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryTasksByUserID(ctx, usr.ID)
}

func (svc *service) Get(ctx context.Context, id int) (Task, error) {
	return svc.repo.GetTaskByID(ctx, id)
}

func (svc *service) Toggle(ctx context.Context, id int) (Task, error) {
	task, err := svc.repo.GetTaskByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	task.Done = !task.Done
	return svc.repo.UpdateTask(ctx, task)
}

func (svc *service) SetNote(ctx context.Context, id int, note string) (Task, error) {
	task, err := svc.repo.GetTaskByID(ctx, id)
	if err != nil {
		return Task{}, err
	}
	note = core.CleanString(note)
	task.Note = null.NewString(note, note != "")
	return svc.repo.UpdateTask(ctx, task)
}

func (svc *service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteTask(ctx, id)
}
