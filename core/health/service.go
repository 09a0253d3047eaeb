package health

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/user"
)

var (
	NowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("no water log for this day")

	errInvalidDay = errors.New("day must look like 2006-01-02")
)

type (
	Repository interface {
		// UpsertWaterLog creates or replaces the user's log for the day.
		UpsertWaterLog(ctx context.Context, log WaterLog, exec ...core.DBExecutor) (WaterLog, error)
		GetWaterLog(ctx context.Context, userID int, day time.Time, exec ...core.DBExecutor) (WaterLog, error)
		QueryWaterLogsByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]WaterLog, error)
	}

	Service interface {
		// Log upserts the glass count for a day; defaults to today.
		Log(ctx context.Context, nw NewWaterLog) (WaterLog, error)
		Today(ctx context.Context, email string) (WaterLog, error)
		Get(ctx context.Context, email string, day time.Time) (WaterLog, error)
		History(ctx context.Context, email string) ([]WaterLog, error)
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

func (svc *service) Log(ctx context.Context, nw NewWaterLog) (WaterLog, error) {
	if err := nw.Validate(); err != nil {
		return WaterLog{}, err
	}
	usr, err := svc.usrSvc.GetByEmail(ctx, nw.Email)
	if err != nil {
		return WaterLog{}, err
	}

	day := truncateDay(NowFunc())
	if nw.Day != "" {
		day, err = time.Parse("2006-01-02", nw.Day)
		if err != nil {
			return WaterLog{}, core.NewValidationError(errInvalidDay, core.FieldError{Field: "day", Error: errInvalidDay.Error()})
		}
	}

	log := WaterLog{
		UserID:    usr.ID,
		Day:       day,
		Glasses:   nw.Glasses,
		CreatedAt: time.Now().UTC(),
	}
	return svc.repo.UpsertWaterLog(ctx, log)
}

func (svc *service) Today(ctx context.Context, email string) (WaterLog, error) {
	return svc.Get(ctx, email, NowFunc())
}

func (svc *service) Get(ctx context.Context, email string, day time.Time) (WaterLog, error) {
	usr, err := svc.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return WaterLog{}, err
	}
	return svc.repo.GetWaterLog(ctx, usr.ID, truncateDay(day))
}

func (svc *service) History(ctx context.Context, email string) ([]WaterLog, error) {
	usr, err := svc.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryWaterLogsByUserID(ctx, usr.ID)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
