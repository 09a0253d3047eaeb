package expense

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/user"
)

// Period filters
const (
	FilterDaily   = "daily"
	FilterWeekly  = "weekly"
	FilterMonthly = "monthly"
)

var (
	NowFunc = time.Now // mockable

	errInvalidDate = errors.New("date must look like 2006-01-02")
)

type (
	Repository interface {
		CreateExpense(ctx context.Context, exp Expense, exec ...core.DBExecutor) (Expense, error)
		QueryExpensesByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]Expense, error)
	}

	Service interface {
		Add(ctx context.Context, ne NewExpense) (Expense, error)
		// List returns the user's expenses, narrowed to the current
		// day/ISO week/calendar month when filter is daily/weekly/monthly.
		// Unknown filter values return the full set.
		List(ctx context.Context, email, filter string) ([]Expense, error)
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

func (svc *service) Add(ctx context.Context, ne NewExpense) (Expense, error) {
	if err := ne.Validate(); err != nil {
		return Expense{}, err
	}
	usr, err := svc.usrSvc.GetByEmail(ctx, ne.Email)
	if err != nil {
		return Expense{}, err
	}

	date, err := time.Parse("2006-01-02", ne.Date)
	if err != nil {
		return Expense{}, core.NewValidationError(errInvalidDate, core.FieldError{Field: "date", Error: errInvalidDate.Error()})
	}

	exp := Expense{
		UserID:      usr.ID,
		Amount:      ne.Amount,
		Description: ne.Description,
		Date:        date,
		Category:    ne.Category,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateExpense(ctx, exp)
}

func (svc *service) List(ctx context.Context, email, filter string) ([]Expense, error) {
	usr, err := svc.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	expenses, err := svc.repo.QueryExpensesByUserID(ctx, usr.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying expenses")
	}
	return filterByPeriod(expenses, filter), nil
}

// filterByPeriod narrows expenses against the server's current date, not the client's.
func filterByPeriod(expenses []Expense, filter string) []Expense {
	var match func(time.Time) bool
	now := NowFunc()

	switch filter {
	case FilterDaily:
		match = func(t time.Time) bool { return sameDay(t, now) }
	case FilterWeekly:
		match = func(t time.Time) bool { return sameISOWeek(t, now) }
	case FilterMonthly:
		match = func(t time.Time) bool {
			return t.Year() == now.Year() && t.Month() == now.Month()
		}
	default:
		return expenses
	}

	filtered := make([]Expense, 0, len(expenses))
	for _, exp := range expenses {
		if match(exp.Date) {
			filtered = append(filtered, exp)
		}
	}
	return filtered
}

func sameDay(t1, t2 time.Time) bool {
	y1, m1, d1 := t1.Date()
	y2, m2, d2 := t2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func sameISOWeek(t1, t2 time.Time) bool {
	y1, w1 := t1.ISOWeek()
	y2, w2 := t2.ISOWeek()
	return y1 == y2 && w1 == w2
}
