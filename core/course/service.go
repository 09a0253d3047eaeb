package course

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/user"
)

// MaxSemesterCredits caps the total credits a user may register in one semester.
const MaxSemesterCredits = 33

var (
	// errors
	ErrNotFound             = errors.New("no enrollment found")
	ErrSubjectNotFound      = errors.New("subject not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("subject already registered for this semester")

	errNotCurrentSemester = errors.New("registration is only open for the current semester")
	errCreditLimitText    = fmt.Sprintf("registering this subject would exceed the %d credit limit", MaxSemesterCredits)
)

type (
	Repository interface {
		QueryAllCourses(ctx context.Context, exec ...core.DBExecutor) ([]Course, error)
		QuerySubjectsByCourseIDs(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]Subject, error)
		GetSubjectByID(ctx context.Context, id int, exec ...core.DBExecutor) (Subject, error)
		QueryRegistrationsByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]Registration, error)
		GetRegistrationByID(ctx context.Context, id int, exec ...core.DBExecutor) (Registration, error)
		// LockUserRegistrations serializes concurrent registrations for one user.
		LockUserRegistrations(ctx context.Context, userID int, exec ...core.DBExecutor) error
		RegistrationExists(ctx context.Context, userID, subjectID int, semester string, exec ...core.DBExecutor) (bool, error)
		SemesterCredits(ctx context.Context, userID int, semester string, exec ...core.DBExecutor) (int, error)
		CreateRegistration(ctx context.Context, reg Registration, exec ...core.DBExecutor) (Registration, error)
		DeleteRegistration(ctx context.Context, id int, exec ...core.DBExecutor) error
	}

	Service interface {
		ListCourses(ctx context.Context) ([]Course, error)
		// ListUserSubjects returns the subjects of the courses the user is
		// enrolled in; courseID narrows to one course when non-zero.
		ListUserSubjects(ctx context.Context, email string, courseID int) ([]Subject, error)
		Register(ctx context.Context, nr NewRegistration) (Registration, error)
		GetRegistration(ctx context.Context, id int) (Registration, error)
		DeleteRegistration(ctx context.Context, id int) error
		CompletedCourses(ctx context.Context, email string) ([]Registration, error)
	}

	service struct {
		db     core.DB
		repo   Repository
		usrSvc user.Service
	}
)

var _ Service = (*service)(nil)

func NewService(db core.DB, repo Repository, usrSvc user.Service) Service {
	return &service{
		db:     db,
		repo:   repo,
		usrSvc: usrSvc,
	}
}

func (svc *service) ListCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *service) ListUserSubjects(ctx context.Context, email string, courseID int) ([]Subject, error) {
	usr, err := svc.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	regs, err := svc.repo.QueryRegistrationsByUserID(ctx, usr.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying registrations")
	}

	seen := make(map[int]bool, len(regs))
	ids := make([]int, 0, len(regs))
	for _, reg := range regs {
		if courseID != 0 && reg.CourseID != courseID {
			continue
		}
		if !seen[reg.CourseID] {
			seen[reg.CourseID] = true
			ids = append(ids, reg.CourseID)
		}
	}
	if len(ids) == 0 {
		return nil, ErrNotFound
	}
	return svc.repo.QuerySubjectsByCourseIDs(ctx, ids)
}

// Register enrolls a user in a subject for the current semester.
// The duplicate and credit-cap checks run in one transaction holding a lock
// on the user's registrations, so concurrent calls cannot jointly exceed the cap.
func (svc *service) Register(ctx context.Context, nr NewRegistration) (Registration, error) {
	if err := nr.Validate(); err != nil {
		return Registration{}, err
	}

	sem, err := ParseSemester(nr.Semester)
	if err != nil {
		return Registration{}, core.NewValidationError(err, core.FieldError{Field: "semester", Error: err.Error()})
	}
	if sem != CurrentSemester() {
		return Registration{}, core.NewValidationError(errNotCurrentSemester,
			core.FieldError{Field: "semester", Error: errNotCurrentSemester.Error()})
	}

	usr, err := svc.usrSvc.GetByEmail(ctx, nr.Email)
	if err != nil {
		return Registration{}, err
	}

	subj, err := svc.repo.GetSubjectByID(ctx, nr.SubjectID)
	if err != nil {
		if errors.Cause(err) == ErrSubjectNotFound {
			return Registration{}, core.NewValidationError(err, core.FieldError{Field: "subject_id", Error: err.Error()})
		}
		return Registration{}, errors.Wrap(err, "finding subject")
	}

	tx, err := svc.db.BeginTxx(ctx, nil)
	if err != nil {
		return Registration{}, errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if err = svc.repo.LockUserRegistrations(ctx, usr.ID, tx); err != nil {
		return Registration{}, errors.Wrap(err, "locking registrations")
	}

	exists, err := svc.repo.RegistrationExists(ctx, usr.ID, subj.ID, sem.String(), tx)
	if err != nil {
		return Registration{}, errors.Wrap(err, "checking duplicate registration")
	}
	if exists {
		return Registration{}, core.NewValidationError(ErrAlreadyRegistered,
			core.FieldError{Field: "subject_id", Error: ErrAlreadyRegistered.Error()})
	}

	total, err := svc.repo.SemesterCredits(ctx, usr.ID, sem.String(), tx)
	if err != nil {
		return Registration{}, errors.Wrap(err, "summing semester credits")
	}
	if total+subj.Credits > MaxSemesterCredits {
		return Registration{}, core.NewValidationError(errors.New(errCreditLimitText),
			core.FieldError{Field: "semester", Error: errCreditLimitText})
	}

	reg := Registration{
		UserID:    usr.ID,
		SubjectID: subj.ID,
		CourseID:  subj.CourseID,
		Name:      subj.Name,
		Semester:  sem.String(),
		Grade:     null.NewString(nr.Grade, nr.Grade != ""),
		CreatedAt: time.Now().UTC(),
	}
	reg, err = svc.repo.CreateRegistration(ctx, reg, tx)
	if err != nil {
		return Registration{}, errors.Wrap(err, "creating registration")
	}

	if err = tx.Commit(); err != nil {
		return Registration{}, errors.Wrap(err, "committing registration")
	}
	return reg, nil
}

func (svc *service) GetRegistration(ctx context.Context, id int) (Registration, error) {
	return svc.repo.GetRegistrationByID(ctx, id)
}

func (svc *service) DeleteRegistration(ctx context.Context, id int) error {
	return svc.repo.DeleteRegistration(ctx, id)
}

// CompletedCourses returns the user's past-semester registrations, grades included.
func (svc *service) CompletedCourses(ctx context.Context, email string) ([]Registration, error) {
	usr, err := svc.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	regs, err := svc.repo.QueryRegistrationsByUserID(ctx, usr.ID)
	if err != nil {
		return nil, errors.Wrap(err, "querying registrations")
	}

	completed := make([]Registration, 0, len(regs))
	for _, reg := range regs {
		sem, err := ParseSemester(reg.Semester)
		if err != nil {
			continue // legacy rows with free-form semesters
		}
		if sem.IsPast() {
			completed = append(completed, reg)
		}
	}
	return completed, nil
}
