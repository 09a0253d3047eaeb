package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.db
}

const (
	courseColumns       = `id, name, description, credits, instructor, video_url, created_at`
	subjectColumns      = `id, course_id, name, description, credits, instructor, video_url, created_at`
	registrationColumns = `id, user_id, subject_id, course_id, name, semester, grade, created_at`
)

func scanCourses(rows *sql.Rows) ([]course.Course, error) {
	defer func() { _ = rows.Close() }()

	var courses []course.Course
	for rows.Next() {
		var crs course.Course
		if err := rows.Scan(&crs.ID, &crs.Name, &crs.Description, &crs.Credits, &crs.Instructor, &crs.VideoURL, &crs.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, crs)
	}
	return courses, rows.Err()
}

func scanSubjects(rows *sql.Rows) ([]course.Subject, error) {
	defer func() { _ = rows.Close() }()

	var subjects []course.Subject
	for rows.Next() {
		var subj course.Subject
		if err := rows.Scan(&subj.ID, &subj.CourseID, &subj.Name, &subj.Description, &subj.Credits, &subj.Instructor, &subj.VideoURL, &subj.CreatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, subj)
	}
	return subjects, rows.Err()
}

func scanRegistrations(rows *sql.Rows) ([]course.Registration, error) {
	defer func() { _ = rows.Close() }()

	var regs []course.Registration
	for rows.Next() {
		var reg course.Registration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.SubjectID, &reg.CourseID, &reg.Name, &reg.Semester, &reg.Grade, &reg.CreatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

// CreateCourse and CreateSubject seed catalog data; the API never creates either.
func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course, exec ...core.DBExecutor) (course.Course, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO course (name, description, credits, instructor, video_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		crs.Name, crs.Description, crs.Credits, crs.Instructor, crs.VideoURL, crs.CreatedAt,
	).Scan(&crs.ID)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "inserting course")
	}
	return crs, nil
}

func (repo courseRepository) CreateSubject(ctx context.Context, subj course.Subject, exec ...core.DBExecutor) (course.Subject, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO subject (course_id, name, description, credits, instructor, video_url, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		subj.CourseID, subj.Name, subj.Description, subj.Credits, subj.Instructor, subj.VideoURL, subj.CreatedAt,
	).Scan(&subj.ID)
	if err != nil {
		return course.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return subj, nil
}

func (repo courseRepository) QueryAllCourses(ctx context.Context, exec ...core.DBExecutor) ([]course.Course, error) {
	rows, err := repo.getExec(exec).QueryContext(ctx, `SELECT `+courseColumns+` FROM course ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses, err := scanCourses(rows)
	return courses, errors.Wrap(err, "scanning courses")
}

func (repo courseRepository) QuerySubjectsByCourseIDs(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]course.Subject, error) {
	query, args, err := sqlx.In(`SELECT `+subjectColumns+` FROM subject WHERE course_id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "building subjects query")
	}
	query = repo.db.Rebind(query)

	rows, err := repo.getExec(exec).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subjects, err := scanSubjects(rows)
	return subjects, errors.Wrap(err, "scanning subjects")
}

func (repo courseRepository) GetSubjectByID(ctx context.Context, id int, exec ...core.DBExecutor) (course.Subject, error) {
	var subj course.Subject
	err := repo.getExec(exec).
		QueryRowContext(ctx, `SELECT `+subjectColumns+` FROM subject WHERE id = $1`, id).
		Scan(&subj.ID, &subj.CourseID, &subj.Name, &subj.Description, &subj.Credits, &subj.Instructor, &subj.VideoURL, &subj.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Subject{}, course.ErrSubjectNotFound
		}
		return course.Subject{}, errors.Wrap(err, "getting subject")
	}
	return subj, nil
}

func (repo courseRepository) QueryRegistrationsByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]course.Registration, error) {
	rows, err := repo.getExec(exec).QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registered_course WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying registrations")
	}
	regs, err := scanRegistrations(rows)
	return regs, errors.Wrap(err, "scanning registrations")
}

func (repo courseRepository) GetRegistrationByID(ctx context.Context, id int, exec ...core.DBExecutor) (course.Registration, error) {
	var reg course.Registration
	err := repo.getExec(exec).
		QueryRowContext(ctx, `SELECT `+registrationColumns+` FROM registered_course WHERE id = $1`, id).
		Scan(&reg.ID, &reg.UserID, &reg.SubjectID, &reg.CourseID, &reg.Name, &reg.Semester, &reg.Grade, &reg.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return course.Registration{}, course.ErrRegistrationNotFound
		}
		return course.Registration{}, errors.Wrap(err, "getting registration")
	}
	return reg, nil
}

func (repo courseRepository) LockUserRegistrations(ctx context.Context, userID int, exec ...core.DBExecutor) error {
	// row lock on the owning user serializes check-then-insert
	_, err := repo.getExec(exec).ExecContext(ctx, `SELECT 1 FROM "user" WHERE id = $1 FOR UPDATE`, userID)
	return errors.Wrap(err, "locking user row")
}

func (repo courseRepository) RegistrationExists(ctx context.Context, userID, subjectID int, semester string, exec ...core.DBExecutor) (bool, error) {
	var exists bool
	err := repo.getExec(exec).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM registered_course WHERE user_id = $1 AND subject_id = $2 AND semester = $3)`,
		userID, subjectID, semester,
	).Scan(&exists)
	return exists, errors.Wrap(err, "checking registration existence")
}

func (repo courseRepository) SemesterCredits(ctx context.Context, userID int, semester string, exec ...core.DBExecutor) (int, error) {
	var total int
	err := repo.getExec(exec).QueryRowContext(ctx,
		`SELECT COALESCE(SUM(s.credits), 0)
		   FROM registered_course rc
		   JOIN subject s ON s.id = rc.subject_id
		  WHERE rc.user_id = $1 AND rc.semester = $2`,
		userID, semester,
	).Scan(&total)
	return total, errors.Wrap(err, "summing semester credits")
}

func (repo courseRepository) CreateRegistration(ctx context.Context, reg course.Registration, exec ...core.DBExecutor) (course.Registration, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO registered_course (user_id, subject_id, course_id, name, semester, grade, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		reg.UserID, reg.SubjectID, reg.CourseID, reg.Name, reg.Semester, reg.Grade, reg.CreatedAt,
	).Scan(&reg.ID)
	if err != nil {
		return course.Registration{}, errors.Wrap(err, "inserting registration")
	}
	return reg, nil
}

func (repo courseRepository) DeleteRegistration(ctx context.Context, id int, exec ...core.DBExecutor) error {
	res, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM registered_course WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting registration")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return course.ErrRegistrationNotFound
	}
	return nil
}
