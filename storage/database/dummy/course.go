package dummydb

import (
	"context"
	"sort"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db.course}
}

// CreateCourse and CreateSubject seed catalog fixtures; the API never creates either.
func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course, exec ...core.DBExecutor) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.nextCourseID++
	crs.ID = repo.db.nextCourseID
	repo.db.courses[crs.ID] = &crs
	return crs, nil
}

func (repo *courseRepository) CreateSubject(ctx context.Context, subj course.Subject, exec ...core.DBExecutor) (course.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.nextSubjectID++
	subj.ID = repo.db.nextSubjectID
	repo.db.subjects[subj.ID] = &subj
	return subj, nil
}

func (repo *courseRepository) QueryAllCourses(ctx context.Context, exec ...core.DBExecutor) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for _, crs := range repo.db.courses {
		courses = append(courses, *crs)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

func (repo *courseRepository) QuerySubjectsByCourseIDs(ctx context.Context, ids []int, exec ...core.DBExecutor) ([]course.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	wanted := make(map[int]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	var subjects []course.Subject
	for _, subj := range repo.db.subjects {
		if wanted[subj.CourseID] {
			subjects = append(subjects, *subj)
		}
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo *courseRepository) GetSubjectByID(ctx context.Context, id int, exec ...core.DBExecutor) (course.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if subj, ok := repo.db.subjects[id]; ok {
		return *subj, nil
	}
	return course.Subject{}, course.ErrSubjectNotFound
}

func (repo *courseRepository) QueryRegistrationsByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]course.Registration, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var regs []course.Registration
	for _, reg := range repo.db.registrations {
		if reg.UserID == userID {
			regs = append(regs, *reg)
		}
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs, nil
}

func (repo *courseRepository) GetRegistrationByID(ctx context.Context, id int, exec ...core.DBExecutor) (course.Registration, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if reg, ok := repo.db.registrations[id]; ok {
		return *reg, nil
	}
	return course.Registration{}, course.ErrRegistrationNotFound
}

func (repo *courseRepository) LockUserRegistrations(ctx context.Context, userID int, exec ...core.DBExecutor) error {
	// the dummy transactor already holds the database-wide lock
	return nil
}

func (repo *courseRepository) RegistrationExists(ctx context.Context, userID, subjectID int, semester string, exec ...core.DBExecutor) (bool, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, reg := range repo.db.registrations {
		if reg.UserID == userID && reg.SubjectID == subjectID && reg.Semester == semester {
			return true, nil
		}
	}
	return false, nil
}

func (repo *courseRepository) SemesterCredits(ctx context.Context, userID int, semester string, exec ...core.DBExecutor) (int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var total int
	for _, reg := range repo.db.registrations {
		if reg.UserID == userID && reg.Semester == semester {
			if subj, ok := repo.db.subjects[reg.SubjectID]; ok {
				total += subj.Credits
			}
		}
	}
	return total, nil
}

func (repo *courseRepository) CreateRegistration(ctx context.Context, reg course.Registration, exec ...core.DBExecutor) (course.Registration, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.nextRegID++
	reg.ID = repo.db.nextRegID
	repo.db.registrations[reg.ID] = &reg
	return reg, nil
}

func (repo *courseRepository) DeleteRegistration(ctx context.Context, id int, exec ...core.DBExecutor) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.registrations[id]; !ok {
		return course.ErrRegistrationNotFound
	}
	delete(repo.db.registrations, id)
	return nil
}
