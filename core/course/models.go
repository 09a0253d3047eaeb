package course

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/tmalu/studyhub/core"
)

// Course represents a program (eg. one "Master of Computer Science" record)
// that owns many Subjects. Courses are seeded by the admin CLI, never via the API.
type Course struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Credits     int         `json:"credits"`
	Instructor  string      `json:"instructor"`
	VideoURL    null.String `json:"video_url"`
	CreatedAt   time.Time   `json:"created_at"` // UTC
}

// Subject is an individually enrollable unit belonging to a Course.
type Subject struct {
	ID          int         `json:"id"`
	CourseID    int         `json:"course_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Credits     int         `json:"credits"`
	Instructor  string      `json:"instructor"`
	VideoURL    null.String `json:"video_url"`
	CreatedAt   time.Time   `json:"created_at"` // UTC
}

// Registration records a user's enrollment in a subject for a semester.
// Name denormalizes the subject name at registration time; CourseID always
// equals the subject's parent course.
type Registration struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	SubjectID int         `json:"subject_id"`
	CourseID  int         `json:"course_id"`
	Name      string      `json:"name"`
	Semester  string      `json:"semester"`
	Grade     null.String `json:"grade"`
	CreatedAt time.Time   `json:"created_at"` // UTC
}

// NewRegistration contains information needed to register a subject.
type NewRegistration struct {
	Email     string `json:"email" validate:"required,email"`
	SubjectID int    `json:"subject_id" validate:"required"`
	Semester  string `json:"semester" validate:"required"`
	Grade     string `json:"grade" validate:"omitempty,max=3"`
}

func (nr *NewRegistration) Validate() error {
	nr.Email = core.CleanString(nr.Email, true /* lower */)
	nr.Semester = core.CleanString(nr.Semester)
	nr.Grade = core.CleanString(nr.Grade)
	return core.Validate.Struct(nr)
}
