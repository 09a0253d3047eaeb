package planner

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/tmalu/studyhub/core"
)

// Task categories
const (
	CategoryDaily   = "daily"
	CategoryWeekly  = "weekly"
	CategoryMonthly = "monthly"
)

// Task is a curriculum planner entry.
type Task struct {
	ID        int         `json:"id"`
	UserID    int         `json:"user_id"`
	Title     string      `json:"title"`
	Due       time.Time   `json:"due"`
	DueTime   string      `json:"due_time"`
	Category  string      `json:"category"`
	Note      null.String `json:"note"`
	Done      bool        `json:"done"`
	CreatedAt time.Time   `json:"created_at"` // UTC
}

// NewTask contains information needed to create a Task.
type NewTask struct {
	Email    string `json:"email" validate:"required,email"`
	Title    string `json:"title" validate:"required"`
	Date     string `json:"date" validate:"required"`
	Time     string `json:"time" validate:"omitempty"`
	Category string `json:"category" validate:"required,oneof=daily weekly monthly"`
	Note     string `json:"note"`
}

func (nt *NewTask) Validate() error {
	nt.Email = core.CleanString(nt.Email, true /* lower */)
	nt.Title = core.CleanString(nt.Title)
	nt.Date = core.CleanString(nt.Date)
	nt.Time = core.CleanString(nt.Time)
	nt.Category = core.CleanString(nt.Category, true /* lower */)
	return core.Validate.Struct(nt)
}
