package expense

import (
	"time"

	"github.com/tmalu/studyhub/core"
)

// Expense belongs to exactly one user; never mutated after creation.
type Expense struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

// NewExpense contains information needed to record an expense.
type NewExpense struct {
	Email       string  `json:"email" validate:"required,email"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	Date        string  `json:"date" validate:"required"`
	Category    string  `json:"category" validate:"required"`
}

func (ne *NewExpense) Validate() error {
	ne.Email = core.CleanString(ne.Email, true /* lower */)
	ne.Description = core.CleanString(ne.Description)
	ne.Category = core.CleanString(ne.Category, true /* lower */)
	ne.Date = core.CleanString(ne.Date)
	return core.Validate.Struct(ne)
}
