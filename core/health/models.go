package health

import (
	"time"

	"github.com/tmalu/studyhub/core"
)

// DailyGoal is the number of water glasses to hit in a day.
const DailyGoal = 10

// WaterLog records a user's water intake for one day.
type WaterLog struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	Day       time.Time `json:"day"`
	Glasses   int       `json:"glasses"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

func (wl WaterLog) GoalReached() bool { return wl.Glasses >= DailyGoal }

// NewWaterLog contains information needed to record water intake.
type NewWaterLog struct {
	Email   string `json:"email" validate:"required,email"`
	Day     string `json:"day" validate:"omitempty"`
	Glasses int    `json:"glasses" validate:"min=0,max=10"`
}

func (nw *NewWaterLog) Validate() error {
	nw.Email = core.CleanString(nw.Email, true /* lower */)
	nw.Day = core.CleanString(nw.Day)
	return core.Validate.Struct(nw)
}
