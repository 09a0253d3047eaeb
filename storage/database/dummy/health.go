package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/health"
)

type healthRepository struct {
	db *healthTable
}

var _ health.Repository = (*healthRepository)(nil) // interface compliance check

func NewHealthRepository(db *DB) health.Repository {
	return &healthRepository{db: db.health}
}

func (repo *healthRepository) UpsertWaterLog(ctx context.Context, log health.WaterLog, exec ...core.DBExecutor) (health.WaterLog, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, stored := range repo.db.table {
		if stored.UserID == log.UserID && stored.Day.Equal(log.Day) {
			stored.Glasses = log.Glasses
			return *stored, nil
		}
	}

	repo.db.nextID++
	log.ID = repo.db.nextID
	repo.db.table[log.ID] = &log
	return log, nil
}

func (repo *healthRepository) GetWaterLog(ctx context.Context, userID int, day time.Time, exec ...core.DBExecutor) (health.WaterLog, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, log := range repo.db.table {
		if log.UserID == userID && log.Day.Equal(day) {
			return *log, nil
		}
	}
	return health.WaterLog{}, health.ErrNotFound
}

func (repo *healthRepository) QueryWaterLogsByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]health.WaterLog, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var logs []health.WaterLog
	for _, log := range repo.db.table {
		if log.UserID == userID {
			logs = append(logs, *log)
		}
	}
	sort.Slice(logs, func(i, j int) bool { return logs[i].Day.After(logs[j].Day) })
	return logs, nil
}
