package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/health"
)

type healthRepository struct {
	db *sqlx.DB
}

var _ health.Repository = (*healthRepository)(nil) // interface compliance check

func NewHealthRepository(db *sqlx.DB) *healthRepository {
	return &healthRepository{db: db}
}

func (repo healthRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.db
}

func (repo healthRepository) UpsertWaterLog(ctx context.Context, log health.WaterLog, exec ...core.DBExecutor) (health.WaterLog, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO water_log (user_id, day, glasses, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, day) DO UPDATE SET glasses = EXCLUDED.glasses
		 RETURNING id`,
		log.UserID, log.Day, log.Glasses, log.CreatedAt,
	).Scan(&log.ID)
	if err != nil {
		return health.WaterLog{}, errors.Wrap(err, "upserting water log")
	}
	return log, nil
}

func (repo healthRepository) GetWaterLog(ctx context.Context, userID int, day time.Time, exec ...core.DBExecutor) (health.WaterLog, error) {
	var log health.WaterLog
	err := repo.getExec(exec).QueryRowContext(ctx,
		`SELECT id, user_id, day, glasses, created_at FROM water_log WHERE user_id = $1 AND day = $2`,
		userID, day,
	).Scan(&log.ID, &log.UserID, &log.Day, &log.Glasses, &log.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return health.WaterLog{}, health.ErrNotFound
		}
		return health.WaterLog{}, errors.Wrap(err, "getting water log")
	}
	return log, nil
}

func (repo healthRepository) QueryWaterLogsByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]health.WaterLog, error) {
	rows, err := repo.getExec(exec).QueryContext(ctx,
		`SELECT id, user_id, day, glasses, created_at FROM water_log WHERE user_id = $1 ORDER BY day DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying water logs")
	}
	defer func() { _ = rows.Close() }()

	var logs []health.WaterLog
	for rows.Next() {
		var log health.WaterLog
		if err := rows.Scan(&log.ID, &log.UserID, &log.Day, &log.Glasses, &log.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning water log")
		}
		logs = append(logs, log)
	}
	return logs, errors.Wrap(rows.Err(), "scanning water logs")
}
