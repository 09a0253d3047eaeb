package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/expense"
)

type expenseRepository struct {
	db *sqlx.DB
}

var _ expense.Repository = (*expenseRepository)(nil) // interface compliance check

func NewExpenseRepository(db *sqlx.DB) *expenseRepository {
	return &expenseRepository{db: db}
}

func (repo expenseRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.db
}

func (repo expenseRepository) CreateExpense(ctx context.Context, exp expense.Expense, exec ...core.DBExecutor) (expense.Expense, error) {
	err := repo.getExec(exec).QueryRowContext(ctx,
		`INSERT INTO expense (user_id, amount, description, date, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		exp.UserID, exp.Amount, exp.Description, exp.Date, exp.Category, exp.CreatedAt,
	).Scan(&exp.ID)
	if err != nil {
		return expense.Expense{}, errors.Wrap(err, "inserting expense")
	}
	return exp, nil
}

func (repo expenseRepository) QueryExpensesByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]expense.Expense, error) {
	rows, err := repo.getExec(exec).QueryContext(ctx,
		`SELECT id, user_id, amount, description, date, category, created_at
		   FROM expense WHERE user_id = $1 ORDER BY date DESC, id DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying expenses")
	}
	defer func() { _ = rows.Close() }()

	var expenses []expense.Expense
	for rows.Next() {
		var exp expense.Expense
		if err := rows.Scan(&exp.ID, &exp.UserID, &exp.Amount, &exp.Description, &exp.Date, &exp.Category, &exp.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning expense")
		}
		expenses = append(expenses, exp)
	}
	return expenses, errors.Wrap(rows.Err(), "scanning expenses")
}
