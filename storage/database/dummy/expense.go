package dummydb

import (
	"context"
	"sort"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/expense"
)

type expenseRepository struct {
	db *expenseTable
}

var _ expense.Repository = (*expenseRepository)(nil) // interface compliance check

func NewExpenseRepository(db *DB) expense.Repository {
	return &expenseRepository{db: db.expense}
}

func (repo *expenseRepository) CreateExpense(ctx context.Context, exp expense.Expense, exec ...core.DBExecutor) (expense.Expense, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.nextID++
	exp.ID = repo.db.nextID
	repo.db.table[exp.ID] = &exp
	return exp, nil
}

func (repo *expenseRepository) QueryExpensesByUserID(ctx context.Context, userID int, exec ...core.DBExecutor) ([]expense.Expense, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var expenses []expense.Expense
	for _, exp := range repo.db.table {
		if exp.UserID == userID {
			expenses = append(expenses, *exp)
		}
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].ID < expenses[j].ID })
	return expenses, nil
}
