package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core/expense"
	"github.com/tmalu/studyhub/core/user"
)

type expenseApi struct {
	svc expense.Service
}

func registerExpenseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc expense.Service) {
	api := expenseApi{svc: svc}

	g.POST("/expense", api.create, jwt)
	g.GET("/expenses/:email", api.query, jwt, emailOwnerMiddleware())
}

// Handlers

func (api *expenseApi) create(ctx echo.Context) error {
	var data expense.NewExpense
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExpense")
	}
	if !ownsEmail(ctx, data.Email) {
		return errHttpNotFound
	}

	exp, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, exp)
}

func (api *expenseApi) query(ctx echo.Context) error {
	expenses, err := api.svc.List(ctx.Request().Context(), ctx.Param("email"), ctx.QueryParam("filter"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying expenses")
	}
	if expenses == nil {
		expenses = []expense.Expense{}
	}
	return ctx.JSON(http.StatusOK, expenses)
}
