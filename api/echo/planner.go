package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/planner"
	"github.com/tmalu/studyhub/core/user"
)

type plannerApi struct {
	svc planner.Service
}

func registerPlannerAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc planner.Service) {
	api := plannerApi{svc: svc}

	pg := g.Group("/planner", jwt)
	pg.POST("", api.create)
	pg.GET("/:email", api.query, emailOwnerMiddleware())

	tg := pg.Group("/tasks/:id", api.taskOwnerMiddleware())
	tg.PUT("/toggle", api.toggle)
	tg.PUT("/note", api.setNote)
	tg.DELETE("", api.destroy)
}

// taskOwnerMiddleware resolves the :id param into a Task and rejects callers
// that do not own it. The task is stashed in the context for the handler.
func (api *plannerApi) taskOwnerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			id, err := strconv.Atoi(ctx.Param("id"))
			if err != nil {
				return errHttpNotFound
			}
			task, err := api.svc.Get(ctx.Request().Context(), id)
			if err != nil {
				if errors.Cause(err) == planner.ErrNotFound {
					return errHttpNotFound
				}
				return errors.Wrap(err, "finding task")
			}
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if !(claims.IsAdmin || claims.UserID() == task.UserID) {
				return errHttpNotFound
			}
			ctx.Set("object", task)
			return next(ctx)
		}
	}
}

// Handlers

func (api *plannerApi) create(ctx echo.Context) error {
	var data planner.NewTask
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTask")
	}
	if !ownsEmail(ctx, data.Email) {
		return errHttpNotFound
	}

	task, err := api.svc.Add(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, task)
}

func (api *plannerApi) query(ctx echo.Context) error {
	tasks, err := api.svc.List(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying tasks")
	}
	if tasks == nil {
		tasks = []planner.Task{}
	}
	return ctx.JSON(http.StatusOK, tasks)
}

func (api *plannerApi) toggle(ctx echo.Context) error {
	task, ok := ctx.Get("object").(planner.Task)
	if !ok {
		return errHttpNotFound
	}
	task, err := api.svc.Toggle(ctx.Request().Context(), task.ID)
	if err != nil {
		return errors.Wrap(err, "toggling task")
	}
	return ctx.JSON(http.StatusOK, task)
}

func (api *plannerApi) setNote(ctx echo.Context) error {
	task, ok := ctx.Get("object").(planner.Task)
	if !ok {
		return errHttpNotFound
	}

	var data NoteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NoteRequest")
	}
	data.Note = core.CleanString(data.Note)

	task, err := api.svc.SetNote(ctx.Request().Context(), task.ID, data.Note)
	if err != nil {
		return errors.Wrap(err, "setting task note")
	}
	return ctx.JSON(http.StatusOK, task)
}

func (api *plannerApi) destroy(ctx echo.Context) error {
	task, ok := ctx.Get("object").(planner.Task)
	if !ok {
		return errHttpNotFound
	}
	if err := api.svc.Delete(ctx.Request().Context(), task.ID); err != nil {
		return errors.Wrap(err, "deleting task")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "task deleted successfully"})
}

type NoteRequest struct {
	Note string `json:"note"`
}
