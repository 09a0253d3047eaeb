package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core/health"
	"github.com/tmalu/studyhub/core/user"
)

type healthApi struct {
	svc health.Service
}

func registerHealthAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc health.Service) {
	api := healthApi{svc: svc}

	hg := g.Group("/health", jwt)
	hg.POST("/water", api.log)

	wg := hg.Group("/water/:email", emailOwnerMiddleware())
	wg.GET("", api.retrieve)
	wg.GET("/history", api.queryHistory)
}

// Handlers

func (api *healthApi) log(ctx echo.Context) error {
	var data health.NewWaterLog
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewWaterLog")
	}
	if !ownsEmail(ctx, data.Email) {
		return errHttpNotFound
	}

	wl, err := api.svc.Log(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusOK, wl)
}

// retrieve returns the water log for a day; defaults to today.
func (api *healthApi) retrieve(ctx echo.Context) error {
	var (
		wl  health.WaterLog
		err error
	)
	if raw := ctx.QueryParam("day"); raw != "" {
		var day time.Time
		if day, err = time.Parse("2006-01-02", raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid day; expected YYYY-MM-DD")
		}
		wl, err = api.svc.Get(ctx.Request().Context(), ctx.Param("email"), day)
	} else {
		wl, err = api.svc.Today(ctx.Request().Context(), ctx.Param("email"))
	}
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrNotFound, health.ErrNotFound:
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding water log")
	}
	return ctx.JSON(http.StatusOK, wl)
}

func (api *healthApi) queryHistory(ctx echo.Context) error {
	logs, err := api.svc.History(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying water logs")
	}
	if logs == nil {
		logs = []health.WaterLog{}
	}
	return ctx.JSON(http.StatusOK, logs)
}
