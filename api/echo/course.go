package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core/course"
	"github.com/tmalu/studyhub/core/user"
)

type courseApi struct {
	svc course.Service
}

func registerCourseAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc course.Service) {
	api := courseApi{svc: svc}

	cg := g.Group("/courses", jwt)
	cg.GET("/all-courses", api.queryCourses)
	cg.POST("/register-course", api.register)
	cg.DELETE("/registrations/:id", api.destroyRegistration)

	eg := cg.Group("/:email", emailOwnerMiddleware())
	eg.GET("", api.querySubjects)
	eg.GET("/completed", api.queryCompleted)
}

// Handlers

func (api *courseApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.ListCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) querySubjects(ctx echo.Context) error {
	var courseID int
	if raw := ctx.QueryParam("course"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
		}
		courseID = id
	}

	subjects, err := api.svc.ListUserSubjects(ctx.Request().Context(), ctx.Param("email"), courseID)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrNotFound:
			return errHttpNotFound
		case course.ErrNotFound:
			return echo.NewHTTPError(http.StatusNotFound, course.ErrNotFound.Error())
		}
		return errors.Wrap(err, "querying user subjects")
	}
	if subjects == nil {
		subjects = []course.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *courseApi) queryCompleted(ctx echo.Context) error {
	regs, err := api.svc.CompletedCourses(ctx.Request().Context(), ctx.Param("email"))
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying completed courses")
	}
	if regs == nil {
		regs = []course.Registration{}
	}
	return ctx.JSON(http.StatusOK, regs)
}

func (api *courseApi) register(ctx echo.Context) error {
	var data course.NewRegistration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRegistration")
	}
	if !ownsEmail(ctx, data.Email) {
		return errHttpNotFound
	}

	reg, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return errHttpNotFound
		}
		return err
	}
	return ctx.JSON(http.StatusCreated, reg)
}

func (api *courseApi) destroyRegistration(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}

	reg, err := api.svc.GetRegistration(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == course.ErrRegistrationNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding registration")
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	if !(claims.IsAdmin || claims.UserID() == reg.UserID) {
		return errHttpNotFound
	}

	if err = api.svc.DeleteRegistration(ctx.Request().Context(), id); err != nil {
		if errors.Cause(err) == course.ErrRegistrationNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting registration")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "course deleted successfully"})
}
