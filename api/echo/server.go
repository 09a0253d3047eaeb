package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/course"
	"github.com/tmalu/studyhub/core/expense"
	"github.com/tmalu/studyhub/core/health"
	"github.com/tmalu/studyhub/core/planner"
	"github.com/tmalu/studyhub/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		Logger         core.Logger
		SignalShutdown func()

		UserSvc    user.Service
		CourseSvc  course.Service
		ExpenseSvc expense.Service
		PlannerSvc planner.Service
		HealthSvc  health.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.SignalShutdown == nil {
		opts.SignalShutdown = func() {}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{core.Conf.CORSOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.opts.SignalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(v1, s.opts.UserSvc)
	registerCourseAPI(v1, jwt, s.opts.CourseSvc)
	registerExpenseAPI(v1, jwt, s.opts.ExpenseSvc)
	registerPlannerAPI(v1, jwt, s.opts.PlannerSvc)
	registerHealthAPI(v1, jwt, s.opts.HealthSvc)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to StudyHub API!")
}
