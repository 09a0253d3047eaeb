package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/tmalu/studyhub/api/echo"
	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/course"
	"github.com/tmalu/studyhub/core/expense"
	"github.com/tmalu/studyhub/core/health"
	"github.com/tmalu/studyhub/core/planner"
	"github.com/tmalu/studyhub/core/user"
	emailsvc "github.com/tmalu/studyhub/services/email"
	logsvc "github.com/tmalu/studyhub/services/logger"
	"github.com/tmalu/studyhub/storage/database"
	sqlxrepos "github.com/tmalu/studyhub/storage/database/sqlx"
)

const shutdownTimeout = 20 * time.Second

func main() {
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up logger
	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std, core.Conf)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	// set up DB
	db, err := setUpDB()
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer db.Close()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(sqlxrepos.NewUserRepository(db.DB), mailSvc)
	courseSvc := course.NewService(db, sqlxrepos.NewCourseRepository(db.DB), usrSvc)
	expenseSvc := expense.NewService(sqlxrepos.NewExpenseRepository(db.DB), usrSvc)
	plannerSvc := planner.NewService(sqlxrepos.NewPlannerRepository(db.DB), usrSvc)
	healthSvc := health.NewService(sqlxrepos.NewHealthRepository(db.DB), usrSvc)

	logger.Info(fmt.Sprintf("Application initializing : version %q", core.Conf.Build))
	defer logger.Info("Application stopped")

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	server := echoapi.NewServer(
		&echoapi.Options{
			Address:        fmt.Sprintf(":%d", core.Conf.Server.Port),
			Logger:         logger,
			SignalShutdown: func() { shutdown <- syscall.SIGTERM },
			UserSvc:        usrSvc,
			CourseSvc:      courseSvc,
			ExpenseSvc:     expenseSvc,
			PlannerSvc:     plannerSvc,
			HealthSvc:      healthSvc,
		},
	)
	go server.Start()

	sig := <-shutdown
	logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Stop(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
	}
}

func setUpDB() (*database.DB, error) {
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		return nil, err
	}

	db, err := database.Open(core.Conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
