package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/course"
	"github.com/tmalu/studyhub/core/user"
	"github.com/tmalu/studyhub/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

// catalogRepository extends course.Repository with the seeding inserts that
// only the CLI is allowed to perform.
type catalogRepository interface {
	course.Repository
	CreateCourse(ctx context.Context, crs course.Course, exec ...core.DBExecutor) (course.Course, error)
	CreateSubject(ctx context.Context, subj course.Subject, exec ...core.DBExecutor) (course.Subject, error)
}

type commandLine struct {
	db          *database.DB
	usrRepo     user.Repository
	catalogRepo catalogRepository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -email EMAIL [-admin] - create a user; the password will be prompted")
	fmt.Println("  seedcourses - load the default course catalog")
	fmt.Println("  migrate SUBCOMMAND [args] - run a goose migration command (up, down, status, ...)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserAdmin := addUserCmd.Bool("admin", false, "Grant the user admin rights.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserEmail, string(pwd), *addUserAdmin)
	case "seedcourses":
		return cli.seedCourses()
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}
