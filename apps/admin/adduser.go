package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/tmalu/studyhub/core"
	"github.com/tmalu/studyhub/core/user"
)

// addUser creates a user.User; the allowed-domain restriction does not apply here
// so staff accounts can live outside the student domain.
func (cli *commandLine) addUser(email, pwd string, isAdmin bool) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)

	if _, err := cli.usrRepo.GetUserByEmail(ctx, email); err == nil {
		return fmt.Errorf("user %q already exists", email)
	} else if errors.Cause(err) != user.ErrNotFound {
		return err
	}

	now := time.Now().UTC()
	usr := user.User{
		Email:     email,
		IsAdmin:   isAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	if _, err := cli.usrRepo.CreateUser(ctx, usr); err != nil {
		return err
	}
	return nil
}
