package main

import (
	"context"
	"time"

	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/core/user"
)

// addUser updates or creates a user.User
func (cli *commandLine) addUser(uname, first, last, role, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	now := time.Now().UTC()

	usr, err := cli.usrRepo.GetUserByUsername(ctx, uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{
			Username:  uname,
			CreatedAt: now,
		}
	}
	if first != "" {
		usr.FirstName = core.CleanString(first)
	}
	if last != "" {
		usr.LastName = core.CleanString(last)
	}
	usr.Role = user.ParseRole(role)
	usr.UpdatedAt = now
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if usr.ID == 0 {
		_, err = cli.usrRepo.CreateUser(ctx, usr)
	} else {
		_, err = cli.usrRepo.UpdateUser(ctx, usr)
	}
	return err
}
