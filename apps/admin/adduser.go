package main

import (
	"github.com/trezcool/tathmini/core"
	"github.com/trezcool/tathmini/core/user"
)

// addUser creates a user.User, or updates their password if they already exist.
func (cli *commandLine) addUser(uname, pwd string) error {
	uname = core.CleanString(uname, true /* lower */)

	usr, err := cli.usrRepo.GetUserByUsername(uname)
	if err != nil {
		if err != user.ErrNotFound {
			return err
		}
		usr = user.User{Username: uname}
		if err = usr.SetPassword(pwd); err != nil {
			return err
		}
		_, err = cli.usrRepo.CreateUser(usr)
		return err
	}

	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err = cli.usrRepo.UpdateUser(usr)
	return err
}
