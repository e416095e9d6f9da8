package main

import (
	"context"
	"time"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/account"
)

// addAdmin creates an ADMIN account.
func (cli *commandLine) addAdmin(uname, email, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	if err := cli.acctRepo.CheckUsernameUniqueness(ctx, uname, email); err != nil {
		return err
	}

	acct := account.Account{
		Username:  uname,
		Email:     email,
		Role:      account.RoleAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if err := acct.SetPassword(pwd); err != nil {
		return err
	}
	_, err := cli.acctRepo.CreateAccount(ctx, acct)
	return err
}
