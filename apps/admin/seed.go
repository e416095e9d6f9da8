package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/ratiba/core/account"
	"github.com/trezcool/ratiba/core/student"
)

const seedPassword = "password"

// seed loads a demo data set for local development: one admin, two parents
// and their students. It is a no-op when any account already exists.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	accts, err := cli.acctRepo.QueryAllAccounts(ctx)
	if err != nil {
		return err
	}
	if len(accts) > 0 {
		fmt.Println("accounts already exist; skipping")
		return nil
	}

	newAccount := func(uname, email string, role account.Role) (account.Account, error) {
		acct := account.Account{
			Username:  uname,
			Email:     email,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		}
		if err := acct.SetPassword(seedPassword); err != nil {
			return account.Account{}, err
		}
		return cli.acctRepo.CreateAccount(ctx, acct)
	}

	if _, err = newAccount("admin", "admin@example.com", account.RoleAdmin); err != nil {
		return err
	}
	parent1, err := newAccount("parent1", "parent1@example.com", account.RoleParent)
	if err != nil {
		return err
	}
	parent2, err := newAccount("parent2", "parent2@example.com", account.RoleParent)
	if err != nil {
		return err
	}

	students := []student.Student{
		{Name: "John Doe", ClassGrade: "Grade 5", ParentID: parent1.ID, CreatedAt: time.Now().UTC()},
		{Name: "Jane Smith", ClassGrade: "Grade 3", ParentID: parent1.ID, CreatedAt: time.Now().UTC()},
		{Name: "Mike Johnson", ClassGrade: "Grade 4", ParentID: parent2.ID, CreatedAt: time.Now().UTC()},
	}
	for _, stu := range students {
		if _, err = cli.stuRepo.CreateStudent(ctx, stu); err != nil {
			return err
		}
	}

	fmt.Println("demo data loaded")
	return nil
}
