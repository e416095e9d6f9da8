package main

import (
	"context"
	"testing"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/account"
	dummydb "github.com/trezcool/ratiba/storage/database/dummy"
	testutil "github.com/trezcool/ratiba/tests"
)

var acctRepo account.Repository

func setup(t *testing.T) *commandLine {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	acctRepo = dummydb.NewAccountRepository(db)

	// start CLI
	return &commandLine{
		conf:     &core.Config{AppName: "Ratiba", TestMode: true},
		acctRepo: acctRepo,
		stuRepo:  dummydb.NewStudentRepository(db),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_addAdmin(t *testing.T) {
	cli := setup(t)

	testutil.CreateAccount(t, acctRepo, "bob", "bob@test.cd", "s3cr3t!", account.RoleParent)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"addadmin"}, wantErr: errHelp},
		{name: "missing email", args: []string{"addadmin", "-username", "root"}, wantErr: errHelp},
		{name: "flags but no password", args: []string{"addadmin", "-username", "root", "-email", "root@test.cd"}, wantErr: errHelp},
		{name: "username taken", args: []string{"addadmin", "-username", "bob", "-email", "root@test.cd"}, pwd: "s3cr3t!", wantErr: account.ErrUsernameExists},
		{name: "email taken", args: []string{"addadmin", "-username", "root", "-email", "bob@test.cd"}, pwd: "s3cr3t!", wantErr: account.ErrEmailExists},
		{name: "ok", args: []string{"addadmin", "-username", "Root", "-email", "root@test.cd"}, pwd: "s3cr3t!"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	acct, err := acctRepo.GetAccountByUsername(context.Background(), "root")
	if err != nil {
		t.Fatalf("GetAccountByUsername() failed: %v", err)
	}
	if acct.Role != account.RoleAdmin {
		t.Errorf("role = %q, want %q", acct.Role, account.RoleAdmin)
	}
	if err = acct.CheckPassword("s3cr3t!"); err != nil {
		t.Errorf("stored password is unusable: %v", err)
	}
}

func Test_commandLine_seed(t *testing.T) {
	cli := setup(t)

	if err := cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}

	ctx := context.Background()
	accts, err := acctRepo.QueryAllAccounts(ctx)
	if err != nil {
		t.Fatalf("QueryAllAccounts() failed: %v", err)
	}
	if len(accts) != 3 {
		t.Fatalf("got %d accounts, want 3", len(accts))
	}

	parent1, err := acctRepo.GetAccountByUsername(ctx, "parent1")
	if err != nil {
		t.Fatalf("GetAccountByUsername() failed: %v", err)
	}
	stus, err := cli.stuRepo.FilterStudentsByParent(ctx, parent1.ID)
	if err != nil {
		t.Fatalf("FilterStudentsByParent() failed: %v", err)
	}
	if len(stus) != 2 {
		t.Errorf("got %d students for parent1, want 2", len(stus))
	}

	// second run is a no-op
	if err = cli.run([]string{"admin", "seed"}); err != nil {
		t.Fatalf("cli.run() failed: %v", err)
	}
	accts, _ = acctRepo.QueryAllAccounts(ctx)
	if len(accts) != 3 {
		t.Errorf("got %d accounts after reseed, want 3", len(accts))
	}
}
