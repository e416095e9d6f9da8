package account_test

import (
	"context"
	"testing"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/account"
	emailsvc "github.com/trezcool/ratiba/services/email"
	dummydb "github.com/trezcool/ratiba/storage/database/dummy"
	testutil "github.com/trezcool/ratiba/tests"
)

func setup(t *testing.T) (*account.Service, account.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open() failed: %v", err)
	}
	conf := &core.Config{AppName: "Ratiba", TestMode: true}
	repo := dummydb.NewAccountRepository(db)
	svc := account.NewService(repo, emailsvc.NewConsoleServiceMock(conf), conf)
	return svc, repo
}

func TestService_Authenticate(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateAccount(t, repo, "bob", "bob@test.cd", "s3cr3t!", account.RoleParent)

	tests := []struct {
		name    string
		uname   string
		pwd     string
		wantErr error
	}{
		// unknown username and wrong password fail identically
		{name: "unknown username", uname: "eve", pwd: "s3cr3t!", wantErr: account.ErrInvalidCredentials},
		{name: "wrong password", uname: "bob", pwd: "nope", wantErr: account.ErrInvalidCredentials},
		{name: "empty password", uname: "bob", wantErr: account.ErrInvalidCredentials},
		{name: "ok", uname: "bob", pwd: "s3cr3t!"},
		{name: "ok mixed case username", uname: " Bob ", pwd: "s3cr3t!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, err := svc.Authenticate(ctx, tt.uname, tt.pwd)
			if err != tt.wantErr {
				t.Fatalf("Authenticate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				if acct.Username != "bob" {
					t.Errorf("Authenticate() username = %q, want %q", acct.Username, "bob")
				}
				if acct.LastLogin.IsZero() {
					t.Error("Authenticate() did not stamp LastLogin")
				}
			}
		})
	}
}

func TestService_Register(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	acct, err := svc.Register(ctx, account.NewAccount{
		Username: "alice",
		Email:    "alice@test.cd",
		Password: "s3cr3t!",
		Role:     account.RoleParent,
	})
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if acct.ID == 0 {
		t.Error("Register() did not assign an ID")
	}
	if acct.Role != account.RoleParent {
		t.Errorf("Register() role = %q, want %q", acct.Role, account.RoleParent)
	}
	if err = acct.CheckPassword("s3cr3t!"); err != nil {
		t.Errorf("Register() stored an unusable password: %v", err)
	}

	// welcome email went out
	found := false
	for _, msg := range emailsvc.SentMessages {
		for _, to := range msg.To {
			if to.Address == "alice@test.cd" {
				found = true
			}
		}
	}
	if !found {
		t.Error("Register() did not send the welcome email")
	}

	// duplicates are rejected
	if _, err = svc.Register(ctx, account.NewAccount{
		Username: "alice",
		Email:    "alice2@test.cd",
		Password: "s3cr3t!",
		Role:     account.RoleParent,
	}); err != account.ErrUsernameExists {
		t.Errorf("Register() error = %v, want %v", err, account.ErrUsernameExists)
	}
}

func TestService_CheckUniqueness(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	testutil.CreateAccount(t, repo, "bob", "bob@test.cd", "s3cr3t!", account.RoleParent)

	tests := []struct {
		name      string
		uname     string
		email     string
		wantField string
	}{
		{name: "available", uname: "alice", email: "alice@test.cd"},
		{name: "username taken", uname: "bob", email: "alice@test.cd", wantField: "username"},
		{name: "email taken", uname: "alice", email: "bob@test.cd", wantField: "email"},
		// username wins when both are taken
		{name: "both taken", uname: "bob", email: "bob@test.cd", wantField: "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckUniqueness(ctx, tt.uname, tt.email)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("CheckUniqueness() error = %v, want nil", err)
				}
				return
			}
			vErr, ok := err.(*core.ValidationError)
			if !ok {
				t.Fatalf("CheckUniqueness() error = %v, want *core.ValidationError", err)
			}
			if len(vErr.Fields) != 1 || vErr.Fields[0].Field != tt.wantField {
				t.Errorf("CheckUniqueness() fields = %v, want field %q", vErr.Fields, tt.wantField)
			}
		})
	}
}
