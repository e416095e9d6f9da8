package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/ratiba/core"
)

var (
	// errors
	ErrNotFound           = errors.New("account not found")
	ErrEmailExists        = errors.New("an account with this email already exists")
	ErrUsernameExists     = errors.New("an account with this username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username, email string) error
		CreateAccount(ctx context.Context, acct Account) (Account, error)
		QueryAllAccounts(ctx context.Context) ([]Account, error)
		GetAccountByID(ctx context.Context, id int) (Account, error)
		GetAccountByUsername(ctx context.Context, username string) (Account, error)
		SetLastLogin(ctx context.Context, id int, at time.Time) (Account, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf}
}

func (svc *Service) CheckUniqueness(ctx context.Context, uname, email string) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname, email); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

// Register creates an Account from a validated NewAccount and sends the
// welcome email.
func (svc *Service) Register(ctx context.Context, na NewAccount) (Account, error) {
	acct := Account{
		Username:  na.Username,
		Email:     na.Email,
		Role:      na.Role,
		CreatedAt: time.Now().UTC(),
	}
	if err := acct.SetPassword(na.Password); err != nil {
		return Account{}, err
	}

	acct, err := svc.repo.CreateAccount(ctx, acct)
	if err != nil {
		return Account{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: acct.Username, Address: acct.Email}},
		Subject: "Welcome!",
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nYour %s account has been created. "+
				"You can now log in and start tracking daily routines.\n\n%s",
			acct.Username, svc.conf.AppName, svc.conf.FrontendBaseURL,
		),
	})
	return acct, nil
}

// Authenticate checks a username/password pair. Unknown username and wrong
// password both fail with ErrInvalidCredentials; callers must not learn
// which of the two it was.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (Account, error) {
	acct, err := svc.repo.GetAccountByUsername(ctx, core.CleanString(uname, true /* lower */))
	if err != nil {
		if err == ErrNotFound {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if err = acct.CheckPassword(pwd); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return svc.repo.SetLastLogin(ctx, acct.ID, time.Now().UTC())
}

func (svc *Service) QueryAll(ctx context.Context) ([]Account, error) {
	return svc.repo.QueryAllAccounts(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Account, error) {
	return svc.repo.GetAccountByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (Account, error) {
	return svc.repo.GetAccountByUsername(ctx, core.CleanString(uname, true /* lower */))
}
