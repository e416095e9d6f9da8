package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/account"
)

type accountRepository struct {
	db *sqlx.DB
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *sqlx.DB) account.Repository {
	return &accountRepository{db: db}
}

func (repo *accountRepository) CheckUsernameUniqueness(ctx context.Context, username, email string) error {
	var rows []account.Account
	err := repo.db.SelectContext(
		ctx, &rows,
		`SELECT username, email FROM account WHERE username = $1 OR email = $2`,
		username, email,
	)
	if err != nil {
		return errors.Wrap(err, "checking uniqueness")
	}
	for _, row := range rows {
		if row.Username == username {
			return account.ErrUsernameExists
		}
	}
	for _, row := range rows {
		if row.Email == email {
			return account.ErrEmailExists
		}
	}
	return nil
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	err := repo.db.QueryRowContext(
		ctx,
		`INSERT INTO account (username, email, role, password_hash, created_at, last_login)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		acct.Username, acct.Email, acct.Role, acct.PasswordHash, acct.CreatedAt, acct.LastLogin,
	).Scan(&acct.ID)
	if err != nil {
		// the unique constraints backstop racing registrations
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			switch pqErr.Constraint {
			case "account_username_key":
				return account.Account{}, account.ErrUsernameExists
			case "account_email_key":
				return account.Account{}, account.ErrEmailExists
			}
		}
		return account.Account{}, errors.Wrap(err, "creating account")
	}
	return acct, nil
}

func (repo *accountRepository) QueryAllAccounts(ctx context.Context) ([]account.Account, error) {
	var accts []account.Account
	if err := repo.db.SelectContext(ctx, &accts, `SELECT * FROM account`); err != nil {
		return nil, errors.Wrap(err, "querying accounts")
	}
	return accts, nil
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id int) (account.Account, error) {
	var acct account.Account
	err := repo.db.GetContext(ctx, &acct, `SELECT * FROM account WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "getting account by id")
	}
	return acct, nil
}

func (repo *accountRepository) GetAccountByUsername(ctx context.Context, username string) (account.Account, error) {
	var acct account.Account
	err := repo.db.GetContext(ctx, &acct, `SELECT * FROM account WHERE username = $1`, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "getting account by username")
	}
	return acct, nil
}

func (repo *accountRepository) SetLastLogin(ctx context.Context, id int, at time.Time) (account.Account, error) {
	var acct account.Account
	err := repo.db.GetContext(
		ctx, &acct,
		`UPDATE account SET last_login = $2 WHERE id = $1 RETURNING *`,
		id, at,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, errors.Wrap(err, "setting last login")
	}
	return acct, nil
}
