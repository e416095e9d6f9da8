package dummydb

import (
	"context"
	"time"

	"github.com/trezcool/ratiba/core/account"
)

type accountRepository struct {
	db *accountTable
}

var _ account.Repository = (*accountRepository)(nil) // interface compliance check

func NewAccountRepository(db *DB) account.Repository {
	return &accountRepository{db: db.account}
}

func (repo *accountRepository) query() []account.Account {
	accts := make([]account.Account, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		accts = append(accts, *a)
	}
	return accts
}

func (repo *accountRepository) CheckUsernameUniqueness(ctx context.Context, username, email string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.query() {
		if acct.Username == username {
			return account.ErrUsernameExists
		}
	}
	for _, acct := range repo.query() {
		if acct.Email == email {
			return account.ErrEmailExists
		}
	}
	return nil
}

func (repo *accountRepository) CreateAccount(ctx context.Context, acct account.Account) (account.Account, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, a := range repo.db.table {
		if a.Username == acct.Username {
			return account.Account{}, account.ErrUsernameExists
		}
		if a.Email == acct.Email {
			return account.Account{}, account.ErrEmailExists
		}
	}

	repo.db.pk++
	acct.ID = repo.db.pk
	repo.db.table[acct.ID] = &acct
	return acct, nil
}

func (repo *accountRepository) QueryAllAccounts(ctx context.Context) ([]account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *accountRepository) GetAccountByID(ctx context.Context, id int) (account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if acct, ok := repo.db.table[id]; ok {
		return *acct, nil
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) GetAccountByUsername(ctx context.Context, username string) (account.Account, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, acct := range repo.query() {
		if acct.Username == username {
			return acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (repo *accountRepository) SetLastLogin(ctx context.Context, id int, at time.Time) (account.Account, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	acct, ok := repo.db.table[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	acct.LastLogin = at
	return *acct, nil
}
