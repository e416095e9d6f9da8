package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/trezcool/ratiba/core/account"
	"github.com/trezcool/ratiba/core/routine"
	"github.com/trezcool/ratiba/core/student"
)

func CreateAccount(
	t *testing.T,
	repo account.Repository,
	uname, email, pwd string,
	role account.Role,
	createdAt ...time.Time,
) account.Account {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	acct := account.Account{
		Username:  uname,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
	}
	if pwd != "" {
		if err := acct.SetPassword(pwd); err != nil {
			t.Fatalf("CreateAccount() failed: %v", err)
		}
	}
	acct, err := repo.CreateAccount(context.Background(), acct)
	if err != nil {
		t.Fatalf("CreateAccount() failed: %v", err)
	}
	return acct
}

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	name, grade string,
	parentID int,
) student.Student {
	stu := student.Student{
		Name:       name,
		ClassGrade: grade,
		ParentID:   parentID,
		CreatedAt:  time.Now().UTC(),
	}
	stu, err := repo.CreateStudent(context.Background(), stu)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return stu
}

func CreateRoutine(
	t *testing.T,
	repo routine.Repository,
	studentID int,
	date string,
	createdBy int,
) routine.Routine {
	day, err := time.Parse(routine.DateFormat, date)
	if err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}
	rtn := routine.Routine{
		StudentID: studentID,
		Date:      day,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	rtn, err = repo.UpsertRoutine(context.Background(), rtn)
	if err != nil {
		t.Fatalf("CreateRoutine() failed: %v", err)
	}
	return rtn
}
