package dummydb

import (
	"sync"

	"github.com/trezcool/ratiba/core/account"
	"github.com/trezcool/ratiba/core/routine"
	"github.com/trezcool/ratiba/core/student"
)

// DB is an in-memory stand-in for the real database, used by tests and
// local tinkering.
type (
	DB struct {
		account *accountTable
		student *studentTable
		routine *routineTable
	}

	accountTable struct {
		sync.RWMutex
		pk    int
		table map[int]*account.Account
	}

	studentTable struct {
		sync.RWMutex
		pk    int
		table map[int]*student.Student
	}

	routineTable struct {
		sync.RWMutex
		pk    int
		table map[int]*routine.Routine
	}
)

func Open() (*DB, error) {
	db := &DB{
		account: &accountTable{table: make(map[int]*account.Account)},
		student: &studentTable{table: make(map[int]*student.Student)},
		routine: &routineTable{table: make(map[int]*routine.Routine)},
	}
	return db, nil
}
