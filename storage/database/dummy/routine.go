package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ratiba/core/routine"
)

type routineRepository struct {
	db *routineTable
}

var _ routine.Repository = (*routineRepository)(nil) // interface compliance check

func NewRoutineRepository(db *DB) routine.Repository {
	return &routineRepository{db: db.routine}
}

func (repo *routineRepository) query() []routine.Routine {
	rtns := make([]routine.Routine, 0, len(repo.db.table))
	for _, r := range repo.db.table {
		rtns = append(rtns, *r)
	}
	return rtns
}

// UpsertRoutine holds the write lock for the whole find-then-write, which is
// what the unique constraint gives the real repository.
func (repo *routineRepository) UpsertRoutine(ctx context.Context, rtn routine.Routine) (routine.Routine, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, orig := range repo.db.table {
		if orig.StudentID == rtn.StudentID && orig.Date.Equal(rtn.Date) {
			rtn.ID = orig.ID
			rtn.CreatedAt = orig.CreatedAt
			// feedback survives routine rewrites
			rtn.AdminFeedback = orig.AdminFeedback
			rtn.FeedbackDate = orig.FeedbackDate
			rtn.FeedbackBy = orig.FeedbackBy
			repo.db.table[rtn.ID] = &rtn
			return rtn, nil
		}
	}

	repo.db.pk++
	rtn.ID = repo.db.pk
	repo.db.table[rtn.ID] = &rtn
	return rtn, nil
}

func (repo *routineRepository) GetRoutineByID(ctx context.Context, id int) (routine.Routine, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rtn, ok := repo.db.table[id]; ok {
		return *rtn, nil
	}
	return routine.Routine{}, routine.ErrNotFound
}

func (repo *routineRepository) GetRoutineByStudentAndDate(ctx context.Context, studentID int, day time.Time) (routine.Routine, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, rtn := range repo.query() {
		if rtn.StudentID == studentID && rtn.Date.Equal(day) {
			return rtn, nil
		}
	}
	return routine.Routine{}, routine.ErrNotFound
}

func (repo *routineRepository) QueryRoutinesByStudent(ctx context.Context, studentID int) ([]routine.Routine, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rtns := make([]routine.Routine, 0)
	for _, rtn := range repo.query() {
		if rtn.StudentID == studentID {
			rtns = append(rtns, rtn)
		}
	}
	sort.Slice(rtns, func(i, j int) bool { return rtns[i].Date.After(rtns[j].Date) })
	return rtns, nil
}

func (repo *routineRepository) QueryRoutinesByDate(ctx context.Context, day time.Time) ([]routine.Routine, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rtns := make([]routine.Routine, 0)
	for _, rtn := range repo.query() {
		if rtn.Date.Equal(day) {
			rtns = append(rtns, rtn)
		}
	}
	sort.Slice(rtns, func(i, j int) bool { return rtns[i].StudentID < rtns[j].StudentID })
	return rtns, nil
}

func (repo *routineRepository) SetFeedback(ctx context.Context, id int, feedback string, byID int, at time.Time) (routine.Routine, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	rtn, ok := repo.db.table[id]
	if !ok {
		return routine.Routine{}, routine.ErrNotFound
	}
	rtn.AdminFeedback = null.StringFrom(feedback)
	rtn.FeedbackDate = null.TimeFrom(at)
	rtn.FeedbackBy = null.IntFrom(byID)
	return *rtn, nil
}

func (repo *routineRepository) DeleteRoutinesByID(ctx context.Context, ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
