package routine

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
)

var ErrNotFound = errors.New("routine not found")

type (
	Repository interface {
		// UpsertRoutine writes rtn keyed on (StudentID, Date) as a single
		// atomic operation: concurrent writes for the same pair must yield
		// exactly one row, last write winning. Feedback columns are
		// preserved on update.
		UpsertRoutine(ctx context.Context, rtn Routine) (Routine, error)
		GetRoutineByID(ctx context.Context, id int) (Routine, error)
		GetRoutineByStudentAndDate(ctx context.Context, studentID int, day time.Time) (Routine, error)
		// QueryRoutinesByStudent returns a student's routines, newest first.
		QueryRoutinesByStudent(ctx context.Context, studentID int) ([]Routine, error)
		QueryRoutinesByDate(ctx context.Context, day time.Time) ([]Routine, error)
		SetFeedback(ctx context.Context, id int, feedback string, byID int, at time.Time) (Routine, error)
		DeleteRoutinesByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save upserts the routine for (wr.StudentID, wr.Date). A second write for
// the same pair overwrites the first's fields instead of creating a
// duplicate.
func (svc *Service) Save(ctx context.Context, wr WriteRoutine, createdBy int) (Routine, error) {
	rtn := Routine{
		StudentID:           wr.StudentID,
		Date:                wr.Day(),
		WakeUpTime:          nullStr(wr.WakeUpTime),
		SchoolTime:          nullStr(wr.SchoolTime),
		BreakfastTime:       nullStr(wr.BreakfastTime),
		BreakfastItems:      nullStr(wr.BreakfastItems),
		LunchTime:           nullStr(wr.LunchTime),
		LunchItems:          nullStr(wr.LunchItems),
		ScreenTimeMinutes:   null.IntFromPtr(wr.ScreenTimeMinutes),
		NapTime:             nullStr(wr.NapTime),
		StudyTimeMinutes:    null.IntFromPtr(wr.StudyTimeMinutes),
		BeforeClassActivity: nullStr(wr.BeforeClassActivity),
		DinnerTime:          nullStr(wr.DinnerTime),
		DinnerItems:         nullStr(wr.DinnerItems),
		SleepTime:           nullStr(wr.SleepTime),
		BehaviorAtHome:      nullStr(wr.BehaviorAtHome),
		Notes:               nullStr(wr.Notes),
		CreatedBy:           createdBy,
		CreatedAt:           time.Now().UTC(),
	}
	return svc.repo.UpsertRoutine(ctx, rtn)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Routine, error) {
	return svc.repo.GetRoutineByID(ctx, id)
}

func (svc *Service) QueryByStudent(ctx context.Context, studentID int) ([]Routine, error) {
	return svc.repo.QueryRoutinesByStudent(ctx, studentID)
}

func (svc *Service) QueryByDate(ctx context.Context, day time.Time) ([]Routine, error) {
	return svc.repo.QueryRoutinesByDate(ctx, day)
}

// AddFeedback attaches admin feedback to an existing routine, stamping the
// author and time.
func (svc *Service) AddFeedback(ctx context.Context, id int, feedback string, byID int) (Routine, error) {
	return svc.repo.SetFeedback(ctx, id, feedback, byID, time.Now().UTC())
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteRoutinesByID(ctx, ids...)
}
