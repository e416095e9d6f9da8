package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/routine"
)

type routineRepository struct {
	db *sqlx.DB
}

var _ routine.Repository = (*routineRepository)(nil) // interface compliance check

func NewRoutineRepository(db *sqlx.DB) routine.Repository {
	return &routineRepository{db: db}
}

// UpsertRoutine relies on the (student_id, routine_date) unique constraint:
// a single INSERT ... ON CONFLICT DO UPDATE keeps concurrent writes for the
// same pair from producing two rows. Feedback columns are left untouched.
func (repo *routineRepository) UpsertRoutine(ctx context.Context, rtn routine.Routine) (routine.Routine, error) {
	rows, err := sqlx.NamedQueryContext(
		ctx, repo.db,
		`INSERT INTO routine (
			student_id, routine_date, wake_up_time, school_time, breakfast_time,
			breakfast_items, lunch_time, lunch_items, screen_time_minutes, nap_time,
			study_time_minutes, before_class_activity, dinner_time, dinner_items,
			sleep_time, behavior_at_home, notes, created_by, created_at
		 ) VALUES (
			:student_id, :routine_date, :wake_up_time, :school_time, :breakfast_time,
			:breakfast_items, :lunch_time, :lunch_items, :screen_time_minutes, :nap_time,
			:study_time_minutes, :before_class_activity, :dinner_time, :dinner_items,
			:sleep_time, :behavior_at_home, :notes, :created_by, :created_at
		 )
		 ON CONFLICT (student_id, routine_date) DO UPDATE SET
			wake_up_time = EXCLUDED.wake_up_time,
			school_time = EXCLUDED.school_time,
			breakfast_time = EXCLUDED.breakfast_time,
			breakfast_items = EXCLUDED.breakfast_items,
			lunch_time = EXCLUDED.lunch_time,
			lunch_items = EXCLUDED.lunch_items,
			screen_time_minutes = EXCLUDED.screen_time_minutes,
			nap_time = EXCLUDED.nap_time,
			study_time_minutes = EXCLUDED.study_time_minutes,
			before_class_activity = EXCLUDED.before_class_activity,
			dinner_time = EXCLUDED.dinner_time,
			dinner_items = EXCLUDED.dinner_items,
			sleep_time = EXCLUDED.sleep_time,
			behavior_at_home = EXCLUDED.behavior_at_home,
			notes = EXCLUDED.notes,
			created_by = EXCLUDED.created_by
		 RETURNING *`,
		rtn,
	)
	if err != nil {
		return routine.Routine{}, errors.Wrap(err, "upserting routine")
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return routine.Routine{}, errors.New("upserting routine: no row returned")
	}
	if err = rows.StructScan(&rtn); err != nil {
		return routine.Routine{}, errors.Wrap(err, "upserting routine")
	}
	return rtn, rows.Err()
}

func (repo *routineRepository) GetRoutineByID(ctx context.Context, id int) (routine.Routine, error) {
	var rtn routine.Routine
	err := repo.db.GetContext(ctx, &rtn, `SELECT * FROM routine WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return routine.Routine{}, routine.ErrNotFound
		}
		return routine.Routine{}, errors.Wrap(err, "getting routine by id")
	}
	return rtn, nil
}

func (repo *routineRepository) GetRoutineByStudentAndDate(ctx context.Context, studentID int, day time.Time) (routine.Routine, error) {
	var rtn routine.Routine
	err := repo.db.GetContext(
		ctx, &rtn,
		`SELECT * FROM routine WHERE student_id = $1 AND routine_date = $2`,
		studentID, day,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return routine.Routine{}, routine.ErrNotFound
		}
		return routine.Routine{}, errors.Wrap(err, "getting routine by student and date")
	}
	return rtn, nil
}

func (repo *routineRepository) QueryRoutinesByStudent(ctx context.Context, studentID int) ([]routine.Routine, error) {
	var rtns []routine.Routine
	err := repo.db.SelectContext(
		ctx, &rtns,
		`SELECT * FROM routine WHERE student_id = $1 ORDER BY routine_date DESC`,
		studentID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying routines by student")
	}
	return rtns, nil
}

func (repo *routineRepository) QueryRoutinesByDate(ctx context.Context, day time.Time) ([]routine.Routine, error) {
	var rtns []routine.Routine
	err := repo.db.SelectContext(
		ctx, &rtns,
		`SELECT * FROM routine WHERE routine_date = $1 ORDER BY student_id`,
		day,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying routines by date")
	}
	return rtns, nil
}

func (repo *routineRepository) SetFeedback(ctx context.Context, id int, feedback string, byID int, at time.Time) (routine.Routine, error) {
	var rtn routine.Routine
	err := repo.db.GetContext(
		ctx, &rtn,
		`UPDATE routine SET admin_feedback = $2, feedback_date = $3, feedback_by = $4
		 WHERE id = $1 RETURNING *`,
		id, feedback, at, byID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return routine.Routine{}, routine.ErrNotFound
		}
		return routine.Routine{}, errors.Wrap(err, "setting feedback")
	}
	return rtn, nil
}

func (repo *routineRepository) DeleteRoutinesByID(ctx context.Context, ids ...int) error {
	query, args, err := sqlx.In(`DELETE FROM routine WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting routines")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting routines")
	}
	return nil
}
