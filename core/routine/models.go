package routine

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/ratiba/core"
)

// Behavior grades the student's behavior at home for the day.
type Behavior string

const (
	BehaviorExcellent        Behavior = "EXCELLENT"
	BehaviorGood             Behavior = "GOOD"
	BehaviorAverage          Behavior = "AVERAGE"
	BehaviorNeedsImprovement Behavior = "NEEDS_IMPROVEMENT"
)

const DateFormat = "2006-01-02"

// Routine is one student's recorded day. There is at most one Routine per
// (student, date) pair; writes for an existing pair update it in place.
// Time-of-day fields hold "HH:MM" wall-clock values.
type Routine struct {
	ID                  int         `json:"id" db:"id"`
	StudentID           int         `json:"student_id" db:"student_id"`
	Date                time.Time   `json:"date" db:"routine_date"`
	WakeUpTime          null.String `json:"wake_up_time,omitempty" db:"wake_up_time"`
	SchoolTime          null.String `json:"school_time,omitempty" db:"school_time"`
	BreakfastTime       null.String `json:"breakfast_time,omitempty" db:"breakfast_time"`
	BreakfastItems      null.String `json:"breakfast_items,omitempty" db:"breakfast_items"`
	LunchTime           null.String `json:"lunch_time,omitempty" db:"lunch_time"`
	LunchItems          null.String `json:"lunch_items,omitempty" db:"lunch_items"`
	ScreenTimeMinutes   null.Int    `json:"screen_time_minutes,omitempty" db:"screen_time_minutes"`
	NapTime             null.String `json:"nap_time,omitempty" db:"nap_time"`
	StudyTimeMinutes    null.Int    `json:"study_time_minutes,omitempty" db:"study_time_minutes"`
	BeforeClassActivity null.String `json:"before_class_activity,omitempty" db:"before_class_activity"`
	DinnerTime          null.String `json:"dinner_time,omitempty" db:"dinner_time"`
	DinnerItems         null.String `json:"dinner_items,omitempty" db:"dinner_items"`
	SleepTime           null.String `json:"sleep_time,omitempty" db:"sleep_time"`
	BehaviorAtHome      null.String `json:"behavior_at_home,omitempty" db:"behavior_at_home"`
	Notes               null.String `json:"notes,omitempty" db:"notes"`
	AdminFeedback       null.String `json:"admin_feedback,omitempty" db:"admin_feedback"`
	FeedbackDate        null.Time   `json:"feedback_date,omitempty" db:"feedback_date"`
	FeedbackBy          null.Int    `json:"feedback_by,omitempty" db:"feedback_by"`
	CreatedBy           int         `json:"created_by" db:"created_by"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"` // UTC
}

// WriteRoutine is the upsert payload for a Routine, keyed on
// (student_id, date). Omitted optional fields clear the stored values;
// admin feedback is untouched by routine writes.
type WriteRoutine struct {
	StudentID           int    `json:"student_id" validate:"required"`
	Date                string `json:"date" validate:"required,datetime=2006-01-02"`
	WakeUpTime          string `json:"wake_up_time" validate:"omitempty,timeofday"`
	SchoolTime          string `json:"school_time" validate:"omitempty,timeofday"`
	BreakfastTime       string `json:"breakfast_time" validate:"omitempty,timeofday"`
	BreakfastItems      string `json:"breakfast_items"`
	LunchTime           string `json:"lunch_time" validate:"omitempty,timeofday"`
	LunchItems          string `json:"lunch_items"`
	ScreenTimeMinutes   *int   `json:"screen_time_minutes" validate:"omitempty,min=0"`
	NapTime             string `json:"nap_time" validate:"omitempty,timeofday"`
	StudyTimeMinutes    *int   `json:"study_time_minutes" validate:"omitempty,min=0"`
	BeforeClassActivity string `json:"before_class_activity"`
	DinnerTime          string `json:"dinner_time" validate:"omitempty,timeofday"`
	DinnerItems         string `json:"dinner_items"`
	SleepTime           string `json:"sleep_time" validate:"omitempty,timeofday"`
	BehaviorAtHome      string `json:"behavior_at_home" validate:"omitempty,oneof=EXCELLENT GOOD AVERAGE NEEDS_IMPROVEMENT"`
	Notes               string `json:"notes"`
}

func (wr *WriteRoutine) Validate(validate *validator.Validate) error {
	wr.BreakfastItems = core.CleanString(wr.BreakfastItems)
	wr.LunchItems = core.CleanString(wr.LunchItems)
	wr.DinnerItems = core.CleanString(wr.DinnerItems)
	wr.BeforeClassActivity = core.CleanString(wr.BeforeClassActivity)
	wr.Notes = core.CleanString(wr.Notes)
	return validate.Struct(wr)
}

// Day parses the payload date. Only meaningful after Validate.
func (wr *WriteRoutine) Day() time.Time {
	day, _ := time.Parse(DateFormat, wr.Date)
	return day
}

// Feedback is the admin feedback payload.
type Feedback struct {
	Feedback string `json:"feedback" validate:"required"`
}

func (f *Feedback) Validate(validate *validator.Validate) error {
	f.Feedback = core.CleanString(f.Feedback)
	return validate.Struct(f)
}

func nullStr(s string) null.String {
	return null.NewString(s, s != "")
}
