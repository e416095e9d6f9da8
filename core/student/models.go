package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/ratiba/core"
)

type Student struct {
	ID         int       `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	ClassGrade string    `json:"class_grade" db:"class_grade"`
	ParentID   int       `json:"parent_id" db:"parent_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewStudent contains information needed to create a new Student.
type NewStudent struct {
	Name       string `json:"name" validate:"required"`
	ClassGrade string `json:"class_grade" validate:"required"`
	ParentID   int    `json:"parent_id" validate:"required"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.ClassGrade = core.CleanString(ns.ClassGrade)
	return validate.Struct(ns)
}

// UpdateStudent defines what information may be provided to modify an
// existing Student. The owning parent cannot be changed.
type UpdateStudent struct {
	Name       string `json:"name"`
	ClassGrade string `json:"class_grade"`
}

func (us *UpdateStudent) Validate(origStu Student, validate *validator.Validate) error {
	name := core.CleanString(us.Name)
	if name != "" {
		us.Name = name
	} else {
		us.Name = origStu.Name
	}

	grade := core.CleanString(us.ClassGrade)
	if grade != "" {
		us.ClassGrade = grade
	} else {
		us.ClassGrade = origStu.ClassGrade
	}

	return validate.Struct(us)
}
