package student

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(ctx context.Context, stu Student) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		FilterStudentsByParent(ctx context.Context, parentID int) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		UpdateStudent(ctx context.Context, stu Student) (Student, error)
		DeleteStudentsByID(ctx context.Context, ids ...int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	stu := Student{
		Name:       ns.Name,
		ClassGrade: ns.ClassGrade,
		ParentID:   ns.ParentID,
		CreatedAt:  time.Now().UTC(),
	}
	return svc.repo.CreateStudent(ctx, stu)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return svc.repo.QueryAllStudents(ctx)
}

// QueryByParent returns the students owned by parentID; an empty slice, not
// an error, when there are none.
func (svc *Service) QueryByParent(ctx context.Context, parentID int) ([]Student, error) {
	return svc.repo.FilterStudentsByParent(ctx, parentID)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	stu := Student{
		ID:         id,
		Name:       us.Name,
		ClassGrade: us.ClassGrade,
	}
	return svc.repo.UpdateStudent(ctx, stu)
}

func (svc *Service) Delete(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteStudentsByID(ctx, ids...)
}
