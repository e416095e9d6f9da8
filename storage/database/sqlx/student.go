package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	err := repo.db.QueryRowContext(
		ctx,
		`INSERT INTO student (name, class_grade, parent_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		stu.Name, stu.ClassGrade, stu.ParentID, stu.CreatedAt,
	).Scan(&stu.ID)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return stu, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var stus []student.Student
	if err := repo.db.SelectContext(ctx, &stus, `SELECT * FROM student ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return stus, nil
}

func (repo *studentRepository) FilterStudentsByParent(ctx context.Context, parentID int) ([]student.Student, error) {
	var stus []student.Student
	err := repo.db.SelectContext(ctx, &stus, `SELECT * FROM student WHERE parent_id = $1 ORDER BY id`, parentID)
	if err != nil {
		return nil, errors.Wrap(err, "filtering students by parent")
	}
	return stus, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var stu student.Student
	err := repo.db.GetContext(ctx, &stu, `SELECT * FROM student WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student by id")
	}
	return stu, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	err := repo.db.GetContext(
		ctx, &stu,
		`UPDATE student SET name = $2, class_grade = $3 WHERE id = $1 RETURNING *`,
		stu.ID, stu.Name, stu.ClassGrade,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	return stu, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...int) error {
	query, args, err := sqlx.In(`DELETE FROM student WHERE id IN (?)`, ids)
	if err != nil {
		return errors.Wrap(err, "deleting students")
	}
	if _, err = repo.db.ExecContext(ctx, repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}
