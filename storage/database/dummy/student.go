package dummydb

import (
	"context"
	"sort"

	"github.com/trezcool/ratiba/core/student"
)

type studentRepository struct {
	db *studentTable
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) query() []student.Student {
	stus := make([]student.Student, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		stus = append(stus, *s)
	}
	sort.Slice(stus, func(i, j int) bool { return stus[i].ID < stus[j].ID })
	return stus
}

func (repo *studentRepository) CreateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pk++
	stu.ID = repo.db.pk
	repo.db.table[stu.ID] = &stu
	return stu, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *studentRepository) FilterStudentsByParent(ctx context.Context, parentID int) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	stus := make([]student.Student, 0)
	for _, stu := range repo.query() {
		if stu.ParentID == parentID {
			stus = append(stus, stu)
		}
	}
	return stus, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if stu, ok := repo.db.table[id]; ok {
		return *stu, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, stu student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origStu, ok := repo.db.table[stu.ID]
	if !ok {
		return student.Student{}, student.ErrNotFound
	}
	origStu.Name = stu.Name
	origStu.ClassGrade = stu.ClassGrade
	return *origStu, nil
}

func (repo *studentRepository) DeleteStudentsByID(ctx context.Context, ids ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
