package inmemdb

import (
	"sort"

	"github.com/trezcool/tathmini/core/school"
)

type schoolRepository struct {
	class   *classTable
	subject *subjectTable
	student *studentTable
}

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{class: db.class, subject: db.subject, student: db.student}
}

// Classes

func (repo *schoolRepository) CreateClass(cls school.Class) (school.Class, error) {
	repo.class.mutex.Lock()
	defer repo.class.mutex.Unlock()

	repo.class.pkCount++
	cls.ID = repo.class.pkCount
	repo.class.table[cls.ID] = &cls
	return cls, nil
}

func (repo *schoolRepository) QueryAllClasses() ([]school.Class, error) {
	repo.class.mutex.RLock()
	defer repo.class.mutex.RUnlock()

	classes := make([]school.Class, 0, len(repo.class.table))
	for _, c := range repo.class.table {
		classes = append(classes, *c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ID < classes[j].ID })
	return classes, nil
}

func (repo *schoolRepository) GetClassByID(id int) (school.Class, error) {
	repo.class.mutex.RLock()
	defer repo.class.mutex.RUnlock()

	if c, ok := repo.class.table[id]; ok {
		return *c, nil
	}
	return school.Class{}, school.ErrClassNotFound
}

// Subjects

func (repo *schoolRepository) CreateSubject(sub school.Subject) (school.Subject, error) {
	repo.subject.mutex.Lock()
	defer repo.subject.mutex.Unlock()

	repo.subject.pkCount++
	sub.ID = repo.subject.pkCount
	repo.subject.table[sub.ID] = &sub
	return sub, nil
}

func (repo *schoolRepository) QueryAllSubjects() ([]school.Subject, error) {
	repo.subject.mutex.RLock()
	defer repo.subject.mutex.RUnlock()

	subjects := make([]school.Subject, 0, len(repo.subject.table))
	for _, s := range repo.subject.table {
		subjects = append(subjects, *s)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

func (repo *schoolRepository) GetSubjectByID(id int) (school.Subject, error) {
	repo.subject.mutex.RLock()
	defer repo.subject.mutex.RUnlock()

	if s, ok := repo.subject.table[id]; ok {
		return *s, nil
	}
	return school.Subject{}, school.ErrSubjectNotFound
}

// Students

func (repo *schoolRepository) CreateStudent(std school.Student) (school.Student, error) {
	repo.student.mutex.Lock()
	defer repo.student.mutex.Unlock()

	repo.student.pkCount++
	std.ID = repo.student.pkCount
	repo.student.table[std.ID] = &std
	return std, nil
}

func (repo *schoolRepository) QueryAllStudents() ([]school.Student, error) {
	repo.student.mutex.RLock()
	defer repo.student.mutex.RUnlock()
	return repo.queryStudents(func(school.Student) bool { return true }), nil
}

func (repo *schoolRepository) GetStudentByID(id int) (school.Student, error) {
	repo.student.mutex.RLock()
	defer repo.student.mutex.RUnlock()

	if s, ok := repo.student.table[id]; ok {
		return *s, nil
	}
	return school.Student{}, school.ErrStudentNotFound
}

func (repo *schoolRepository) FilterStudentsByClass(classID int) ([]school.Student, error) {
	repo.student.mutex.RLock()
	defer repo.student.mutex.RUnlock()
	return repo.queryStudents(func(s school.Student) bool { return s.ClassID == classID }), nil
}

// queryStudents must be called with student.mutex held.
func (repo *schoolRepository) queryStudents(match func(school.Student) bool) []school.Student {
	students := make([]school.Student, 0, len(repo.student.table))
	for _, s := range repo.student.table {
		if match(*s) {
			students = append(students, *s)
		}
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students
}
