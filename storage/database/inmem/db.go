// Package inmemdb is the default storage backend: per-entity maps guarded
// by RWMutexes, with sequential ids assigned by per-table counters.
// Ids are unique only within a single DB instance's lifetime.
package inmemdb

import (
	"fmt"
	"sync"

	"github.com/trezcool/tathmini/core/evaluation"
	"github.com/trezcool/tathmini/core/school"
	"github.com/trezcool/tathmini/core/user"
)

type (
	DB struct {
		user       *userTable
		class      *classTable
		subject    *subjectTable
		student    *studentTable
		evaluation *evaluationTable
	}

	userTable struct {
		table   map[int]*user.User
		pkCount int
		mutex   sync.RWMutex
	}
	classTable struct {
		table   map[int]*school.Class
		pkCount int
		mutex   sync.RWMutex
	}
	subjectTable struct {
		table   map[int]*school.Subject
		pkCount int
		mutex   sync.RWMutex
	}
	studentTable struct {
		table   map[int]*school.Student
		pkCount int
		mutex   sync.RWMutex
	}
	evaluationTable struct {
		table   map[int]*evaluation.Evaluation
		pkCount int
		mutex   sync.RWMutex
	}
)

// Open returns a DB pre-seeded with the fixed reference data (classes,
// subjects and students) so the API is usable without provisioning.
func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[int]*user.User)},
		class:      &classTable{table: make(map[int]*school.Class)},
		subject:    &subjectTable{table: make(map[int]*school.Subject)},
		student:    &studentTable{table: make(map[int]*school.Student)},
		evaluation: &evaluationTable{table: make(map[int]*evaluation.Evaluation)},
	}
	if err := db.seed(); err != nil {
		return nil, err
	}
	return db, nil
}

var (
	seedClasses  = []string{"Class 10A", "Class 10B", "Class 11A", "Class 11B"}
	seedSubjects = []string{"Mathematics", "Science", "English", "History"}
	seedStudents = []string{
		"Rahul Sharma", "Priya Patel", "Amit Kumar", "Sneha Singh",
		"Vikram Reddy", "Ananya Gupta", "Raj Malhotra", "Neha Verma",
	}
)

func (db *DB) seed() error {
	repo := NewSchoolRepository(db)

	for _, name := range seedClasses {
		if _, err := repo.CreateClass(school.Class{Name: name}); err != nil {
			return err
		}
	}
	for _, name := range seedSubjects {
		if _, err := repo.CreateSubject(school.Subject{Name: name}); err != nil {
			return err
		}
	}
	for classID := 1; classID <= len(seedClasses); classID++ {
		for i, name := range seedStudents {
			roll := fmt.Sprintf("%02d", i+1)
			_, err := repo.CreateStudent(school.Student{
				Name:            name,
				RollNumber:      roll,
				AdmissionNumber: fmt.Sprintf("A%d%s", classID, roll),
				ClassID:         classID,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
