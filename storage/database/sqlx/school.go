package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/tathmini/core/school"
)

type schoolRepository struct {
	db *sqlx.DB
}

func NewSchoolRepository(db *sqlx.DB) school.Repository {
	return &schoolRepository{db: db}
}

type studentRow struct {
	ID              int         `db:"id"`
	Name            string      `db:"name"`
	RollNumber      string      `db:"roll_number"`
	AdmissionNumber string      `db:"admission_number"`
	PhotoURL        null.String `db:"photo_url"`
	ClassID         int         `db:"class_id"`
}

func (r studentRow) toStudent() school.Student {
	return school.Student{
		ID:              r.ID,
		Name:            r.Name,
		RollNumber:      r.RollNumber,
		AdmissionNumber: r.AdmissionNumber,
		PhotoURL:        r.PhotoURL.Ptr(),
		ClassID:         r.ClassID,
	}
}

// Classes

func (repo *schoolRepository) CreateClass(cls school.Class) (school.Class, error) {
	err := repo.db.Get(&cls.ID, "INSERT INTO classes (name) VALUES ($1) RETURNING id", cls.Name)
	return cls, errors.Wrap(err, "inserting class")
}

func (repo *schoolRepository) QueryAllClasses() ([]school.Class, error) {
	classes := make([]school.Class, 0)
	err := repo.db.Select(&classes, "SELECT id, name FROM classes ORDER BY id")
	return classes, errors.Wrap(err, "querying classes")
}

func (repo *schoolRepository) GetClassByID(id int) (school.Class, error) {
	var cls school.Class
	err := repo.db.Get(&cls, "SELECT id, name FROM classes WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return school.Class{}, school.ErrClassNotFound
	}
	return cls, errors.Wrap(err, "getting class by id")
}

// Subjects

func (repo *schoolRepository) CreateSubject(sub school.Subject) (school.Subject, error) {
	err := repo.db.Get(&sub.ID, "INSERT INTO subjects (name) VALUES ($1) RETURNING id", sub.Name)
	return sub, errors.Wrap(err, "inserting subject")
}

func (repo *schoolRepository) QueryAllSubjects() ([]school.Subject, error) {
	subjects := make([]school.Subject, 0)
	err := repo.db.Select(&subjects, "SELECT id, name FROM subjects ORDER BY id")
	return subjects, errors.Wrap(err, "querying subjects")
}

func (repo *schoolRepository) GetSubjectByID(id int) (school.Subject, error) {
	var sub school.Subject
	err := repo.db.Get(&sub, "SELECT id, name FROM subjects WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return school.Subject{}, school.ErrSubjectNotFound
	}
	return sub, errors.Wrap(err, "getting subject by id")
}

// Students

func (repo *schoolRepository) CreateStudent(std school.Student) (school.Student, error) {
	err := repo.db.Get(
		&std.ID,
		`INSERT INTO students (name, roll_number, admission_number, photo_url, class_id)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		std.Name, std.RollNumber, std.AdmissionNumber, null.StringFromPtr(std.PhotoURL), std.ClassID,
	)
	if err != nil {
		return school.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo *schoolRepository) QueryAllStudents() ([]school.Student, error) {
	return repo.selectStudents(
		"SELECT id, name, roll_number, admission_number, photo_url, class_id FROM students ORDER BY id",
	)
}

func (repo *schoolRepository) GetStudentByID(id int) (school.Student, error) {
	var row studentRow
	err := repo.db.Get(
		&row,
		"SELECT id, name, roll_number, admission_number, photo_url, class_id FROM students WHERE id = $1",
		id,
	)
	if err == sql.ErrNoRows {
		return school.Student{}, school.ErrStudentNotFound
	}
	if err != nil {
		return school.Student{}, errors.Wrap(err, "getting student by id")
	}
	return row.toStudent(), nil
}

func (repo *schoolRepository) FilterStudentsByClass(classID int) ([]school.Student, error) {
	return repo.selectStudents(
		"SELECT id, name, roll_number, admission_number, photo_url, class_id FROM students WHERE class_id = $1 ORDER BY id",
		classID,
	)
}

func (repo *schoolRepository) selectStudents(query string, args ...interface{}) ([]school.Student, error) {
	rows := make([]studentRow, 0)
	if err := repo.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]school.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toStudent())
	}
	return students, nil
}
