package school

import "errors"

var (
	// errors
	ErrClassNotFound   = errors.New("class not found")
	ErrSubjectNotFound = errors.New("subject not found")
	ErrStudentNotFound = errors.New("student not found")
)

type (
	Repository interface {
		CreateClass(class Class) (Class, error)
		QueryAllClasses() ([]Class, error)
		GetClassByID(id int) (Class, error)

		CreateSubject(subject Subject) (Subject, error)
		QueryAllSubjects() ([]Subject, error)
		GetSubjectByID(id int) (Subject, error)

		CreateStudent(student Student) (Student, error)
		QueryAllStudents() ([]Student, error)
		GetStudentByID(id int) (Student, error)
		// FilterStudentsByClass returns an empty slice for an unknown class id.
		FilterStudentsByClass(classID int) ([]Student, error)
	}

	// Service exposes read-only access; creation happens at seed time only.
	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryClasses() ([]Class, error) {
	return svc.repo.QueryAllClasses()
}

func (svc *Service) GetClassByID(id int) (Class, error) {
	return svc.repo.GetClassByID(id)
}

func (svc *Service) QuerySubjects() ([]Subject, error) {
	return svc.repo.QueryAllSubjects()
}

func (svc *Service) GetSubjectByID(id int) (Subject, error) {
	return svc.repo.GetSubjectByID(id)
}

func (svc *Service) QueryStudents() ([]Student, error) {
	return svc.repo.QueryAllStudents()
}

func (svc *Service) GetStudentByID(id int) (Student, error) {
	return svc.repo.GetStudentByID(id)
}

func (svc *Service) FilterStudentsByClass(classID int) ([]Student, error) {
	return svc.repo.FilterStudentsByClass(classID)
}
