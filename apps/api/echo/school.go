package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tathmini/core/school"
)

type schoolApi struct {
	svc *school.Service
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *school.Service) {
	api := schoolApi{svc: svc}

	ag := g.Group("", jwt)
	ag.GET("/classes", api.queryClasses)
	ag.GET("/subjects", api.querySubjects)
	ag.GET("/students", api.queryStudents)
	ag.GET("/students/class/:classId", api.filterStudentsByClass)
}

// Handlers

func (api *schoolApi) queryClasses(ctx echo.Context) error {
	classes, err := api.svc.QueryClasses()
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}
	if classes == nil {
		classes = []school.Class{}
	}
	return ctx.JSON(http.StatusOK, classes)
}

func (api *schoolApi) querySubjects(ctx echo.Context) error {
	subjects, err := api.svc.QuerySubjects()
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []school.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *schoolApi) queryStudents(ctx echo.Context) error {
	students, err := api.svc.QueryStudents()
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if students == nil {
		students = []school.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *schoolApi) filterStudentsByClass(ctx echo.Context) error {
	classID, err := strconv.Atoi(ctx.Param("classId"))
	if err != nil {
		return errInvalidClassID
	}

	students, err := api.svc.FilterStudentsByClass(classID)
	if err != nil {
		return errors.Wrap(err, "filtering students by class")
	}
	if students == nil {
		students = []school.Student{}
	}
	return ctx.JSON(http.StatusOK, students)
}
