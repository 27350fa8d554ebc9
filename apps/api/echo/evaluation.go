package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tathmini/core/evaluation"
)

type evaluationApi struct {
	svc *evaluation.Service
}

func registerEvaluationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *evaluation.Service) {
	api := evaluationApi{svc: svc}

	eg := g.Group("/evaluations", jwt)
	eg.POST("", api.create)
	eg.GET("", api.query)
	eg.GET("/class/:classId", api.filterByClass)
	eg.GET("/subject/:subjectId", api.filterBySubject)
	eg.GET("/student/:studentId", api.filterByStudent)
}

// Handlers

func (api *evaluationApi) create(ctx echo.Context) error {
	var data evaluation.NewEvaluation
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvaluation")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	ev, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating evaluation")
	}

	return ctx.JSON(http.StatusCreated, ev)
}

func (api *evaluationApi) query(ctx echo.Context) error {
	evals, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying evaluations")
	}
	return api.respond(ctx, evals)
}

func (api *evaluationApi) filterByClass(ctx echo.Context) error {
	classID, err := strconv.Atoi(ctx.Param("classId"))
	if err != nil {
		return errInvalidClassID
	}
	evals, err := api.svc.FilterByClass(classID)
	if err != nil {
		return errors.Wrap(err, "filtering evaluations by class")
	}
	return api.respond(ctx, evals)
}

func (api *evaluationApi) filterBySubject(ctx echo.Context) error {
	subjectID, err := strconv.Atoi(ctx.Param("subjectId"))
	if err != nil {
		return errInvalidSubjectID
	}
	evals, err := api.svc.FilterBySubject(subjectID)
	if err != nil {
		return errors.Wrap(err, "filtering evaluations by subject")
	}
	return api.respond(ctx, evals)
}

func (api *evaluationApi) filterByStudent(ctx echo.Context) error {
	studentID, err := strconv.Atoi(ctx.Param("studentId"))
	if err != nil {
		return errInvalidStudentID
	}
	evals, err := api.svc.FilterByStudent(studentID)
	if err != nil {
		return errors.Wrap(err, "filtering evaluations by student")
	}
	return api.respond(ctx, evals)
}

func (api *evaluationApi) respond(ctx echo.Context, evals []evaluation.Evaluation) error {
	if evals == nil {
		evals = []evaluation.Evaluation{}
	}
	return ctx.JSON(http.StatusOK, evals)
}
