package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/auth"
	"github.com/trezcool/ratiba/core/routine"
	"github.com/trezcool/ratiba/core/student"
)

var errBadDate = "must be a date in YYYY-MM-DD format"

type routineApi struct {
	students *student.Service
	svc      *routine.Service
	validate *validator.Validate
}

func registerRoutineAPI(
	g *echo.Group,
	authed echo.MiddlewareFunc,
	students *student.Service,
	svc *routine.Service,
	validate *validator.Validate,
) {
	api := routineApi{
		students: students,
		svc:      svc,
		validate: validate,
	}

	rg := g.Group("/routines", authed)
	rg.POST("", api.save)
	rg.GET("/students/:id", api.queryByStudent)
	rg.GET("/dates/:date", api.queryByDate)
	rg.PUT("/:id/feedback", api.feedback)
	rg.DELETE("/:id", api.destroy)
}

// Handlers

func (api *routineApi) save(ctx echo.Context) error {
	var data routine.WriteRoutine
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to WriteRoutine")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idn, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	// ownership comes from the student named in the payload
	stu, err := api.students.GetByID(ctx.Request().Context(), data.StudentID)
	if err != nil {
		return err
	}
	if !auth.Allowed(idn, auth.OpWriteRoutine, auth.Target{ParentID: stu.ParentID}) {
		return auth.ErrForbidden
	}

	rtn, err := api.svc.Save(ctx.Request().Context(), data, idn.AccountID)
	if err != nil {
		return errors.Wrap(err, "saving routine")
	}

	return ctx.JSON(http.StatusOK, rtn)
}

func (api *routineApi) queryByStudent(ctx echo.Context) error {
	idn, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return student.ErrNotFound
	}
	stu, err := api.students.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if !auth.Allowed(idn, auth.OpReadRoutine, auth.Target{ParentID: stu.ParentID}) {
		return auth.ErrForbidden
	}

	rtns, err := api.svc.QueryByStudent(ctx.Request().Context(), stu.ID)
	if err != nil {
		return errors.Wrap(err, "querying routines by student")
	}
	if rtns == nil {
		rtns = []routine.Routine{}
	}
	return ctx.JSON(http.StatusOK, rtns)
}

func (api *routineApi) queryByDate(ctx echo.Context) error {
	idn, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	day, err := time.Parse(routine.DateFormat, ctx.Param("date"))
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "date", Error: errBadDate})
	}

	// a whole day's worth of routines spans every family
	if !auth.Allowed(idn, auth.OpReadRoutine, auth.Target{}) {
		return auth.ErrForbidden
	}

	rtns, err := api.svc.QueryByDate(ctx.Request().Context(), day)
	if err != nil {
		return errors.Wrap(err, "querying routines by date")
	}
	if rtns == nil {
		rtns = []routine.Routine{}
	}
	return ctx.JSON(http.StatusOK, rtns)
}

func (api *routineApi) feedback(ctx echo.Context) error {
	var data routine.Feedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Feedback")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idn, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return routine.ErrNotFound
	}
	rtn, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	stu, err := api.students.GetByID(ctx.Request().Context(), rtn.StudentID)
	if err != nil {
		return errors.Wrap(err, "finding routine's student")
	}
	if !auth.Allowed(idn, auth.OpWriteFeedback, auth.Target{ParentID: stu.ParentID}) {
		return auth.ErrForbidden
	}

	rtn, err = api.svc.AddFeedback(ctx.Request().Context(), rtn.ID, data.Feedback, idn.AccountID)
	if err != nil {
		return errors.Wrap(err, "adding feedback")
	}

	return ctx.JSON(http.StatusOK, rtn)
}

func (api *routineApi) destroy(ctx echo.Context) error {
	idn, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return routine.ErrNotFound
	}
	rtn, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	stu, err := api.students.GetByID(ctx.Request().Context(), rtn.StudentID)
	if err != nil {
		return errors.Wrap(err, "finding routine's student")
	}
	if !auth.Allowed(idn, auth.OpDeleteRoutine, auth.Target{ParentID: stu.ParentID}) {
		return auth.ErrForbidden
	}

	if err := api.svc.Delete(ctx.Request().Context(), rtn.ID); err != nil {
		return errors.Wrap(err, "deleting routine")
	}
	return ctx.NoContent(http.StatusNoContent)
}
