package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/ratiba/core"
	"github.com/trezcool/ratiba/core/account"
	"github.com/trezcool/ratiba/core/auth"
	"github.com/trezcool/ratiba/core/student"
)

var (
	errStuNotFoundInCtx = errors.New("student object not found in echo.Context")
	errParentNotFound   = "no account with this id"
	errAccountNotParent = "account is not a parent"
	contextStudentKey   = "object"
)

type studentApi struct {
	accounts *account.Service
	svc      *student.Service
	validate *validator.Validate
}

func registerStudentAPI(
	g *echo.Group,
	authed echo.MiddlewareFunc,
	accounts *account.Service,
	svc *student.Service,
	validate *validator.Validate,
) {
	api := studentApi{
		accounts: accounts,
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/students", authed)
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id", api.objectMiddleware())
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// studentOps maps each detail endpoint onto the operation it performs.
var studentOps = map[string]auth.Op{
	http.MethodGet:    auth.OpReadStudent,
	http.MethodPut:    auth.OpUpdateStudent,
	http.MethodDelete: auth.OpDeleteStudent,
}

// objectMiddleware loads the target student and checks the acting identity
// against it before any detail handler runs. An unknown id is a 404; a known
// id the identity may not touch is a 403, never a silent 404.
func (api *studentApi) objectMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			idn, err := getContextIdentity(ctx)
			if err != nil {
				return err
			}

			id, err := strconv.Atoi(ctx.Param("id"))
			if err != nil {
				return student.ErrNotFound
			}
			stu, err := api.svc.GetByID(ctx.Request().Context(), id)
			if err != nil {
				return err
			}

			op, ok := studentOps[ctx.Request().Method]
			if !ok {
				return auth.ErrForbidden
			}
			if !auth.Allowed(idn, op, auth.Target{ParentID: stu.ParentID}) {
				return auth.ErrForbidden
			}

			ctx.Set(contextStudentKey, stu)
			return next(ctx)
		}
	}
}

// Handlers

func (api *studentApi) query(ctx echo.Context) error {
	idn, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	if !auth.Allowed(idn, auth.OpListStudents, auth.Target{ParentID: idn.AccountID}) {
		return auth.ErrForbidden
	}

	var stus []student.Student
	if idn.Role == account.RoleAdmin {
		stus, err = api.svc.QueryAll(ctx.Request().Context())
	} else {
		stus, err = api.svc.QueryByParent(ctx.Request().Context(), idn.AccountID)
	}
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	if stus == nil {
		stus = []student.Student{}
	}
	return ctx.JSON(http.StatusOK, stus)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	idn, err := getContextIdentity(ctx)
	if err != nil {
		return err
	}
	// ownership first: a parent can only ever create under themselves
	if !auth.Allowed(idn, auth.OpCreateStudent, auth.Target{ParentID: data.ParentID}) {
		return auth.ErrForbidden
	}

	parent, err := api.accounts.GetByID(ctx.Request().Context(), data.ParentID)
	if err != nil {
		if errors.Cause(err) == account.ErrNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "parent_id", Error: errParentNotFound})
		}
		return errors.Wrap(err, "finding parent account")
	}
	if parent.Role != account.RoleParent {
		return core.NewValidationError(nil, core.FieldError{Field: "parent_id", Error: errAccountNotParent})
	}

	stu, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}

	return ctx.JSON(http.StatusCreated, stu)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	stu, ok := ctx.Get(contextStudentKey).(student.Student)
	if !ok {
		return errors.Wrap(errStuNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) update(ctx echo.Context) error {
	stu, ok := ctx.Get(contextStudentKey).(student.Student)
	if !ok {
		return errors.Wrap(errStuNotFoundInCtx, "retrieving object from context")
	}

	var data student.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(stu, api.validate); err != nil {
		return err
	}

	stu, err := api.svc.Update(ctx.Request().Context(), stu.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}

	return ctx.JSON(http.StatusOK, stu)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	stu, ok := ctx.Get(contextStudentKey).(student.Student)
	if !ok {
		return errors.Wrap(errStuNotFoundInCtx, "retrieving object from context")
	}

	if err := api.svc.Delete(ctx.Request().Context(), stu.ID); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}
