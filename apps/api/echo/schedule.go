package echoapi

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/schedule"
)

type scheduleApi struct {
	svc      *schedule.Service
	validate *validator.Validate
	logger   core.Logger
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service, validate *validator.Validate, logger core.Logger) {
	api := scheduleApi{
		svc:      svc,
		validate: validate,
		logger:   logger,
	}

	sg := g.Group("/sessions")
	sg.GET("", api.querySessions)
	sg.POST("", api.createSession)
	sg.DELETE("", api.destroySessions)
	sg.POST("/recurring", api.createRecurringSessions)
	sg.PUT("/:id", api.updateSession)
	sg.DELETE("/:id", api.destroySession)
	sg.GET("/:id/attendance", api.retrieveAttendance)
	sg.PUT("/:id/attendance", api.saveAttendance)

	cg := g.Group("/classes")
	cg.GET("", api.queryClasses)
	cg.POST("", api.createClass)
	cg.PUT("/:id", api.updateClass)
	cg.DELETE("/:id", api.destroyClass)

	tg := g.Group("/teachers")
	tg.GET("", api.queryTeachers)
	tg.POST("", api.createTeacher)
	tg.PUT("/:id", api.updateTeacher)
	tg.DELETE("/:id", api.destroyTeacher)

	kg := g.Group("/courses")
	kg.GET("", api.queryCourses)
	kg.POST("", api.createCourse)
	kg.PUT("/:id", api.updateCourse)
	kg.DELETE("/:id", api.destroyCourse)
}

type deleteSessionsRequest struct {
	IDs []string `json:"ids" query:"id"`
}

// Sessions

func (api *scheduleApi) querySessions(ctx echo.Context) error {
	var filter schedule.SessionFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding to SessionFilter")
	}
	var ordering Ordering
	ordering.Bind(ctx)
	filter.Descending = ordering.Descending("startTime")
	if err := filter.Validate(api.validate); err != nil {
		return err
	}

	sessions, err := api.svc.ListSessions(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "listing sessions")
	}
	return ok(ctx, sessions)
}

func (api *scheduleApi) createSession(ctx echo.Context) error {
	var data schedule.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.CreateSession(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating session")
	}
	return respond(ctx, http.StatusCreated, sess, "Đã thêm buổi học mới.")
}

func (api *scheduleApi) updateSession(ctx echo.Context) error {
	var data schedule.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.EditSession(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating session")
	}
	return ok(ctx, sess, "Đã cập nhật buổi học.")
}

func (api *scheduleApi) destroySession(ctx echo.Context) error {
	if err := api.svc.DeleteSession(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return ok(ctx, nil, "Đã xóa buổi học.")
}

func (api *scheduleApi) destroySessions(ctx echo.Context) error {
	var data deleteSessionsRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to deleteSessionsRequest")
	}

	res, err := api.svc.DeleteSessions(ctx.Request().Context(), data.IDs)
	if err != nil {
		return errors.Wrap(err, "deleting sessions")
	}
	if len(res.Deleted) > 0 {
		api.logger.Info("sessions deleted", map[string]interface{}{"deleted": res.Deleted, "blocked": res.Blocked}, getContextActor(ctx))
	}
	return ok(ctx, res, res.Message())
}

func (api *scheduleApi) createRecurringSessions(ctx echo.Context) error {
	var data schedule.NewRecurringSessions
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecurringSessions")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.svc.CreateRecurringSessions(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating recurring sessions")
	}
	code := http.StatusOK
	if res.Created > 0 {
		code = http.StatusCreated
	}
	return respond(ctx, code, res, res.Message())
}

// Attendance

func (api *scheduleApi) retrieveAttendance(ctx echo.Context) error {
	records, err := api.svc.GetAttendance(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting attendance")
	}
	return ok(ctx, records)
}

func (api *scheduleApi) saveAttendance(ctx echo.Context) error {
	var data schedule.AttendanceSheet
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AttendanceSheet")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.SaveAttendance(ctx.Request().Context(), ctx.Param("id"), data.Records)
	if err != nil {
		return errors.Wrap(err, "saving attendance")
	}
	return ok(ctx, echo.Map{"saved": n}, "Đã lưu điểm danh thành công!")
}

// Classes

func (api *scheduleApi) queryClasses(ctx echo.Context) error {
	classes, err := api.svc.ListClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing classes")
	}
	return ok(ctx, classes)
}

func (api *scheduleApi) createClass(ctx echo.Context) error {
	var data schedule.NewClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.AddClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return respond(ctx, http.StatusCreated, cls, fmt.Sprintf("Đã tạo thành công lớp học với mã: %s", cls.ID))
}

func (api *scheduleApi) updateClass(ctx echo.Context) error {
	var data schedule.UpdateClass
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateClass")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	cls, err := api.svc.EditClass(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating class")
	}
	return ok(ctx, cls, "Cập nhật thông tin lớp học thành công.")
}

func (api *scheduleApi) destroyClass(ctx echo.Context) error {
	if err := api.svc.DeleteClass(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting class")
	}
	return ok(ctx, nil, "Đã xóa lớp học thành công.")
}

// Teachers

func (api *scheduleApi) queryTeachers(ctx echo.Context) error {
	teachers, err := api.svc.ListTeachers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing teachers")
	}
	return ok(ctx, teachers)
}

func (api *scheduleApi) createTeacher(ctx echo.Context) error {
	var data schedule.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	teacher, err := api.svc.AddTeacher(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return respond(ctx, http.StatusCreated, teacher, fmt.Sprintf("Đã thêm giáo viên %s", teacher.ID))
}

func (api *scheduleApi) updateTeacher(ctx echo.Context) error {
	var data schedule.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	teacher, err := api.svc.EditTeacher(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ok(ctx, teacher, "Cập nhật thông tin giáo viên thành công.")
}

func (api *scheduleApi) destroyTeacher(ctx echo.Context) error {
	if err := api.svc.DeleteTeacher(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ok(ctx, nil, "Đã xóa giáo viên.")
}

// Courses

func (api *scheduleApi) queryCourses(ctx echo.Context) error {
	courses, err := api.svc.ListCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ok(ctx, courses)
}

func (api *scheduleApi) createCourse(ctx echo.Context) error {
	var data schedule.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	course, err := api.svc.AddCourse(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return respond(ctx, http.StatusCreated, course, fmt.Sprintf("Đã thêm khóa học \"%s\" thành công.", course.ID))
}

func (api *scheduleApi) updateCourse(ctx echo.Context) error {
	var data schedule.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	course, err := api.svc.EditCourse(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ok(ctx, course, fmt.Sprintf("Đã cập nhật khóa học \"%s\".", course.ID))
}

func (api *scheduleApi) destroyCourse(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := api.svc.DeleteCourse(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ok(ctx, nil, fmt.Sprintf("Đã xóa khóa học \"%s\".", id))
}
