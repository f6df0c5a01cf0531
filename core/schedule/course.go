package schedule

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
)

func (svc *Service) ListCourses(ctx context.Context) ([]Course, error) {
	rows, err := svc.store.ReadTable(ctx, core.TableCourses)
	if err != nil {
		return nil, errors.Wrap(err, "reading courses")
	}
	courses := make([]Course, 0, len(rows))
	for i, r := range rows {
		if c := decodeCourse(r, i); c.ID != "" {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

// AddCourse appends a course under the id chosen by the caller; ids must be unique.
func (svc *Service) AddCourse(ctx context.Context, nc NewCourse) (Course, error) {
	course := Course{
		ID:          nc.CourseID,
		ProgramName: nc.ProgramName,
		Level:       nc.Level,
		Description: nc.Description,
		Fee:         nc.Fee,
	}

	err := svc.locker.WithLock(ctx, func() error {
		rows, err := svc.store.ReadTable(ctx, core.TableCourses)
		if err != nil {
			return errors.Wrap(err, "reading courses")
		}
		if references(rows, courseColID, course.ID) {
			return core.NewValidationError(nil, core.FieldError{
				Field: "courseId",
				Error: fmt.Sprintf(msgCourseExists, course.ID),
			})
		}
		course.pos = len(rows)
		if err := svc.store.AppendRows(ctx, core.TableCourses, course.record()); err != nil {
			return errors.Wrap(err, "appending course")
		}
		return nil
	})
	if err != nil {
		return Course{}, err
	}
	return course, nil
}

func (svc *Service) EditCourse(ctx context.Context, id string, uc UpdateCourse) (Course, error) {
	course := Course{
		ID:          core.CleanString(id),
		ProgramName: uc.ProgramName,
		Level:       uc.Level,
		Description: uc.Description,
		Fee:         uc.Fee,
	}

	err := svc.locker.WithLock(ctx, func() error {
		rows, err := svc.store.ReadTable(ctx, core.TableCourses)
		if err != nil {
			return errors.Wrap(err, "reading courses")
		}
		course.pos = indexOf(rows, courseColID, course.ID)
		if course.pos < 0 {
			return core.NewNotFoundError(fmt.Sprintf(msgCourseNotFoundForEdit, course.ID))
		}
		if err := svc.store.UpdateRow(ctx, core.TableCourses, course.pos, course.record()); err != nil {
			return errors.Wrap(err, "updating course")
		}
		return nil
	})
	if err != nil {
		return Course{}, err
	}
	return course, nil
}

// DeleteCourse removes a course that no class is built on.
func (svc *Service) DeleteCourse(ctx context.Context, id string) error {
	id = core.CleanString(id)
	return svc.locker.WithLock(ctx, func() error {
		classRows, err := svc.store.ReadTable(ctx, core.TableClasses)
		if err != nil {
			return errors.Wrap(err, "reading classes")
		}
		if references(classRows, classColCourse, id) {
			return core.NewDependencyError(fmt.Sprintf(msgCourseInUse, id))
		}

		rows, err := svc.store.ReadTable(ctx, core.TableCourses)
		if err != nil {
			return errors.Wrap(err, "reading courses")
		}
		pos := indexOf(rows, courseColID, id)
		if pos < 0 {
			return core.NewNotFoundError(fmt.Sprintf(msgCourseNotFoundForDel, id))
		}
		if err := svc.store.DeleteRow(ctx, core.TableCourses, pos); err != nil {
			return errors.Wrap(err, "deleting course")
		}
		return nil
	})
}
