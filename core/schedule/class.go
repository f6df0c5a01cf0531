package schedule

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/idgen"
)

func (svc *Service) ListClasses(ctx context.Context) ([]Class, error) {
	rows, err := svc.store.ReadTable(ctx, core.TableClasses)
	if err != nil {
		return nil, errors.Wrap(err, "reading classes")
	}
	classes := make([]Class, 0, len(rows))
	for i, r := range rows {
		if cls := decodeClass(r, i); cls.ID != "" {
			classes = append(classes, cls)
		}
	}
	return classes, nil
}

// AddClass creates a class of an existing course; its id is derived from the course and start month.
func (svc *Service) AddClass(ctx context.Context, nc NewClass) (Class, error) {
	startDate, err := ParseDate(nc.StartDate, svc.loc)
	if err != nil {
		return Class{}, core.NewValidationError(nil, core.FieldError{Field: "startDate", Error: msgInvalidDate})
	}
	cls := Class{
		CourseID:     core.CleanString(nc.CourseID),
		TeacherID:    core.CleanString(nc.TeacherID),
		MaxSize:      nc.MaxSize,
		ScheduleText: nc.ScheduleText,
		HoursText:    nc.HoursText,
	}

	err = svc.locker.WithLock(ctx, func() error {
		courseRows, err := svc.store.ReadTable(ctx, core.TableCourses)
		if err != nil {
			return errors.Wrap(err, "reading courses")
		}
		if !references(courseRows, courseColID, cls.CourseID) {
			return core.NewNotFoundError(msgCourseNotFound)
		}

		rows, err := svc.store.ReadTable(ctx, core.TableClasses)
		if err != nil {
			return errors.Wrap(err, "reading classes")
		}
		cls.ID = idgen.NewClassID(core.Column(rows, classColID), cls.CourseID, startDate)
		cls.pos = len(rows)
		if err := svc.store.AppendRows(ctx, core.TableClasses, cls.record()); err != nil {
			return errors.Wrap(err, "appending class")
		}
		return nil
	})
	if err != nil {
		return Class{}, err
	}
	return cls, nil
}

// EditClass updates a class. When the main teacher changes, every session of the class that has
// no substitute moves to the new teacher and must fit the new teacher's timeline.
func (svc *Service) EditClass(ctx context.Context, id string, uc UpdateClass) (Class, error) {
	id = core.CleanString(id)
	var updated Class

	err := svc.locker.WithLock(ctx, func() error {
		snap, err := svc.loadSchedule(ctx)
		if err != nil {
			return err
		}
		cls, ok := snap.classes[id]
		if !ok {
			return core.NewNotFoundError(msgClassNotFound)
		}

		newTeacher := core.CleanString(uc.TeacherID)
		if newTeacher != "" && newTeacher != cls.TeacherID {
			if err := snap.checkReassignment(cls, newTeacher); err != nil {
				return err
			}
		}

		cls.TeacherID = newTeacher
		cls.MaxSize = uc.MaxSize
		cls.ScheduleText = uc.ScheduleText
		cls.HoursText = uc.HoursText
		if err := svc.store.UpdateRow(ctx, core.TableClasses, cls.pos, cls.record()); err != nil {
			return errors.Wrap(err, "updating class")
		}
		updated = cls
		return nil
	})
	if err != nil {
		return Class{}, err
	}
	return updated, nil
}

// checkReassignment verifies that the sessions of cls taught by its main teacher can all be
// taught by teacherID, against the existing timeline and against each other.
func (snap *snapshot) checkReassignment(cls Class, teacherID string) error {
	timeline := TeacherTimeline(teacherID, snap.sessions, snap.classes, "")
	var moved []Session
	for _, s := range snap.sessions {
		if s.ClassID != cls.ID || s.SubstituteTeacherID != "" {
			continue
		}
		if blocking := firstOverlap(s.Interval(), timeline); blocking != nil {
			return newConflictError(teacherID, *blocking, snap.classes)
		}
		if blocking := firstOverlap(s.Interval(), moved); blocking != nil {
			return newConflictError(teacherID, *blocking, snap.classes)
		}
		moved = append(moved, s)
	}
	return nil
}

// DeleteClass removes a class that has neither enrollments nor sessions.
func (svc *Service) DeleteClass(ctx context.Context, id string) error {
	id = core.CleanString(id)
	return svc.locker.WithLock(ctx, func() error {
		enrollRows, err := svc.store.ReadTable(ctx, core.TableEnrollments)
		if err != nil {
			return errors.Wrap(err, "reading enrollments")
		}
		if references(enrollRows, enrollmentColClass, id) {
			return core.NewDependencyError(msgClassHasStudents)
		}

		sessionRows, err := svc.store.ReadTable(ctx, core.TableSessions)
		if err != nil {
			return errors.Wrap(err, "reading sessions")
		}
		if references(sessionRows, sessionColClass, id) {
			return core.NewDependencyError(msgClassHasSessions)
		}

		classRows, err := svc.store.ReadTable(ctx, core.TableClasses)
		if err != nil {
			return errors.Wrap(err, "reading classes")
		}
		pos := indexOf(classRows, classColID, id)
		if pos < 0 {
			return core.NewNotFoundError(msgClassNotFoundForDelete)
		}
		if err := svc.store.DeleteRow(ctx, core.TableClasses, pos); err != nil {
			return errors.Wrap(err, "deleting class")
		}
		return nil
	})
}
