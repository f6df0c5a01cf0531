package schedule

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/idgen"
)

func (svc *Service) ListTeachers(ctx context.Context) ([]Teacher, error) {
	rows, err := svc.store.ReadTable(ctx, core.TableTeachers)
	if err != nil {
		return nil, errors.Wrap(err, "reading teachers")
	}
	teachers := make([]Teacher, 0, len(rows))
	for i, r := range rows {
		if t := decodeTeacher(r, i); t.ID != "" {
			teachers = append(teachers, t)
		}
	}
	return teachers, nil
}

// AddTeacher appends a teacher with the next GV id. The status defaults to Active.
func (svc *Service) AddTeacher(ctx context.Context, nt NewTeacher) (Teacher, error) {
	t := teacherFrom(nt)
	if t.Status == "" {
		t.Status = defaultTeacherStatus
	}

	err := svc.locker.WithLock(ctx, func() error {
		rows, err := svc.store.ReadTable(ctx, core.TableTeachers)
		if err != nil {
			return errors.Wrap(err, "reading teachers")
		}
		t.ID = idgen.NextID(core.Column(rows, teacherColID), teacherPrefix)
		t.pos = len(rows)
		if err := svc.store.AppendRows(ctx, core.TableTeachers, t.record()); err != nil {
			return errors.Wrap(err, "appending teacher")
		}
		return nil
	})
	if err != nil {
		return Teacher{}, err
	}
	return t, nil
}

// EditTeacher replaces every detail of a teacher except the id.
func (svc *Service) EditTeacher(ctx context.Context, id string, nt NewTeacher) (Teacher, error) {
	t := teacherFrom(nt)
	t.ID = core.CleanString(id)

	err := svc.locker.WithLock(ctx, func() error {
		rows, err := svc.store.ReadTable(ctx, core.TableTeachers)
		if err != nil {
			return errors.Wrap(err, "reading teachers")
		}
		t.pos = indexOf(rows, teacherColID, t.ID)
		if t.pos < 0 {
			return core.NewNotFoundError(msgTeacherNotFound)
		}
		if err := svc.store.UpdateRow(ctx, core.TableTeachers, t.pos, t.record()); err != nil {
			return errors.Wrap(err, "updating teacher")
		}
		return nil
	})
	if err != nil {
		return Teacher{}, err
	}
	return t, nil
}

func teacherFrom(nt NewTeacher) Teacher {
	return Teacher{
		Name:           nt.Name,
		Phone:          nt.Phone,
		Email:          nt.Email,
		DOB:            nt.DOB,
		StartDate:      nt.StartDate,
		Specialization: nt.Specialization,
		Status:         nt.Status,
		PayRate:        nt.PayRate,
	}
}

// DeleteTeacher removes a teacher who is neither the main teacher of a class nor the
// substitute of a session.
func (svc *Service) DeleteTeacher(ctx context.Context, id string) error {
	id = core.CleanString(id)
	return svc.locker.WithLock(ctx, func() error {
		classRows, err := svc.store.ReadTable(ctx, core.TableClasses)
		if err != nil {
			return errors.Wrap(err, "reading classes")
		}
		if references(classRows, classColTeacher, id) {
			return core.NewDependencyError(msgTeacherOwnsClass)
		}

		sessionRows, err := svc.store.ReadTable(ctx, core.TableSessions)
		if err != nil {
			return errors.Wrap(err, "reading sessions")
		}
		if references(sessionRows, sessionColTeacher, id) {
			return core.NewDependencyError(msgTeacherOwnsSession)
		}

		teacherRows, err := svc.store.ReadTable(ctx, core.TableTeachers)
		if err != nil {
			return errors.Wrap(err, "reading teachers")
		}
		pos := indexOf(teacherRows, teacherColID, id)
		if pos < 0 {
			return core.NewNotFoundError(msgTeacherNotFound)
		}
		if err := svc.store.DeleteRow(ctx, core.TableTeachers, pos); err != nil {
			return errors.Wrap(err, "deleting teacher")
		}
		return nil
	})
}
