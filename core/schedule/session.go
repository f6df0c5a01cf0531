package schedule

import (
	"context"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/idgen"
)

// buildSession turns request data into a Session without an id.
func (svc *Service) buildSession(ns NewSession) (Session, error) {
	date, err := ParseDate(ns.Date, svc.loc)
	if err != nil {
		return Session{}, core.NewValidationError(nil, core.FieldError{Field: "date", Error: msgInvalidDate})
	}
	iv, err := NewInterval(date, ns.StartTime, ns.EndTime)
	if err != nil {
		return Session{}, err
	}
	return Session{
		ClassID:             core.CleanString(ns.ClassID),
		Date:                date,
		Start:               iv.Start,
		End:                 iv.End,
		SubstituteTeacherID: core.CleanString(ns.TeacherID),
	}, nil
}

func (svc *Service) CreateSession(ctx context.Context, ns NewSession) (Session, error) {
	sess, err := svc.buildSession(ns)
	if err != nil {
		return Session{}, err
	}

	err = svc.locker.WithLock(ctx, func() error {
		snap, err := svc.loadSchedule(ctx)
		if err != nil {
			return err
		}
		cls, ok := snap.classes[sess.ClassID]
		if !ok {
			return core.NewNotFoundError(msgClassNotFound)
		}
		if err := snap.checkConflict(sess, &cls, ""); err != nil {
			return err
		}

		sess.ID = idgen.NextID(core.Column(snap.sessionRows, sessionColID), sessionPrefix)
		if err := svc.store.AppendRows(ctx, core.TableSessions, sess.record()); err != nil {
			return errors.Wrap(err, "appending session")
		}
		return nil
	})
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// EditSession replaces the class, date, times and substitute of an existing session.
// The session is not checked against itself.
func (svc *Service) EditSession(ctx context.Context, id string, ns NewSession) (Session, error) {
	id = core.CleanString(id)
	sess, err := svc.buildSession(ns)
	if err != nil {
		return Session{}, err
	}

	err = svc.locker.WithLock(ctx, func() error {
		snap, err := svc.loadSchedule(ctx)
		if err != nil {
			return err
		}
		current, ok := snap.session(id)
		if !ok {
			return core.NewNotFoundError(msgSessionNotFound)
		}
		cls, ok := snap.classes[sess.ClassID]
		if !ok {
			return core.NewNotFoundError(msgClassNotFound)
		}
		if err := snap.checkConflict(sess, &cls, id); err != nil {
			return err
		}

		sess.ID = id
		sess.pos = current.pos
		if err := svc.store.UpdateRow(ctx, core.TableSessions, current.pos, sess.record()); err != nil {
			return errors.Wrap(err, "updating session")
		}
		return nil
	})
	if err != nil {
		return Session{}, err
	}
	return sess, nil
}

// DeleteSession removes a session that has no attendance records.
func (svc *Service) DeleteSession(ctx context.Context, id string) error {
	id = core.CleanString(id)
	return svc.locker.WithLock(ctx, func() error {
		attRows, err := svc.store.ReadTable(ctx, core.TableAttendance)
		if err != nil {
			return errors.Wrap(err, "reading attendance")
		}
		if references(attRows, attendanceColSession, id) {
			return core.NewDependencyError(msgSessionHasAttendance)
		}

		rows, err := svc.store.ReadTable(ctx, core.TableSessions)
		if err != nil {
			return errors.Wrap(err, "reading sessions")
		}
		pos := indexOf(rows, sessionColID, id)
		if pos < 0 {
			return core.NewNotFoundError(msgSessionNotFound)
		}
		if err := svc.store.DeleteRow(ctx, core.TableSessions, pos); err != nil {
			return errors.Wrap(err, "deleting session")
		}
		return nil
	})
}

// DeleteSessions removes every listed session that has no attendance and reports the rest.
// Rows are removed from the bottom of the table up so earlier positions stay valid.
func (svc *Service) DeleteSessions(ctx context.Context, ids []string) (DeleteResult, error) {
	requested := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = core.CleanString(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		requested = append(requested, id)
	}

	res := DeleteResult{Requested: len(requested), Deleted: []string{}, Blocked: []string{}, Missing: []string{}}
	if len(requested) == 0 {
		return res, nil
	}

	err := svc.locker.WithLock(ctx, func() error {
		attRows, err := svc.store.ReadTable(ctx, core.TableAttendance)
		if err != nil {
			return errors.Wrap(err, "reading attendance")
		}
		withAttendance := make(map[string]bool, len(attRows))
		for _, r := range attRows {
			withAttendance[core.CleanString(r.Cell(attendanceColSession))] = true
		}

		rows, err := svc.store.ReadTable(ctx, core.TableSessions)
		if err != nil {
			return errors.Wrap(err, "reading sessions")
		}
		found := make(map[string]bool, len(requested))
		var positions []int
		for i, r := range rows {
			id := core.CleanString(r.Cell(sessionColID))
			if seen[id] && !withAttendance[id] {
				positions = append(positions, i)
				found[id] = true
			}
		}

		sort.Sort(sort.Reverse(sort.IntSlice(positions)))
		for _, pos := range positions {
			if err := svc.store.DeleteRow(ctx, core.TableSessions, pos); err != nil {
				return errors.Wrapf(err, "deleting session at row %d", pos)
			}
		}

		for _, id := range requested {
			switch {
			case withAttendance[id]:
				res.Blocked = append(res.Blocked, id)
			case found[id]:
				res.Deleted = append(res.Deleted, id)
			default:
				res.Missing = append(res.Missing, id)
			}
		}
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}

	return res, nil
}

// ListSessions returns the sessions matching filter, ordered by start time. It does not lock.
func (svc *Service) ListSessions(ctx context.Context, filter SessionFilter) ([]SessionView, error) {
	snap, err := svc.loadSchedule(ctx)
	if err != nil {
		return nil, err
	}
	teacherRows, err := svc.store.ReadTable(ctx, core.TableTeachers)
	if err != nil {
		return nil, errors.Wrap(err, "reading teachers")
	}
	names := make(map[string]string, len(teacherRows))
	for i, r := range teacherRows {
		t := decodeTeacher(r, i)
		names[t.ID] = t.Name
	}

	var from, to time.Time
	if filter.From != "" {
		if from, err = ParseDate(filter.From, svc.loc); err != nil {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "from", Error: msgInvalidDate})
		}
	}
	if filter.To != "" {
		if to, err = ParseDate(filter.To, svc.loc); err != nil {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "to", Error: msgInvalidDate})
		}
	}

	matched := make([]Session, 0, len(snap.sessions))
	for _, s := range snap.sessions {
		if filter.ClassID != "" && s.ClassID != filter.ClassID {
			continue
		}
		if filter.TeacherID != "" && effectiveTeacher(s, snap.classes) != filter.TeacherID {
			continue
		}
		if !from.IsZero() && s.Date.Before(from) {
			continue
		}
		if !to.IsZero() && s.Date.After(to) {
			continue
		}
		matched = append(matched, s)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if filter.Descending {
			return matched[j].Start.Before(matched[i].Start)
		}
		return matched[i].Start.Before(matched[j].Start)
	})

	views := make([]SessionView, 0, len(matched))
	for _, s := range matched {
		teacherID := effectiveTeacher(s, snap.classes)
		views = append(views, newSessionView(s, teacherID, names[teacherID]))
	}
	return views, nil
}
