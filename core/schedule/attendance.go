package schedule

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/idgen"
)

func (svc *Service) GetAttendance(ctx context.Context, sessionID string) ([]Attendance, error) {
	sessionID = core.CleanString(sessionID)
	rows, err := svc.store.ReadTable(ctx, core.TableAttendance)
	if err != nil {
		return nil, errors.Wrap(err, "reading attendance")
	}
	records := make([]Attendance, 0)
	for _, r := range rows {
		if att := decodeAttendance(r); att.SessionID == sessionID {
			records = append(records, att)
		}
	}
	return records, nil
}

// SaveAttendance upserts one record per student for the session and returns how many were written.
// A later entry for the same student wins. Every entry is resolved before anything is written; new
// records are appended in one batch ahead of the in-place updates, so a failed append leaves the
// table untouched. A failure while updating can still leave earlier updates saved.
func (svc *Service) SaveAttendance(ctx context.Context, sessionID string, entries []AttendanceEntry) (int, error) {
	sessionID = core.CleanString(sessionID)
	var saved int

	err := svc.locker.WithLock(ctx, func() error {
		sessionRows, err := svc.store.ReadTable(ctx, core.TableSessions)
		if err != nil {
			return errors.Wrap(err, "reading sessions")
		}
		if !references(sessionRows, sessionColID, sessionID) {
			return core.NewNotFoundError(msgSessionNotFound)
		}

		rows, err := svc.store.ReadTable(ctx, core.TableAttendance)
		if err != nil {
			return errors.Wrap(err, "reading attendance")
		}
		existing := make(map[string]int)
		for i, r := range rows {
			if core.CleanString(r.Cell(attendanceColSession)) == sessionID {
				existing[core.CleanString(r.Cell(attendanceColStudent))] = i
			}
		}

		seq := idgen.NewSequence(core.Column(rows, attendanceColID), attendancePrefix)
		updates := make(map[int]Attendance)
		var updateOrder []int
		pending := make(map[string]int)
		var appended []Attendance
		for _, e := range entries {
			studentID := core.CleanString(e.StudentID)
			if pos, ok := existing[studentID]; ok {
				att, seen := updates[pos]
				if !seen {
					att = decodeAttendance(rows[pos])
					updateOrder = append(updateOrder, pos)
				}
				att.Status, att.Note = e.Status, e.Note
				updates[pos] = att
				continue
			}
			if i, ok := pending[studentID]; ok {
				appended[i].Status, appended[i].Note = e.Status, e.Note
				continue
			}
			pending[studentID] = len(appended)
			appended = append(appended, Attendance{
				ID:        seq.Next(),
				SessionID: sessionID,
				StudentID: studentID,
				Status:    e.Status,
				Note:      e.Note,
			})
		}

		if len(appended) > 0 {
			newRows := make([]core.Row, 0, len(appended))
			for _, att := range appended {
				newRows = append(newRows, att.record())
			}
			if err := svc.store.AppendRows(ctx, core.TableAttendance, newRows...); err != nil {
				return errors.Wrap(err, "appending attendance")
			}
			saved += len(appended)
		}
		for _, pos := range updateOrder {
			if err := svc.store.UpdateRow(ctx, core.TableAttendance, pos, updates[pos].record()); err != nil {
				return errors.Wrap(err, "updating attendance")
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return saved, nil
}
