package schedule

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/idgen"
)

// recurringDates lists every date in [StartDate, EndDate] whose weekday was requested.
// A reversed range yields no dates.
func (svc *Service) recurringDates(nr NewRecurringSessions) ([]Interval, error) {
	if len(nr.Weekdays) == 0 {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "weekdays", Error: msgWeekdaysRequired})
	}
	wanted := make(map[int]bool, len(nr.Weekdays))
	for _, wd := range nr.Weekdays {
		if wd < 0 || wd > 6 {
			return nil, core.NewValidationError(nil, core.FieldError{Field: "weekdays", Error: msgWeekdaysRequired})
		}
		wanted[wd] = true
	}

	start, err := ParseDate(nr.StartDate, svc.loc)
	if err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "startDate", Error: msgInvalidDate})
	}
	end, err := ParseDate(nr.EndDate, svc.loc)
	if err != nil {
		return nil, core.NewValidationError(nil, core.FieldError{Field: "endDate", Error: msgInvalidDate})
	}
	if end.Before(start) {
		return nil, nil
	}
	if end.After(start.AddDate(0, 0, svc.maxRecurringDays)) {
		return nil, core.NewValidationError(nil, core.FieldError{
			Field: "endDate",
			Error: fmt.Sprintf(msgRangeTooLong, svc.maxRecurringDays),
		})
	}

	var ivs []Interval
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !wanted[int(d.Weekday())] {
			continue
		}
		iv, err := NewInterval(d, nr.StartTime, nr.EndTime)
		if err != nil {
			return nil, err
		}
		ivs = append(ivs, iv)
	}
	if len(ivs) == 0 {
		// still reject bad clock times when no date matched
		if _, err := NewInterval(start, nr.StartTime, nr.EndTime); err != nil {
			return nil, err
		}
	}
	return ivs, nil
}

// CreateRecurringSessions expands a weekly pattern into sessions taught by the class's main
// teacher. Either every generated session is written or none is: a single conflict, against the
// schedule or against an earlier session of the same batch, aborts the whole batch.
func (svc *Service) CreateRecurringSessions(ctx context.Context, nr NewRecurringSessions) (RecurringResult, error) {
	classID := core.CleanString(nr.ClassID)
	ivs, err := svc.recurringDates(nr)
	if err != nil {
		return RecurringResult{}, err
	}

	res := RecurringResult{Sessions: []Session{}}
	err = svc.locker.WithLock(ctx, func() error {
		snap, err := svc.loadSchedule(ctx)
		if err != nil {
			return err
		}
		cls, ok := snap.classes[classID]
		if !ok {
			return core.NewNotFoundError(msgClassNotFound)
		}
		if len(ivs) == 0 {
			return nil
		}

		teacherID := ResolveTeacher(Session{ClassID: classID}, &cls)
		timeline := TeacherTimeline(teacherID, snap.sessions, snap.classes, "")
		batch := make([]Session, 0, len(ivs))
		for _, iv := range ivs {
			cand := Session{
				ClassID: classID,
				Date:    dateOf(iv.Start),
				Start:   iv.Start,
				End:     iv.End,
			}
			if teacherID != "" {
				if blocking := firstOverlap(iv, timeline); blocking != nil {
					return newConflictError(teacherID, *blocking, snap.classes)
				}
				if blocking := firstOverlap(iv, batch); blocking != nil {
					return newConflictError(teacherID, *blocking, snap.classes)
				}
			}
			batch = append(batch, cand)
		}

		seq := idgen.NewSequence(core.Column(snap.sessionRows, sessionColID), sessionPrefix)
		rows := make([]core.Row, 0, len(batch))
		for i := range batch {
			batch[i].ID = seq.Next()
			rows = append(rows, batch[i].record())
		}
		if err := svc.store.AppendRows(ctx, core.TableSessions, rows...); err != nil {
			return errors.Wrap(err, "appending recurring sessions")
		}
		res.Created = len(batch)
		res.Sessions = batch
		return nil
	})
	if err != nil {
		return RecurringResult{}, err
	}

	if res.Created > 0 {
		svc.log.Info("recurring sessions created", map[string]interface{}{"class": classID, "count": res.Created})
	}
	return res, nil
}
