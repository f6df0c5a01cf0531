package schedule

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
)

const defaultMaxRecurringDays = 366

type Service struct {
	store            core.RowStore
	locker           *core.Locker
	loc              *time.Location
	log              core.Logger
	maxRecurringDays int
}

func NewService(store core.RowStore, locker *core.Locker, conf *core.Config, log core.Logger) (*Service, error) {
	loc, err := conf.Location()
	if err != nil {
		return nil, errors.Wrapf(err, "loading timezone %q", conf.Timezone)
	}
	maxDays := conf.Schedule.MaxRecurringDays
	if maxDays <= 0 {
		maxDays = defaultMaxRecurringDays
	}
	return &Service{
		store:            store,
		locker:           locker,
		loc:              loc,
		log:              log,
		maxRecurringDays: maxDays,
	}, nil
}

// snapshot is the classes and sessions read at the start of an operation.
type snapshot struct {
	classes     map[string]Class
	classRows   []core.Row
	sessions    []Session
	sessionRows []core.Row
}

func (svc *Service) loadSchedule(ctx context.Context) (*snapshot, error) {
	classRows, err := svc.store.ReadTable(ctx, core.TableClasses)
	if err != nil {
		return nil, errors.Wrap(err, "reading classes")
	}
	sessionRows, err := svc.store.ReadTable(ctx, core.TableSessions)
	if err != nil {
		return nil, errors.Wrap(err, "reading sessions")
	}
	return &snapshot{
		classes:     decodeClasses(classRows),
		classRows:   classRows,
		sessions:    decodeSessions(sessionRows, svc.loc),
		sessionRows: sessionRows,
	}, nil
}

func (snap *snapshot) session(id string) (Session, bool) {
	for _, s := range snap.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return Session{}, false
}

// checkConflict fails when the teacher responsible for sess already teaches an overlapping
// session other than excludeID.
func (snap *snapshot) checkConflict(sess Session, class *Class, excludeID string) error {
	teacherID := ResolveTeacher(sess, class)
	if blocking := FindConflict(sess.Interval(), teacherID, snap.sessions, snap.classes, excludeID); blocking != nil {
		return newConflictError(teacherID, *blocking, snap.classes)
	}
	return nil
}

// Audit reports every pair of overlapping sessions in the current schedule.
func (svc *Service) Audit(ctx context.Context) ([]Clash, error) {
	snap, err := svc.loadSchedule(ctx)
	if err != nil {
		return nil, err
	}
	return Audit(snap.sessions, snap.classes), nil
}
