package testutil

import (
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/dance10/webapps/core"
)

const Timezone = "Asia/Ho_Chi_Minh"

// NewConfig returns a config suitable for tests; nothing is read from the environment.
func NewConfig() *core.Config {
	conf := &core.Config{
		Env:         "TEST",
		TestMode:    true,
		AppName:     "Quản Lý Trung Tâm",
		Timezone:    Timezone,
		LockTimeout: time.Second,
	}
	conf.Schedule.MaxRecurringDays = 366
	return conf
}

func Location(t *testing.T) *time.Location {
	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		t.Fatalf("Location() failed: %v", err)
	}
	return loc
}

// Instant returns date ("2006-01-02") at clock ("15:04") in the test timezone.
func Instant(t *testing.T, date, clock string) time.Time {
	tm, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, Location(t))
	if err != nil {
		t.Fatalf("Instant() failed: %v", err)
	}
	return tm
}

func appendRow(t *testing.T, store core.RowStore, table string, row core.Row) {
	if err := store.AppendRows(context.Background(), table, row); err != nil {
		t.Fatalf("seeding %s failed: %v", table, err)
	}
}

// CreateTeacher seeds a full-width teacher row: id, name, phone, email, dob, start date,
// specialization, status, pay rate.
func CreateTeacher(t *testing.T, store core.RowStore, id, name string) {
	appendRow(t, store, core.TableTeachers, core.Row{id, name, "", "", "", "", "", "Active", "200000"})
}

func CreateCourse(t *testing.T, store core.RowStore, id, programName string) {
	appendRow(t, store, core.TableCourses, core.Row{id, programName, "", "", "0"})
}

func CreateClass(t *testing.T, store core.RowStore, id, courseID, teacherID string) {
	appendRow(t, store, core.TableClasses, core.Row{id, courseID, teacherID, "12", "", ""})
}

// CreateSession seeds a session row; teacherID is the substitute and may be empty.
func CreateSession(t *testing.T, store core.RowStore, id, classID, date, start, end, teacherID string) {
	appendRow(t, store, core.TableSessions, core.Row{
		id,
		classID,
		date,
		Instant(t, date, start).Format(time.RFC3339),
		Instant(t, date, end).Format(time.RFC3339),
		teacherID,
	})
}

func CreateAttendance(t *testing.T, store core.RowStore, id, sessionID, studentID, status string) {
	appendRow(t, store, core.TableAttendance, core.Row{id, sessionID, studentID, status, ""})
}

func CreateEnrollment(t *testing.T, store core.RowStore, id, studentID, classID string) {
	appendRow(t, store, core.TableEnrollments, core.Row{id, studentID, classID})
}

// NopLogger discards everything.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

type LogEntry struct {
	Level string
	Msg   string
	Args  []interface{}
}

// RecordingLogger keeps every entry for later assertions.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ core.Logger = (*RecordingLogger)(nil)

func (l *RecordingLogger) record(level, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Msg: msg, Args: args})
}

// Find returns the entries logged with msg.
func (l *RecordingLogger) Find(msg string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var found []LogEntry
	for _, e := range l.entries {
		if e.Msg == msg {
			found = append(found, e)
		}
	}
	return found
}

func (l *RecordingLogger) Debug(msg string, args ...interface{}) { l.record("debug", msg, args) }
func (l *RecordingLogger) Info(msg string, args ...interface{})  { l.record("info", msg, args) }
func (l *RecordingLogger) Warn(msg string, args ...interface{})  { l.record("warn", msg, args) }
func (l *RecordingLogger) Error(msg string, args ...interface{}) { l.record("error", msg, args) }
func (l *RecordingLogger) Fatal(msg string, args ...interface{}) { l.record("fatal", msg, args) }
