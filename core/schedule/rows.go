package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/dance10/webapps/core"
)

const (
	sessionPrefix    = "SES"
	attendancePrefix = "ATT"
	teacherPrefix    = "GV"

	defaultTeacherStatus = "Active"

	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// column positions, one block per table
const (
	classColID = iota
	classColCourse
	classColTeacher
	classColMaxSize
	classColSchedule
	classColHours
)

const (
	sessionColID = iota
	sessionColClass
	sessionColDate
	sessionColStart
	sessionColEnd
	sessionColTeacher
)

const (
	attendanceColID = iota
	attendanceColSession
	attendanceColStudent
	attendanceColStatus
	attendanceColNote
)

const (
	enrollmentColID = iota
	enrollmentColStudent
	enrollmentColClass
)

const (
	teacherColID = iota
	teacherColName
	teacherColPhone
	teacherColEmail
	teacherColDOB
	teacherColStartDate
	teacherColSpecialization
	teacherColStatus
	teacherColPayRate
)

const (
	courseColID = iota
	courseColProgram
	courseColLevel
	courseColDescription
	courseColFee
)

func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func decodeClass(r core.Row, pos int) Class {
	maxSize, _ := strconv.Atoi(strings.TrimSpace(r.Cell(classColMaxSize)))
	return Class{
		ID:           core.CleanString(r.Cell(classColID)),
		CourseID:     core.CleanString(r.Cell(classColCourse)),
		TeacherID:    core.CleanString(r.Cell(classColTeacher)),
		MaxSize:      maxSize,
		ScheduleText: r.Cell(classColSchedule),
		HoursText:    r.Cell(classColHours),
		pos:          pos,
	}
}

func (c Class) record() core.Row {
	return core.Row{c.ID, c.CourseID, c.TeacherID, strconv.Itoa(c.MaxSize), c.ScheduleText, c.HoursText}
}

// decodeClasses indexes classes by id. Rows with a blank id are skipped; on duplicate ids the
// first row wins.
func decodeClasses(rows []core.Row) map[string]Class {
	classes := make(map[string]Class, len(rows))
	for i, r := range rows {
		cls := decodeClass(r, i)
		if cls.ID == "" {
			continue
		}
		if _, ok := classes[cls.ID]; !ok {
			classes[cls.ID] = cls
		}
	}
	return classes
}

// decodeSession is lenient: unparseable dates or times are left zero, and a zero interval
// never overlaps anything.
func decodeSession(r core.Row, pos int, loc *time.Location) Session {
	return Session{
		ID:                  core.CleanString(r.Cell(sessionColID)),
		ClassID:             core.CleanString(r.Cell(sessionColClass)),
		Date:                parseStoredDate(r.Cell(sessionColDate), loc),
		Start:               parseStoredInstant(r.Cell(sessionColStart), loc),
		End:                 parseStoredInstant(r.Cell(sessionColEnd), loc),
		SubstituteTeacherID: core.CleanString(r.Cell(sessionColTeacher)),
		pos:                 pos,
	}
}

func (s Session) record() core.Row {
	return core.Row{
		s.ID,
		s.ClassID,
		s.Date.Format(dateLayout),
		s.Start.Format(time.RFC3339),
		s.End.Format(time.RFC3339),
		s.SubstituteTeacherID,
	}
}

func decodeSessions(rows []core.Row, loc *time.Location) []Session {
	sessions := make([]Session, 0, len(rows))
	for i, r := range rows {
		sess := decodeSession(r, i, loc)
		if sess.ID == "" {
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions
}

func decodeAttendance(r core.Row) Attendance {
	return Attendance{
		ID:        core.CleanString(r.Cell(attendanceColID)),
		SessionID: core.CleanString(r.Cell(attendanceColSession)),
		StudentID: core.CleanString(r.Cell(attendanceColStudent)),
		Status:    r.Cell(attendanceColStatus),
		Note:      r.Cell(attendanceColNote),
	}
}

func (a Attendance) record() core.Row {
	return core.Row{a.ID, a.SessionID, a.StudentID, a.Status, a.Note}
}

func decodeTeacher(r core.Row, pos int) Teacher {
	return Teacher{
		ID:             core.CleanString(r.Cell(teacherColID)),
		Name:           core.CleanString(r.Cell(teacherColName)),
		Phone:          core.CleanString(r.Cell(teacherColPhone)),
		Email:          core.CleanString(r.Cell(teacherColEmail)),
		DOB:            core.CleanString(r.Cell(teacherColDOB)),
		StartDate:      core.CleanString(r.Cell(teacherColStartDate)),
		Specialization: core.CleanString(r.Cell(teacherColSpecialization)),
		Status:         core.CleanString(r.Cell(teacherColStatus)),
		PayRate:        parseAmount(r.Cell(teacherColPayRate)),
		pos:            pos,
	}
}

func (t Teacher) record() core.Row {
	return core.Row{
		t.ID,
		t.Name,
		t.Phone,
		t.Email,
		t.DOB,
		t.StartDate,
		t.Specialization,
		t.Status,
		formatAmount(t.PayRate),
	}
}

func decodeCourse(r core.Row, pos int) Course {
	return Course{
		ID:          core.CleanString(r.Cell(courseColID)),
		ProgramName: core.CleanString(r.Cell(courseColProgram)),
		Level:       core.CleanString(r.Cell(courseColLevel)),
		Description: r.Cell(courseColDescription),
		Fee:         parseAmount(r.Cell(courseColFee)),
		pos:         pos,
	}
}

func (c Course) record() core.Row {
	return core.Row{c.ID, c.ProgramName, c.Level, c.Description, formatAmount(c.Fee)}
}

func parseStoredDate(s string, loc *time.Location) time.Time {
	s = strings.TrimSpace(s)
	if d, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return d
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
	return time.Time{}
}

func parseStoredInstant(s string, loc *time.Location) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t.In(loc)
}

// indexOf returns the position of the first row whose cell at col equals id, or -1.
func indexOf(rows []core.Row, col int, id string) int {
	for i, r := range rows {
		if core.CleanString(r.Cell(col)) == id {
			return i
		}
	}
	return -1
}

func references(rows []core.Row, col int, id string) bool {
	return indexOf(rows, col, id) >= 0
}
