package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/dance10/webapps/core"
)

type Teacher struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	DOB            string  `json:"dob"`
	StartDate      string  `json:"startDate"`
	Specialization string  `json:"specialization"`
	Status         string  `json:"status"`
	PayRate        float64 `json:"payRate"`

	pos int
}

type Course struct {
	ID          string  `json:"id"`
	ProgramName string  `json:"programName"`
	Level       string  `json:"level"`
	Description string  `json:"description"`
	Fee         float64 `json:"fee"`

	pos int
}

type Class struct {
	ID           string `json:"id"`
	CourseID     string `json:"courseId"`
	TeacherID    string `json:"teacherId"` // main teacher, optional
	MaxSize      int    `json:"maxSize"`
	ScheduleText string `json:"schedule"`
	HoursText    string `json:"hours"`

	pos int
}

// Session is one scheduled meeting of a class. Start and End are absolute instants in the
// configured timezone; Date is midnight of the calendar day.
type Session struct {
	ID                  string
	ClassID             string
	Date                time.Time
	Start               time.Time
	End                 time.Time
	SubstituteTeacherID string

	pos int
}

func (s Session) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

func (s Session) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(newSessionView(s, "", ""))
}

// SessionView is the wire form of a Session.
type SessionView struct {
	ID                 string `json:"id"`
	ClassID            string `json:"classId"`
	Date               string `json:"date"`
	StartTime          string `json:"startTime"`
	EndTime            string `json:"endTime"`
	TeacherID          string `json:"teacherId"`
	EffectiveTeacherID string `json:"effectiveTeacherId,omitempty"`
	Teacher            string `json:"teacher,omitempty"`
}

func newSessionView(s Session, effTeacherID, teacherName string) SessionView {
	view := SessionView{
		ID:                 s.ID,
		ClassID:            s.ClassID,
		TeacherID:          s.SubstituteTeacherID,
		EffectiveTeacherID: effTeacherID,
		Teacher:            teacherName,
	}
	if !s.Date.IsZero() {
		view.Date = s.Date.Format(dateLayout)
	}
	if !s.Start.IsZero() {
		view.StartTime = s.Start.Format(clockLayout)
	}
	if !s.End.IsZero() {
		view.EndTime = s.End.Format(clockLayout)
	}
	return view
}

type Attendance struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId"`
	StudentID string `json:"studentId"`
	Status    string `json:"status"`
	Note      string `json:"note"`
}

// NewSession contains information needed to create a Session, or to replace the editable
// fields of an existing one.
type NewSession struct {
	ClassID   string `json:"classId" validate:"required,notblank"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
	TeacherID string `json:"teacherId"` // substitute, optional
}

func (ns *NewSession) Validate(validate *validator.Validate) error {
	ns.ClassID = core.CleanString(ns.ClassID)
	ns.Date = core.CleanString(ns.Date)
	ns.StartTime = core.CleanString(ns.StartTime)
	ns.EndTime = core.CleanString(ns.EndTime)
	ns.TeacherID = core.CleanString(ns.TeacherID)
	return validate.Struct(ns)
}

// NewRecurringSessions describes a weekly pattern expanded over a date range.
// Weekdays use 0 for Sunday through 6 for Saturday.
type NewRecurringSessions struct {
	ClassID   string `json:"classId" validate:"required,notblank"`
	Weekdays  []int  `json:"weekdays" validate:"dive,min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" validate:"required,datetime=15:04"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
}

func (nr *NewRecurringSessions) Validate(validate *validator.Validate) error {
	nr.ClassID = core.CleanString(nr.ClassID)
	nr.StartTime = core.CleanString(nr.StartTime)
	nr.EndTime = core.CleanString(nr.EndTime)
	nr.StartDate = core.CleanString(nr.StartDate)
	nr.EndDate = core.CleanString(nr.EndDate)
	return validate.Struct(nr)
}

type RecurringResult struct {
	Created  int       `json:"created"`
	Sessions []Session `json:"sessions"`
}

func (r RecurringResult) Message() string {
	if r.Created == 0 {
		return "Không có buổi học mới nào được tạo."
	}
	return fmt.Sprintf("Đã tạo thành công %d buổi học.", r.Created)
}

// DeleteResult reports a bulk delete. Blocked sessions have attendance; missing ones do not exist.
type DeleteResult struct {
	Requested int      `json:"requested"`
	Deleted   []string `json:"deleted"`
	Blocked   []string `json:"blocked"`
	Missing   []string `json:"missing"`
}

func (r DeleteResult) Message() string {
	if r.Requested == 0 {
		return "Không có buổi học nào được chọn để xóa."
	}
	parts := make([]string, 0, 3)
	if n := len(r.Deleted); n > 0 {
		parts = append(parts, fmt.Sprintf("Đã xóa thành công %d buổi học.", n))
	}
	if n := len(r.Blocked); n > 0 {
		parts = append(parts, fmt.Sprintf("%d buổi học không thể xóa do đã có dữ liệu điểm danh.", n))
	}
	if n := len(r.Missing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d buổi học không tồn tại.", n))
	}
	if len(parts) == 0 {
		return "Không có buổi học nào được xóa."
	}
	return strings.Join(parts, " ")
}

type SessionFilter struct {
	ClassID   string `query:"classId" json:"classId"`
	TeacherID string `query:"teacherId" json:"teacherId"`
	From      string `query:"from" json:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" json:"to" validate:"omitempty,datetime=2006-01-02"`

	Descending bool `query:"-" json:"-"` // latest start first
}

func (sf *SessionFilter) Validate(validate *validator.Validate) error {
	sf.ClassID = core.CleanString(sf.ClassID)
	sf.TeacherID = core.CleanString(sf.TeacherID)
	sf.From = core.CleanString(sf.From)
	sf.To = core.CleanString(sf.To)
	return validate.Struct(sf)
}

type NewClass struct {
	CourseID     string `json:"courseId" validate:"required,notblank"`
	TeacherID    string `json:"teacherId"`
	StartDate    string `json:"startDate" validate:"required,datetime=2006-01-02"`
	MaxSize      int    `json:"maxSize" validate:"min=0"`
	ScheduleText string `json:"schedule"`
	HoursText    string `json:"hours"`
}

func (nc *NewClass) Validate(validate *validator.Validate) error {
	nc.CourseID = core.CleanString(nc.CourseID)
	nc.TeacherID = core.CleanString(nc.TeacherID)
	nc.StartDate = core.CleanString(nc.StartDate)
	nc.ScheduleText = core.CleanString(nc.ScheduleText)
	nc.HoursText = core.CleanString(nc.HoursText)
	return validate.Struct(nc)
}

// UpdateClass defines what may be changed on an existing Class. The course is fixed.
type UpdateClass struct {
	TeacherID    string `json:"teacherId"`
	MaxSize      int    `json:"maxSize" validate:"min=0"`
	ScheduleText string `json:"schedule"`
	HoursText    string `json:"hours"`
}

func (uc *UpdateClass) Validate(validate *validator.Validate) error {
	uc.TeacherID = core.CleanString(uc.TeacherID)
	uc.ScheduleText = core.CleanString(uc.ScheduleText)
	uc.HoursText = core.CleanString(uc.HoursText)
	return validate.Struct(uc)
}

// NewTeacher contains information needed to create a Teacher or to replace an existing one's details.
type NewTeacher struct {
	Name           string  `json:"name" validate:"required,notblank"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email" validate:"omitempty,email"`
	DOB            string  `json:"dob" validate:"omitempty,datetime=2006-01-02"`
	StartDate      string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	Specialization string  `json:"specialization"`
	Status         string  `json:"status"`
	PayRate        float64 `json:"payRate" validate:"min=0"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Name = core.CleanString(nt.Name)
	nt.Phone = core.CleanString(nt.Phone)
	nt.Email = core.CleanString(nt.Email, true)
	nt.DOB = core.CleanString(nt.DOB)
	nt.StartDate = core.CleanString(nt.StartDate)
	nt.Specialization = core.CleanString(nt.Specialization)
	nt.Status = core.CleanString(nt.Status)
	return validate.Struct(nt)
}

type NewCourse struct {
	CourseID    string  `json:"courseId" validate:"required,notblank"`
	ProgramName string  `json:"programName" validate:"required,notblank"`
	Level       string  `json:"level"`
	Description string  `json:"description"`
	Fee         float64 `json:"fee" validate:"min=0"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.CourseID = core.CleanString(nc.CourseID)
	nc.ProgramName = core.CleanString(nc.ProgramName)
	nc.Level = core.CleanString(nc.Level)
	nc.Description = core.CleanString(nc.Description)
	return validate.Struct(nc)
}

// UpdateCourse defines what may be changed on an existing Course. The id is fixed.
type UpdateCourse struct {
	ProgramName string  `json:"programName" validate:"required,notblank"`
	Level       string  `json:"level"`
	Description string  `json:"description"`
	Fee         float64 `json:"fee" validate:"min=0"`
}

func (uc *UpdateCourse) Validate(validate *validator.Validate) error {
	uc.ProgramName = core.CleanString(uc.ProgramName)
	uc.Level = core.CleanString(uc.Level)
	uc.Description = core.CleanString(uc.Description)
	return validate.Struct(uc)
}

type AttendanceEntry struct {
	StudentID string `json:"studentId" validate:"required,notblank"`
	Status    string `json:"status" validate:"required,notblank"`
	Note      string `json:"note"`
}

type AttendanceSheet struct {
	Records []AttendanceEntry `json:"records" validate:"required,dive"`
}

func (as *AttendanceSheet) Validate(validate *validator.Validate) error {
	for i := range as.Records {
		as.Records[i].StudentID = core.CleanString(as.Records[i].StudentID)
		as.Records[i].Status = core.CleanString(as.Records[i].Status)
		as.Records[i].Note = core.CleanString(as.Records[i].Note)
	}
	return validate.Struct(as)
}
