package schedule

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

const (
	msgClassNotFound          = "Không tìm thấy lớp học."
	msgClassNotFoundForDelete = "Không tìm thấy lớp học để xóa."
	msgSessionNotFound        = "Không tìm thấy buổi học."
	msgTeacherNotFound        = "Không tìm thấy giáo viên."
	msgCourseNotFound         = "Không tìm thấy khóa học."
	msgCourseExists           = "Mã Khóa Học \"%s\" đã tồn tại. Vui lòng chọn một mã khác."
	msgCourseNotFoundForEdit  = "Không tìm thấy khóa học với mã \"%s\" để cập nhật."
	msgCourseNotFoundForDel   = "Không tìm thấy khóa học \"%s\"."
	msgCourseInUse            = "Không thể xóa. Khóa học \"%s\" đang được sử dụng bởi một hoặc nhiều lớp học."
	msgSessionHasAttendance   = "Không thể xóa buổi học đã có dữ liệu điểm danh."
	msgClassHasStudents       = "Không thể xóa lớp học đang có học viên."
	msgClassHasSessions       = "Không thể xóa lớp học đang có buổi học đã lên lịch."
	msgTeacherOwnsClass       = "Không thể xóa. Giáo viên này đang là giáo viên chính của một hoặc nhiều lớp học."
	msgTeacherOwnsSession     = "Không thể xóa. Giáo viên này đang được phân công dạy một hoặc nhiều buổi học lẻ."
	msgWeekdaysRequired       = "Vui lòng chọn ít nhất một ngày trong tuần."
	msgInvalidDate            = "Định dạng ngày không hợp lệ."
	msgInvalidTime            = "Định dạng giờ không hợp lệ."
	msgEndBeforeStart         = "Giờ kết thúc phải sau giờ bắt đầu."
	msgRangeTooLong           = "Khoảng thời gian không được vượt quá %d ngày."

	unknownClass = "Không rõ"
)

// ConflictError means the responsible teacher already teaches an overlapping session.
type ConflictError struct {
	TeacherID string
	SessionID string // blocking session; empty when it belongs to the same batch
	ClassID   string // class of the blocking session
	Start     time.Time
	End       time.Time
}

func newConflictError(teacherID string, blocking Session, classes map[string]Class) *ConflictError {
	classID := blocking.ClassID
	if _, ok := classes[classID]; !ok {
		classID = unknownClass
	}
	return &ConflictError{
		TeacherID: teacherID,
		SessionID: blocking.ID,
		ClassID:   classID,
		Start:     blocking.Start,
		End:       blocking.End,
	}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf(`TRÙNG LỊCH: Giáo viên đã có lịch dạy lớp "%s" lúc %s ngày %s.`,
		e.ClassID, e.Start.Format("15:04"), e.Start.Format("02/01/2006"))
}

func IsConflict(err error) bool {
	_, ok := errors.Cause(err).(*ConflictError)
	return ok
}
