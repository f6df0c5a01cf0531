package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/storage/database/inmem"
	"github.com/dance10/webapps/tests"
)

func TestService_CreateSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	testutil.CreateClass(t, store, "C1", "IE", "T1")
	testutil.CreateClass(t, store, "C2", "IE", "T1")
	testutil.CreateSession(t, store, "SES001", "C1", "2025-09-01", "09:00", "10:30", "")

	t.Run("overlap with main teacher is rejected", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, NewSession{ClassID: "C2", Date: "2025-09-01", StartTime: "09:30", EndTime: "11:00"})
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.Equal(t, `TRÙNG LỊCH: Giáo viên đã có lịch dạy lớp "C1" lúc 09:00 ngày 01/09/2025.`, err.Error())
		assert.Equal(t, []string{"SES001"}, tableIDs(t, store, core.TableSessions))
	})

	t.Run("substitute teacher is free", func(t *testing.T) {
		sess, err := svc.CreateSession(ctx, NewSession{ClassID: "C2", Date: "2025-09-01", StartTime: "09:30", EndTime: "11:00", TeacherID: "T2"})
		require.NoError(t, err)
		assert.Equal(t, "SES002", sess.ID)
		assert.Equal(t, "T2", sess.SubstituteTeacherID)
	})

	t.Run("touching sessions are allowed", func(t *testing.T) {
		sess, err := svc.CreateSession(ctx, NewSession{ClassID: "C2", Date: "2025-09-01", StartTime: "10:30", EndTime: "12:00"})
		require.NoError(t, err)
		assert.Equal(t, "SES003", sess.ID)
		assert.Equal(t, testutil.Instant(t, "2025-09-01", "10:30"), sess.Start)
		assert.Equal(t, testutil.Instant(t, "2025-09-01", "12:00"), sess.End)

		rows, err := store.ReadTable(ctx, core.TableSessions)
		require.NoError(t, err)
		assert.Equal(t, core.Row{"SES003", "C2", "2025-09-01", "2025-09-01T10:30:00+07:00", "2025-09-01T12:00:00+07:00", ""}, rows[2])
	})

	t.Run("unknown class", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, NewSession{ClassID: "C9", Date: "2025-09-01", StartTime: "14:00", EndTime: "15:00"})
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
		assert.Equal(t, "Không tìm thấy lớp học.", err.Error())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.CreateSession(ctx, NewSession{ClassID: "C1", Date: "2025-09-01", StartTime: "15:00", EndTime: "14:00"})
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "endTime", verr.Fields[0].Field)
	})

	t.Run("busy", func(t *testing.T) {
		err := svc.locker.WithLock(ctx, func() error {
			_, err := svc.CreateSession(ctx, NewSession{ClassID: "C1", Date: "2025-09-02", StartTime: "09:00", EndTime: "10:00"})
			return err
		})
		assert.Equal(t, core.ErrBusy, err)
		assert.Len(t, tableIDs(t, store, core.TableSessions), 3)
	})
}

func TestService_EditSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	testutil.CreateClass(t, store, "C1", "IE", "T1")
	testutil.CreateClass(t, store, "C2", "IE", "T2")
	testutil.CreateSession(t, store, "SES001", "C1", "2025-09-01", "09:00", "10:30", "")
	testutil.CreateSession(t, store, "SES002", "C2", "2025-09-01", "13:00", "14:00", "")

	t.Run("a session never conflicts with itself", func(t *testing.T) {
		sess, err := svc.EditSession(ctx, "SES001", NewSession{ClassID: "C1", Date: "2025-09-01", StartTime: "09:15", EndTime: "10:45"})
		require.NoError(t, err)
		assert.Equal(t, "SES001", sess.ID)

		rows, _ := store.ReadTable(ctx, core.TableSessions)
		assert.Equal(t, "2025-09-01T09:15:00+07:00", rows[0][sessionColStart])
	})

	t.Run("new substitute must be free", func(t *testing.T) {
		_, err := svc.EditSession(ctx, "SES002", NewSession{ClassID: "C2", Date: "2025-09-01", StartTime: "10:00", EndTime: "11:00", TeacherID: "T1"})
		require.Error(t, err)
		assert.True(t, IsConflict(err))
		assert.Contains(t, err.Error(), `"C1" lúc 09:15`)
	})

	t.Run("missing session", func(t *testing.T) {
		_, err := svc.EditSession(ctx, "SES404", NewSession{ClassID: "C1", Date: "2025-09-01", StartTime: "15:00", EndTime: "16:00"})
		require.Error(t, err)
		assert.True(t, core.IsNotFound(err))
		assert.Equal(t, "Không tìm thấy buổi học.", err.Error())
	})
}

func TestService_DeleteSession(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	testutil.CreateClass(t, store, "C1", "IE", "T1")
	testutil.CreateSession(t, store, "SES001", "C1", "2025-09-01", "09:00", "10:00", "")
	testutil.CreateSession(t, store, "SES002", "C1", "2025-09-02", "09:00", "10:00", "")
	testutil.CreateAttendance(t, store, "ATT001", "SES001", "HV001", "present")

	err := svc.DeleteSession(ctx, "SES001")
	require.Error(t, err)
	assert.True(t, core.IsDependencyBlocked(err))
	assert.Equal(t, "Không thể xóa buổi học đã có dữ liệu điểm danh.", err.Error())

	require.NoError(t, svc.DeleteSession(ctx, "SES002"))
	assert.Equal(t, []string{"SES001"}, tableIDs(t, store, core.TableSessions))

	err = svc.DeleteSession(ctx, "SES002")
	assert.True(t, core.IsNotFound(err))
}

func TestService_DeleteSessions(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	testutil.CreateClass(t, store, "C1", "IE", "T1")
	for i, id := range []string{"SES001", "SES002", "SES003", "SES004"} {
		testutil.CreateSession(t, store, id, "C1", "2025-09-0"+string(rune('1'+i)), "09:00", "10:00", "")
	}
	testutil.CreateAttendance(t, store, "ATT001", "SES002", "HV001", "present")

	res, err := svc.DeleteSessions(ctx, []string{"SES001", "SES002", "SES003", "SES001", "SES404", " "})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Requested)
	assert.Equal(t, []string{"SES001", "SES003"}, res.Deleted)
	assert.Equal(t, []string{"SES002"}, res.Blocked)
	assert.Equal(t, []string{"SES404"}, res.Missing)
	assert.Equal(t,
		"Đã xóa thành công 2 buổi học. 1 buổi học không thể xóa do đã có dữ liệu điểm danh. 1 buổi học không tồn tại.",
		res.Message())
	assert.Equal(t, []string{"SES002", "SES004"}, tableIDs(t, store, core.TableSessions))

	res, err = svc.DeleteSessions(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "Không có buổi học nào được chọn để xóa.", res.Message())
}

func TestService_DeleteSessions_leavesLoggingToCaller(t *testing.T) {
	ctx := context.Background()
	store := inmemdb.Open()
	logger := &testutil.RecordingLogger{}
	svc, err := NewService(store, core.NewLocker(time.Second), testutil.NewConfig(), logger)
	require.NoError(t, err)
	testutil.CreateClass(t, store, "C1", "IE", "T1")
	testutil.CreateSession(t, store, "SES001", "C1", "2025-09-01", "09:00", "10:00", "")

	res, err := svc.DeleteSessions(ctx, []string{"SES001"})
	require.NoError(t, err)
	assert.Equal(t, []string{"SES001"}, res.Deleted)
	assert.Empty(t, logger.Find("sessions deleted"))
}

func TestService_ListSessions(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	testutil.CreateTeacher(t, store, "T1", "Nguyễn Văn A")
	testutil.CreateTeacher(t, store, "T2", "Trần Thị B")
	testutil.CreateClass(t, store, "C1", "IE", "T1")
	testutil.CreateClass(t, store, "C2", "IE", "")
	testutil.CreateSession(t, store, "SES001", "C1", "2025-09-03", "09:00", "10:00", "")
	testutil.CreateSession(t, store, "SES002", "C2", "2025-09-01", "09:00", "10:00", "T1")
	testutil.CreateSession(t, store, "SES003", "C1", "2025-09-02", "09:00", "10:00", "T2")

	views, err := svc.ListSessions(ctx, SessionFilter{TeacherID: "T1"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, SessionView{
		ID:                 "SES002",
		ClassID:            "C2",
		Date:               "2025-09-01",
		StartTime:          "09:00",
		EndTime:            "10:00",
		TeacherID:          "T1",
		EffectiveTeacherID: "T1",
		Teacher:            "Nguyễn Văn A",
	}, views[0])
	assert.Equal(t, "SES001", views[1].ID)

	views, err = svc.ListSessions(ctx, SessionFilter{ClassID: "C1", From: "2025-09-03"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "SES001", views[0].ID)

	views, err = svc.ListSessions(ctx, SessionFilter{To: "2025-09-02"})
	require.NoError(t, err)
	assert.Len(t, views, 2)

	views, err = svc.ListSessions(ctx, SessionFilter{Descending: true})
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, []string{"SES001", "SES003", "SES002"}, []string{views[0].ID, views[1].ID, views[2].ID})
}
