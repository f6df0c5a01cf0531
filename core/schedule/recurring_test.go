package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/tests"
)

func TestService_CreateRecurringSessions(t *testing.T) {
	ctx := context.Background()
	pattern := NewRecurringSessions{
		ClassID:   "C1",
		Weekdays:  []int{1, 3}, // Monday, Wednesday
		StartTime: "18:00",
		EndTime:   "19:30",
		StartDate: "2025-09-01",
		EndDate:   "2025-09-14",
	}

	t.Run("expands the pattern", func(t *testing.T) {
		svc, store := newTestService(t)
		testutil.CreateClass(t, store, "C1", "IE", "T1")

		res, err := svc.CreateRecurringSessions(ctx, pattern)
		require.NoError(t, err)
		assert.Equal(t, 4, res.Created)
		assert.Equal(t, "Đã tạo thành công 4 buổi học.", res.Message())

		var dates []string
		for _, s := range res.Sessions {
			dates = append(dates, s.Date.Format(dateLayout))
		}
		assert.Equal(t, []string{"2025-09-01", "2025-09-03", "2025-09-08", "2025-09-10"}, dates)
		assert.Equal(t, []string{"SES001", "SES002", "SES003", "SES004"}, tableIDs(t, store, core.TableSessions))
		assert.Equal(t, testutil.Instant(t, "2025-09-10", "19:30"), res.Sessions[3].End)
	})

	t.Run("ids continue after the highest existing id", func(t *testing.T) {
		svc, store := newTestService(t)
		testutil.CreateClass(t, store, "C1", "IE", "T1")
		testutil.CreateSession(t, store, "SES005", "C1", "2025-08-01", "09:00", "10:00", "")

		res, err := svc.CreateRecurringSessions(ctx, pattern)
		require.NoError(t, err)
		assert.Equal(t, "SES006", res.Sessions[0].ID)
		assert.Equal(t, "SES009", res.Sessions[3].ID)
	})

	t.Run("one conflict aborts the batch", func(t *testing.T) {
		svc, store := newTestService(t)
		testutil.CreateClass(t, store, "C1", "IE", "T1")
		testutil.CreateClass(t, store, "C9", "TOEIC", "T1")
		testutil.CreateSession(t, store, "SES001", "C9", "2025-09-08", "18:30", "19:00", "")

		_, err := svc.CreateRecurringSessions(ctx, pattern)
		require.Error(t, err)
		assert.Equal(t, `TRÙNG LỊCH: Giáo viên đã có lịch dạy lớp "C9" lúc 18:30 ngày 08/09/2025.`, err.Error())
		assert.Equal(t, []string{"SES001"}, tableIDs(t, store, core.TableSessions))
	})

	t.Run("a substitute elsewhere does not block the main teacher", func(t *testing.T) {
		svc, store := newTestService(t)
		testutil.CreateClass(t, store, "C1", "IE", "T1")
		testutil.CreateClass(t, store, "C9", "TOEIC", "T1")
		testutil.CreateSession(t, store, "SES001", "C9", "2025-09-08", "18:30", "19:00", "T2")

		res, err := svc.CreateRecurringSessions(ctx, pattern)
		require.NoError(t, err)
		assert.Equal(t, 4, res.Created)
	})

	t.Run("no matching weekday", func(t *testing.T) {
		svc, store := newTestService(t)
		testutil.CreateClass(t, store, "C1", "IE", "T1")

		p := pattern
		p.Weekdays = []int{0}
		p.EndDate = "2025-09-05"
		res, err := svc.CreateRecurringSessions(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Created)
		assert.Equal(t, "Không có buổi học mới nào được tạo.", res.Message())
		assert.Empty(t, tableIDs(t, store, core.TableSessions))
	})

	t.Run("weekdays required", func(t *testing.T) {
		svc, store := newTestService(t)
		testutil.CreateClass(t, store, "C1", "IE", "T1")

		p := pattern
		p.Weekdays = nil
		_, err := svc.CreateRecurringSessions(ctx, p)
		require.Error(t, err)
		assert.Equal(t, "Vui lòng chọn ít nhất một ngày trong tuần.", err.Error())
	})

	t.Run("range too long", func(t *testing.T) {
		svc, store := newTestService(t)
		testutil.CreateClass(t, store, "C1", "IE", "T1")

		p := pattern
		p.EndDate = "2027-01-01"
		_, err := svc.CreateRecurringSessions(ctx, p)
		var verr *core.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "endDate", verr.Fields[0].Field)
	})

	t.Run("unknown class", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateRecurringSessions(ctx, pattern)
		assert.True(t, core.IsNotFound(err))
	})

	t.Run("class without teacher is not checked", func(t *testing.T) {
		svc, store := newTestService(t)
		testutil.CreateClass(t, store, "C1", "IE", "")
		testutil.CreateSession(t, store, "SES001", "C1", "2025-09-01", "18:00", "19:30", "")

		res, err := svc.CreateRecurringSessions(ctx, pattern)
		require.NoError(t, err)
		assert.Equal(t, 4, res.Created)
	})
}
