package schedule

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dance10/webapps/core"
)

func TestValidators(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	translate := func(err error) map[string]string {
		out := make(map[string]string)
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		for _, fe := range verrs {
			out[fe.Field()] = fe.Translate(translator)
		}
		return out
	}

	t.Run("session", func(t *testing.T) {
		ns := NewSession{ClassID: " C1 ", Date: "2025-09-01", StartTime: "09:00", EndTime: "10:00"}
		require.NoError(t, ns.Validate(validate))
		assert.Equal(t, "C1", ns.ClassID)

		ns = NewSession{ClassID: "C1", Date: "01/09/2025", StartTime: "10:00", EndTime: "09:00"}
		assert.Equal(t, map[string]string{
			"date":    "date không đúng định dạng",
			"endTime": "Giờ kết thúc phải sau giờ bắt đầu.",
		}, translate(ns.Validate(validate)))

		ns = NewSession{ClassID: "  ", Date: "2025-09-01", StartTime: "09:00", EndTime: "10:00"}
		assert.Contains(t, translate(ns.Validate(validate)), "classId")
	})

	t.Run("recurring", func(t *testing.T) {
		nr := NewRecurringSessions{ClassID: "C1", Weekdays: []int{1}, StartTime: "18:00", EndTime: "19:30", StartDate: "2025-09-01", EndDate: "2025-09-30"}
		require.NoError(t, nr.Validate(validate))

		nr.Weekdays = nil
		assert.Equal(t, map[string]string{
			"weekdays": "Vui lòng chọn ít nhất một ngày trong tuần.",
		}, translate(nr.Validate(validate)))

		nr.Weekdays = []int{7}
		assert.Contains(t, translate(nr.Validate(validate)), "weekdays[0]")
	})

	t.Run("attendance", func(t *testing.T) {
		sheet := AttendanceSheet{Records: []AttendanceEntry{{StudentID: "HV001", Status: " present "}}}
		require.NoError(t, sheet.Validate(validate))
		assert.Equal(t, "present", sheet.Records[0].Status)

		sheet = AttendanceSheet{Records: []AttendanceEntry{{StudentID: "", Status: "present"}}}
		assert.Error(t, sheet.Validate(validate))
	})
}
