package schedule

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/dance10/webapps/core"
)

var (
	endAfterStartTag = "endafterstart"
	weekdaysTag      = "weekdays"
)

// InitValidators registers the cross-field checks of the scheduling requests.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	validate.RegisterStructValidation(newSessionStructLevelValidation, NewSession{})
	validate.RegisterStructValidation(recurringStructLevelValidation, NewRecurringSessions{})

	core.RegisterCustomTranslation(validate, translator, endAfterStartTag, msgEndBeforeStart)
	core.RegisterCustomTranslation(validate, translator, weekdaysTag, msgWeekdaysRequired)
}

func newSessionStructLevelValidation(sl validator.StructLevel) {
	ns := sl.Current().Interface().(NewSession)
	if !endAfterStart(ns.StartTime, ns.EndTime) {
		sl.ReportError(ns.EndTime, "endTime", "EndTime", endAfterStartTag, "")
	}
}

func recurringStructLevelValidation(sl validator.StructLevel) {
	nr := sl.Current().Interface().(NewRecurringSessions)
	if len(nr.Weekdays) == 0 {
		sl.ReportError(nr.Weekdays, "weekdays", "Weekdays", weekdaysTag, "")
	}
	if !endAfterStart(nr.StartTime, nr.EndTime) {
		sl.ReportError(nr.EndTime, "endTime", "EndTime", endAfterStartTag, "")
	}
}

// endAfterStart is true when either clock time is malformed; the datetime tag reports those.
func endAfterStart(startTime, endTime string) bool {
	start, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return true
	}
	end, err := time.Parse(clockLayout, endTime)
	if err != nil {
		return true
	}
	return end.After(start)
}
