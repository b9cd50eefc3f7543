package utils

import (
	"fmt"
	"time"

	"github.com/hance08/findash/internal/constants"
	"github.com/hance08/findash/internal/model"
)

// FormatDate renders an ISO-8601 string in loc, or a fixed label when it can't be parsed.
func FormatDate(iso string, loc *time.Location) string {
	ts, ok := model.ParseTimestamp(iso)
	if !ok {
		return constants.NoDateLabel
	}
	if loc == nil {
		loc = time.Local
	}
	return ts.In(loc).Format(constants.DateTimeFormat)
}

func FormatHourLabel(hour int) string {
	hour %= constants.HoursPerDay
	if hour < 0 {
		hour += constants.HoursPerDay
	}
	return fmt.Sprintf(constants.HourLabelFormat, hour)
}
