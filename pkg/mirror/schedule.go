package mirror

import (
	"github.com/robfig/cron/v3"

	"github.com/avasek/skyhook/pkg/errors"
)

// scheduleParser accepts the standard five-field crontab syntax,
// matching what the system cron daemon will parse.
var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

// ValidateSchedule rejects expressions the cron daemon would choke on.
// Validation runs before any crontab mutation, so a bad override never
// lands in the schedule table.
func ValidateSchedule(expr string) error {
	if _, err := scheduleParser.Parse(expr); err != nil {
		return errors.Wrapf(err, errors.ErrScheduleInvalid, "invalid sync schedule %q", expr)
	}
	return nil
}
