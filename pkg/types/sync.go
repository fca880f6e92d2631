package types

import "fmt"

// DefaultSchedule is the five-field cron expression recurring mirror
// jobs are registered under: top of every hour.
const DefaultSchedule = "0 * * * *"

// SyncJob is one recurring mirror registration. Command is the exact
// text persisted to the schedule table: dedup is a literal containment
// check on that text, so the command must be composed once and never
// reformatted afterwards.
type SyncJob struct {
	Command  string
	Schedule string
	LogPath  string
}

// CrontabLine renders the persisted form: schedule, command, all output
// appended to the log file.
func (j SyncJob) CrontabLine() string {
	return fmt.Sprintf("%s %s >> %s 2>&1", j.Schedule, j.Command, j.LogPath)
}

// SymlinkBridge records the bridging symlink created (or found already
// present) at LocalPath, pointing into the translated foreign namespace.
type SymlinkBridge struct {
	LocalPath      string
	ResolvedTarget string

	// AlreadyPresent is true when something occupied LocalPath before
	// this run; the resolver treats that as satisfied without looking
	// at what it points to.
	AlreadyPresent bool
}
