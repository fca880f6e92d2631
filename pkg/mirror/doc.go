// Package mirror runs the one-way sync from the local staging directory
// into the bridged foreign namespace and registers the same command as
// an hourly cron job.
//
// The mirror command is composed exactly once. Both the immediate run
// and the crontab line use that one string; crontab deduplication is a
// literal containment check on it, so any reformatting would defeat the
// check and stack duplicate jobs.
package mirror
