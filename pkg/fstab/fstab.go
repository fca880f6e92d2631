// Package fstab reconciles entries in the filesystem table. Presence
// is a literal source-prefix match against the whole file; existing
// options are never parsed or rewritten.
package fstab

import (
	"strconv"
	"strings"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// Ensure appends entry to the table at path unless a line for its
// source already exists. Returns true when a line was added.
func Ensure(eff types.Effector, path string, entry types.FstabEntry) (bool, error) {
	logger := logging.GetLogger("fstab")

	content, err := eff.ReadProtectedFile(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrPersistence, "failed to read %s", path)
	}

	if HasSource(string(content), entry.Source) {
		logger.Info().Str("source", entry.Source).Msg("Table entry already present, skipping")
		return false, nil
	}

	if err := eff.AppendProtectedLine(path, entry.Line()); err != nil {
		return false, errors.Wrapf(err, errors.ErrPersistence, "failed to append to %s", path)
	}

	logger.Info().Str("source", entry.Source).Str("target", entry.Target).Msg("Table entry added")
	return true, nil
}

// HasSource reports whether any line of the table starts with source.
func HasSource(content, source string) bool {
	if source == "" {
		return false
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), source) {
			return true
		}
	}
	return false
}

// Parse extracts the structured entries from table content, skipping
// comments, blanks, and malformed lines.
func Parse(content string) []types.FstabEntry {
	var out []types.FstabEntry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		entry := types.FstabEntry{
			Source:  fields[0],
			Target:  fields[1],
			FSType:  fields[2],
			Options: fields[3],
		}
		if len(fields) >= 5 {
			entry.Dump, _ = strconv.Atoi(fields[4])
		}
		if len(fields) >= 6 {
			entry.Pass, _ = strconv.Atoi(fields[5])
		}
		out = append(out, entry)
	}
	return out
}
