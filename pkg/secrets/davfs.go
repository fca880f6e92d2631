package secrets

import (
	"fmt"
	"strings"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// SecretMode is the permission every credential store is created with.
const SecretMode = 0600

// EnsureDavfsEntry guarantees the davfs2 secrets file at path carries a
// line for subject. The check is a literal line-prefix match, so an
// entry written by hand for the same URL is honored as-is.
//
// Returns true when a line was added, false when one already existed.
func EnsureDavfsEntry(eff types.Effector, path string, record types.CredentialRecord) (bool, error) {
	logger := logging.GetLogger("secrets")

	content, err := eff.ReadProtectedFile(path)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrPersistence, "failed to read secrets store %s", path)
	}

	if HasSubject(string(content), record.Subject) {
		logger.Info().Str("subject", record.Subject).Msg("Secrets entry already present, skipping")
		return false, nil
	}

	line := fmt.Sprintf("%s %s %s", record.Subject, record.Username, record.Secret)

	// The store must exist with owner-only permission before any
	// secret byte lands in it.
	if len(content) == 0 {
		if err := eff.WriteProtectedFile(path, []byte(line+"\n"), SecretMode); err != nil {
			return false, errors.Wrapf(err, errors.ErrPersistence, "failed to create secrets store %s", path)
		}
	} else {
		if err := eff.AppendProtectedLine(path, line); err != nil {
			return false, errors.Wrapf(err, errors.ErrPersistence, "failed to append to secrets store %s", path)
		}
	}

	logger.Info().Str("subject", record.Subject).Str("path", path).Msg("Secrets entry added")
	return true, nil
}

// HasSubject reports whether any line of a secrets store starts with
// the given subject.
func HasSubject(content, subject string) bool {
	if subject == "" {
		return false
	}
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), subject) {
			return true
		}
	}
	return false
}

// Subjects returns the first field of every non-comment line of a
// secrets store. Secrets never leave this package through it.
func Subjects(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.Fields(line)[0])
	}
	return out
}
