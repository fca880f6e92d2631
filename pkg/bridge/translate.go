package bridge

import (
	"path/filepath"
	"strings"

	"github.com/avasek/skyhook/pkg/config"
)

// TranslateForeignPath converts a foreign drive-letter path into the
// local mount namespace. The drive prefix maps to the configured
// directory for that letter (falling back to <drivebase>/<letter>),
// with the letter lowercased; the remainder keeps its casing, with
// backslashes normalized to slashes.
//
// A target without a drive prefix is returned slash-normalized but
// otherwise untouched.
func TranslateForeignPath(target string, cfg config.BridgeSettings) string {
	letter, rest, ok := splitDrive(target)
	if !ok {
		return strings.ReplaceAll(target, `\`, "/")
	}

	base, mapped := cfg.Drives[letter]
	if !mapped {
		base = filepath.Join(cfg.DriveBase, letter)
	}

	rest = strings.ReplaceAll(rest, `\`, "/")
	return filepath.Join(base, rest)
}

// splitDrive peels a leading "X:" drive prefix off target, returning
// the lowercased letter and the remainder.
func splitDrive(target string) (letter, rest string, ok bool) {
	if len(target) < 2 || target[1] != ':' {
		return "", "", false
	}
	c := target[0]
	switch {
	case c >= 'a' && c <= 'z':
	case c >= 'A' && c <= 'Z':
		c += 'a' - 'A'
	default:
		return "", "", false
	}
	return string(c), target[2:], true
}
