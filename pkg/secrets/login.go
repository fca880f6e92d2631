package secrets

import (
	"fmt"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

// WriteLoginFile writes the two-line mount.cifs credentials file with
// owner-only permission. An existing file is overwritten so a retried
// run never mounts with stale credentials.
func WriteLoginFile(eff types.Effector, path string, record types.CredentialRecord) error {
	content := fmt.Sprintf("username=%s\npassword=%s\n", record.Username, record.Secret)

	if err := eff.WriteProtectedFile(path, []byte(content), SecretMode); err != nil {
		return errors.Wrapf(err, errors.ErrPersistence, "failed to write login file %s", path)
	}

	logging.GetLogger("secrets").Info().Str("path", path).Msg("Login file written")
	return nil
}
