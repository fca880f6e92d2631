package system

import (
	"os"
	"os/user"
	"strconv"

	"github.com/avasek/skyhook/pkg/errors"
)

// Account identifies the invoking operator, not the effective root
// user the process runs as.
type Account struct {
	Name string
	UID  int
	GID  int
}

// InvokingUser resolves the operator who started the provisioning run.
// Under sudo that is SUDO_USER, otherwise the current user.
func InvokingUser() (Account, error) {
	if name := os.Getenv("SUDO_USER"); name != "" {
		uid, uidErr := strconv.Atoi(os.Getenv("SUDO_UID"))
		gid, gidErr := strconv.Atoi(os.Getenv("SUDO_GID"))
		if uidErr == nil && gidErr == nil {
			return Account{Name: name, UID: uid, GID: gid}, nil
		}
		// SUDO_USER set but ids missing; fall through to a lookup.
		if u, err := user.Lookup(name); err == nil {
			return accountFromUser(u)
		}
	}

	u, err := user.Current()
	if err != nil {
		return Account{}, errors.Wrap(err, errors.ErrInternal, "failed to resolve invoking user")
	}
	return accountFromUser(u)
}

func accountFromUser(u *user.User) (Account, error) {
	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return Account{}, errors.Wrapf(err, errors.ErrInternal, "non-numeric uid %q", u.Uid)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return Account{}, errors.Wrapf(err, errors.ErrInternal, "non-numeric gid %q", u.Gid)
	}
	return Account{Name: u.Username, UID: uid, GID: gid}, nil
}
