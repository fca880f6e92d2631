package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/avasek/skyhook/pkg/mirror"
	"github.com/avasek/skyhook/pkg/mount"
	"github.com/avasek/skyhook/pkg/provision"
	"github.com/avasek/skyhook/pkg/types"
)

// State classifies a reconciliation item for badge coloring.
type State string

const (
	StateDone    State = "done"    // reconciled and in effect
	StatePending State = "pending" // not reconciled yet
	StateWarn    State = "warn"    // needs operator attention
)

// StateStyle returns the pterm style for a state badge.
func StateStyle(state State) *pterm.Style {
	switch state {
	case StateDone:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case StateWarn:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

func row(label string, state State, message string) string {
	badge := StateStyle(state).Sprint(fmt.Sprintf("%-8s", label))
	return fmt.Sprintf("    %s : %s", badge, message)
}

func onOff(on bool, yes, no string) (State, string) {
	if on {
		return StateDone, yes
	}
	return StatePending, no
}

// RenderReport renders the status report for a terminal.
func RenderReport(r *provision.Report) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("webdav") + ":\n")
	state, msg := onOff(r.WebDAV.Active, "active", "not mounted")
	b.WriteString(row("mount", state, fmt.Sprintf("%s (%s)", r.WebDAV.MountPoint, msg)) + "\n")
	state, msg = onOff(r.WebDAV.FstabEntry, "entry present", "no entry")
	b.WriteString(row("fstab", state, msg) + "\n")
	state, msg = onOff(len(r.WebDAV.Subjects) > 0,
		fmt.Sprintf("%d subject(s): %s", len(r.WebDAV.Subjects), strings.Join(r.WebDAV.Subjects, ", ")),
		"no entries")
	b.WriteString(row("secrets", state, msg) + "\n")

	b.WriteString(TitleStyle.Render("smb") + ":\n")
	state, msg = onOff(r.SMB.Active, "active", "not mounted")
	b.WriteString(row("mount", state, fmt.Sprintf("%s (%s)", r.SMB.MountPoint, msg)) + "\n")
	state, msg = onOff(r.SMB.FstabEntry, "entry present", "no entry")
	b.WriteString(row("fstab", state, msg) + "\n")
	state, msg = onOff(r.SMB.LoginFile, "present", "absent")
	b.WriteString(row("login", state, msg) + "\n")

	b.WriteString(TitleStyle.Render("bridge") + ":\n")
	b.WriteString(row("path", bridgeState(r.Bridge.State), bridgeMessage(r.Bridge)) + "\n")

	b.WriteString(TitleStyle.Render("sync") + ":\n")
	state, msg = onOff(r.Sync.Registered,
		fmt.Sprintf("registered (%s)", r.Sync.Schedule),
		"not registered")
	b.WriteString(row("job", state, msg) + "\n")
	if r.Sync.Command != "" {
		b.WriteString(row("command", StatePending, CodeStyle.Render(r.Sync.Command)) + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func bridgeState(state string) State {
	switch state {
	case provision.BridgeSymlink:
		return StateDone
	case provision.BridgeAbsent:
		return StatePending
	default:
		// Something other than our symlink occupies the path.
		return StateWarn
	}
}

func bridgeMessage(b provision.BridgeStatus) string {
	switch b.State {
	case provision.BridgeSymlink:
		return fmt.Sprintf("%s -> %s", b.Path, b.Target)
	case provision.BridgeAbsent:
		return fmt.Sprintf("%s (absent)", b.Path)
	default:
		return fmt.Sprintf("%s (occupied by a %s)", b.Path, b.State)
	}
}

// RenderUpResult renders the pipeline summary, one line per step.
func RenderUpResult(res *provision.UpResult) string {
	lines := make([]string, 0, len(res.Mounts)+2)
	for _, out := range res.Mounts {
		lines = append(lines, RenderMountOutcome(out))
	}
	lines = append(lines, RenderBridge(res.Bridge), RenderMirror(res.Mirror))
	return strings.Join(lines, "\n")
}

// RenderMountOutcome renders one mount reconciliation as a single line.
func RenderMountOutcome(out mount.Outcome) string {
	indicator, msg := mountSummary(out)
	return fmt.Sprintf("%s %-7s %s", indicator, string(out.Kind)+":", msg)
}

// RenderBridge renders the bridge step as a single line.
func RenderBridge(br types.SymlinkBridge) string {
	if br.AlreadyPresent {
		return fmt.Sprintf("%s %-7s %s", InfoIndicator, "bridge:", "path already occupied, left alone")
	}
	return fmt.Sprintf("%s %-7s %s -> %s", SuccessIndicator, "bridge:", br.LocalPath, br.ResolvedTarget)
}

// RenderMirror renders the sync step as a single line.
func RenderMirror(res mirror.Result) string {
	return fmt.Sprintf("%s %-7s %s", mirrorIndicator(res), "sync:", mirrorSummary(res))
}

func mountSummary(out mount.Outcome) (string, string) {
	switch {
	case out.Skipped:
		return SkippedIndicator, "mount point already active, skipped"
	case out.Mounted:
		return SuccessIndicator, "mounted at " + out.Spec.LocalMountPoint
	default:
		return InfoIndicator, "fstab entry already present, nothing to do"
	}
}

func mirrorIndicator(res mirror.Result) string {
	if res.Skipped || res.SourceEmpty {
		return WarningIndicator
	}
	return SuccessIndicator
}

func mirrorSummary(res mirror.Result) string {
	switch {
	case res.Skipped:
		return "destination unavailable, skipped"
	case res.SourceEmpty:
		return "source empty, nothing mirrored"
	case res.Registered:
		return "mirrored and job registered"
	default:
		return "mirrored, job already registered"
	}
}
