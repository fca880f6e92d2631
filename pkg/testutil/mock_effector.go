package testutil

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/avasek/skyhook/pkg/types"
)

var _ types.Effector = (*MockEffector)(nil)

// MockEffector is a mock implementation of types.Effector for testing.
// It records every call, keeps protected-file and schedule-table state
// in memory so read-then-append reconcilers see their own writes, and
// scripts failures per method name.
type MockEffector struct {
	mu sync.RWMutex

	// State
	installed   map[string]bool        // package name -> installed
	binaries    map[string]string      // binary -> resolved path
	protected   map[string][]byte      // path -> content
	modes       map[string]fs.FileMode // path -> mode of last write
	mountPoints map[string]bool        // path -> active mount
	groups      map[string][]string    // user -> groups added
	schedule    string                 // current schedule table
	mounted     []string               // targets mounted this run
	reloads     int
	shellRuns   []string
	preseeds    []string

	calls         []string
	errorOn       string
	errorToReturn error
}

// NewMockEffector creates a new mock Effector with no binaries present
// and every state store empty.
func NewMockEffector() *MockEffector {
	return &MockEffector{
		installed:   make(map[string]bool),
		binaries:    make(map[string]string),
		protected:   make(map[string][]byte),
		modes:       make(map[string]fs.FileMode),
		mountPoints: make(map[string]bool),
		groups:      make(map[string][]string),
		calls:       []string{},
	}
}

// WithBinary makes a helper binary resolvable via LookPath.
func (m *MockEffector) WithBinary(name, path string) *MockEffector {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.binaries[name] = path
	return m
}

// WithProtectedFile seeds the content of a protected file.
func (m *MockEffector) WithProtectedFile(path string, content []byte) *MockEffector {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.protected[path] = content
	return m
}

// WithMountPoint marks a path as an active mount point.
func (m *MockEffector) WithMountPoint(path string) *MockEffector {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mountPoints[path] = true
	return m
}

// WithScheduleTable seeds the schedule table content.
func (m *MockEffector) WithScheduleTable(content string) *MockEffector {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedule = content
	return m
}

// WithError scripts methodName to fail with err.
func (m *MockEffector) WithError(methodName string, err error) *MockEffector {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorOn = methodName
	m.errorToReturn = err
	return m
}

func (m *MockEffector) PreseedPackage(_ context.Context, selections string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "PreseedPackage")
	if m.errorOn == "PreseedPackage" {
		return m.errorToReturn
	}
	m.preseeds = append(m.preseeds, selections)
	return nil
}

func (m *MockEffector) InstallPackage(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("InstallPackage(%s)", name))
	if m.errorOn == "InstallPackage" {
		return m.errorToReturn
	}
	m.installed[name] = true
	return nil
}

func (m *MockEffector) LookPath(binary string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("LookPath(%s)", binary))
	path, ok := m.binaries[binary]
	return path, ok
}

func (m *MockEffector) WriteProtectedFile(path string, data []byte, mode fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("WriteProtectedFile(%s,%o)", path, mode))
	if m.errorOn == "WriteProtectedFile" {
		return m.errorToReturn
	}
	content := make([]byte, len(data))
	copy(content, data)
	m.protected[path] = content
	m.modes[path] = mode
	return nil
}

func (m *MockEffector) AppendProtectedLine(path, line string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("AppendProtectedLine(%s,%s)", path, line))
	if m.errorOn == "AppendProtectedLine" {
		return m.errorToReturn
	}
	content := m.protected[path]
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		content = append(content, '\n')
	}
	content = append(content, []byte(line+"\n")...)
	m.protected[path] = content
	return nil
}

func (m *MockEffector) ReadProtectedFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("ReadProtectedFile(%s)", path))
	if m.errorOn == "ReadProtectedFile" {
		return nil, m.errorToReturn
	}
	content := make([]byte, len(m.protected[path]))
	copy(content, m.protected[path])
	return content, nil
}

func (m *MockEffector) MountTarget(_ context.Context, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("MountTarget(%s)", target))
	if m.errorOn == "MountTarget" {
		return m.errorToReturn
	}
	m.mounted = append(m.mounted, target)
	m.mountPoints[target] = true
	return nil
}

func (m *MockEffector) MountFilesystem(_ context.Context, fsType, source, target, options string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("MountFilesystem(%s,%s,%s,%s)", fsType, source, target, options))
	if m.errorOn == "MountFilesystem" {
		return m.errorToReturn
	}
	m.mounted = append(m.mounted, target)
	m.mountPoints[target] = true
	return nil
}

func (m *MockEffector) IsMountPoint(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("IsMountPoint(%s)", path))
	if m.errorOn == "IsMountPoint" {
		return false, m.errorToReturn
	}
	return m.mountPoints[path], nil
}

func (m *MockEffector) ReloadServiceManager(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "ReloadServiceManager()")
	if m.errorOn == "ReloadServiceManager" {
		return m.errorToReturn
	}
	m.reloads++
	return nil
}

func (m *MockEffector) AddUserToGroup(_ context.Context, user, group string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("AddUserToGroup(%s,%s)", user, group))
	if m.errorOn == "AddUserToGroup" {
		return m.errorToReturn
	}
	m.groups[user] = append(m.groups[user], group)
	return nil
}

func (m *MockEffector) ReadScheduleTable(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "ReadScheduleTable()")
	if m.errorOn == "ReadScheduleTable" {
		return "", m.errorToReturn
	}
	return m.schedule, nil
}

func (m *MockEffector) InstallScheduleTable(_ context.Context, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, "InstallScheduleTable()")
	if m.errorOn == "InstallScheduleTable" {
		return m.errorToReturn
	}
	m.schedule = content
	return nil
}

func (m *MockEffector) RunShell(_ context.Context, command string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, fmt.Sprintf("RunShell(%s)", command))
	if m.errorOn == "RunShell" {
		return m.errorToReturn
	}
	m.shellRuns = append(m.shellRuns, command)
	return nil
}

// Calls returns all recorded call signatures in order.
func (m *MockEffector) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CalledWith reports whether any recorded call starts with prefix.
func (m *MockEffector) CalledWith(prefix string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// CallCount returns how many recorded calls start with prefix.
func (m *MockEffector) CallCount(prefix string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// ProtectedContent returns the current content of a protected file.
func (m *MockEffector) ProtectedContent(path string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return string(m.protected[path])
}

// ProtectedMode returns the mode a protected file was written with.
func (m *MockEffector) ProtectedMode(path string) (fs.FileMode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mode, ok := m.modes[path]
	return mode, ok
}

// ProtectedPaths returns every protected path written or seeded, sorted.
func (m *MockEffector) ProtectedPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.protected))
	for p := range m.protected {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Installed reports whether a package was installed.
func (m *MockEffector) Installed(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.installed[name]
}

// Mounted returns the targets mounted during the run, in order.
func (m *MockEffector) Mounted() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.mounted))
	copy(out, m.mounted)
	return out
}

// Groups returns the groups a user was added to.
func (m *MockEffector) Groups(user string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.groups[user]...)
}

// Reloads returns how many times the service manager was reloaded.
func (m *MockEffector) Reloads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reloads
}

// ScheduleTable returns the current schedule table content.
func (m *MockEffector) ScheduleTable() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.schedule
}

// ShellRuns returns the shell commands executed, in order.
func (m *MockEffector) ShellRuns() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.shellRuns))
	copy(out, m.shellRuns)
	return out
}

// Preseeds returns the debconf selections piped in, in order.
func (m *MockEffector) Preseeds() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.preseeds))
	copy(out, m.preseeds)
	return out
}
