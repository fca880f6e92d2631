// Package system provides the exec-backed implementation of the
// types.Effector capability surface, plus a dry-run decorator.
//
// All privileged mutation in skyhook flows through an Effector so the
// reconcilers stay testable and --dry-run stays honest.
package system
