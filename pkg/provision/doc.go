// Package provision orchestrates the full first-boot pipeline: mount
// reconciliation for every registered protocol, the foreign-namespace
// bridge, and the recurring mirror job. Each entry point takes an
// options struct whose seams default to the real system implementations
// so commands stay thin and tests substitute in-memory doubles.
package provision
