// Package testutil provides utilities for testing skyhook components.
//
// Key components:
//   - MemoryFS: In-memory filesystem implementation for fast, isolated tests
//   - MockEffector: Records privileged system calls and scripts failures
//
// Usage guidelines:
//   - Reconciler tests should run entirely against MemoryFS + MockEffector
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
