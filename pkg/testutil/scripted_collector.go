package testutil

import (
	"github.com/avasek/skyhook/pkg/prompt"
)

// ScriptedCollector satisfies the mount collector seam with canned
// fields. Gaps are filled from the request seed the way the interactive
// collector honors pre-seeded values, and every request is recorded so
// tests can assert on seeding and retry counts.
type ScriptedCollector struct {
	Requests []prompt.Request
	Fields   prompt.Fields

	// Queue answers requests in order before falling back to Fields,
	// for flows that collect more than one mount in a single run.
	Queue []prompt.Fields

	Err error
}

// NewScriptedCollector creates a collector answering every request with
// fields.
func NewScriptedCollector(fields prompt.Fields) *ScriptedCollector {
	return &ScriptedCollector{Fields: fields}
}

func (c *ScriptedCollector) Collect(req prompt.Request) (prompt.Fields, error) {
	c.Requests = append(c.Requests, req)
	if c.Err != nil {
		return prompt.Fields{}, c.Err
	}

	f := c.Fields
	if len(c.Queue) > 0 {
		f = c.Queue[0]
		c.Queue = c.Queue[1:]
	}
	if f.Address == "" {
		f.Address = req.Seed.Address
	}
	if f.Share == "" {
		f.Share = req.Seed.Share
	}
	if f.MountPoint == "" {
		f.MountPoint = req.Seed.MountPoint
	}
	if f.Username == "" {
		f.Username = req.Seed.Username
	}
	if f.Secret == "" {
		f.Secret = req.Seed.Secret
	}
	return f, nil
}
