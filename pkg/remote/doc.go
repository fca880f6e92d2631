// Package remote verifies WebDAV endpoints before anything about them
// is persisted. A probe is an OPTIONS request for reachability and DAV
// capability, followed by a depth-0 PROPFIND whose multistatus body
// confirms the URL answers as a DAV resource with the credentials the
// operator supplied.
package remote
