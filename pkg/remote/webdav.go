package remote

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
	"github.com/avasek/skyhook/pkg/types"
)

const probeTimeout = 10 * time.Second

// propfindBody asks only for the properties the probe inspects.
const propfindBody = `<?xml version="1.0" encoding="utf-8"?>
<d:propfind xmlns:d="DAV:"><d:prop><d:resourcetype/><d:displayname/></d:prop></d:propfind>`

// Info is what a successful probe learned about the endpoint.
type Info struct {
	// ComplianceClasses lists the DAV classes the server advertises,
	// from the DAV response header ("1", "2", ...).
	ComplianceClasses []string

	// Collection is true when the probed URL answers as a DAV
	// collection rather than a single resource.
	Collection bool

	// DisplayName is the server-reported name of the resource, often
	// empty.
	DisplayName string

	// Server echoes the Server response header when present.
	Server string
}

// Prober issues probe requests against WebDAV endpoints.
type Prober struct {
	client *http.Client
}

// NewProber returns a prober with a bounded request timeout. First-boot
// networks are slow to come up, so failures here are reported, not
// retried.
func NewProber() *Prober {
	return &Prober{client: &http.Client{Timeout: probeTimeout}}
}

// Probe checks that record.Subject answers as a WebDAV endpoint and
// accepts the record's credentials. Transport failures come back as
// REMOTE_UNREACHABLE, rejected credentials as AUTH_FAILURE, and a
// server that answers but does not speak DAV as INVALID_INPUT.
func (p *Prober) Probe(ctx context.Context, record types.CredentialRecord) (Info, error) {
	logger := logging.GetLogger("remote")

	info := Info{}
	if record.Subject == "" {
		return info, errors.New(errors.ErrInvalidInput, "probe needs a URL")
	}

	logger.Debug().Str("url", record.Subject).Msg("Probing WebDAV endpoint")

	resp, err := p.do(ctx, http.MethodOptions, record, "")
	if err != nil {
		return info, err
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if err := checkAuth(resp); err != nil {
		return info, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return info, errors.Newf(errors.ErrInvalidInput,
			"endpoint rejected OPTIONS: %s", resp.Status).
			WithDetail("url", record.Subject)
	}

	info.ComplianceClasses = splitClasses(resp.Header.Get("DAV"))
	info.Server = resp.Header.Get("Server")
	if !hasClass(info.ComplianceClasses, "1") {
		return info, errors.New(errors.ErrInvalidInput,
			"endpoint does not advertise WebDAV support").
			WithDetail("url", record.Subject)
	}

	resp, err = p.do(ctx, "PROPFIND", record, propfindBody)
	if err != nil {
		return info, err
	}
	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()

	if err := checkAuth(resp); err != nil {
		return info, err
	}
	if resp.StatusCode != http.StatusMultiStatus {
		return info, errors.Newf(errors.ErrInvalidInput,
			"endpoint rejected PROPFIND: %s", resp.Status).
			WithDetail("url", record.Subject)
	}
	if readErr != nil {
		return info, errors.Wrap(readErr, errors.ErrRemoteUnreachable,
			"failed to read PROPFIND response")
	}

	if err := parseMultistatus(body, &info); err != nil {
		return info, err
	}

	logger.Debug().
		Strs("classes", info.ComplianceClasses).
		Bool("collection", info.Collection).
		Str("server", info.Server).
		Msg("WebDAV endpoint verified")
	return info, nil
}

func (p *Prober) do(ctx context.Context, method string, record types.CredentialRecord, body string) (*http.Response, error) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, record.Subject, reader)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid WebDAV URL").
			WithDetail("url", record.Subject)
	}
	req.SetBasicAuth(record.Username, record.Secret)
	if method == "PROPFIND" {
		req.Header.Set("Depth", "0")
		req.Header.Set("Content-Type", "application/xml; charset=utf-8")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrRemoteUnreachable, "WebDAV endpoint unreachable").
			WithDetail("url", record.Subject)
	}
	return resp, nil
}

func checkAuth(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return errors.New(errors.ErrAuthFailed, "endpoint rejected the credentials").
			WithDetail("status", resp.Status)
	}
	return nil
}

// parseMultistatus walks the PROPFIND body and fills in what the first
// response element says about the resource. Matching is on local tag
// names only, so D:-prefixed and default-namespace bodies both parse.
func parseMultistatus(body []byte, info *Info) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return errors.Wrap(err, errors.ErrInvalidInput, "invalid multistatus response")
	}

	root := doc.Root()
	if root == nil || root.Tag != "multistatus" {
		return errors.New(errors.ErrInvalidInput, "PROPFIND did not return a multistatus document")
	}

	responses := childrenByTag(root, "response")
	if len(responses) == 0 {
		return errors.New(errors.ErrInvalidInput, "multistatus response describes no resources")
	}

	for _, propstat := range childrenByTag(responses[0], "propstat") {
		for _, prop := range childrenByTag(propstat, "prop") {
			if rt := firstChildByTag(prop, "resourcetype"); rt != nil {
				info.Collection = firstChildByTag(rt, "collection") != nil
			}
			if dn := firstChildByTag(prop, "displayname"); dn != nil {
				info.DisplayName = strings.TrimSpace(dn.Text())
			}
		}
	}
	return nil
}

func childrenByTag(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

func firstChildByTag(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func splitClasses(header string) []string {
	if header == "" {
		return nil
	}
	parts := strings.Split(header, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func hasClass(classes []string, want string) bool {
	for _, c := range classes {
		if c == want {
			return true
		}
	}
	return false
}
