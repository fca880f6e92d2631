package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/avasek/skyhook/pkg/errors"
	"github.com/avasek/skyhook/pkg/logging"
)

// Fields holds the connection fields collected for one mount. A
// non-empty field passed as seed counts as pre-seeded and is never
// prompted for.
type Fields struct {
	Address    string
	Share      string
	MountPoint string
	Username   string
	Secret     string
}

// Request describes one collection run.
type Request struct {
	// AddressLabel names the address field in prompts, e.g.
	// "WebDAV URL" or "SMB host".
	AddressLabel string

	// WantShare adds the share/subpath field to the loop.
	WantShare bool

	// Seed pre-fills fields that are already known.
	Seed Fields
}

// Collector runs the collection loop against a line-oriented input and
// an output writer.
type Collector struct {
	in  *bufio.Reader
	out io.Writer

	// readSecret reads the secret field. The terminal collector swaps
	// in a no-echo reader; the default reads a plain line so pipes and
	// tests work.
	readSecret func() (string, error)
}

// NewCollector creates a collector over arbitrary reader/writer pairs.
// Secrets are read as plain lines.
func NewCollector(in io.Reader, out io.Writer) *Collector {
	c := &Collector{in: bufio.NewReader(in), out: out}
	c.readSecret = c.readLine
	return c
}

// NewTerminal creates a collector wired to stdin/stderr. When stdin is
// a terminal the secret is read without echo.
func NewTerminal() *Collector {
	c := NewCollector(os.Stdin, os.Stderr)
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		c.readSecret = func() (string, error) {
			b, err := term.ReadPassword(int(fd))
			fmt.Fprintln(c.out)
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(b)), nil
		}
	}
	return c
}

// Collect runs the loop until the operator accepts a complete record
// or aborts. Blank input on the accept prompt means yes.
func (c *Collector) Collect(req Request) (Fields, error) {
	logger := logging.GetLogger("prompt")

	fields := req.Seed
	for {
		if err := c.fillMissing(req, &fields); err != nil {
			return Fields{}, err
		}

		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, renderSummary(req, fields))

		answer, err := c.ask("Use these values? [Y/n/q] ")
		if err != nil {
			return Fields{}, err
		}

		switch strings.ToLower(answer) {
		case "", "y", "yes":
			if missing := missingFields(req, fields); len(missing) > 0 {
				fmt.Fprintf(c.out, "Still missing: %s\n", strings.Join(missing, ", "))
				continue
			}
			logger.Debug().Str("address", fields.Address).Msg("Collection accepted")
			return fields, nil
		case "n", "no", "r", "retry":
			// Keep seeded values, re-prompt everything else.
			fields = req.Seed
			fmt.Fprintln(c.out, "Starting over.")
		case "q", "quit":
			return Fields{}, errors.New(errors.ErrUserAbort, "collection aborted by operator")
		default:
			fmt.Fprintf(c.out, "Please answer y, n, or q.\n")
		}
	}
}

// fillMissing prompts for every field that is still empty.
func (c *Collector) fillMissing(req Request, fields *Fields) error {
	if fields.Address == "" {
		v, err := c.ask(req.AddressLabel + ": ")
		if err != nil {
			return err
		}
		fields.Address = v
	}
	if req.WantShare && fields.Share == "" {
		v, err := c.ask("Share: ")
		if err != nil {
			return err
		}
		fields.Share = v
	}
	if fields.MountPoint == "" {
		v, err := c.ask("Mount point: ")
		if err != nil {
			return err
		}
		fields.MountPoint = v
	}
	if fields.Username == "" {
		v, err := c.ask("Username: ")
		if err != nil {
			return err
		}
		fields.Username = v
	}
	if fields.Secret == "" {
		fmt.Fprint(c.out, "Password: ")
		v, err := c.readSecret()
		if err != nil {
			return abortOnEOF(err)
		}
		fields.Secret = v
	}
	return nil
}

// ask writes the prompt and reads one trimmed line.
func (c *Collector) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.readLine()
	if err != nil {
		return "", abortOnEOF(err)
	}
	return line, nil
}

func (c *Collector) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// abortOnEOF turns input exhaustion into an operator abort.
func abortOnEOF(err error) error {
	if err == io.EOF {
		return errors.New(errors.ErrUserAbort, "input closed during collection")
	}
	return errors.Wrap(err, errors.ErrInvalidInput, "failed to read input")
}

// missingFields names the required fields that are still empty.
func missingFields(req Request, fields Fields) []string {
	var out []string
	if fields.Address == "" {
		out = append(out, strings.ToLower(req.AddressLabel))
	}
	if req.WantShare && fields.Share == "" {
		out = append(out, "share")
	}
	if fields.MountPoint == "" {
		out = append(out, "mount point")
	}
	if fields.Username == "" {
		out = append(out, "username")
	}
	if fields.Secret == "" {
		out = append(out, "password")
	}
	return out
}
