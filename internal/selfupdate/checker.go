// Package selfupdate checks GitHub releases for a newer spellz and replaces
// the running binary with it.
package selfupdate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/mod/semver"
)

const (
	defaultOwner = "abhisek"
	defaultRepo  = "spellz"

	// DevVersion is the version string of builds without release ldflags.
	DevVersion = "(devel)"
)

// Checker talks to the GitHub API and release downloads.
type Checker struct {
	client          *http.Client
	baseURL         string
	downloadBaseURL string
	owner           string
	repo            string
	fs              afero.Fs
	execPath        func() (string, error)
}

type Option func(*Checker)

// WithTimeout bounds every HTTP request.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

// WithBaseURL points the release lookup at another API host.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

// WithDownloadBaseURL points asset downloads at another host.
func WithDownloadBaseURL(u string) Option {
	return func(c *Checker) { c.downloadBaseURL = u }
}

// WithRepo selects the GitHub repository releases are read from.
func WithRepo(owner, repo string) Option {
	return func(c *Checker) { c.owner, c.repo = owner, repo }
}

func withFs(fs afero.Fs) Option {
	return func(c *Checker) { c.fs = fs }
}

func withExecPath(f func() (string, error)) Option {
	return func(c *Checker) { c.execPath = f }
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:          &http.Client{Timeout: 10 * time.Second},
		baseURL:         "https://api.github.com",
		downloadBaseURL: "https://github.com",
		owner:           defaultOwner,
		repo:            defaultRepo,
		fs:              afero.NewOsFs(),
		execPath:        os.Executable,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	LatestVersion   string
	ReleaseURL      string
	UpdateAvailable bool
}

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check looks up the latest release and compares it with input.Version.
// Development builds never report an update.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch latest release: HTTP %d", resp.StatusCode)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if !semver.IsValid(canonical(rel.TagName)) {
		return nil, fmt.Errorf("release tag %q is not a semantic version", rel.TagName)
	}

	return &CheckResult{
		LatestVersion:   rel.TagName,
		ReleaseURL:      rel.HTMLURL,
		UpdateAvailable: newer(canonical(rel.TagName), input.Version),
	}, nil
}

// newer reports whether latest is a newer release than current.
func newer(latest, current string) bool {
	if current == DevVersion {
		return false
	}
	current = canonical(current)
	if !semver.IsValid(current) {
		return false
	}
	return semver.Compare(latest, current) > 0
}

// canonical adds the "v" prefix semver expects to tags like "1.2.0".
func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
