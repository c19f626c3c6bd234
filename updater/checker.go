// Package updater checks GitHub for new Ember Wallet releases and
// schedules the recurring automatic check.
package updater

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/emberwallet/ember/common"
)

const defaultBaseURL = "https://api.github.com"

// Release represents a GitHub release.
type Release struct {
	TagName string `json:"tag_name"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// Checker queries GitHub for the latest release and remembers when it last
// ran, so automatic checks can skip a slot right after a manual one.
type Checker struct {
	mu        sync.Mutex
	lastCheck time.Time

	currentVersion string
	owner          string
	repo           string
	baseURL        string
	client         *http.Client
}

// NewChecker creates a checker for the application's release repository.
func NewChecker(currentVersion string) *Checker {
	return &Checker{
		currentVersion: currentVersion,
		owner:          common.ReleaseOwner,
		repo:           common.ReleaseRepo,
		baseURL:        defaultBaseURL,
		client:         &http.Client{Timeout: common.UpdateCheckTimeout},
	}
}

// Check queries GitHub for the latest release. It returns a non-nil
// Release only when one newer than the current version exists. Every
// attempt, successful or not, counts as a check for DidCheckRecently.
func (c *Checker) Check() (*Release, error) {
	c.mu.Lock()
	c.lastCheck = time.Now()
	c.mu.Unlock()

	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Ember-Wallet-Updater")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to check update: %d", resp.StatusCode)
	}

	var rel Release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, err
	}

	remote, err := ParseSemver(rel.TagName)
	if err != nil {
		return nil, common.WrapError(err, "unparseable release tag")
	}
	current, err := ParseSemver(c.currentVersion)
	if err != nil {
		return nil, common.WrapError(err, "unparseable current version")
	}

	if current.LessThan(remote) {
		return &rel, nil
	}
	return nil, nil // Already up to date
}

// DidCheckRecently reports whether a check ran within the given window.
func (c *Checker) DidCheckRecently(window time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.lastCheck.IsZero() && time.Since(c.lastCheck) < window
}
