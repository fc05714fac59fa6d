// Package browser opens external links without blocking the caller.
package browser

import (
	"io"
	"strings"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
)

func init() {
	// The terminal belongs to the UI; the launched command must not write to it.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
}

// Opener launches URLs in the system browser.
type Opener struct {
	log    *logrus.Entry
	launch func(string) error
}

// New returns an Opener using the system browser.
func New(log *logrus.Entry) *Opener {
	return &Opener{log: log, launch: browser.OpenURL}
}

// Open launches url in the background. Failures are logged, never returned.
func (o *Opener) Open(url string) {
	url = strings.TrimSpace(url)
	if url == "" {
		return
	}
	go func() {
		if err := o.launch(url); err != nil && o.log != nil {
			o.log.WithError(err).WithField("url", url).Warn("open external link failed")
		}
	}()
}
