package abuse

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrHoneypot  = errors.New("honeypot field filled")
	ErrTooFast   = errors.New("form submitted too fast")
	ErrUserAgent = errors.New("blocklisted user agent")
)

// Substrings that mark an automated client. Matched case-insensitively
// against the User-Agent header on write endpoints.
var uaBlocklist = []string{
	"bot", "crawler", "spider", "scraper",
	"curl", "wget", "python-requests", "python-urllib",
	"scrapy", "httpclient", "go-http-client", "java/",
}

// Submission carries the abuse-relevant parts of a write request: the hidden
// honeypot field, the client-reported form render time, and the User-Agent.
type Submission struct {
	Honeypot      string
	FormStartedAt int64 // unix milliseconds; zero when the client omits it
	UserAgent     string
}

type BotChecker struct {
	MinFormFillTime time.Duration
	UserAgentCheck  bool
}

// Check returns the first reason sub looks automated, or nil. Callers map
// any non-nil result to a 403 without further detail.
func (b *BotChecker) Check(sub Submission, now time.Time) error {
	if strings.TrimSpace(sub.Honeypot) != "" {
		return ErrHoneypot
	}
	if sub.FormStartedAt > 0 && b.MinFormFillTime > 0 {
		started := time.UnixMilli(sub.FormStartedAt)
		if now.Sub(started) < b.MinFormFillTime {
			return ErrTooFast
		}
	}
	if b.UserAgentCheck {
		ua := strings.ToLower(strings.TrimSpace(sub.UserAgent))
		for _, marker := range uaBlocklist {
			if strings.Contains(ua, marker) {
				return ErrUserAgent
			}
		}
	}
	return nil
}
