// Package notify decides which keyword subscribers should hear about new
// content and hands the result to a delivery backend off the write path.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/google/uuid"
	"github.com/itchan-dev/bbs/shared/domain"
	"github.com/itchan-dev/bbs/shared/logger"
)

type Field string

const (
	FieldTitle   Field = "title"
	FieldContent Field = "content"
)

// Content is one newly created board or comment. Title is empty for comments.
type Content struct {
	Title  string
	Body   string
	Author domain.Author
}

// Intent records that Subscriber should be told about a match in Field.
type Intent struct {
	Id           uuid.UUID
	Subscriber   domain.Author
	Keyword      domain.Keyword
	Field        Field
	SourceAuthor domain.Author
}

// Matcher evaluates all standing subscriptions against one piece of content.
// On error it may still return the intents found before the failure.
type Matcher interface {
	Evaluate(ctx context.Context, content Content) ([]Intent, error)
}

type AlertSource interface {
	ListAlerts(ctx context.Context) ([]domain.KeywordAlert, error)
}

// CompilePattern builds the case-insensitive pattern for a keyword.
// The keyword is used as written: metacharacters keep their meaning.
func CompilePattern(keyword domain.Keyword, matchTimeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(keyword, regexp2.IgnoreCase|regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	if matchTimeout > 0 {
		re.MatchTimeout = matchTimeout
	}
	return re, nil
}

// ScanMatcher re-reads every alert on each call and tests them one by one.
type ScanMatcher struct {
	alerts       AlertSource
	matchTimeout time.Duration
	log          *slog.Logger
}

func NewScanMatcher(alerts AlertSource, matchTimeout time.Duration) *ScanMatcher {
	return &ScanMatcher{alerts: alerts, matchTimeout: matchTimeout, log: logger.Component("keyword_matcher")}
}

func (m *ScanMatcher) Evaluate(ctx context.Context, content Content) ([]Intent, error) {
	alerts, err := m.alerts.ListAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyword alerts: %w", err)
	}

	var intents []Intent
	for _, alert := range alerts {
		if err := ctx.Err(); err != nil {
			return intents, err
		}
		if alert.Author == content.Author {
			continue
		}

		re, err := CompilePattern(alert.Keyword, m.matchTimeout)
		if err != nil {
			invalidPatterns.Inc()
			m.log.Warn("skipping alert with invalid pattern", "alert_id", alert.Id, "error", err)
			continue
		}

		if content.Title != "" && m.match(re, alert, content.Title) {
			intents = append(intents, newIntent(alert, FieldTitle, content.Author))
		}
		if m.match(re, alert, content.Body) {
			intents = append(intents, newIntent(alert, FieldContent, content.Author))
		}
	}
	return intents, nil
}

func (m *ScanMatcher) match(re *regexp2.Regexp, alert domain.KeywordAlert, text string) bool {
	ok, err := re.MatchString(text)
	if err != nil {
		// regexp2 reports a timeout as an error
		m.log.Warn("keyword match aborted", "alert_id", alert.Id, "error", err)
		return false
	}
	return ok
}

func newIntent(alert domain.KeywordAlert, field Field, source domain.Author) Intent {
	return Intent{
		Id:           uuid.New(),
		Subscriber:   alert.Author,
		Keyword:      alert.Keyword,
		Field:        field,
		SourceAuthor: source,
	}
}
