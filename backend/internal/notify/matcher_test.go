package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/bbs/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockAlertSource mocks the AlertSource interface.
type MockAlertSource struct {
	listAlertsFunc func(ctx context.Context) ([]domain.KeywordAlert, error)
	calls          int
}

func (m *MockAlertSource) ListAlerts(ctx context.Context) ([]domain.KeywordAlert, error) {
	m.calls++
	if m.listAlertsFunc != nil {
		return m.listAlertsFunc(ctx)
	}
	return nil, nil
}

func alertsOf(alerts ...domain.KeywordAlert) *MockAlertSource {
	return &MockAlertSource{listAlertsFunc: func(ctx context.Context) ([]domain.KeywordAlert, error) {
		return alerts, nil
	}}
}

func TestScanMatcherEvaluate(t *testing.T) {
	ctx := context.Background()

	t.Run("case-insensitive body match", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "sale"}), time.Second)

		intents, err := m.Evaluate(ctx, Content{Title: "Hello", Body: "Big Sale Today", Author: "alice"})

		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, "bob", intents[0].Subscriber)
		assert.Equal(t, "sale", intents[0].Keyword)
		assert.Equal(t, FieldContent, intents[0].Field)
		assert.Equal(t, "alice", intents[0].SourceAuthor)
		assert.NotEqual(t, uuid.Nil, intents[0].Id)
	})

	t.Run("self-authored content is skipped", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "sale"}), time.Second)

		intents, err := m.Evaluate(ctx, Content{Title: "Hello", Body: "Big Sale Today", Author: "bob"})

		require.NoError(t, err)
		assert.Empty(t, intents)
	})

	t.Run("title and body produce separate intents", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "go"}), time.Second)

		intents, err := m.Evaluate(ctx, Content{Title: "Go tips", Body: "more GO", Author: "alice"})

		require.NoError(t, err)
		require.Len(t, intents, 2)
		assert.Equal(t, FieldTitle, intents[0].Field)
		assert.Equal(t, FieldContent, intents[1].Field)
	})

	t.Run("empty title is not tested", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "^$"}), time.Second)

		intents, err := m.Evaluate(ctx, Content{Body: "comment", Author: "alice"})

		require.NoError(t, err)
		assert.Empty(t, intents)
	})

	t.Run("keywords are patterns, not literals", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(
			domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "s.le"},
			domain.KeywordAlert{Id: 2, Author: "carol", Keyword: `\bcat\b`},
			domain.KeywordAlert{Id: 3, Author: "dave", Keyword: "dog|bird"},
		), time.Second)

		intents, err := m.Evaluate(ctx, Content{Body: "SOLE cat owner", Author: "alice"})

		require.NoError(t, err)
		subscribers := make([]string, 0, len(intents))
		for _, i := range intents {
			subscribers = append(subscribers, i.Subscriber)
		}
		assert.ElementsMatch(t, []string{"bob", "carol"}, subscribers)
	})

	t.Run("invalid pattern is skipped, others still match", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(
			domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "(unclosed"},
			domain.KeywordAlert{Id: 2, Author: "carol", Keyword: "news"},
		), time.Second)

		intents, err := m.Evaluate(ctx, Content{Body: "news (unclosed", Author: "alice"})

		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, "carol", intents[0].Subscriber)
	})

	t.Run("catastrophic pattern times out instead of hanging", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "(a+)+$"}), 10*time.Millisecond)

		intents, err := m.Evaluate(ctx, Content{Body: strings.Repeat("a", 40) + "!", Author: "alice"})

		require.NoError(t, err)
		assert.Empty(t, intents)
	})

	t.Run("alerts are re-read on every call", func(t *testing.T) {
		src := alertsOf()
		m := NewScanMatcher(src, time.Second)

		_, _ = m.Evaluate(ctx, Content{Body: "a", Author: "x"})
		_, _ = m.Evaluate(ctx, Content{Body: "b", Author: "x"})

		assert.Equal(t, 2, src.calls)
	})

	t.Run("alert store failure is returned", func(t *testing.T) {
		src := &MockAlertSource{listAlertsFunc: func(ctx context.Context) ([]domain.KeywordAlert, error) {
			return nil, errors.New("db down")
		}}
		m := NewScanMatcher(src, time.Second)

		_, err := m.Evaluate(ctx, Content{Body: "x", Author: "a"})

		assert.ErrorContains(t, err, "db down")
	})

	t.Run("cancelled context stops the scan", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "x"}), time.Second)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := m.Evaluate(cctx, Content{Body: "x", Author: "a"})

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("expired scan keeps intents found so far", func(t *testing.T) {
		m := NewScanMatcher(alertsOf(
			domain.KeywordAlert{Id: 1, Author: "bob", Keyword: "sale"},
			domain.KeywordAlert{Id: 2, Author: "carol", Keyword: "sale"},
		), time.Second)
		cctx := &expiringContext{Context: ctx, live: 1}

		intents, err := m.Evaluate(cctx, Content{Body: "big sale", Author: "alice"})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		require.Len(t, intents, 1)
		assert.Equal(t, "bob", intents[0].Subscriber)
	})
}

// expiringContext reports DeadlineExceeded once Err has been polled live times.
type expiringContext struct {
	context.Context
	live int
}

func (c *expiringContext) Err() error {
	if c.live > 0 {
		c.live--
		return nil
	}
	return context.DeadlineExceeded
}

func TestCompilePattern(t *testing.T) {
	re, err := CompilePattern("SaLe", time.Second)
	require.NoError(t, err)
	ok, err := re.MatchString("big sale")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = CompilePattern("[", time.Second)
	assert.Error(t, err)
}
