package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/itchan-dev/bbs/shared/logger"
)

// Deliverer performs the actual notification for one intent.
type Deliverer interface {
	Deliver(ctx context.Context, intent Intent) error
}

// LogDeliverer records intents in the log. Transport to users is external.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(ctx context.Context, intent Intent) error {
	logger.Log.Info("keyword notification",
		"component", "notifier",
		"intent_id", intent.Id.String(),
		"subscriber", intent.Subscriber,
		"keyword", intent.Keyword,
		"field", string(intent.Field),
		"source_author", intent.SourceAuthor)
	return nil
}

type Options struct {
	Workers      int
	QueueSize    int
	CheckTimeout time.Duration
}

// Notifier runs content checks on background workers. Check never blocks
// and never reports an error: a failed or dropped check only shows up in
// logs and metrics.
type Notifier struct {
	matcher   Matcher
	deliverer Deliverer
	opts      Options
	log       *slog.Logger

	queue chan Content
	wg    sync.WaitGroup

	mu      sync.RWMutex
	started bool
	closed  bool
}

func NewNotifier(matcher Matcher, deliverer Deliverer, opts Options) *Notifier {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1
	}
	return &Notifier{
		matcher:   matcher,
		deliverer: deliverer,
		opts:      opts,
		log:       logger.Component("notifier"),
		queue:     make(chan Content, opts.QueueSize),
	}
}

// Start launches the workers. ctx bounds every check they run.
func (n *Notifier) Start(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.started || n.closed {
		return
	}
	n.started = true

	n.log.Info("starting keyword notifier", "workers", n.opts.Workers, "queue_size", n.opts.QueueSize)
	for i := 0; i < n.opts.Workers; i++ {
		n.wg.Add(1)
		go n.worker(ctx)
	}
}

// Check queues content for matching.
func (n *Notifier) Check(content Content) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		checksDropped.Inc()
		n.log.Warn("keyword check dropped, notifier closed", "author", content.Author)
		return
	}

	queueDepth.Inc()
	select {
	case n.queue <- content:
	default:
		queueDepth.Dec()
		checksDropped.Inc()
		n.log.Warn("keyword check dropped, queue full", "author", content.Author)
	}
}

// Shutdown stops intake and waits for queued checks to finish or ctx to expire.
func (n *Notifier) Shutdown(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		n.log.Info("keyword notifier stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("keyword notifier did not drain: %w", ctx.Err())
	}
}

func (n *Notifier) worker(ctx context.Context) {
	defer n.wg.Done()
	for content := range n.queue {
		queueDepth.Dec()
		n.process(ctx, content)
	}
}

func (n *Notifier) process(ctx context.Context, content Content) {
	defer func() {
		if r := recover(); r != nil {
			checksTotal.WithLabelValues("panic").Inc()
			n.log.Error("keyword check panicked", "panic", r, "author", content.Author)
		}
	}()

	checkCtx := ctx
	if n.opts.CheckTimeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, n.opts.CheckTimeout)
		defer cancel()
	}

	// A failed scan may still return the intents found before it stopped.
	intents, err := n.matcher.Evaluate(checkCtx, content)
	if err != nil {
		checksTotal.WithLabelValues("error").Inc()
		n.log.Error("keyword check failed", "error", err, "author", content.Author, "partial_intents", len(intents))
	} else {
		checksTotal.WithLabelValues("ok").Inc()
	}

	for _, intent := range intents {
		intentsTotal.WithLabelValues(string(intent.Field)).Inc()
		if err := n.deliverer.Deliver(ctx, intent); err != nil {
			deliveryFailures.Inc()
			n.log.Error("keyword notification delivery failed",
				"error", err,
				"intent_id", intent.Id.String(),
				"subscriber", intent.Subscriber)
		}
	}
}
