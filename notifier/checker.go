package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/subtrack/pkg/email"
	"github.com/dmitrymomot/subtrack/pkg/schedule"
	"github.com/dmitrymomot/subtrack/subscription"
)

// warningDays is the offset of the early-warning threshold before expiry.
const warningDays = 45

// Config holds checker settings, loadable from the environment.
type Config struct {
	ReceiverEmail string        `env:"RECEIVER_EMAIL"`
	CheckHour     int           `env:"CHECK_HOUR" envDefault:"10"`
	CheckMinute   int           `env:"CHECK_MINUTE" envDefault:"0"`
	SendTimeout   time.Duration `env:"SEND_TIMEOUT" envDefault:"30s"`
	StartupProbe  bool          `env:"STARTUP_PROBE" envDefault:"false"`
}

// SubscriptionSource is the checker's read-only view of the record store.
type SubscriptionSource interface {
	LoadSubscriptions(ctx context.Context) ([]subscription.Subscription, error)
}

// Checker scans subscriptions once per scheduled fire and sends expiry
// notifications.
type Checker struct {
	source       SubscriptionSource
	sender       email.Sender
	recipient    string
	sched        schedule.Schedule
	sendTimeout  time.Duration
	startupProbe bool
	log          *slog.Logger
	now          func() time.Time
}

// Option configures the Checker.
type Option func(*Checker)

// WithSchedule overrides the default daily 10:00 schedule.
func WithSchedule(s schedule.Schedule) Option {
	if s == nil {
		panic("WithSchedule: nil schedule")
	}
	return func(c *Checker) { c.sched = s }
}

// WithClock overrides the time source, used by tests to pin "today".
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("WithClock: nil clock")
	}
	return func(c *Checker) { c.now = now }
}

// WithLogger supplies a logger for scan and send reporting.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.log = l
		}
	}
}

// WithSendTimeout bounds each individual email send.
func WithSendTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithSendTimeout: duration must be > 0")
	}
	return func(c *Checker) { c.sendTimeout = d }
}

// WithStartupProbe makes Start send a test email before the first scheduled
// scan, confirming the transport works at boot.
func WithStartupProbe() Option {
	return func(c *Checker) { c.startupProbe = true }
}

// New creates a Checker. Panics on missing collaborators to fail fast during
// initialization.
func New(source SubscriptionSource, sender email.Sender, recipient string, opts ...Option) *Checker {
	if source == nil {
		panic("notifier: SubscriptionSource is required")
	}
	if sender == nil {
		panic("notifier: email.Sender is required")
	}
	if recipient == "" {
		panic("notifier: recipient is required")
	}

	c := &Checker{
		source:      source,
		sender:      sender,
		recipient:   recipient,
		sched:       schedule.DailyAt(10, 0),
		sendTimeout: 30 * time.Second,
		log:         slog.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start runs the check loop until the context is canceled. Cancellation is
// observed while waiting between fires; an in-progress scan finishes the
// snapshot it already loaded.
func (c *Checker) Start(ctx context.Context) error {
	if c.startupProbe {
		c.sendProbe(ctx)
	}

	c.log.Info("expiry checker started", slog.String("schedule", c.sched.String()))

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		next := c.sched.Next(c.now())
		timer.Reset(next.Sub(c.now()))

		select {
		case <-ctx.Done():
			c.log.Info("expiry checker stopped")
			return ctx.Err()
		case <-timer.C:
			c.Scan(ctx)
		}
	}
}

// Scan evaluates every subscription against the two thresholds and sends the
// matching notifications. Send failures are logged and do not stop the scan.
func (c *Checker) Scan(ctx context.Context) {
	subs, err := c.source.LoadSubscriptions(ctx)
	if err != nil {
		c.log.Error("failed to load subscriptions for scan", slog.String("error", err.Error()))
		return
	}

	today := subscription.DateOf(c.now())
	var warned, expired int

	for _, sub := range subs {
		switch today.DaysUntil(sub.EndDate) {
		case warningDays:
			if c.send(ctx, warningMessage(c.recipient, sub)) {
				warned++
			}
		case 0:
			if c.send(ctx, expiryMessage(c.recipient, sub)) {
				expired++
			}
		}
	}

	c.log.Info("expiry scan finished",
		slog.String("date", today.String()),
		slog.Int("records", len(subs)),
		slog.Int("warnings_sent", warned),
		slog.Int("expiry_notices_sent", expired))
}

func (c *Checker) send(ctx context.Context, msg email.Message) bool {
	ctx, cancel := context.WithTimeout(ctx, c.sendTimeout)
	defer cancel()

	if err := c.sender.Send(ctx, msg); err != nil {
		c.log.Error("failed to send notification",
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()))
		return false
	}
	return true
}

func (c *Checker) sendProbe(ctx context.Context) {
	ok := c.send(ctx, email.Message{
		To:      c.recipient,
		Subject: "Subscription checker test email",
		Body:    "This is a test email sent on service startup.",
	})
	if ok {
		c.log.Info("startup probe email sent", slog.String("to", c.recipient))
	}
}

func warningMessage(to string, sub subscription.Subscription) email.Message {
	return email.Message{
		To:      to,
		Subject: fmt.Sprintf("Subscription Expiry Warning: %s", sub.ClientName),
		Body: fmt.Sprintf(
			"Dear User,\n\nYour subscription for %s (client: %s) is expiring in %d days (%s).\nPlease consider renewing it.\n\nRegards,\nYour Subscription Manager",
			sub.ProductName, sub.ClientName, warningDays, sub.EndDate),
	}
}

func expiryMessage(to string, sub subscription.Subscription) email.Message {
	return email.Message{
		To:      to,
		Subject: fmt.Sprintf("Subscription Expiry: %s", sub.ClientName),
		Body: fmt.Sprintf(
			"Dear User,\n\nYour subscription for %s (client: %s) is expiring today (%s).\n\nRegards,\nYour Subscription Manager",
			sub.ProductName, sub.ClientName, sub.EndDate),
	}
}
