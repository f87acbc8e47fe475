package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/srworkflow/workflow/internal/earnings"
	"github.com/srworkflow/workflow/internal/timer"
	"github.com/srworkflow/workflow/internal/timeutil"
)

var (
	ErrSessionOpen = errors.New(
		"a session is already in progress: stop it before starting a new one",
	)
	ErrNoActiveSession = errors.New("no session is in progress")
	ErrSignedOut       = errors.New("you must be signed in to track time")
	ErrInvalidRate     = errors.New("the hourly rate must not be negative")
)

// Owner supplies the identity that new sessions belong to.
type Owner interface {
	OwnerID() (string, bool)
}

// Notifier surfaces non-fatal events to the user.
type Notifier interface {
	Success(title, description string)
	Info(title, description string)
	Error(title, description string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string, string) {}

func (nopNotifier) Info(string, string) {}

func (nopNotifier) Error(string, string) {}

// Summary describes a session that was just stopped.
type Summary struct {
	EndTime     time.Time
	ID          string
	Elapsed     time.Duration
	EarningsINR float64
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithNotifier sets the notifier used for user-visible messages.
func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithConversionRate overrides earnings.DefaultConversionRate.
func WithConversionRate(rate float64) ControllerOption {
	return func(c *Controller) {
		c.conversion = rate
	}
}

// WithClock sets the clock used for session start and end times. It should
// be the same clock the engine was built with.
func WithClock(clock timer.Clock) ControllerOption {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithFinalizeHook registers a function that runs after a session has been
// finalized successfully.
func WithFinalizeHook(fn func(context.Context, Session)) ControllerOption {
	return func(c *Controller) {
		c.onFinalize = fn
	}
}

// Controller couples the persisted session lifecycle to the timer engine.
// A session record is created before the timer starts and finalized when it
// stops. A Controller is not safe for concurrent use.
type Controller struct {
	store      Store
	engine     *timer.Engine
	owner      Owner
	notifier   Notifier
	clock      timer.Clock
	logger     *slog.Logger
	onFinalize func(context.Context, Session)
	active     *Session
	sessions   []Session
	conversion float64
}

// NewController returns a controller with no active session.
func NewController(
	store Store,
	engine *timer.Engine,
	owner Owner,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		store:      store,
		engine:     engine,
		owner:      owner,
		notifier:   nopNotifier{},
		clock:      timer.ClockFunc(time.Now),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		conversion: earnings.DefaultConversionRate,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Active returns the ID of the open session, if any.
func (c *Controller) Active() (string, bool) {
	if c.active == nil {
		return "", false
	}

	return c.active.ID, true
}

// Rate returns the hourly rate fixed for the open session.
func (c *Controller) Rate() (float64, bool) {
	if c.active == nil {
		return 0, false
	}

	return c.active.HourlyRateUSD, true
}

// StartedAt returns the start time of the open session.
func (c *Controller) StartedAt() (time.Time, bool) {
	if c.active == nil {
		return time.Time{}, false
	}

	return c.active.StartTime, true
}

// ConversionRate returns the currency multiplier in effect.
func (c *Controller) ConversionRate() float64 {
	return c.conversion
}

// Running reports whether the timer is currently measuring time.
func (c *Controller) Running() bool {
	return c.engine.Status() == timer.Running
}

// State returns the current timer state.
func (c *Controller) State() timer.State {
	return c.engine.State()
}

// Tick recomputes the elapsed time and returns the state along with the
// live earnings of the open session.
func (c *Controller) Tick() (timer.State, float64) {
	state := c.engine.Tick()
	rate, _ := c.Rate()

	return state, earnings.Compute(state.ElapsedSeconds, rate, c.conversion)
}

// Sessions returns the most recently fetched sessions.
func (c *Controller) Sessions() []Session {
	return c.sessions
}

// OnStart opens a new session at the given hourly rate and starts the timer.
// If the session cannot be recorded, the timer is not started.
func (c *Controller) OnStart(ctx context.Context, hourlyRateUSD float64) error {
	if c.active != nil || c.engine.Status() != timer.Idle {
		return ErrSessionOpen
	}

	if hourlyRateUSD < 0 {
		return ErrInvalidRate
	}

	ownerID, ok := c.owner.OwnerID()
	if !ok {
		return ErrSignedOut
	}

	sess, err := c.store.CreateSession(ctx, c.clock.Now(), hourlyRateUSD, ownerID)
	if err != nil {
		c.logger.ErrorContext(ctx, "creating session failed", "error", err)
		c.notifier.Error(
			"Failed to start timer",
			"Your session couldn't be saved. Please try again.",
		)

		return fmt.Errorf("creating session: %w", err)
	}

	err = c.engine.Start()
	if err != nil {
		return err
	}

	c.active = sess

	c.logger.InfoContext(ctx, "session started",
		"id", sess.ID,
		"hourly_rate", hourlyRateUSD,
	)

	c.notifier.Success(
		"Timer started",
		fmt.Sprintf("Tracking at %s/hour", earnings.FormatUSD(hourlyRateUSD)),
	)

	return nil
}

// OnPauseResume toggles the timer between running and paused. The persisted
// session is not touched.
func (c *Controller) OnPauseResume() error {
	if c.active == nil {
		return ErrNoActiveSession
	}

	err := c.engine.PauseOrResume()
	if err != nil {
		return err
	}

	if c.engine.Status() == timer.Paused {
		c.notifier.Info(
			"Timer paused",
			"Current time: "+timeutil.FormatClock(c.engine.Elapsed()),
		)
	} else {
		c.notifier.Success("Timer resumed", "")
	}

	return nil
}

// OnStop finalizes the open session with the earnings for the time measured
// so far. The timer is reset even if the session cannot be saved, in which
// case the record remains in progress in storage.
func (c *Controller) OnStop(ctx context.Context) (*Summary, error) {
	if c.active == nil {
		return nil, ErrNoActiveSession
	}

	sess := *c.active
	id := sess.ID

	state := c.engine.Tick()
	amount := earnings.Compute(state.ElapsedSeconds, sess.HourlyRateUSD, c.conversion)
	end := c.clock.Now()

	err := c.store.FinalizeSession(ctx, id, end, amount)

	c.engine.Reset()
	c.active = nil

	if err != nil {
		c.logger.ErrorContext(ctx, "finalizing session failed",
			"id", id,
			"error", err,
		)
		c.notifier.Error(
			"Failed to save your session",
			"Please try again or check your connection",
		)

		return nil, fmt.Errorf("finalizing session %s: %w", id, err)
	}

	summary := &Summary{
		ID:          id,
		EndTime:     end,
		Elapsed:     timeutil.Seconds(state.ElapsedSeconds),
		EarningsINR: amount,
	}

	c.logger.InfoContext(ctx, "session finalized",
		"id", id,
		"elapsed_seconds", state.ElapsedSeconds,
		"earnings_inr", amount,
	)

	c.notifier.Success(
		"Session completed",
		fmt.Sprintf(
			"Earned %s in %s",
			earnings.FormatINR(amount),
			timeutil.FormatClock(summary.Elapsed),
		),
	)

	if err := c.Refresh(ctx); err != nil {
		c.logger.WarnContext(ctx, "refreshing sessions failed", "error", err)
	}

	if c.onFinalize != nil {
		sess.EndTime = &end
		sess.EarningsINR = &amount

		c.onFinalize(ctx, sess)
	}

	return summary, nil
}

// Refresh refetches the owner's sessions.
func (c *Controller) Refresh(ctx context.Context) error {
	ownerID, ok := c.owner.OwnerID()
	if !ok {
		c.sessions = nil
		return ErrSignedOut
	}

	sessions, err := c.store.ListSessions(ctx, ownerID)
	if err != nil {
		c.notifier.Error(
			"Failed to load your time entries",
			"Please check your connection and try again",
		)

		return fmt.Errorf("listing sessions: %w", err)
	}

	c.sessions = sessions

	return nil
}
