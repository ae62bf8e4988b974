package captcha

import (
	"context"
	"sync"
	"time"

	"joinlist/internal/platform/logger"
)

// State is the widget controller lifecycle state
type State int

const (
	// StateUninitialized means no widget handle exists yet
	StateUninitialized State = iota
	// StateRendered means the widget is idle and ready to challenge
	StateRendered
	// StateChallenging means a challenge is in flight
	StateChallenging
	// StateClosed means the controller has been torn down
	StateClosed
)

// Widget is the surface of the third-party challenge widget the controller
// drives. Render returns an opaque handle; the token arrives asynchronously
// through the callbacks passed at render time.
type Widget interface {
	// Ready reports whether the widget script has loaded and the container
	// element is attached; both happen after the controller is constructed
	Ready() bool
	Render(siteKey string, cb Callbacks) (handle string, err error)
	Execute(handle string)
	Reset(handle string)
	Remove(handle string)
}

// Callbacks receive widget events
type Callbacks struct {
	OnToken   func(token string)
	OnExpired func()
	OnError   func(err error)
}

// ControllerOptions configures the Controller
type ControllerOptions struct {
	// SiteKey enables the widget. Empty means the controller is permanently
	// disabled and Execute resolves immediately with an empty token.
	SiteKey string
	// ExecuteTimeout bounds how long Execute waits for the widget callback
	ExecuteTimeout time.Duration
	// PollEvery is the mount poll interval for script/container readiness
	PollEvery time.Duration
}

// challenge is the single in-flight execute slot. Concurrent Execute callers
// join the same challenge and all observe the same outcome.
type challenge struct {
	done  chan struct{}
	token string
	timer *time.Timer
}

// Controller manages the lifecycle of a challenge widget and hands out
// one-time tokens. Execute never blocks past the configured timeout and
// never fails; degraded paths resolve with an empty token, which the server
// then judges under its own fail-open/closed policy.
type Controller struct {
	mu      sync.Mutex
	widget  Widget
	opts    ControllerOptions
	log     logger.Logger
	handle  string
	state   State
	token   string // cached from the last solved challenge
	pending *challenge
	stop    chan struct{}
}

// NewController builds a Controller around a widget
func NewController(w Widget, opts ControllerOptions) *Controller {
	if opts.ExecuteTimeout <= 0 {
		opts.ExecuteTimeout = 10 * time.Second
	}
	if opts.PollEvery <= 0 {
		opts.PollEvery = 100 * time.Millisecond
	}
	return &Controller{
		widget: w,
		opts:   opts,
		log:    *logger.Named("captcha-widget"),
		state:  StateUninitialized,
		stop:   make(chan struct{}),
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Disabled reports whether the controller will never produce tokens
func (c *Controller) Disabled() bool { return c.opts.SiteKey == "" }

// Mount polls until the widget script and container are both present, then
// renders the widget. Returns once rendered, or when ctx is done or the
// controller closed. Disabled controllers return immediately.
func (c *Controller) Mount(ctx context.Context) {
	if c.Disabled() {
		return
	}
	ticker := time.NewTicker(c.opts.PollEvery)
	defer ticker.Stop()
	for {
		if c.widget.Ready() {
			c.render()
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		case <-ticker.C:
		}
	}
}

func (c *Controller) render() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateUninitialized {
		return
	}
	h, err := c.widget.Render(c.opts.SiteKey, Callbacks{
		OnToken:   c.onToken,
		OnExpired: c.onExpired,
		OnError:   c.onError,
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("widget render failed")
		return
	}
	c.handle = h
	c.state = StateRendered
}

// Execute procures a token. It resolves with an empty string when the
// controller is disabled or closed, when the widget never calls back within
// the timeout, or when ctx is done first. A cached token from a prior solved
// challenge is returned without a new round trip. While a challenge is in
// flight, additional callers join it instead of starting another one.
func (c *Controller) Execute(ctx context.Context) string {
	c.mu.Lock()
	if c.Disabled() || c.state == StateClosed {
		c.mu.Unlock()
		return ""
	}
	if c.token != "" {
		t := c.token
		c.mu.Unlock()
		return t
	}

	ch := c.pending
	if ch == nil {
		ch = &challenge{done: make(chan struct{})}
		ch.timer = time.AfterFunc(c.opts.ExecuteTimeout, func() {
			c.resolve(ch, "")
		})
		c.pending = ch
		if c.state == StateRendered {
			c.state = StateChallenging
			go c.widget.Execute(c.handle)
		}
		// not rendered yet: the challenge still resolves at the timeout,
		// or earlier if the widget comes up and calls back
	}
	c.mu.Unlock()

	select {
	case <-ch.done:
		return ch.token
	case <-ctx.Done():
		return ""
	}
}

// resolve settles a specific challenge exactly once
func (c *Controller) resolve(ch *challenge, token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != ch {
		return // already settled
	}
	ch.token = token
	ch.timer.Stop()
	c.pending = nil
	if c.state == StateChallenging {
		c.state = StateRendered
	}
	close(ch.done)
}

func (c *Controller) onToken(token string) {
	c.mu.Lock()
	ch := c.pending
	if c.state != StateClosed {
		c.token = token
	}
	c.mu.Unlock()
	if ch != nil {
		c.resolve(ch, token)
	}
}

func (c *Controller) onExpired() {
	c.mu.Lock()
	c.token = ""
	ch := c.pending
	c.mu.Unlock()
	// a challenge whose token expired mid-flight will not complete; settle it
	// now rather than leaving callers to wait out the timeout
	if ch != nil {
		c.resolve(ch, "")
	}
}

func (c *Controller) onError(err error) {
	c.log.Warn().Err(err).Msg("widget reported error")
	c.mu.Lock()
	ch := c.pending
	c.mu.Unlock()
	if ch != nil {
		c.resolve(ch, "")
	}
}

// Reset clears the cached token and asks the widget to reset,
// without destroying the handle
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	if c.state == StateRendered || c.state == StateChallenging {
		c.widget.Reset(c.handle)
	}
}

// Close tears the controller down. Any pending Execute resolves with an
// empty token; callers are never left waiting. Safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.state == StateClosed {
		c.mu.Unlock()
		return
	}
	prev := c.state
	c.state = StateClosed
	ch := c.pending
	h := c.handle
	c.handle = ""
	c.token = ""
	c.mu.Unlock()

	close(c.stop)
	if ch != nil {
		c.resolve(ch, "")
	}
	if prev == StateRendered || prev == StateChallenging {
		c.widget.Remove(h)
	}
}
