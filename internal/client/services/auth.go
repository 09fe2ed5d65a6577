package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/aiworkbench/internal/client/client"
	"github.com/dmitrijs2005/aiworkbench/internal/client/models"
	"github.com/dmitrijs2005/aiworkbench/internal/client/notify"
	"github.com/dmitrijs2005/aiworkbench/internal/client/session"
	"github.com/dmitrijs2005/aiworkbench/internal/logging"
)

// BootstrapMode selects how a cached session is trusted at start-up.
type BootstrapMode string

const (
	// BootstrapOptimistic trusts the cached session immediately and
	// revalidates it in the background after a delay.
	BootstrapOptimistic BootstrapMode = "optimistic"
	// BootstrapStrict asks the provider before trusting the cached session.
	// A transport failure falls back to the optimistic decision.
	BootstrapStrict BootstrapMode = "strict"
)

// DefaultRevalidateDelay is how long a restored session is trusted before
// the provider is asked about it.
const DefaultRevalidateDelay = 2 * time.Second

var (
	ErrClosed         = errors.New("auth controller is closed")
	ErrAlreadyStarted = errors.New("auth controller already started")
)

// SessionStore persists the current session. *session.Store implements it.
type SessionStore interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}

// Option customizes an AuthController.
type Option func(*AuthController)

func WithLogger(l logging.Logger) Option {
	return func(c *AuthController) { c.logger = l }
}

func WithNotifier(n notify.Notifier) Option {
	return func(c *AuthController) { c.notifier = n }
}

// WithRevalidateDelay sets the delay before a restored session is checked.
// Negative values are treated as zero.
func WithRevalidateDelay(d time.Duration) Option {
	return func(c *AuthController) { c.revalidateDelay = max(d, 0) }
}

func WithBootstrapMode(m BootstrapMode) Option {
	return func(c *AuthController) { c.mode = m }
}

// AuthController mediates between user actions and the session store.
//
// Every state-changing operation (bootstrap, SignIn, SignOut and applying a
// revalidation result) runs under opMu, so store writes and transitions
// never interleave. SignIn and SignOut keep opMu across their provider call:
// a concurrent Close waits for them, for at most the client's request
// timeout. State reads only take mu and never wait on the network.
type AuthController struct {
	store    SessionStore
	client   client.Client
	notifier notify.Notifier
	logger   logging.Logger

	revalidateDelay time.Duration
	mode            BootstrapMode

	opMu       sync.Mutex
	token      string
	generation uint64
	started    bool
	closed     bool

	mu         sync.Mutex
	state      State
	subs       map[int]chan State
	nextSub    int
	subsClosed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAuthController creates a controller in the loading state. Call Start
// to bootstrap it and Close to release it.
func NewAuthController(store SessionStore, c client.Client, opts ...Option) *AuthController {
	ctx, cancel := context.WithCancel(context.Background())
	a := &AuthController{
		store:           store,
		client:          c,
		notifier:        notify.Nop{},
		logger:          logging.Nop{},
		revalidateDelay: DefaultRevalidateDelay,
		mode:            BootstrapOptimistic,
		state:           InitialState(),
		subs:            make(map[int]chan State),
		ctx:             ctx,
		cancel:          cancel,
	}
	for _, o := range opts {
		o(a)
	}
	a.logger = a.logger.With("component", "auth")
	return a
}

// Start restores the cached session, if any. It runs once.
//
// A well-formed cached session makes the controller authenticated right
// away; in optimistic mode the provider is asked about it later in the
// background. A missing, partial or corrupt cache is cleared and leaves the
// controller unauthenticated.
func (a *AuthController) Start(ctx context.Context) error {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	if a.closed {
		return ErrClosed
	}
	if a.started {
		return ErrAlreadyStarted
	}
	a.started = true
	a.dispatch(Event{Type: EventStart})

	cached, err := a.store.Load(ctx)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoSession):
			a.logger.Debug(ctx, "no cached session")
		case errors.Is(err, session.ErrCorrupt):
			a.logger.Warn(ctx, "discarding corrupt cached session", "err", err)
		default:
			a.logger.Error(ctx, "failed to read cached session", "err", err)
		}
		a.failClosed(ctx)
		return nil
	}

	if a.mode == BootstrapStrict {
		current, err := a.client.CurrentUser(ctx, cached.Token)
		switch {
		case err == nil && current.ID == cached.User.ID:
			a.restore(ctx, cached)
			return nil
		case err == nil:
			a.logger.Warn(ctx, "provider vouched for a different user, discarding cached session",
				"cached", cached.User.ID, "current", current.ID)
			a.failClosed(ctx)
			a.notifier.Error(MsgSessionExpired)
			return nil
		case errors.Is(err, client.ErrSessionInvalid):
			a.logger.Info(ctx, "cached session rejected by provider", "user", cached.User.Username)
			a.failClosed(ctx)
			a.notifier.Error(MsgSessionExpired)
			return nil
		default:
			a.logger.Warn(ctx, "could not verify cached session, trusting it for now", "err", err)
		}
	}

	a.restore(ctx, cached)
	a.scheduleRevalidation(cached.Token)
	return nil
}

func (a *AuthController) restore(ctx context.Context, s *models.Session) {
	user := s.User
	a.token = s.Token
	a.dispatch(Event{Type: EventSuccess, User: &user})
	a.logger.Info(ctx, "session restored", "user", user.Username, "role", user.Role)
}

// SignIn authenticates with the provider. It makes exactly one Login call.
// On success the session is persisted and the controller becomes
// authenticated. On any failure the store is cleared, the controller
// becomes unauthenticated, the user is notified and the error is returned
// (see UserMessage for how it is presented).
func (a *AuthController) SignIn(ctx context.Context, username, password string) (bool, error) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	if a.closed {
		return false, ErrClosed
	}
	a.generation++
	a.token = ""
	a.dispatch(Event{Type: EventStart})

	s, err := a.client.Login(ctx, username, password)
	if err != nil {
		a.logger.Info(ctx, "sign-in failed", "user", username, "err", err)
		a.failClosed(ctx)
		a.notifier.Error(UserMessage(err))
		return false, err
	}

	if err := a.store.Save(ctx, s); err != nil {
		a.logger.Error(ctx, "failed to persist session", "user", username, "err", err)
		a.failClosed(ctx)
		err = fmt.Errorf("persist session: %w", err)
		a.notifier.Error(UserMessage(err))
		return false, err
	}

	user := s.User
	a.token = s.Token
	a.dispatch(Event{Type: EventSuccess, User: &user})
	a.logger.Info(ctx, "signed in", "user", user.Username, "role", user.Role)
	a.notifier.Success(fmt.Sprintf(MsgSignedIn, user.DisplayName()))
	return true, nil
}

// SignOut ends the session. The provider is told on a best-effort basis;
// its failure is only logged. The local session is always cleared and the
// controller always ends unauthenticated.
func (a *AuthController) SignOut(ctx context.Context) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	a.generation++
	if a.token != "" {
		if err := a.client.Logout(ctx, a.token); err != nil {
			a.logger.Warn(ctx, "provider logout failed", "err", err)
		}
	}
	a.token = ""

	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear session store", "err", err)
	}

	if a.Snapshot().Loading() {
		a.dispatch(Event{Type: EventFailure})
	} else {
		a.dispatch(Event{Type: EventLogout})
	}
	a.logger.Info(ctx, "signed out")
	a.notifier.Info(MsgSignedOut)
}

// failClosed clears the store and drops to unauthenticated. Caller holds opMu.
func (a *AuthController) failClosed(ctx context.Context) {
	a.token = ""
	if err := a.store.Clear(ctx); err != nil {
		a.logger.Error(ctx, "failed to clear session store", "err", err)
	}
	a.dispatch(Event{Type: EventFailure})
}

// scheduleRevalidation starts the deferred provider check for token. The
// goroutine is owned by the controller: Close cancels and joins it. Caller
// holds opMu.
func (a *AuthController) scheduleRevalidation(token string) {
	gen := a.generation
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		timer := time.NewTimer(a.revalidateDelay)
		defer timer.Stop()

		select {
		case <-a.ctx.Done():
			return
		case <-timer.C:
		}

		a.revalidate(gen, token)
	}()
}

func (a *AuthController) revalidate(gen uint64, token string) {
	ctx := a.ctx
	_, err := a.client.CurrentUser(ctx, token)
	if ctx.Err() != nil {
		return
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()

	if a.closed || gen != a.generation {
		a.logger.Debug(ctx, "discarding stale revalidation result")
		return
	}

	switch {
	case err == nil:
		a.logger.Debug(ctx, "cached session confirmed")
	case errors.Is(err, client.ErrSessionInvalid):
		a.logger.Info(ctx, "cached session rejected by provider", "err", err)
		a.generation++
		a.failClosed(ctx)
		a.notifier.Error(MsgSessionExpired)
	default:
		a.logger.Warn(ctx, "could not revalidate session, keeping it", "err", err)
	}
}

// Snapshot returns a copy of the current state.
func (a *AuthController) Snapshot() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.clone()
}

// Subscribe returns a channel that receives the current state and then
// every change. A slow reader may miss intermediate states but always
// receives the latest one. The returned func unsubscribes and closes the
// channel.
func (a *AuthController) Subscribe() (<-chan State, func()) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := make(chan State, 1)
	ch <- a.state.clone()
	if a.subsClosed {
		close(ch)
		return ch, func() {}
	}

	id := a.nextSub
	a.nextSub++
	a.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			if c, ok := a.subs[id]; ok {
				delete(a.subs, id)
				close(c)
			}
		})
	}
}

// dispatch applies e and notifies subscribers when the state changed.
func (a *AuthController) dispatch(e Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next := Reduce(a.state, e)
	if next.Status == a.state.Status && next.User == a.state.User {
		return
	}
	a.state = next

	for _, ch := range a.subs {
		publish(ch, next.clone())
	}
}

// publish delivers s, replacing an unread older state if needed. Only
// dispatch sends, under mu, so there is a single sender per channel.
func publish(ch chan State, s State) {
	select {
	case ch <- s:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- s:
	default:
	}
}

// Close cancels a pending revalidation, waits for it to finish and closes
// all subscriptions. The controller rejects further sign-ins.
func (a *AuthController) Close() error {
	a.opMu.Lock()
	if a.closed {
		a.opMu.Unlock()
		return nil
	}
	a.closed = true
	a.cancel()
	a.opMu.Unlock()

	a.wg.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.subsClosed = true
	for id, ch := range a.subs {
		delete(a.subs, id)
		close(ch)
	}
	return nil
}
