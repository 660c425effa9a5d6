// Package guide holds the interaction state of one chat session: the
// transcript, the current result set and the restaurant detail view.
//
// Service calls never mutate state directly. Each returns a *Future; the
// caller waits for it and hands the Completion to Orchestrator.Apply on its
// single event loop. Apply discards review results for a restaurant that is
// no longer open, which stands in for cancelling them.
package guide

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/streetbites/guide/client"
)

// Backend is the subset of *client.Client the orchestrator drives.
//
// The async calls run deliver exactly once on a background goroutine unless
// they return an error, in which case deliver is never called.
type Backend interface {
	Chat(ctx context.Context, req client.ChatRequest) (*client.ChatResponse, error)
	GetRestaurantAsync(ctx context.Context, id client.ID, deliver func(*client.RestaurantDetail, error)) error
	CreateReviewAsync(ctx context.Context, req client.CreateReviewRequest, deliver func(*client.CreateReviewResponse, error)) error
}

// QueryErrorHandler is told about every query that failed.
type QueryErrorHandler func(query string, err error)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithQueryErrorHandler installs h; Apply still returns the error.
func WithQueryErrorHandler(h QueryErrorHandler) Option {
	return func(o *Orchestrator) { o.onQueryError = h }
}

// WithLogger replaces the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(o *Orchestrator) { o.sessionID = id }
}

// Orchestrator owns one session's state and coordinates the service calls.
type Orchestrator struct {
	backend      Backend
	onQueryError QueryErrorHandler
	log          zerolog.Logger
	sessionID    string

	mu               sync.Mutex
	transcript       *Transcript
	results          ResultSet
	detail           DetailSession
	input            string
	pendingQueries   int
	lastSubmitStatus string
}

// NewOrchestrator returns a session showing only the greeting.
func NewOrchestrator(backend Backend, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		backend:    backend,
		log:        log.Logger,
		transcript: NewTranscript(),
		detail:     newDetailSession(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.sessionID == "" {
		o.sessionID = uuid.NewString()
	}
	o.log = o.log.With().Str("session_id", o.sessionID).Logger()
	o.results.Clear()
	return o
}

func (o *Orchestrator) SessionID() string { return o.sessionID }

// SetInput replaces the input buffer.
func (o *Orchestrator) SetInput(s string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.input = s
}

func (o *Orchestrator) Input() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.input
}

// SubmitInput submits the input buffer.
func (o *Orchestrator) SubmitInput(ctx context.Context) *Future {
	return o.SubmitQuery(ctx, o.Input())
}

// SubmitQuery appends text as a user message, clears the input buffer and
// sends the query. Blank text is ignored and yields a nil Future. Queries
// are never queued behind one another: each resolves on its own.
func (o *Orchestrator) SubmitQuery(ctx context.Context, text string) *Future {
	q := strings.TrimSpace(text)
	if q == "" {
		return nil
	}

	o.mu.Lock()
	o.transcript.Append(Message{Role: RoleUser, Content: q})
	o.input = ""
	o.pendingQueries++
	o.mu.Unlock()

	o.log.Debug().Str("query", q).Msg("submitting query")
	f := newFuture()
	ctx = context.WithoutCancel(ctx)
	go func() {
		resp, err := o.backend.Chat(ctx, client.ChatRequest{Query: q})
		f.resolve(&QueryResult{Query: q, Response: resp, Err: err})
	}()
	return f
}

// Open shows r and starts fetching its reviews. Any other open restaurant
// is replaced.
func (o *Orchestrator) Open(ctx context.Context, r client.Restaurant) *Future {
	o.mu.Lock()
	o.detail.openFor(r)
	o.mu.Unlock()

	o.log.Debug().Str("restaurant_id", r.ID.String()).Msg("opening restaurant")
	return o.fetchReviews(ctx, r.ID, false)
}

// Close hides the detail view. Calls in flight are left to resolve and are
// discarded by Apply.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.detail.close()
}

// UpdateDraftField assigns one field of the review form.
func (o *Orchestrator) UpdateDraftField(field DraftField, value string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.detail.draft.set(field, value)
}

// SubmitDraft sends the form for the open restaurant. It returns nil when
// nothing is open.
func (o *Orchestrator) SubmitDraft(ctx context.Context) *Future {
	o.mu.Lock()
	if !o.detail.open || o.detail.restaurant == nil {
		o.mu.Unlock()
		return nil
	}
	id := o.detail.restaurant.ID
	d := o.detail.draft
	o.mu.Unlock()

	req := client.CreateReviewRequest{
		UserName:     d.UserName,
		Rating:       d.Rating,
		Comment:      d.Comment,
		RestaurantID: id,
	}
	f := newFuture()
	err := o.backend.CreateReviewAsync(context.WithoutCancel(ctx), req, func(resp *client.CreateReviewResponse, err error) {
		f.resolve(&SubmitResult{RestaurantID: id, Response: resp, Err: err})
	})
	if err != nil {
		f.resolve(&SubmitResult{RestaurantID: id, Err: err})
	}
	return f
}

func (o *Orchestrator) fetchReviews(ctx context.Context, id client.ID, refresh bool) *Future {
	f := newFuture()
	err := o.backend.GetRestaurantAsync(context.WithoutCancel(ctx), id, func(d *client.RestaurantDetail, err error) {
		f.resolve(&ReviewsResult{RestaurantID: id, Refresh: refresh, Detail: d, Err: err})
	})
	if err != nil {
		f.resolve(&ReviewsResult{RestaurantID: id, Refresh: refresh, Err: err})
	}
	return f
}

// Apply folds a resolved call into the session. It may start a follow-up
// call (the refetch after an accepted review) and returns its Future. The
// error is non-nil only for a failed query.
func (o *Orchestrator) Apply(ctx context.Context, c Completion) (*Future, error) {
	switch c := c.(type) {
	case *QueryResult:
		return nil, o.applyQuery(c)
	case *ReviewsResult:
		o.applyReviews(c)
		return nil, nil
	case *SubmitResult:
		return o.applySubmit(ctx, c), nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown completion %T", c)
	}
}

func (o *Orchestrator) applyQuery(r *QueryResult) error {
	o.mu.Lock()
	o.pendingQueries--
	if r.Err != nil {
		o.mu.Unlock()
		queryFailures.Inc()
		o.log.Warn().Err(r.Err).Str("query", r.Query).Msg("query failed")
		if o.onQueryError != nil {
			o.onQueryError(r.Query, r.Err)
		}
		return fmt.Errorf("query %q: %w", r.Query, r.Err)
	}
	defer o.mu.Unlock()

	answer := FallbackAnswer
	var results []client.Restaurant
	if r.Response != nil {
		if r.Response.Answer != "" {
			answer = r.Response.Answer
		}
		results = r.Response.Results
	}
	o.transcript.Append(Message{Role: RoleAssistant, Content: answer})
	o.results.Replace(results)
	return nil
}

func (o *Orchestrator) applyReviews(r *ReviewsResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.detail.isShowing(r.RestaurantID) {
		staleReviewsDiscarded.Inc()
		o.log.Debug().Str("restaurant_id", r.RestaurantID.String()).Msg("discarding reviews for restaurant no longer open")
		return
	}
	if !r.Refresh {
		o.detail.loading = false
	}
	if r.Err != nil {
		o.log.Warn().Err(r.Err).Str("restaurant_id", r.RestaurantID.String()).Msg("review fetch failed")
		return
	}
	var reviews []client.Review
	if r.Detail != nil {
		reviews = r.Detail.Reviews
	}
	o.detail.reviews = append([]client.Review(nil), reviews...)
}

func (o *Orchestrator) applySubmit(ctx context.Context, r *SubmitResult) *Future {
	status := ""
	if r.Response != nil {
		status = r.Response.Status
	}

	o.mu.Lock()
	o.lastSubmitStatus = status
	if r.Err != nil || !r.Response.OK() {
		o.mu.Unlock()
		submissionsNotOK.Inc()
		o.log.Warn().Err(r.Err).Str("restaurant_id", r.RestaurantID.String()).Str("status", status).Msg("review not accepted")
		return nil
	}
	o.detail.draft = NewDraft()
	o.mu.Unlock()

	return o.fetchReviews(ctx, r.RestaurantID, true)
}

// Snapshot is a consistent copy of the session for rendering.
type Snapshot struct {
	SessionID        string
	Messages         []Message
	Results          []client.Restaurant
	Detail           DetailState
	Input            string
	PendingQueries   int
	LastSubmitStatus string
}

// Snapshot copies the current state. Safe from any goroutine.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return Snapshot{
		SessionID:        o.sessionID,
		Messages:         o.transcript.Messages(),
		Results:          o.results.Items(),
		Detail:           o.detail.state(),
		Input:            o.input,
		PendingQueries:   o.pendingQueries,
		LastSubmitStatus: o.lastSubmitStatus,
	}
}

func (o *Orchestrator) Messages() []Message {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.transcript.Messages()
}

func (o *Orchestrator) Results() []client.Restaurant {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.results.Items()
}

func (o *Orchestrator) Detail() DetailState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.detail.state()
}

// LastSubmitStatus is the status of the most recent review submission,
// empty when it failed or carried none.
func (o *Orchestrator) LastSubmitStatus() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastSubmitStatus
}

// Run waits for f and applies it, following any chained call. It is the
// blocking driver used outside the terminal UI.
func (o *Orchestrator) Run(ctx context.Context, f *Future) error {
	for f != nil {
		c, err := f.Wait(ctx)
		if err != nil {
			return err
		}
		if f, err = o.Apply(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
