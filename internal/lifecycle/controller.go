package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/logger"
	"rentmate-client-core/internal/remote"
)

const defaultPollInterval = 5 * time.Second

// Controller orchestrates the collaborator calls for one rental lifecycle
// session, owns the authoritative snapshot, and exposes the guarded
// state-transition commands. It is the single writer of the published
// state: user commands and poll ticks both funnel their snapshots through
// one mutex, so observers never see a torn combination of old and new data.
type Controller struct {
	requests     remote.RequestService
	transactions remote.TransactionService
	items        remote.ItemService
	identity     remote.IdentityService

	requestID    string
	pollInterval time.Duration
	now          func() time.Time

	mu      sync.Mutex
	state   SessionState
	updates chan SessionState
	closed  bool

	poller *Poller
}

type Option func(*Controller)

// WithPollInterval overrides the payment poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithClock overrides the time source. Tests use this to pin "now".
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

func NewController(
	requestID string,
	requests remote.RequestService,
	transactions remote.TransactionService,
	items remote.ItemService,
	identity remote.IdentityService,
	opts ...Option,
) *Controller {
	c := &Controller{
		requests:     requests,
		transactions: transactions,
		items:        items,
		identity:     identity,
		requestID:    requestID,
		pollInterval: defaultPollInterval,
		now:          time.Now,
		state:        SessionState{Phase: PhaseLoading},
		updates:      make(chan SessionState, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.poller = NewPoller(c.pollInterval, c.pollTick)
	return c
}

// Updates returns the channel the controller publishes snapshots on. The
// channel is latest-wins: an unconsumed snapshot is replaced by the next
// one, matching a UI that only renders current state.
func (c *Controller) Updates() <-chan SessionState {
	return c.updates
}

// State returns the current snapshot.
func (c *Controller) State() SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PollerRunning reports whether the payment poller is active.
func (c *Controller) PollerRunning() bool {
	return c.poller.Running()
}

// Close ends the session: the poller is cancelled and no further snapshots
// are published.
func (c *Controller) Close() {
	c.poller.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.updates)
	}
}

// Load performs the full reload-recompute cycle: request, then its
// transaction, then item + evidence + viewer id concurrently, then both
// resolvers. On success it publishes a fresh immutable snapshot and
// re-evaluates the poller start condition.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	prev := c.state.Details
	c.publishLocked(SessionState{Phase: PhaseLoading, Details: prev})
	c.mu.Unlock()

	logger.RemoteCall("request", "GetRequest", "request_id", c.requestID)
	req, err := c.requests.GetRequest(ctx, c.requestID)
	logger.RemoteResult("request", "GetRequest", err)
	if err != nil {
		c.fatal(fmt.Sprintf("failed to load rental request: %v", err), remote.IsRetryable(err))
		return
	}

	logger.RemoteCall("transaction", "GetTransactionByRequest", "request_id", c.requestID)
	txn, err := c.transactions.GetTransactionByRequest(ctx, c.requestID)
	logger.RemoteResult("transaction", "GetTransactionByRequest", err)
	if err != nil {
		if !remote.IsNotFound(err) {
			c.fatal(fmt.Sprintf("failed to load transaction: %v", err), remote.IsRetryable(err))
			return
		}
		// No transaction yet: the owner has not engaged with the request.
		txn = nil
	}

	var (
		item     *domain.Item
		images   []domain.EvidenceImage
		viewerID string
	)
	var wg sync.WaitGroup
	var errMu sync.Mutex
	var errs []error
	run := func(name string, f func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(); err != nil {
				errMu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				errMu.Unlock()
			}
		}()
	}

	run("item", func() error {
		var e error
		item, e = c.items.GetItem(ctx, req.ItemID)
		return e
	})
	if txn != nil {
		transactionID := txn.ID
		run("evidence images", func() error {
			var e error
			images, e = c.transactions.GetEvidenceImages(ctx, transactionID)
			return e
		})
	}
	run("viewer", func() error {
		var e error
		viewerID, e = c.identity.GetCurrentViewerID(ctx)
		return e
	})
	wg.Wait()

	if len(errs) > 0 {
		joined := errors.Join(errs...)
		c.fatal(fmt.Sprintf("failed to load transaction details: %v", joined), remote.IsRetryable(joined))
		return
	}
	if viewerID == "" {
		c.fatal("viewer identity could not be resolved", false)
		return
	}

	now := c.now()
	details := &domain.FullTransactionDetails{
		Request:     req,
		Transaction: txn,
		Item:        item,
		Images:      images,
		ViewerID:    viewerID,
		LoadedAt:    now,
	}
	details.Step = domain.ResolveStep(req, txn, images, now)
	caps := domain.ResolveCapabilities(details, details.ViewerIsOwner(), details.ViewerIsRenter(), now)

	c.mu.Lock()
	c.publishLocked(SessionState{Phase: PhaseSuccess, Details: details, Capabilities: caps})
	c.mu.Unlock()

	c.evaluatePoller(txn)
}

// OwnerConfirmRequest moves a freshly created request to CONFIRMED.
func (c *Controller) OwnerConfirmRequest(ctx context.Context) error {
	if _, err := c.guard("confirm request", func(caps domain.Capabilities) bool {
		return caps.OwnerConfirmRequest
	}); err != nil {
		return c.rejectLocally(err)
	}
	if _, err := c.requests.UpdateRequestStatus(ctx, c.requestID, domain.RequestStatusConfirmed); err != nil {
		return c.failCommand("confirm request", err)
	}
	c.Load(ctx)
	return nil
}

// OwnerReject declines a freshly created request. It shares the confirm
// precondition: only the owner, only while the request is still new.
func (c *Controller) OwnerReject(ctx context.Context) error {
	if _, err := c.guard("reject request", func(caps domain.Capabilities) bool {
		return caps.OwnerConfirmRequest
	}); err != nil {
		return c.rejectLocally(err)
	}
	if _, err := c.requests.UpdateRequestStatus(ctx, c.requestID, domain.RequestStatusRejected); err != nil {
		return c.failCommand("reject request", err)
	}
	c.Load(ctx)
	return nil
}

// OwnerConfirmCashPayment records that the owner received the cash payment
// in person.
func (c *Controller) OwnerConfirmCashPayment(ctx context.Context) error {
	details, err := c.guard("confirm cash payment", func(caps domain.Capabilities) bool {
		return caps.OwnerConfirmCashPayment
	})
	if err != nil {
		return c.rejectLocally(err)
	}
	if details.Transaction == nil || details.Transaction.ID == "" {
		return c.fatalCommand("confirm cash payment: transaction id missing")
	}
	if _, err := c.transactions.ConfirmPayment(ctx, details.Transaction.ID, domain.PaymentStatusPaid); err != nil {
		return c.failCommand("confirm cash payment", err)
	}
	c.Load(ctx)
	return nil
}

// OwnerComplete closes the rental after return evidence is in place.
func (c *Controller) OwnerComplete(ctx context.Context) error {
	if _, err := c.guard("complete rental", func(caps domain.Capabilities) bool {
		return caps.OwnerComplete
	}); err != nil {
		return c.rejectLocally(err)
	}
	if _, err := c.requests.UpdateRequestStatus(ctx, c.requestID, domain.RequestStatusCompleted); err != nil {
		return c.failCommand("complete rental", err)
	}
	c.Load(ctx)
	return nil
}

// RenterConfirmPickup acknowledges that the renter collected the item. It
// is additionally gated on CanProgress: payment can clear before the rental
// window opens, and pickup must wait for the agreed start time.
func (c *Controller) RenterConfirmPickup(ctx context.Context) error {
	if _, err := c.guard("confirm pickup", func(caps domain.Capabilities) bool {
		return caps.RenterConfirmPickup && caps.CanProgress
	}); err != nil {
		return c.rejectLocally(err)
	}
	if _, err := c.requests.UpdateRequestStatus(ctx, c.requestID, domain.RequestStatusRenting); err != nil {
		return c.failCommand("confirm pickup", err)
	}
	c.Load(ctx)
	return nil
}

// UploadEvidence sends handover photos to the evidence collaborator. The
// image type carries its own precondition: pickup photos only from the
// owner right after confirmation, return photos only from the renter while
// the rental is active or due.
func (c *Controller) UploadEvidence(ctx context.Context, imageType domain.ImageType, files []remote.EvidenceFile) error {
	var check func(domain.Capabilities) bool
	switch imageType {
	case domain.ImageTypePickup:
		check = func(caps domain.Capabilities) bool { return caps.OwnerUploadPickupEvidence }
	case domain.ImageTypeReturn:
		check = func(caps domain.Capabilities) bool { return caps.RenterUploadReturnEvidence }
	default:
		return c.rejectLocally(fmt.Errorf("unknown evidence image type %q", imageType))
	}
	command := fmt.Sprintf("upload %s evidence", strings.ToLower(string(imageType)))

	details, err := c.guard(command, check)
	if err != nil {
		return c.rejectLocally(err)
	}
	if len(files) == 0 {
		return c.rejectLocally(fmt.Errorf("%s: no files provided", command))
	}
	if details.Transaction == nil || details.Transaction.ID == "" {
		return c.fatalCommand(command + ": transaction id missing")
	}
	if _, err := c.transactions.UploadEvidenceImages(ctx, details.Transaction.ID, imageType, files); err != nil {
		return c.failCommand(command, err)
	}
	c.Load(ctx)
	return nil
}

// guard re-validates a command against the current capabilities, not the
// snapshot that enabled the UI button. A poll tick can legally change the
// step between the tap and the call; the stale command must be rejected
// locally without reaching the remote service.
func (c *Controller) guard(command string, allowed func(domain.Capabilities) bool) (*domain.FullTransactionDetails, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase != PhaseSuccess || c.state.Details == nil {
		return nil, fmt.Errorf("%s: no loaded snapshot", command)
	}
	if !allowed(c.state.Capabilities) {
		return nil, fmt.Errorf("%s is not allowed in step %s", command, c.state.Details.Step)
	}
	return c.state.Details, nil
}

// rejectLocally surfaces a precondition violation without touching the
// remote service or the last good snapshot.
func (c *Controller) rejectLocally(err error) error {
	logger.Warn("Command rejected locally", "request_id", c.requestID, "error", err)
	c.mu.Lock()
	st := c.state
	st.ErrorMessage = err.Error()
	st.CanRetry = false
	c.publishLocked(st)
	c.mu.Unlock()
	return err
}

// failCommand surfaces a remote mutation failure as a recoverable error on
// the snapshot. The last good details remain rendered.
func (c *Controller) failCommand(command string, err error) error {
	logger.Error("Command failed", "command", command, "request_id", c.requestID, "error", err)
	wrapped := fmt.Errorf("%s: %w", command, err)
	c.mu.Lock()
	st := c.state
	st.ErrorMessage = wrapped.Error()
	st.CanRetry = remote.IsRetryable(err)
	c.publishLocked(st)
	c.mu.Unlock()
	return wrapped
}

// fatalCommand reports an unrecoverable consistency failure; the session
// needs a full reload.
func (c *Controller) fatalCommand(msg string) error {
	c.fatal(msg, false)
	return errors.New(msg)
}

func (c *Controller) fatal(msg string, canRetry bool) {
	logger.Error("Lifecycle session failed", "request_id", c.requestID, "error", msg)
	c.mu.Lock()
	c.publishLocked(SessionState{Phase: PhaseError, ErrorMessage: msg, CanRetry: canRetry})
	c.mu.Unlock()
}

func (c *Controller) evaluatePoller(txn *domain.RentalTransaction) {
	if txn.AwaitingBankTransfer() {
		if err := c.poller.Start(); err != nil {
			logger.Error("Failed to start payment poller", "request_id", c.requestID, "error", err)
		}
		return
	}
	c.poller.Stop()
}

// pollTick re-fetches transaction and evidence only; the request and item
// rarely change mid-poll. Fresh values are merged into a new snapshot, the
// resolvers rerun, and the stop condition re-evaluated.
func (c *Controller) pollTick() {
	ctx := context.Background()

	c.mu.Lock()
	cur := c.state
	c.mu.Unlock()
	if cur.Phase != PhaseSuccess || cur.Details == nil || cur.Details.Transaction == nil {
		return
	}
	base := cur.Details

	txn, err := c.transactions.GetTransactionByRequest(ctx, c.requestID)
	if err != nil {
		// Transient: the next tick retries.
		logger.Warn("Payment poll fetch failed", "request_id", c.requestID, "error", err)
		return
	}
	var images []domain.EvidenceImage
	if txn != nil {
		images, err = c.transactions.GetEvidenceImages(ctx, txn.ID)
		if err != nil {
			logger.Warn("Payment poll evidence fetch failed", "request_id", c.requestID, "error", err)
			return
		}
	}

	now := c.now()
	details := &domain.FullTransactionDetails{
		Request:     base.Request,
		Transaction: txn,
		Item:        base.Item,
		Images:      images,
		ViewerID:    base.ViewerID,
		LoadedAt:    now,
	}
	details.Step = domain.ResolveStep(details.Request, txn, images, now)
	caps := domain.ResolveCapabilities(details, details.ViewerIsOwner(), details.ViewerIsRenter(), now)

	c.mu.Lock()
	c.publishLocked(SessionState{Phase: PhaseSuccess, Details: details, Capabilities: caps})
	c.mu.Unlock()

	if !txn.AwaitingBankTransfer() {
		logger.Info("Payment settled, stopping poller", "request_id", c.requestID)
		// Stop waits for the running tick, so it must not be called from
		// inside one.
		go c.poller.Stop()
	}
}

// publishLocked replaces the snapshot and pushes it on the updates channel,
// dropping an unconsumed previous value. Callers must hold c.mu.
func (c *Controller) publishLocked(st SessionState) {
	if c.closed {
		return
	}
	c.state = st
	select {
	case <-c.updates:
	default:
	}
	c.updates <- st
}
