package lifecycle_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rentmate-client-core/internal/domain"
	"rentmate-client-core/internal/lifecycle"
)

func TestPoller_TicksUntilStopped(t *testing.T) {
	var ticks atomic.Int64
	p := lifecycle.NewPoller(20*time.Millisecond, func() { ticks.Add(1) })

	assert.False(t, p.Running())
	assert.NoError(t, p.Start())
	assert.NoError(t, p.Start()) // idempotent
	assert.True(t, p.Running())

	assert.Eventually(t, func() bool { return ticks.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	p.Stop()
	assert.False(t, p.Running())
	settled := ticks.Load()
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, settled, ticks.Load())

	p.Stop() // stopping twice is harmless
}

func TestController_PollerStartsOnlyForPendingBankTransfer(t *testing.T) {
	cases := []struct {
		name    string
		txn     *domain.RentalTransaction
		running bool
	}{
		{"banking pending", transaction(domain.PaymentMethodBanking, domain.PaymentStatusPending), true},
		{"banking paid", transaction(domain.PaymentMethodBanking, domain.PaymentStatusPaid), false},
		{"cash pending", transaction(domain.PaymentMethodCash, domain.PaymentStatusPending), false},
		{"no transaction", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.stubLoad(request(domain.RequestStatusConfirmed, nil, nil), tc.txn, nil, ownerID)
			f.controller.Load(context.Background())
			assert.Equal(t, tc.running, f.controller.PollerRunning())
		})
	}
}

func TestController_PollerStopsOncePaymentSettles(t *testing.T) {
	req := request(domain.RequestStatusConfirmed, nil, nil)
	pickup := []domain.EvidenceImage{{ID: "img-1", TransactionID: txnID, Type: domain.ImageTypePickup}}

	f := newFixture(t, lifecycle.WithPollInterval(25*time.Millisecond))
	f.stubLoad(req, transaction(domain.PaymentMethodBanking, domain.PaymentStatusPending), pickup, renterID)
	f.controller.Load(context.Background())
	assert.True(t, f.controller.PollerRunning())
	assert.True(t, f.controller.State().Capabilities.ShowBankingPendingHint)

	// The bank transfer settles remotely; the next tick observes PAID.
	f.resetStubs()
	f.transactions.On("GetTransactionByRequest", mock.Anything, requestID).
		Return(transaction(domain.PaymentMethodBanking, domain.PaymentStatusPaid), nil)
	f.transactions.On("GetEvidenceImages", mock.Anything, txnID).Return(pickup, nil)

	assert.Eventually(t, func() bool { return !f.controller.PollerRunning() }, 3*time.Second, 10*time.Millisecond)

	st := f.controller.State()
	assert.Equal(t, lifecycle.PhaseSuccess, st.Phase)
	assert.True(t, st.Details.Transaction.IsPaid())
	assert.False(t, st.Capabilities.ShowBankingPendingHint)

	// No further fetches after the poller stopped. A tick already in
	// flight when Stop ran may still finish; give it a moment.
	time.Sleep(50 * time.Millisecond)
	settled := len(f.transactions.Calls)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, settled, len(f.transactions.Calls))
}

func TestController_PollFetchFailureKeepsPolling(t *testing.T) {
	f := newFixture(t, lifecycle.WithPollInterval(25*time.Millisecond))
	f.stubLoad(request(domain.RequestStatusConfirmed, nil, nil),
		transaction(domain.PaymentMethodBanking, domain.PaymentStatusPending), nil, renterID)
	f.controller.Load(context.Background())
	assert.True(t, f.controller.PollerRunning())

	f.resetStubs()
	f.transactions.On("GetTransactionByRequest", mock.Anything, requestID).
		Return(nil, notFound())

	// Ticks keep failing transiently; the poller does not give up and the
	// last good snapshot is untouched.
	time.Sleep(120 * time.Millisecond)
	assert.True(t, f.controller.PollerRunning())
	st := f.controller.State()
	assert.Equal(t, lifecycle.PhaseSuccess, st.Phase)
	assert.False(t, st.Details.Transaction.IsPaid())
}

func TestController_CloseStopsPoller(t *testing.T) {
	f := newFixture(t)
	f.stubLoad(request(domain.RequestStatusConfirmed, nil, nil),
		transaction(domain.PaymentMethodBanking, domain.PaymentStatusPending), nil, renterID)
	f.controller.Load(context.Background())
	assert.True(t, f.controller.PollerRunning())

	f.controller.Close()
	assert.False(t, f.controller.PollerRunning())
}
