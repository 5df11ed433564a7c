package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitmate/internal/events"
	"github.com/mmynk/splitmate/internal/metrics"
	"github.com/mmynk/splitmate/internal/middleware"
	"github.com/mmynk/splitmate/internal/storage/sqlite"
	"github.com/mmynk/splitmate/pkg/api"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	ledger    api.LedgerServiceClient
	balances  api.BalanceServiceClient
	balance   *BalanceService
	events    *events.Recorder
	metrics   *metrics.Metrics
	friendIDs map[string]int64
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T, distinguishedID int64) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &testEnv{
		events:    &events.Recorder{},
		metrics:   metrics.New(prometheus.NewRegistry()),
		friendIDs: map[string]int64{},
	}
	opts := []Option{
		WithPublisher(env.events),
		WithMetrics(env.metrics),
		WithClock(func() time.Time { return testNow }),
	}
	env.balance = NewBalanceService(store, distinguishedID, opts...)

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.MetricsInterceptor(env.metrics))
	mux := http.NewServeMux()
	mux.Handle(api.NewLedgerServiceHandler(NewLedgerService(store, opts...), interceptors))
	mux.Handle(api.NewBalanceServiceHandler(env.balance, interceptors))

	server := httptest.NewServer(middleware.RequestID(mux))
	t.Cleanup(server.Close)

	env.ledger = api.NewLedgerServiceClient(http.DefaultClient, server.URL)
	env.balances = api.NewBalanceServiceClient(http.DefaultClient, server.URL)
	return env
}

func (e *testEnv) addFriends(t *testing.T, names ...string) {
	t.Helper()
	for _, name := range names {
		resp, err := e.ledger.AddFriend(context.Background(), connect.NewRequest(&api.AddFriendRequest{Name: name}))
		if err != nil {
			t.Fatalf("AddFriend(%s) failed: %v", name, err)
		}
		e.friendIDs[name] = resp.Msg.Friend.ID
	}
}

func (e *testEnv) addExpense(t *testing.T, amount string, payer string, at time.Time, participants ...string) int64 {
	t.Helper()
	ids := make([]int64, len(participants))
	for i, p := range participants {
		ids[i] = e.friendIDs[p]
	}
	resp, err := e.ledger.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		Description:    "expense paid by " + payer,
		Amount:         d(amount),
		PayerID:        e.friendIDs[payer],
		ParticipantIDs: ids,
		Timestamp:      &at,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg.Expense.ID
}

func (e *testEnv) settle(t *testing.T, payer, payee, amount string, at time.Time, expenseID *int64) int64 {
	t.Helper()
	resp, err := e.ledger.RecordSettlement(context.Background(), connect.NewRequest(&api.RecordSettlementRequest{
		PayerID:   e.friendIDs[payer],
		PayeeID:   e.friendIDs[payee],
		Amount:    d(amount),
		ExpenseID: expenseID,
		Timestamp: &at,
	}))
	if err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}
	return resp.Msg.Settlement.ID
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Errorf("code = %v, want %v (err: %v)", got, want, err)
	}
}
