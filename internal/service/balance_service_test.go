package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/splitmate/pkg/api"
)

// seedDashboard records:
//
//	Me pays 90 split Me/Bob/Carol  -> Bob->Me 30, Carol->Me 30
//	Bob pays 40 split Me/Bob       -> Me->Bob 20
//	Carol pays Me 10               -> Carol->Me 20
func seedDashboard(t *testing.T, env *testEnv) {
	t.Helper()
	env.addFriends(t, "Me", "Bob", "Carol")
	env.addExpense(t, "90", "Me", testNow.Add(-3*time.Hour), "Me", "Bob", "Carol")
	env.addExpense(t, "40", "Bob", testNow.Add(-2*time.Hour), "Me", "Bob")
	env.settle(t, "Carol", "Me", "10", testNow.Add(-time.Hour), nil)
}

func TestGetDashboard(t *testing.T) {
	env := setupTestServer(t, 0)
	seedDashboard(t, env)

	resp, err := env.balances.GetDashboard(context.Background(), connect.NewRequest(&api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	msg := resp.Msg

	wantDebts := []api.Debt{
		{From: "Bob", To: "Me", Amount: d("30")},
		{From: "Carol", To: "Me", Amount: d("20")},
		{From: "Me", To: "Bob", Amount: d("20")},
	}
	if len(msg.Debts) != len(wantDebts) {
		t.Fatalf("debts = %+v, want %+v", msg.Debts, wantDebts)
	}
	for i, want := range wantDebts {
		got := msg.Debts[i]
		if got.From != want.From || got.To != want.To || !got.Amount.Equal(want.Amount) {
			t.Errorf("debt %d = %s->%s %s, want %s->%s %s", i, got.From, got.To, got.Amount, want.From, want.To, want.Amount)
		}
	}

	assertDecimal(t, "you_owe", msg.YouOwe, "20")
	assertDecimal(t, "you_are_owed", msg.YouAreOwed, "60")
	assertDecimal(t, "total_spent", msg.TotalSpent, "130")
	if msg.OutstandingCount != 3 {
		t.Errorf("outstanding = %d, want 3", msg.OutstandingCount)
	}
	if msg.DistinguishedFriendID != env.friendIDs["Me"] {
		t.Errorf("distinguished = %d, want %d", msg.DistinguishedFriendID, env.friendIDs["Me"])
	}
	if len(msg.RecentExpenses) != 2 || msg.RecentExpenses[0].PayerName != "Bob" {
		t.Errorf("recent expenses = %+v, want newest (Bob's) first", msg.RecentExpenses)
	}

	if got := testutil.ToFloat64(env.metrics.OutstandingDebts); got != 3 {
		t.Errorf("outstanding gauge = %v, want 3", got)
	}
}

func TestGetDashboard_Distinguished(t *testing.T) {
	tests := []struct {
		name       string
		configured func(ids map[string]int64) int64
		youOwe     string
		youAreOwed string
	}{
		{"configured Bob", func(ids map[string]int64) int64 { return ids["Bob"] }, "30", "20"},
		{"configured Carol", func(ids map[string]int64) int64 { return ids["Carol"] }, "30", "0"},
		{"unknown", func(map[string]int64) int64 { return 99 }, "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Friend ids are assigned 1, 2, 3 on a fresh database.
			env := setupTestServer(t, tt.configured(map[string]int64{"Me": 1, "Bob": 2, "Carol": 3}))
			seedDashboard(t, env)

			resp, err := env.balances.GetDashboard(context.Background(), connect.NewRequest(&api.GetDashboardRequest{}))
			if err != nil {
				t.Fatalf("GetDashboard failed: %v", err)
			}
			assertDecimal(t, "you_owe", resp.Msg.YouOwe, tt.youOwe)
			assertDecimal(t, "you_are_owed", resp.Msg.YouAreOwed, tt.youAreOwed)
			assertDecimal(t, "total_spent", resp.Msg.TotalSpent, "130")
		})
	}
}

func TestGetDashboard_DistinguishedFriendDeleted(t *testing.T) {
	env := setupTestServer(t, 0)
	env.addFriends(t, "Me", "Bob", "Carol")
	env.addExpense(t, "90", "Carol", testNow.Add(-time.Hour), "Me", "Bob", "Carol")
	ctx := context.Background()

	_, err := env.ledger.DeleteFriend(ctx, connect.NewRequest(&api.DeleteFriendRequest{FriendID: env.friendIDs["Me"]}))
	if err != nil {
		t.Fatalf("DeleteFriend failed: %v", err)
	}

	resp, err := env.balances.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if resp.Msg.DistinguishedFriendID != 0 {
		t.Errorf("distinguished = %d, want 0 once friend 1 is gone", resp.Msg.DistinguishedFriendID)
	}
	assertDecimal(t, "you_owe", resp.Msg.YouOwe, "0")
	assertDecimal(t, "you_are_owed", resp.Msg.YouAreOwed, "0")
	assertDecimal(t, "total_spent", resp.Msg.TotalSpent, "90")
	if len(resp.Msg.Debts) != 1 || resp.Msg.Debts[0].From != "Bob" || !resp.Msg.Debts[0].Amount.Equal(d("45")) {
		t.Errorf("debts = %+v, want Bob->Carol 45", resp.Msg.Debts)
	}
}

func TestGetDashboard_RecentLimit(t *testing.T) {
	env := setupTestServer(t, 0)
	seedDashboard(t, env)
	ctx := context.Background()

	resp, err := env.balances.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{RecentLimit: 1}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if len(resp.Msg.RecentExpenses) != 1 {
		t.Errorf("recent = %d, want 1", len(resp.Msg.RecentExpenses))
	}

	resp, err = env.balances.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{RecentLimit: -1}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if len(resp.Msg.RecentExpenses) != 2 {
		t.Errorf("recent = %d, want 2", len(resp.Msg.RecentExpenses))
	}
}

func TestGetDashboard_Empty(t *testing.T) {
	env := setupTestServer(t, 0)

	resp, err := env.balances.GetDashboard(context.Background(), connect.NewRequest(&api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if len(resp.Msg.Debts) != 0 || resp.Msg.OutstandingCount != 0 || resp.Msg.DistinguishedFriendID != 0 {
		t.Errorf("dashboard = %+v, want empty", resp.Msg)
	}
	assertDecimal(t, "total_spent", resp.Msg.TotalSpent, "0")
}

func TestGetMonthlySummary(t *testing.T) {
	env := setupTestServer(t, 0)
	env.addFriends(t, "Me", "Bob", "Carol")
	env.addExpense(t, "90", "Me", time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC), "Me", "Bob", "Carol")
	env.settle(t, "Bob", "Me", "30", time.Date(2024, time.March, 12, 9, 0, 0, 0, time.UTC), nil)
	env.addExpense(t, "40", "Bob", time.Date(2024, time.February, 20, 9, 0, 0, 0, time.UTC), "Me", "Bob")

	type row struct{ paid, owed, received, net string }
	tests := []struct {
		name string
		req  *api.GetMonthlySummaryRequest
		want map[string]row
	}{
		{
			name: "defaults to current month",
			req:  &api.GetMonthlySummaryRequest{},
			want: map[string]row{
				"Me":    {"90", "30", "30", "90"},
				"Bob":   {"30", "30", "0", "0"},
				"Carol": {"0", "30", "0", "-30"},
			},
		},
		{
			name: "february",
			req:  &api.GetMonthlySummaryRequest{Year: 2024, Month: 2},
			want: map[string]row{
				"Me":    {"0", "20", "0", "-20"},
				"Bob":   {"40", "20", "0", "20"},
				"Carol": {"0", "0", "0", "0"},
			},
		},
		{
			name: "month only uses current year",
			req:  &api.GetMonthlySummaryRequest{Month: 2},
			want: map[string]row{
				"Me":    {"0", "20", "0", "-20"},
				"Bob":   {"40", "20", "0", "20"},
				"Carol": {"0", "0", "0", "0"},
			},
		},
		{
			name: "all time",
			req:  &api.GetMonthlySummaryRequest{AllTime: true},
			want: map[string]row{
				"Me":    {"90", "50", "30", "70"},
				"Bob":   {"70", "50", "0", "20"},
				"Carol": {"0", "30", "0", "-30"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.balances.GetMonthlySummary(context.Background(), connect.NewRequest(tt.req))
			if err != nil {
				t.Fatalf("GetMonthlySummary failed: %v", err)
			}
			if len(resp.Msg.Summaries) != 3 {
				t.Fatalf("summaries = %d, want 3", len(resp.Msg.Summaries))
			}
			for i, ps := range resp.Msg.Summaries {
				if i > 0 && ps.FriendID <= resp.Msg.Summaries[i-1].FriendID {
					t.Errorf("summaries not ordered by friend id")
				}
				want := tt.want[ps.Name]
				assertDecimal(t, ps.Name+" paid", ps.Paid, want.paid)
				assertDecimal(t, ps.Name+" owed", ps.Owed, want.owed)
				assertDecimal(t, ps.Name+" received", ps.Received, want.received)
				assertDecimal(t, ps.Name+" net", ps.NetBalance, want.net)
			}
		})
	}

	t.Run("echoes period", func(t *testing.T) {
		resp, err := env.balances.GetMonthlySummary(context.Background(), connect.NewRequest(&api.GetMonthlySummaryRequest{}))
		if err != nil {
			t.Fatalf("GetMonthlySummary failed: %v", err)
		}
		if resp.Msg.Year != 2024 || resp.Msg.Month != 3 || resp.Msg.AllTime {
			t.Errorf("period = %d-%d all=%v, want 2024-3", resp.Msg.Year, resp.Msg.Month, resp.Msg.AllTime)
		}
	})
}

func TestGetMonthlySummary_Invalid(t *testing.T) {
	env := setupTestServer(t, 0)

	tests := []struct {
		name string
		req  *api.GetMonthlySummaryRequest
	}{
		{"month out of range", &api.GetMonthlySummaryRequest{Year: 2024, Month: 13}},
		{"negative month", &api.GetMonthlySummaryRequest{Year: 2024, Month: -1}},
		{"all time with month", &api.GetMonthlySummaryRequest{AllTime: true, Month: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.balances.GetMonthlySummary(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}
}

func TestRefreshGauges(t *testing.T) {
	env := setupTestServer(t, 0)
	seedDashboard(t, env)

	if err := env.balance.RefreshGauges(context.Background()); err != nil {
		t.Fatalf("RefreshGauges failed: %v", err)
	}
	if got := testutil.ToFloat64(env.metrics.TotalSpent); got != 130 {
		t.Errorf("total spent gauge = %v, want 130", got)
	}
	if got := testutil.ToFloat64(env.metrics.YouAreOwed); got != 60 {
		t.Errorf("you are owed gauge = %v, want 60", got)
	}
	if got := testutil.ToFloat64(env.metrics.LastRefresh); got != float64(testNow.Unix()) {
		t.Errorf("last refresh = %v, want %v", got, testNow.Unix())
	}
}
