package service

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmate/internal/calculator"
	"github.com/mmynk/splitmate/internal/metrics"
	"github.com/mmynk/splitmate/internal/models"
	"github.com/mmynk/splitmate/internal/storage"
	"github.com/mmynk/splitmate/pkg/api"
)

const defaultRecentLimit = 10

// BalanceService implements the Connect BalanceService. Every call computes
// from a fresh snapshot; nothing is cached between requests.
type BalanceService struct {
	store         storage.Store
	distinguished int64
	opts          options
}

var _ api.BalanceServiceHandler = (*BalanceService)(nil)

// NewBalanceService creates a BalanceService. distinguishedID selects the
// friend whose totals the dashboard reports; 0 means friend 1, the first created.
func NewBalanceService(store storage.Store, distinguishedID int64, opts ...Option) *BalanceService {
	return &BalanceService{store: store, distinguished: distinguishedID, opts: buildOptions(opts)}
}

// Dashboard is the all-time balance view.
type Dashboard struct {
	Balances        *calculator.Balances
	DistinguishedID int64
	Expenses        []*models.Expense
	Friends         []*models.Friend
}

// Totals returns the values tracked by the balance gauges.
func (d *Dashboard) Totals() metrics.BalanceTotals {
	return metrics.BalanceTotals{
		OutstandingCount: d.Balances.OutstandingCount,
		TotalSpent:       d.Balances.TotalSpent,
		YouOwe:           d.Balances.YouOwe,
		YouAreOwed:       d.Balances.YouAreOwed,
	}
}

// Dashboard computes balances over the whole ledger.
func (s *BalanceService) Dashboard(ctx context.Context) (*Dashboard, error) {
	snap, err := s.store.Snapshot(ctx, models.AllTime)
	if err != nil {
		return nil, err
	}
	meID := calculator.ResolveDistinguished(snap.Friends, s.distinguished)
	return &Dashboard{
		Balances:        calculator.CalculateBalances(snap.Friends, snap.Expenses, snap.Settlements, meID),
		DistinguishedID: meID,
		Expenses:        snap.Expenses,
		Friends:         snap.Friends,
	}, nil
}

// RefreshGauges recomputes the dashboard and publishes its totals as gauges.
func (s *BalanceService) RefreshGauges(ctx context.Context) error {
	d, err := s.Dashboard(ctx)
	if err != nil {
		return err
	}
	s.opts.metrics.ObserveBalances(d.Totals(), s.opts.now())
	return nil
}

// GetDashboard returns pairwise debts, totals, and the most recent activity.
func (s *BalanceService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	d, err := s.Dashboard(ctx)
	if err != nil {
		return nil, storeError("GetDashboard", err)
	}
	s.opts.metrics.ObserveBalances(d.Totals(), s.opts.now())

	edges := d.Balances.Edges()
	debts := make([]api.Debt, len(edges))
	for i, e := range edges {
		debts[i] = api.Debt{From: e.From, To: e.To, Amount: e.Amount}
	}

	limit := req.Msg.RecentLimit
	if limit == 0 {
		limit = defaultRecentLimit
	}
	recent := d.Expenses
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	names := namesOf(d.Friends)
	recentOut := make([]api.Expense, len(recent))
	for i, e := range recent {
		recentOut[i] = expenseToAPI(e, names)
	}

	return connect.NewResponse(&api.GetDashboardResponse{
		Debts:                 debts,
		YouOwe:                d.Balances.YouOwe,
		YouAreOwed:            d.Balances.YouAreOwed,
		TotalSpent:            d.Balances.TotalSpent,
		OutstandingCount:      d.Balances.OutstandingCount,
		DistinguishedFriendID: d.DistinguishedID,
		RecentExpenses:        recentOut,
	}), nil
}

// GetMonthlySummary returns balances for a single month. Missing year or
// month fields default to the current one.
func (s *BalanceService) GetMonthlySummary(ctx context.Context, req *connect.Request[api.GetMonthlySummaryRequest]) (*connect.Response[api.GetMonthlySummaryResponse], error) {
	period, err := s.summaryPeriod(req.Msg)
	if err != nil {
		return nil, err
	}

	snap, err := s.store.Snapshot(ctx, period)
	if err != nil {
		return nil, storeError("GetMonthlySummary", err)
	}

	summaries := calculator.SummarizeByPerson(snap.Friends, snap.Expenses, snap.Settlements, period)
	out := make([]api.PersonSummary, len(summaries))
	for i, ps := range summaries {
		out[i] = summaryToAPI(ps)
	}

	return connect.NewResponse(&api.GetMonthlySummaryResponse{
		Year:      period.Year,
		Month:     int(period.Month),
		AllTime:   period.IsAllTime(),
		Summaries: out,
	}), nil
}

// summaryPeriod fills a missing year or month from the current UTC date.
func (s *BalanceService) summaryPeriod(msg *api.GetMonthlySummaryRequest) (models.Period, error) {
	if msg.AllTime {
		if msg.Year != 0 || msg.Month != 0 {
			return models.Period{}, invalidArgument("all_time cannot be combined with year or month")
		}
		return models.AllTime, nil
	}
	current := models.MonthOf(s.opts.now())
	period := models.Period{Year: msg.Year, Month: time.Month(msg.Month)}
	if period.Year == 0 {
		period.Year = current.Year
	}
	if period.Month == 0 {
		period.Month = current.Month
	}
	if err := period.Validate(); err != nil {
		return models.Period{}, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return period, nil
}
