package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitmate/internal/events"
	"github.com/mmynk/splitmate/internal/metrics"
	"github.com/mmynk/splitmate/internal/middleware"
	"github.com/mmynk/splitmate/internal/models"
	"github.com/mmynk/splitmate/internal/storage"
	"github.com/mmynk/splitmate/pkg/api"
)

const maxNameLength = 100

// LedgerService implements the Connect LedgerService: friends, expenses,
// settlements and history.
type LedgerService struct {
	store storage.Store
	opts  options
}

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.Store, opts ...Option) *LedgerService {
	return &LedgerService{store: store, opts: buildOptions(opts)}
}

// publish sends an event; failures are logged and never fail the RPC.
func (s *LedgerService) publish(ctx context.Context, eventType string, payload any) {
	ev, err := events.New(eventType, payload)
	if err != nil {
		slog.Error("Failed to build event", "type", eventType, "error", err)
		return
	}
	ev.RequestID = middleware.GetRequestID(ctx)
	if err := s.opts.publisher.Publish(ctx, ev); err != nil {
		slog.Warn("Failed to publish event", "type", eventType, "error", err)
	}
}

// AddFriend creates a friend with a trimmed, non-empty name.
func (s *LedgerService) AddFriend(ctx context.Context, req *connect.Request[api.AddFriendRequest]) (*connect.Response[api.AddFriendResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("name is required")
	}
	if len(name) > maxNameLength {
		return nil, invalidArgument("name must be at most %d characters", maxNameLength)
	}

	friend := &models.Friend{Name: name, CreatedAt: s.opts.now()}
	if err := s.store.CreateFriend(ctx, friend); err != nil {
		return nil, storeError("AddFriend", err)
	}
	slog.Info("Friend added", "friend_id", friend.ID, "name", friend.Name)

	s.opts.metrics.RecordCreated(metrics.KindFriend)
	s.publish(ctx, events.FriendAdded, friendToAPI(friend))

	return connect.NewResponse(&api.AddFriendResponse{Friend: friendToAPI(friend)}), nil
}

// ListFriends returns every friend ordered by ID.
func (s *LedgerService) ListFriends(ctx context.Context, _ *connect.Request[api.ListFriendsRequest]) (*connect.Response[api.ListFriendsResponse], error) {
	friends, err := s.store.ListFriends(ctx)
	if err != nil {
		return nil, storeError("ListFriends", err)
	}

	out := make([]api.Friend, len(friends))
	for i, f := range friends {
		out[i] = friendToAPI(f)
	}
	return connect.NewResponse(&api.ListFriendsResponse{Friends: out}), nil
}

// DeleteFriend removes a friend who has paid no expense and is party to no
// settlement. Their share in other expenses is dropped with them.
func (s *LedgerService) DeleteFriend(ctx context.Context, req *connect.Request[api.DeleteFriendRequest]) (*connect.Response[api.DeleteFriendResponse], error) {
	if req.Msg.FriendID <= 0 {
		return nil, invalidArgument("friend_id is required")
	}
	if err := s.store.DeleteFriend(ctx, req.Msg.FriendID); err != nil {
		return nil, storeError("DeleteFriend", err)
	}
	slog.Info("Friend deleted", "friend_id", req.Msg.FriendID)

	s.opts.metrics.RecordDeleted(metrics.KindFriend, 1)
	s.publish(ctx, events.FriendDeleted, map[string]int64{"friend_id": req.Msg.FriendID})

	return connect.NewResponse(&api.DeleteFriendResponse{}), nil
}

// AddExpense records an expense paid by one friend and shared evenly
// among the listed participants.
func (s *LedgerService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.AddExpenseResponse], error) {
	msg := req.Msg
	description := strings.TrimSpace(msg.Description)
	if description == "" {
		return nil, invalidArgument("description is required")
	}
	if !msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be positive, got %s", msg.Amount)
	}
	if msg.PayerID <= 0 {
		return nil, invalidArgument("payer_id is required")
	}

	expense := &models.Expense{
		Description:    description,
		Amount:         msg.Amount,
		PayerID:        msg.PayerID,
		ParticipantIDs: msg.ParticipantIDs,
		Timestamp:      requestTime(msg.Timestamp, s.opts.now),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, storeError("AddExpense", err)
	}
	slog.Info("Expense added",
		"expense_id", expense.ID,
		"amount", expense.Amount,
		"payer_id", expense.PayerID,
		"participants", len(expense.ParticipantIDs),
	)

	friends, err := s.store.ListFriends(ctx)
	if err != nil {
		return nil, storeError("AddExpense", err)
	}
	out := expenseToAPI(expense, namesOf(friends))

	s.opts.metrics.RecordCreated(metrics.KindExpense)
	s.publish(ctx, events.ExpenseAdded, out)

	return connect.NewResponse(&api.AddExpenseResponse{Expense: out}), nil
}

// DeleteExpense removes an expense along with the settlements linked to it.
func (s *LedgerService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	if req.Msg.ExpenseID <= 0 {
		return nil, invalidArgument("expense_id is required")
	}
	removed, err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, storeError("DeleteExpense", err)
	}
	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID, "deleted_settlements", removed)

	s.opts.metrics.RecordDeleted(metrics.KindExpense, 1)
	s.opts.metrics.RecordDeleted(metrics.KindSettlement, removed)
	s.publish(ctx, events.ExpenseDeleted, map[string]int64{
		"expense_id":          req.Msg.ExpenseID,
		"deleted_settlements": int64(removed),
	})

	return connect.NewResponse(&api.DeleteExpenseResponse{DeletedSettlements: removed}), nil
}

// RecordSettlement records a payment between two distinct friends.
func (s *LedgerService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	msg := req.Msg
	if msg.PayerID <= 0 || msg.PayeeID <= 0 {
		return nil, invalidArgument("payer_id and payee_id are required")
	}
	if msg.PayerID == msg.PayeeID {
		return nil, invalidArgument("payer and payee must be different friends")
	}
	if !msg.Amount.IsPositive() {
		return nil, invalidArgument("amount must be positive, got %s", msg.Amount)
	}
	if msg.ExpenseID != nil && *msg.ExpenseID <= 0 {
		return nil, invalidArgument("expense_id must be positive when set")
	}

	settlement := &models.Settlement{
		PayerID:   msg.PayerID,
		PayeeID:   msg.PayeeID,
		Amount:    msg.Amount,
		Timestamp: requestTime(msg.Timestamp, s.opts.now),
		ExpenseID: msg.ExpenseID,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, storeError("RecordSettlement", err)
	}
	slog.Info("Settlement recorded",
		"settlement_id", settlement.ID,
		"payer_id", settlement.PayerID,
		"payee_id", settlement.PayeeID,
		"amount", settlement.Amount,
	)

	friends, err := s.store.ListFriends(ctx)
	if err != nil {
		return nil, storeError("RecordSettlement", err)
	}
	out := settlementToAPI(settlement, namesOf(friends))

	s.opts.metrics.RecordCreated(metrics.KindSettlement)
	s.publish(ctx, events.SettlementRecorded, out)

	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: out}), nil
}

// DeleteSettlement handles settlement removal.
func (s *LedgerService) DeleteSettlement(ctx context.Context, req *connect.Request[api.DeleteSettlementRequest]) (*connect.Response[api.DeleteSettlementResponse], error) {
	if req.Msg.SettlementID <= 0 {
		return nil, invalidArgument("settlement_id is required")
	}
	if err := s.store.DeleteSettlement(ctx, req.Msg.SettlementID); err != nil {
		return nil, storeError("DeleteSettlement", err)
	}
	slog.Info("Settlement deleted", "settlement_id", req.Msg.SettlementID)

	s.opts.metrics.RecordDeleted(metrics.KindSettlement, 1)
	s.publish(ctx, events.SettlementDeleted, map[string]int64{"settlement_id": req.Msg.SettlementID})

	return connect.NewResponse(&api.DeleteSettlementResponse{}), nil
}

// GetHistory lists expenses and settlements, newest first, optionally
// restricted to one calendar month.
func (s *LedgerService) GetHistory(ctx context.Context, req *connect.Request[api.GetHistoryRequest]) (*connect.Response[api.GetHistoryResponse], error) {
	period := models.Period{Year: req.Msg.Year, Month: time.Month(req.Msg.Month)}
	if err := period.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	snap, err := s.store.Snapshot(ctx, period)
	if err != nil {
		return nil, storeError("GetHistory", err)
	}
	names := namesOf(snap.Friends)

	resp := &api.GetHistoryResponse{
		Expenses:    make([]api.Expense, len(snap.Expenses)),
		Settlements: make([]api.Settlement, len(snap.Settlements)),
	}
	for i, e := range snap.Expenses {
		resp.Expenses[i] = expenseToAPI(e, names)
	}
	for i, st := range snap.Settlements {
		resp.Settlements[i] = settlementToAPI(st, names)
	}
	return connect.NewResponse(resp), nil
}
