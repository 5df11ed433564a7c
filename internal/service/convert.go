package service

import (
	"time"

	"github.com/mmynk/splitmate/internal/calculator"
	"github.com/mmynk/splitmate/internal/models"
	"github.com/mmynk/splitmate/pkg/api"
)

// friendNames maps friend IDs to display names.
type friendNames map[int64]string

func namesOf(friends []*models.Friend) friendNames {
	names := make(friendNames, len(friends))
	for _, f := range friends {
		names[f.ID] = f.Name
	}
	return names
}

func friendToAPI(f *models.Friend) api.Friend {
	return api.Friend{ID: f.ID, Name: f.Name, CreatedAt: f.CreatedAt}
}

func expenseToAPI(e *models.Expense, names friendNames) api.Expense {
	out := api.Expense{
		ID:               e.ID,
		Description:      e.Description,
		Amount:           e.Amount,
		PayerID:          e.PayerID,
		PayerName:        names[e.PayerID],
		ParticipantIDs:   append([]int64{}, e.ParticipantIDs...),
		ParticipantNames: make([]string, 0, len(e.ParticipantIDs)),
		Timestamp:        e.Timestamp,
		Settled:          e.Settled,
	}
	for _, id := range e.ParticipantIDs {
		if name, ok := names[id]; ok {
			out.ParticipantNames = append(out.ParticipantNames, name)
		}
	}
	return out
}

func settlementToAPI(s *models.Settlement, names friendNames) api.Settlement {
	return api.Settlement{
		ID:        s.ID,
		PayerID:   s.PayerID,
		PayerName: names[s.PayerID],
		PayeeID:   s.PayeeID,
		PayeeName: names[s.PayeeID],
		Amount:    s.Amount,
		Timestamp: s.Timestamp,
		ExpenseID: s.ExpenseID,
	}
}

func summaryToAPI(s calculator.PersonSummary) api.PersonSummary {
	return api.PersonSummary{
		FriendID:   s.FriendID,
		Name:       s.Name,
		Paid:       s.Paid,
		Owed:       s.Owed,
		Received:   s.Received,
		NetBalance: s.NetBalance,
	}
}

// requestTime returns *t, or now when t is nil.
func requestTime(t *time.Time, now func() time.Time) time.Time {
	if t == nil || t.IsZero() {
		return now()
	}
	return *t
}
