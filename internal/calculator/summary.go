package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitmate/internal/models"
)

// PersonSummary is one friend's activity over a period.
type PersonSummary struct {
	FriendID int64
	Name     string

	// Paid is expenses paid plus settlements paid.
	Paid decimal.Decimal

	// Owed is the sum of per-head shares of expenses the friend took part in,
	// rounded to two places for display.
	Owed decimal.Decimal

	// Received is settlements received.
	Received decimal.Decimal

	// NetBalance = round2(Paid + Received - Owed), computed from the unrounded Owed.
	NetBalance decimal.Decimal
}

type personTotals struct {
	paid, owed, received decimal.Decimal
}

// SummarizeByPerson produces one PersonSummary per friend, ordered by friend ID.
// Expenses and settlements outside period are ignored; models.AllTime keeps all.
// A friend's owed total includes their own share when they paid and participated.
func SummarizeByPerson(friends []*models.Friend, expenses []*models.Expense, settlements []*models.Settlement, period models.Period) []PersonSummary {
	idx := indexFriends(friends)
	totals := make(map[int64]*personTotals, len(idx))
	for id := range idx {
		totals[id] = &personTotals{paid: decimal.Zero, owed: decimal.Zero, received: decimal.Zero}
	}

	for _, e := range expenses {
		if e == nil || !period.Contains(e.Timestamp) {
			continue
		}
		if t, ok := totals[e.PayerID]; ok {
			t.paid = t.paid.Add(e.Amount)
		}
		split := idx.participants(e.ParticipantIDs)
		perHead := EvenShare(e.Amount, len(split))
		for _, p := range split {
			totals[p.ID].owed = totals[p.ID].owed.Add(perHead)
		}
	}

	for _, s := range settlements {
		if s == nil || !period.Contains(s.Timestamp) {
			continue
		}
		if t, ok := totals[s.PayerID]; ok {
			t.paid = t.paid.Add(s.Amount)
		}
		if t, ok := totals[s.PayeeID]; ok {
			t.received = t.received.Add(s.Amount)
		}
	}

	summaries := make([]PersonSummary, 0, len(idx))
	for id, f := range idx {
		t := totals[id]
		summaries = append(summaries, PersonSummary{
			FriendID:   id,
			Name:       f.Name,
			Paid:       t.paid,
			Owed:       Round2(t.owed),
			Received:   t.received,
			NetBalance: Round2(t.paid.Add(t.received).Sub(t.owed)),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].FriendID < summaries[j].FriendID
	})
	return summaries
}
