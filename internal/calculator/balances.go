package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitmate/internal/models"
)

// DebtKey identifies a directed debt: Debtor owes Creditor.
// Opposite directions are distinct keys and are never netted.
type DebtKey struct {
	Debtor   string
	Creditor string
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// Balances is the output of CalculateBalances.
type Balances struct {
	// Debts holds the outstanding amount per directed pair, net of settlements.
	// Only positive amounts are present.
	Debts map[DebtKey]decimal.Decimal

	// YouOwe and YouAreOwed are gross totals for the distinguished friend.
	// Settlements do not reduce them.
	YouOwe     decimal.Decimal
	YouAreOwed decimal.Decimal

	// TotalSpent is the sum of all expense amounts.
	TotalSpent decimal.Decimal

	// OutstandingCount is the number of debts still positive.
	OutstandingCount int
}

// Edges returns the debts sorted by debtor, then creditor.
func (b *Balances) Edges() []DebtEdge {
	edges := make([]DebtEdge, 0, len(b.Debts))
	for k, amount := range b.Debts {
		edges = append(edges, DebtEdge{From: k.Debtor, To: k.Creditor, Amount: amount})
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	return edges
}

// CalculateBalances derives pairwise debts from the expense and settlement logs.
//
// Algorithm:
//   - For each expense: share = amount / surviving participants. Every participant
//     other than the payer owes round2(share) to the payer.
//   - Shares involving meID feed the gross YouOwe / YouAreOwed totals.
//   - For each settlement: if payer already owes payee, subtract the amount and drop
//     the debt once it reaches zero or below. Excess is discarded, and a settlement
//     with no matching debt changes nothing.
//
// References to unknown friends are skipped; the function never fails.
func CalculateBalances(friends []*models.Friend, expenses []*models.Expense, settlements []*models.Settlement, meID int64) *Balances {
	idx := indexFriends(friends)
	b := &Balances{
		Debts:      make(map[DebtKey]decimal.Decimal),
		YouOwe:     decimal.Zero,
		YouAreOwed: decimal.Zero,
		TotalSpent: decimal.Zero,
	}

	for _, e := range expenses {
		if e == nil {
			continue
		}
		b.TotalSpent = b.TotalSpent.Add(e.Amount)

		payer, ok := idx[e.PayerID]
		if !ok {
			continue
		}
		split := idx.participants(e.ParticipantIDs)
		share := Round2(EvenShare(e.Amount, len(split)))

		for _, p := range split {
			if p.ID == payer.ID {
				continue
			}
			key := DebtKey{Debtor: p.Name, Creditor: payer.Name}
			b.Debts[key] = b.Debts[key].Add(share)

			if meID != 0 && payer.ID == meID {
				b.YouAreOwed = b.YouAreOwed.Add(share)
			}
			if meID != 0 && p.ID == meID {
				b.YouOwe = b.YouOwe.Add(share)
			}
		}
	}

	for _, s := range settlements {
		if s == nil {
			continue
		}
		payer, okPayer := idx[s.PayerID]
		payee, okPayee := idx[s.PayeeID]
		if !okPayer || !okPayee {
			continue
		}
		key := DebtKey{Debtor: payer.Name, Creditor: payee.Name}
		owed, exists := b.Debts[key]
		if !exists {
			continue
		}
		remaining := owed.Sub(s.Amount)
		if !remaining.IsPositive() {
			delete(b.Debts, key)
			continue
		}
		b.Debts[key] = remaining
	}

	for _, amount := range b.Debts {
		if amount.IsPositive() {
			b.OutstandingCount++
		}
	}

	return b
}
