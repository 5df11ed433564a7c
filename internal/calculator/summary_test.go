package calculator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitmate/internal/models"
)

func findSummary(t *testing.T, summaries []PersonSummary, id int64) PersonSummary {
	t.Helper()
	for _, s := range summaries {
		if s.FriendID == id {
			return s
		}
	}
	t.Fatalf("no summary for friend %d", id)
	return PersonSummary{}
}

func TestSummarizeByPerson(t *testing.T) {
	friends := []*models.Friend{carol, me, bob}

	t.Run("payer shares own expense", func(t *testing.T) {
		got := SummarizeByPerson(friends, []*models.Expense{expense("100", 1, 1, 2)}, nil, models.AllTime)

		if len(got) != 3 {
			t.Fatalf("expected 3 summaries, got %d", len(got))
		}
		for i, wantID := range []int64{1, 2, 3} {
			if got[i].FriendID != wantID {
				t.Errorf("summary %d is friend %d, want %d", i, got[i].FriendID, wantID)
			}
		}

		a := findSummary(t, got, 1)
		assertDecimal(t, "Me paid", a.Paid, d("100"))
		assertDecimal(t, "Me owed", a.Owed, d("50"))
		assertDecimal(t, "Me net", a.NetBalance, d("50"))

		b := findSummary(t, got, 2)
		assertDecimal(t, "Bob paid", b.Paid, decimal.Zero)
		assertDecimal(t, "Bob owed", b.Owed, d("50"))
		assertDecimal(t, "Bob net", b.NetBalance, d("-50"))

		c := findSummary(t, got, 3)
		assertDecimal(t, "Carol net", c.NetBalance, decimal.Zero)
		if c.Name != "Carol" {
			t.Errorf("name = %q, want Carol", c.Name)
		}
	})

	t.Run("settlements fold into paid and received", func(t *testing.T) {
		got := SummarizeByPerson(friends,
			[]*models.Expense{expense("100", 1, 1, 2)},
			[]*models.Settlement{settlement("50", 2, 1)},
			models.AllTime,
		)

		a := findSummary(t, got, 1)
		assertDecimal(t, "Me received", a.Received, d("50"))
		assertDecimal(t, "Me net", a.NetBalance, d("100"))

		b := findSummary(t, got, 2)
		assertDecimal(t, "Bob paid", b.Paid, d("50"))
		assertDecimal(t, "Bob net", b.NetBalance, decimal.Zero)
	})

	t.Run("period filters both logs", func(t *testing.T) {
		april := expense("60", 2, 1, 2)
		april.Timestamp = time.Date(2024, time.April, 2, 0, 0, 0, 0, time.UTC)
		aprilSettle := settlement("5", 1, 2)
		aprilSettle.Timestamp = april.Timestamp

		got := SummarizeByPerson(friends,
			[]*models.Expense{expense("100", 1, 1, 2), april},
			[]*models.Settlement{settlement("50", 2, 1), aprilSettle},
			models.Period{Year: 2024, Month: time.April},
		)

		a := findSummary(t, got, 1)
		assertDecimal(t, "Me paid", a.Paid, d("5"))
		assertDecimal(t, "Me owed", a.Owed, d("30"))
		assertDecimal(t, "Me received", a.Received, decimal.Zero)

		b := findSummary(t, got, 2)
		assertDecimal(t, "Bob paid", b.Paid, d("60"))
		assertDecimal(t, "Bob received", b.Received, d("5"))
	})

	t.Run("empty participants add nothing to owed", func(t *testing.T) {
		got := SummarizeByPerson(friends, []*models.Expense{expense("10", 3)}, nil, models.AllTime)
		c := findSummary(t, got, 3)
		assertDecimal(t, "Carol paid", c.Paid, d("10"))
		assertDecimal(t, "Carol owed", c.Owed, decimal.Zero)
	})

	t.Run("unknown references skipped", func(t *testing.T) {
		got := SummarizeByPerson(friends,
			[]*models.Expense{expense("30", 99, 1, 2, 98)},
			[]*models.Settlement{settlement("5", 97, 1)},
			models.AllTime,
		)
		a := findSummary(t, got, 1)
		assertDecimal(t, "Me owed", a.Owed, d("15"))
		assertDecimal(t, "Me received", a.Received, d("5"))
	})
}

func TestSummarizeByPerson_OwedSharesSumToAmount(t *testing.T) {
	amounts := []string{"100", "10", "0.01", "99.99", "1234.56", "7"}
	for _, amount := range amounts {
		for n := 1; n <= 3; n++ {
			ids := []int64{1, 2, 3}[:n]
			got := SummarizeByPerson([]*models.Friend{me, bob, carol},
				[]*models.Expense{expense(amount, 1, ids...)}, nil, models.AllTime)

			sum := decimal.Zero
			for _, s := range got {
				sum = sum.Add(s.Owed)
			}
			tolerance := decimal.NewFromFloat(0.005).Mul(decimal.NewFromInt(int64(n)))
			if sum.Sub(d(amount)).Abs().GreaterThan(tolerance) {
				t.Errorf("amount %s over %d: owed sum %s outside tolerance %s", amount, n, sum, tolerance)
			}
		}
	}
}

func TestSummarizeByPerson_NetConservedWithoutSettlements(t *testing.T) {
	friends := []*models.Friend{me, bob, carol}
	expenses := []*models.Expense{
		expense("100", 1, 1, 2, 3),
		expense("45.50", 2, 1, 3),
		expense("12.34", 3, 1, 2, 3),
		expense("80", 2, 2),
		expense("19.99", 1, 2, 3),
	}

	got := SummarizeByPerson(friends, expenses, nil, models.AllTime)

	sum := decimal.Zero
	for _, s := range got {
		sum = sum.Add(s.NetBalance)
	}
	tolerance := decimal.NewFromFloat(0.01).Mul(decimal.NewFromInt(int64(len(got))))
	if sum.Abs().GreaterThan(tolerance) {
		t.Errorf("net balances sum to %s, want 0 within %s", sum, tolerance)
	}
}
