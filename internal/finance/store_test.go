package finance

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/kv/memory"
)

func expense(amount float64, desc, date string) core.TransactionInput {
	return core.TransactionInput{
		Amount:      amount,
		Description: desc,
		Category:    "Food",
		Date:        date,
		Type:        core.Expense,
	}
}

func income(amount float64, desc, date string) core.TransactionInput {
	return core.TransactionInput{
		Amount:      amount,
		Description: desc,
		Category:    "Salary",
		Date:        date,
		Type:        core.Income,
	}
}

func TestSummaryCorrectness(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	s.AddTransaction(ctx, income(3000, "salary", "2026-08-01"))
	s.AddTransaction(ctx, expense(120.50, "groceries", "2026-08-02"))
	s.AddTransaction(ctx, expense(40, "dinner", "2026-08-03"))
	s.AddTransaction(ctx, income(250, "freelance gig", "2026-08-04"))
	doomed := s.AddTransaction(ctx, expense(999, "mistake", "2026-08-05"))
	s.DeleteTransaction(ctx, doomed.ID)

	got := s.Summary()

	if got.TotalIncome != 3250 {
		t.Errorf("TotalIncome = %v, want 3250", got.TotalIncome)
	}
	if got.TotalExpenses != 160.50 {
		t.Errorf("TotalExpenses = %v, want 160.50", got.TotalExpenses)
	}
	if got.Savings != got.TotalIncome-got.TotalExpenses {
		t.Errorf("Savings = %v, want %v", got.Savings, got.TotalIncome-got.TotalExpenses)
	}
}

func TestSummaryMayBeNegative(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	s.AddTransaction(ctx, income(100, "pocket money", "2026-08-01"))
	s.AddTransaction(ctx, expense(300, "rent share", "2026-08-01"))

	if got := s.Summary().Savings; got != -200 {
		t.Errorf("Savings = %v, want -200", got)
	}
}

func TestNewestFirstOrdering(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	a := s.AddTransaction(ctx, expense(1, "first", "2026-08-01"))
	b := s.AddTransaction(ctx, expense(2, "second", "2026-08-02"))
	c := s.AddTransaction(ctx, income(3, "third", "2026-08-03"))

	txs := s.Transactions()
	if len(txs) != 3 {
		t.Fatalf("len = %d, want 3", len(txs))
	}
	if txs[0].ID != c.ID || txs[1].ID != b.ID || txs[2].ID != a.ID {
		t.Errorf("order = [%s %s %s], want newest first", txs[0].Description, txs[1].Description, txs[2].Description)
	}
}

func TestGoalCreationOrder(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	first := s.AddGoal(ctx, core.GoalInput{Name: "Vacation", TargetAmount: 1500})
	second := s.AddGoal(ctx, core.GoalInput{Name: "Car", TargetAmount: 9000})

	goals := s.Goals()
	if len(goals) != 2 {
		t.Fatalf("len = %d, want 2", len(goals))
	}
	if goals[0].ID != first.ID || goals[1].ID != second.ID {
		t.Error("goals must keep creation order")
	}
}

func TestIDUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		tx := s.AddTransaction(ctx, expense(1, "x", "2026-08-01"))
		if seen[tx.ID] {
			t.Fatalf("duplicate transaction id %q", tx.ID)
		}
		seen[tx.ID] = true
	}
	for i := 0; i < 50; i++ {
		g := s.AddGoal(ctx, core.GoalInput{Name: "g", TargetAmount: 1})
		if seen[g.ID] {
			t.Fatalf("duplicate goal id %q", g.ID)
		}
		seen[g.ID] = true
	}
}

func TestUpdatePreservesUntouchedFields(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	tx := s.AddTransaction(ctx, expense(40, "dinner", "2026-08-03"))

	desc := "team dinner"
	s.UpdateTransaction(ctx, tx.ID, core.TransactionPatch{Description: &desc})

	got, ok := s.Transaction(tx.ID)
	if !ok {
		t.Fatal("transaction disappeared after update")
	}
	if got.Description != desc {
		t.Errorf("Description = %q, want %q", got.Description, desc)
	}
	if got.Amount != tx.Amount || got.Category != tx.Category || got.Date != tx.Date || got.Type != tx.Type {
		t.Errorf("untouched fields changed: %+v", got)
	}
	if got.ID != tx.ID {
		t.Errorf("identity changed: %q -> %q", tx.ID, got.ID)
	}
}

func TestUpdateUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	s.AddTransaction(ctx, expense(40, "dinner", "2026-08-03"))
	before := s.Transactions()

	amt := 999.0
	s.UpdateTransaction(ctx, "no-such-id", core.TransactionPatch{Amount: &amt})
	s.UpdateGoal(ctx, "no-such-id", core.GoalPatch{})

	after := s.Transactions()
	if len(after) != len(before) || after[0] != before[0] {
		t.Error("updating an unknown id must not change anything")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	tx := s.AddTransaction(ctx, expense(40, "dinner", "2026-08-03"))
	keep := s.AddTransaction(ctx, income(100, "refund", "2026-08-04"))

	s.DeleteTransaction(ctx, tx.ID)
	s.DeleteTransaction(ctx, tx.ID) // second delete of the same id
	s.DeleteTransaction(ctx, "never-existed")
	s.DeleteGoal(ctx, "never-existed")

	txs := s.Transactions()
	if len(txs) != 1 || txs[0].ID != keep.ID {
		t.Errorf("collection = %+v, want only %q", txs, keep.ID)
	}
}

func TestStreakSameDayCollapse(t *testing.T) {
	ctx := context.Background()

	day := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	s := New(ctx, memory.New(), WithClock(func() time.Time { return day }))

	if s.Streak() != 0 {
		t.Fatalf("initial streak = %d, want 0", s.Streak())
	}

	s.AddTransaction(ctx, expense(10, "coffee", "2026-08-30"))
	if s.Streak() != 1 {
		t.Fatalf("streak after first expense = %d, want 1", s.Streak())
	}

	// Later the same day: counted once.
	day = day.Add(6 * time.Hour)
	s.AddTransaction(ctx, expense(25, "lunch", "2026-08-30"))
	if s.Streak() != 1 {
		t.Fatalf("streak after same-day expense = %d, want 1", s.Streak())
	}

	// Next day: advances.
	day = day.Add(24 * time.Hour)
	s.AddTransaction(ctx, expense(5, "bus", "2026-08-31"))
	if s.Streak() != 2 {
		t.Fatalf("streak after next-day expense = %d, want 2", s.Streak())
	}
}

func TestStreakIgnoresIncome(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	s.AddTransaction(ctx, income(3000, "salary", "2026-08-01"))
	if s.Streak() != 0 {
		t.Errorf("streak = %d after income, want 0", s.Streak())
	}
	if s.Summary().Streak != 0 {
		t.Errorf("summary streak = %d, want 0", s.Summary().Streak)
	}
}

func TestStreakGapStillAdvancesByOne(t *testing.T) {
	ctx := context.Background()

	day := time.Date(2026, 8, 1, 12, 0, 0, 0, time.Local)
	s := New(ctx, memory.New(), WithClock(func() time.Time { return day }))

	s.AddTransaction(ctx, expense(10, "coffee", "2026-08-01"))

	// Ten days of silence, then one expense: +1, no reset.
	day = day.AddDate(0, 0, 10)
	s.AddTransaction(ctx, expense(10, "coffee", "2026-08-11"))

	if s.Streak() != 2 {
		t.Errorf("streak after gap = %d, want 2", s.Streak())
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()

	day := time.Date(2026, 8, 30, 9, 0, 0, 0, time.Local)
	s1 := New(ctx, backing, WithClock(func() time.Time { return day }))
	s1.AddTransaction(ctx, income(3000, "salary", "2026-08-01"))
	s1.AddTransaction(ctx, expense(120.50, "groceries", "2026-08-30"))
	s1.AddGoal(ctx, core.GoalInput{Name: "Vacation", TargetAmount: 1500, SavedAmount: 200, Deadline: "2027-06-01"})

	// Second store over the same backing reproduces the state.
	s2 := New(ctx, backing)

	if got, want := s2.Transactions(), s1.Transactions(); len(got) != len(want) {
		t.Fatalf("transactions = %d, want %d", len(got), len(want))
	} else {
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("transaction[%d] = %+v, want %+v", i, got[i], want[i])
			}
		}
	}
	if got, want := s2.Goals(), s1.Goals(); len(got) != 1 || got[0] != want[0] {
		t.Errorf("goals = %+v, want %+v", got, want)
	}
	if s2.Streak() != s1.Streak() {
		t.Errorf("streak = %d, want %d", s2.Streak(), s1.Streak())
	}

	// Same-day collapse must survive the reload as well.
	s2now := New(ctx, backing, WithClock(func() time.Time { return day }))
	s2now.AddTransaction(ctx, expense(5, "snack", "2026-08-30"))
	if s2now.Streak() != 1 {
		t.Errorf("streak after reload + same-day expense = %d, want 1", s2now.Streak())
	}
}

func TestCorruptStateResilience(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewWithValues(map[string]string{
		KeyTransactions: `{"not":"an array"`,
		KeyGoals:        `42`,
		KeyStreak:       "three",
	})

	s := New(ctx, backing)

	if got := s.Transactions(); len(got) != 0 {
		t.Errorf("transactions = %+v, want empty", got)
	}
	if got := s.Goals(); len(got) != 0 {
		t.Errorf("goals = %+v, want empty", got)
	}
	if got := s.Streak(); got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}

	// Store stays usable after recovery.
	s.AddTransaction(ctx, expense(10, "coffee", "2026-08-30"))
	if len(s.Transactions()) != 1 {
		t.Error("store should accept mutations after recovering from corrupt state")
	}
}

func TestPersistedWireFormat(t *testing.T) {
	ctx := context.Background()
	backing := memory.New()
	s := New(ctx, backing)

	tx := s.AddTransaction(ctx, expense(12.5, "groceries", "2026-08-30"))

	raw, ok, err := backing.Get(ctx, KeyTransactions)
	if err != nil || !ok {
		t.Fatalf("persisted transactions missing: ok=%v err=%v", ok, err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatalf("persisted value is not a JSON array: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d entries, want 1", len(decoded))
	}
	entry := decoded[0]
	if entry["id"] != tx.ID || entry["amount"] != 12.5 || entry["type"] != "expense" {
		t.Errorf("wire entry = %v", entry)
	}

	streak, ok, _ := backing.Get(ctx, KeyStreak)
	if !ok || streak != "1" {
		t.Errorf("persisted streak = %q ok=%v, want \"1\"", streak, ok)
	}
	if _, ok, _ := backing.Get(ctx, KeyLastExpenseDate); !ok {
		t.Error("last expense date should be persisted")
	}
}

func TestSubscribeNotifiedOnEveryMutation(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, memory.New())

	calls := 0
	s.Subscribe(func() { calls++ })

	tx := s.AddTransaction(ctx, expense(10, "coffee", "2026-08-30"))
	desc := "espresso"
	s.UpdateTransaction(ctx, tx.ID, core.TransactionPatch{Description: &desc})
	g := s.AddGoal(ctx, core.GoalInput{Name: "Bike", TargetAmount: 800})
	s.DeleteGoal(ctx, g.ID)
	s.DeleteTransaction(ctx, tx.ID)

	if calls != 5 {
		t.Errorf("subscriber called %d times, want 5", calls)
	}

	// No-op mutations do not notify.
	s.DeleteTransaction(ctx, "no-such-id")
	if calls != 5 {
		t.Errorf("no-op delete notified subscribers; calls = %d", calls)
	}
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishTransactionEvent(_ context.Context, id, action string) error {
	p.events = append(p.events, action+":"+id)
	return nil
}

func TestPublisherReceivesTransactionEvents(t *testing.T) {
	ctx := context.Background()
	pub := &recordingPublisher{}
	s := New(ctx, memory.New(), WithPublisher(pub))

	tx := s.AddTransaction(ctx, expense(10, "coffee", "2026-08-30"))
	s.DeleteTransaction(ctx, tx.ID)
	s.AddGoal(ctx, core.GoalInput{Name: "Bike", TargetAmount: 800})

	want := []string{"created:" + tx.ID, "deleted:" + tx.ID}
	if len(pub.events) != len(want) {
		t.Fatalf("events = %v, want %v", pub.events, want)
	}
	for i := range want {
		if pub.events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, pub.events[i], want[i])
		}
	}
}
