// Package finance owns the authoritative in-memory financial state:
// the transaction list, the goal list and the expense-logging streak.
// Every mutation is written back to the persistent key-value store and
// then pushed to subscribers.
package finance

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/amqp"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/kv"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/log"
)

// Persisted state layout. The keys are part of the external contract:
// other processes (the export worker, the report CLI) read them through
// the same kv backend.
const (
	KeyTransactions    = "financial_transactions"
	KeyGoals           = "financial_goals"
	KeyStreak          = "financial_streak"
	KeyLastExpenseDate = "last_transaction_date"
)

// lastExpenseDateLayout is the human-readable day rendering earlier
// releases persisted, kept so existing state stays readable.
const lastExpenseDateLayout = "Mon Jan 02 2006"

// EventPublisher receives a notification after each transaction
// mutation. Implemented by the AMQP client; nil disables publishing.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, id, action string) error
}

// Store is the financial state store. It is safe for concurrent use;
// when a mutation returns, any subsequent snapshot read observes it.
type Store struct {
	mu sync.Mutex

	kv        kv.Store
	logger    *log.Logger
	nowFn     func() time.Time
	publisher EventPublisher

	transactions []core.Transaction
	goals        []core.Goal
	streak       int
	lastExpense  string

	subMu       sync.Mutex
	subscribers []func()
}

type Option func(*Store)

// WithClock overrides the wall clock used by the streak algorithm.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.nowFn = now }
}

// WithPublisher attaches a transaction event publisher.
func WithPublisher(p EventPublisher) Option {
	return func(s *Store) { s.publisher = p }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l.WithComponent(log.ComponentStore) }
}

// New loads the persisted state from kvs. Missing or malformed values
// reset that one collection to empty (or the counter to zero); loading
// never fails.
func New(ctx context.Context, kvs kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     kvs,
		logger: log.New(log.Config{Component: log.ComponentStore}),
		nowFn:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	if raw, ok := s.read(ctx, KeyTransactions); ok {
		if err := json.Unmarshal([]byte(raw), &s.transactions); err != nil {
			s.logger.WarnContext(ctx, "Discarding malformed transaction state",
				log.FieldKey, KeyTransactions, log.FieldError, err.Error())
			s.transactions = nil
		}
	}
	if s.transactions == nil {
		s.transactions = []core.Transaction{}
	}

	if raw, ok := s.read(ctx, KeyGoals); ok {
		if err := json.Unmarshal([]byte(raw), &s.goals); err != nil {
			s.logger.WarnContext(ctx, "Discarding malformed goal state",
				log.FieldKey, KeyGoals, log.FieldError, err.Error())
			s.goals = nil
		}
	}
	if s.goals == nil {
		s.goals = []core.Goal{}
	}

	if raw, ok := s.read(ctx, KeyStreak); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.logger.WarnContext(ctx, "Discarding malformed streak counter",
				log.FieldKey, KeyStreak, "value", raw)
			n = 0
		}
		s.streak = n
	}

	if raw, ok := s.read(ctx, KeyLastExpenseDate); ok {
		s.lastExpense = raw
	}

	s.logger.InfoContext(ctx, "Financial state loaded",
		"transactions", len(s.transactions),
		"goals", len(s.goals),
		log.FieldStreak, s.streak)
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read persisted state, starting empty",
			log.FieldKey, key, log.FieldError, err.Error())
		return "", false
	}
	return raw, ok
}

// AddTransaction assigns a fresh id, prepends the transaction (the
// collection is newest first) and, for expenses, advances the streak.
// The store trusts its input; validation belongs to the caller.
func (s *Store) AddTransaction(ctx context.Context, in core.TransactionInput) core.Transaction {
	t := core.Transaction{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
		Type:        in.Type,
	}

	s.mu.Lock()
	s.transactions = append([]core.Transaction{t}, s.transactions...)
	if t.Type == core.Expense {
		s.advanceStreak(ctx)
	}
	s.persistTransactions(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldTransactionID, t.ID,
		log.FieldOperation, log.OpAdd,
		log.FieldAmount, t.Amount,
		log.FieldCategory, t.Category,
		"type", t.Type)

	s.publish(ctx, t.ID, amqp.ActionCreated)
	s.notify()
	return t
}

// UpdateTransaction merges the patch over the record with the given id,
// preserving unspecified fields. An unknown id is a silent no-op.
func (s *Store) UpdateTransaction(ctx context.Context, id string, patch core.TransactionPatch) {
	s.mu.Lock()
	found := false
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions[i] = patch.Apply(t)
			found = true
			break
		}
	}
	if found {
		s.persistTransactions(ctx)
	}
	s.mu.Unlock()

	if !found {
		return
	}

	s.logger.InfoContext(ctx, "Transaction updated",
		log.FieldTransactionID, id, log.FieldOperation, log.OpUpdate)
	s.publish(ctx, id, amqp.ActionUpdated)
	s.notify()
}

// DeleteTransaction removes the record with the given id if present.
// Deleting an absent id is a no-op, not an error.
func (s *Store) DeleteTransaction(ctx context.Context, id string) {
	s.mu.Lock()
	found := false
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			found = true
			break
		}
	}
	if found {
		s.persistTransactions(ctx)
	}
	s.mu.Unlock()

	if !found {
		return
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		log.FieldTransactionID, id, log.FieldOperation, log.OpDelete)
	s.publish(ctx, id, amqp.ActionDeleted)
	s.notify()
}

// AddGoal assigns a fresh id and appends the goal; goals keep creation
// order.
func (s *Store) AddGoal(ctx context.Context, in core.GoalInput) core.Goal {
	g := core.Goal{
		ID:           uuid.NewString(),
		Name:         in.Name,
		TargetAmount: in.TargetAmount,
		SavedAmount:  in.SavedAmount,
		Deadline:     in.Deadline,
	}

	s.mu.Lock()
	s.goals = append(s.goals, g)
	s.persistGoals(ctx)
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Goal added",
		log.FieldGoalID, g.ID, log.FieldOperation, log.OpAdd, "target", g.TargetAmount)
	s.notify()
	return g
}

func (s *Store) UpdateGoal(ctx context.Context, id string, patch core.GoalPatch) {
	s.mu.Lock()
	found := false
	for i, g := range s.goals {
		if g.ID == id {
			s.goals[i] = patch.Apply(g)
			found = true
			break
		}
	}
	if found {
		s.persistGoals(ctx)
	}
	s.mu.Unlock()

	if !found {
		return
	}

	s.logger.InfoContext(ctx, "Goal updated",
		log.FieldGoalID, id, log.FieldOperation, log.OpUpdate)
	s.notify()
}

func (s *Store) DeleteGoal(ctx context.Context, id string) {
	s.mu.Lock()
	found := false
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			found = true
			break
		}
	}
	if found {
		s.persistGoals(ctx)
	}
	s.mu.Unlock()

	if !found {
		return
	}

	s.logger.InfoContext(ctx, "Goal deleted",
		log.FieldGoalID, id, log.FieldOperation, log.OpDelete)
	s.notify()
}

// Summary recomputes the derived aggregate from the current snapshot.
func (s *Store) Summary() core.FinancialSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	var summary core.FinancialSummary
	for _, t := range s.transactions {
		switch t.Type {
		case core.Income:
			summary.TotalIncome += t.Amount
		case core.Expense:
			summary.TotalExpenses += t.Amount
		}
	}
	summary.Savings = summary.TotalIncome - summary.TotalExpenses
	summary.Streak = s.streak
	return summary
}

// Transactions returns a copy of the collection, newest first.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Transaction looks up a single record by id.
func (s *Store) Transaction(id string) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// Goals returns a copy of the collection in creation order.
func (s *Store) Goals() []core.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...)
}

// Goal looks up a single goal by id.
func (s *Store) Goal(id string) (core.Goal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.goals {
		if g.ID == id {
			return g, true
		}
	}
	return core.Goal{}, false
}

func (s *Store) Streak() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streak
}

// Subscribe registers a callback invoked synchronously after each
// mutation completes. Callbacks may re-read snapshots but must not
// mutate the store.
func (s *Store) Subscribe(fn func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// advanceStreak counts at most one distinct calendar day, however many
// expenses are logged on it. A multi-day gap still advances by 1; the
// counter never resets. Caller holds s.mu.
func (s *Store) advanceStreak(ctx context.Context) {
	today := s.nowFn().Format(lastExpenseDateLayout)
	if s.lastExpense == today {
		return
	}

	s.streak++
	s.lastExpense = today
	s.write(ctx, KeyStreak, strconv.Itoa(s.streak))
	s.write(ctx, KeyLastExpenseDate, today)

	s.logger.InfoContext(ctx, "Streak advanced", log.FieldStreak, s.streak)
}

// Persistence is fire-and-forget from the caller's point of view: a
// failed write leaves the in-memory state authoritative and is only
// logged. Callers hold s.mu.
func (s *Store) persistTransactions(ctx context.Context) {
	data, err := json.Marshal(s.transactions)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode transactions",
			log.FieldKey, KeyTransactions, log.FieldError, err.Error())
		return
	}
	s.write(ctx, KeyTransactions, string(data))
}

func (s *Store) persistGoals(ctx context.Context) {
	data, err := json.Marshal(s.goals)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to encode goals",
			log.FieldKey, KeyGoals, log.FieldError, err.Error())
		return
	}
	s.write(ctx, KeyGoals, string(data))
}

func (s *Store) write(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.ErrorContext(ctx, "Failed to persist state",
			log.FieldKey, key, log.FieldOperation, log.OpPersist, log.FieldError, err.Error())
	}
}

func (s *Store) publish(ctx context.Context, id, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionEvent(ctx, id, action); err != nil {
		// The mutation already succeeded locally, so only log.
		s.logger.ErrorContext(ctx, "Failed to publish transaction event",
			log.FieldTransactionID, id, log.FieldOperation, log.OpPublish, log.FieldError, err.Error())
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := make([]func(), len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}
