package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DateLayout is the wire format for transaction dates and goal deadlines
// (calendar day, no time component).
const DateLayout = "2006-01-02"

type (
	TransactionType string

	// Transaction is a single recorded income or expense event. The ID is
	// assigned once at creation and never reused; all other fields may be
	// replaced through a patch. Amount is a non-negative magnitude, the
	// sign is implied by Type.
	Transaction struct {
		ID          string          `json:"id"`
		Amount      float64         `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Date        string          `json:"date"`
		Type        TransactionType `json:"type"`
	}

	// TransactionInput carries the fields of a transaction before an ID
	// has been assigned.
	TransactionInput struct {
		Amount      float64         `json:"amount"`
		Description string          `json:"description"`
		Category    string          `json:"category"`
		Date        string          `json:"date"`
		Type        TransactionType `json:"type"`
	}

	// TransactionPatch is a partial update: only non-nil fields are
	// applied, everything else keeps its current value.
	TransactionPatch struct {
		Amount      *float64         `json:"amount,omitempty"`
		Description *string          `json:"description,omitempty"`
		Category    *string          `json:"category,omitempty"`
		Date        *string          `json:"date,omitempty"`
		Type        *TransactionType `json:"type,omitempty"`
	}

	// Goal is a savings target with an optional deadline. SavedAmount is
	// capped at TargetAmount by the allocation operation in the
	// presentation layer, not here.
	Goal struct {
		ID           string  `json:"id"`
		Name         string  `json:"name"`
		TargetAmount float64 `json:"targetAmount"`
		SavedAmount  float64 `json:"savedAmount"`
		Deadline     string  `json:"deadline,omitempty"`
	}

	GoalInput struct {
		Name         string  `json:"name"`
		TargetAmount float64 `json:"targetAmount"`
		SavedAmount  float64 `json:"savedAmount"`
		Deadline     string  `json:"deadline,omitempty"`
	}

	GoalPatch struct {
		Name         *string  `json:"name,omitempty"`
		TargetAmount *float64 `json:"targetAmount,omitempty"`
		SavedAmount  *float64 `json:"savedAmount,omitempty"`
		Deadline     *string  `json:"deadline,omitempty"`
	}

	// FinancialSummary is derived on demand and never stored.
	FinancialSummary struct {
		TotalIncome   float64 `json:"totalIncome"`
		TotalExpenses float64 `json:"totalExpenses"`
		Savings       float64 `json:"savings"`
		Streak        int     `json:"streak"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrEmptyName        = errors.New("empty goal name")
	ErrInvalidTarget    = errors.New("invalid target amount")
)

func (t TransactionType) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	default:
		return false
	}
}

// ParseDate checks that s is a well-formed calendar day.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate is the presentation-layer check applied before an input
// reaches the state store; the store itself trusts its callers.
func (in TransactionInput) Validate() error {
	if !validAmount(in.Amount) {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrEmptyDescription
	}
	if !in.Type.IsValid() {
		return ErrInvalidType
	}
	if _, err := ParseDate(in.Date); err != nil {
		return err
	}
	if !KnownCategory(in.Type, in.Category) {
		return ErrUnknownCategory
	}
	return nil
}

func (p TransactionPatch) Validate() error {
	if p.Amount != nil && !validAmount(*p.Amount) {
		return ErrInvalidAmount
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return ErrEmptyDescription
	}
	if p.Type != nil && !p.Type.IsValid() {
		return ErrInvalidType
	}
	if p.Date != nil {
		if _, err := ParseDate(*p.Date); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the patch over t field by field, preserving the ID.
func (p TransactionPatch) Apply(t Transaction) Transaction {
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Type != nil {
		t.Type = *p.Type
	}
	return t
}

func (in GoalInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyName
	}
	if in.TargetAmount <= 0 || math.IsNaN(in.TargetAmount) || math.IsInf(in.TargetAmount, 0) {
		return ErrInvalidTarget
	}
	if !validAmount(in.SavedAmount) {
		return ErrInvalidAmount
	}
	if in.Deadline != "" {
		if _, err := ParseDate(in.Deadline); err != nil {
			return err
		}
	}
	return nil
}

func (p GoalPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrEmptyName
	}
	if p.TargetAmount != nil && (*p.TargetAmount <= 0 || math.IsNaN(*p.TargetAmount)) {
		return ErrInvalidTarget
	}
	if p.SavedAmount != nil && !validAmount(*p.SavedAmount) {
		return ErrInvalidAmount
	}
	if p.Deadline != nil && *p.Deadline != "" {
		if _, err := ParseDate(*p.Deadline); err != nil {
			return err
		}
	}
	return nil
}

// Apply merges the patch over g field by field, preserving the ID.
func (p GoalPatch) Apply(g Goal) Goal {
	if p.Name != nil {
		g.Name = *p.Name
	}
	if p.TargetAmount != nil {
		g.TargetAmount = *p.TargetAmount
	}
	if p.SavedAmount != nil {
		g.SavedAmount = *p.SavedAmount
	}
	if p.Deadline != nil {
		g.Deadline = *p.Deadline
	}
	return g
}
