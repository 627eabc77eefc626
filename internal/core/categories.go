// Package core defines the domain model of the finance dashboard:
// transactions, savings goals, category reference data and the derived
// financial summary.
package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category is static reference data for labelling transactions. It is
// never persisted alongside the financial state.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Icon  string `json:"icon" yaml:"icon"`
	Color string `json:"color" yaml:"color"`
}

// CatchAllCategory names the trailing catch-all entry of both tables.
const CatchAllCategory = "Other"

// ExpenseCategories and IncomeCategories are the built-in ordered tables,
// each ending with an "Other" catch-all.
var (
	ExpenseCategories = []Category{
		{Name: "Food", Icon: "🍔", Color: "#f59e0b"},
		{Name: "Transportation", Icon: "🚗", Color: "#10b981"},
		{Name: "Entertainment", Icon: "🎬", Color: "#8b5cf6"},
		{Name: "Shopping", Icon: "🛍️", Color: "#ec4899"},
		{Name: "Bills", Icon: "📄", Color: "#ef4444"},
		{Name: "Healthcare", Icon: "🏥", Color: "#dc2626"},
		{Name: "Other", Icon: "📝", Color: "#6b7280"},
	}

	IncomeCategories = []Category{
		{Name: "Salary", Icon: "💼", Color: "#22c55e"},
		{Name: "Freelance", Icon: "💻", Color: "#8b5cf6"},
		{Name: "Investment", Icon: "📈", Color: "#10b981"},
		{Name: "Gift", Icon: "🎁", Color: "#f59e0b"},
		{Name: "Other", Icon: "💰", Color: "#16a34a"},
	}
)

// CategoriesFor returns the category table applicable to the given
// transaction type. Unknown types get the expense table.
func CategoriesFor(t TransactionType) []Category {
	if t == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// KnownCategory reports whether name appears in the table for t.
func KnownCategory(t TransactionType, name string) bool {
	for _, c := range CategoriesFor(t) {
		if c.Name == name {
			return true
		}
	}
	return false
}

type categoryFile struct {
	Expense []Category `yaml:"expense"`
	Income  []Category `yaml:"income"`
}

// LoadCategoryFile replaces both built-in tables from a YAML file. A list
// missing its trailing catch-all entry gets one appended so the forms
// always have a fallback.
func LoadCategoryFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading category file: %w", err)
	}

	var cf categoryFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("parsing category file: %w", err)
	}
	if len(cf.Expense) == 0 || len(cf.Income) == 0 {
		return fmt.Errorf("category file %q must define both expense and income lists", path)
	}
	for _, c := range append(append([]Category(nil), cf.Expense...), cf.Income...) {
		if c.Name == "" {
			return fmt.Errorf("category file %q contains an entry without a name", path)
		}
	}

	ExpenseCategories = ensureCatchAll(cf.Expense)
	IncomeCategories = ensureCatchAll(cf.Income)
	return nil
}

func ensureCatchAll(cats []Category) []Category {
	for _, c := range cats {
		if c.Name == CatchAllCategory {
			return cats
		}
	}
	return append(cats, Category{Name: CatchAllCategory, Icon: "📝", Color: "#6b7280"})
}
