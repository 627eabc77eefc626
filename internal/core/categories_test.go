package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBuiltinTablesEndWithCatchAll(t *testing.T) {
	for _, tbl := range []struct {
		name string
		cats []Category
	}{
		{"expense", ExpenseCategories},
		{"income", IncomeCategories},
	} {
		t.Run(tbl.name, func(t *testing.T) {
			if len(tbl.cats) == 0 {
				t.Fatal("empty category table")
			}
			if got := tbl.cats[len(tbl.cats)-1].Name; got != CatchAllCategory {
				t.Fatalf("last category = %q, want %q", got, CatchAllCategory)
			}
		})
	}
}

func TestKnownCategory(t *testing.T) {
	if !KnownCategory(Expense, "Food") {
		t.Error("Food should be a known expense category")
	}
	if KnownCategory(Expense, "Salary") {
		t.Error("Salary should not be a known expense category")
	}
	if !KnownCategory(Income, "Salary") {
		t.Error("Salary should be a known income category")
	}
}

func TestLoadCategoryFile(t *testing.T) {
	origExpense, origIncome := ExpenseCategories, IncomeCategories
	t.Cleanup(func() {
		ExpenseCategories, IncomeCategories = origExpense, origIncome
	})

	path := filepath.Join(t.TempDir(), "categories.yaml")
	content := `
expense:
  - name: Rent
    icon: "🏠"
    color: "#111111"
income:
  - name: Wages
    icon: "💵"
    color: "#222222"
  - name: Other
    icon: "💰"
    color: "#333333"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadCategoryFile(path); err != nil {
		t.Fatalf("LoadCategoryFile: %v", err)
	}

	if !KnownCategory(Expense, "Rent") {
		t.Error("Rent should be known after loading the file")
	}
	// The expense list had no catch-all, one must be appended.
	if got := ExpenseCategories[len(ExpenseCategories)-1].Name; got != CatchAllCategory {
		t.Errorf("expense catch-all = %q, want %q", got, CatchAllCategory)
	}
	// The income list already ended with one, nothing should be added.
	if len(IncomeCategories) != 2 {
		t.Errorf("income table length = %d, want 2", len(IncomeCategories))
	}
}

func TestLoadCategoryFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	missingList := filepath.Join(dir, "missing.yaml")
	if err := os.WriteFile(missingList, []byte("expense:\n  - name: A\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadCategoryFile(missingList); err == nil {
		t.Error("expected error for file missing the income list")
	}

	if err := LoadCategoryFile(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Error("expected error for absent file")
	}
}
