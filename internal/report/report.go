// Package report renders financial summaries for the command line and
// exports full state snapshots to XLSX workbooks.
package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/xuri/excelize/v2"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
)

// RenderSummary writes a terminal report: the balance overview followed by
// the most recent transactions.
func RenderSummary(w io.Writer, summary core.FinancialSummary, recent []core.Transaction) {
	fmt.Fprintf(w, "Financial overview (streak: %d days)\n\n", summary.Streak)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Income", "Expenses", "Savings"})

	savings := fmt.Sprintf("%.2f", summary.Savings)
	if summary.Savings < 0 {
		savings = text.FgRed.Sprint(savings)
	} else {
		savings = text.FgGreen.Sprint(savings)
	}
	t.AppendRow(table.Row{
		fmt.Sprintf("%.2f", summary.TotalIncome),
		fmt.Sprintf("%.2f", summary.TotalExpenses),
		savings,
	})
	t.Render()

	if len(recent) == 0 {
		fmt.Fprintln(w, "\nNo transactions recorded yet.")
		return
	}

	fmt.Fprintf(w, "\nLast %d transactions\n", len(recent))
	rt := table.NewWriter()
	rt.SetOutputMirror(w)
	rt.AppendHeader(table.Row{"Date", "Description", "Category", "Type", "Amount"})
	for _, tx := range recent {
		amount := fmt.Sprintf("%.2f", tx.Amount)
		if tx.Type == core.Expense {
			amount = text.FgRed.Sprint("-" + amount)
		} else {
			amount = text.FgGreen.Sprint("+" + amount)
		}
		rt.AppendRow(table.Row{tx.Date, tx.Description, tx.Category, string(tx.Type), amount})
	}
	rt.Render()
}

// ExportXLSX writes transactions and goals to an Excel workbook with one
// sheet per collection.
func ExportXLSX(path string, txs []core.Transaction, goals []core.Goal) error {
	f := excelize.NewFile()
	defer f.Close()

	const txSheet = "Transactions"
	if err := f.SetSheetName("Sheet1", txSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	txHeader := []any{"Date", "Description", "Category", "Type", "Amount", "ID"}
	if err := setRow(f, txSheet, 1, txHeader); err != nil {
		return err
	}
	for i, tx := range txs {
		row := []any{tx.Date, tx.Description, tx.Category, string(tx.Type), tx.Amount, tx.ID}
		if err := setRow(f, txSheet, i+2, row); err != nil {
			return err
		}
	}

	const goalSheet = "Goals"
	if _, err := f.NewSheet(goalSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", goalSheet, err)
	}
	goalHeader := []any{"Name", "Target", "Saved", "Deadline", "ID"}
	if err := setRow(f, goalSheet, 1, goalHeader); err != nil {
		return err
	}
	for i, g := range goals {
		row := []any{g.Name, g.TargetAmount, g.SavedAmount, g.Deadline, g.ID}
		if err := setRow(f, goalSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d in %s: %w", row, sheet, err)
	}
	return nil
}
