package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/joho/godotenv"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/backend"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/config"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/finance"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/log"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/report"
)

type Params struct {
	Output string `descr:"Path for an XLSX export; empty prints a terminal report"`
	Limit  int    `descr:"Number of recent transactions to show"`
}

func main() {
	boa.NewCmdT[Params]("guardian-report").
		WithShort("Report on recorded transactions and savings goals").
		WithLong("Reads the configured persistence backend and renders a financial overview, or exports the full state to an XLSX workbook.").
		WithRunFunc(func(params *Params) {
			_ = godotenv.Load()

			cfg := config.Load()
			logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: log.ComponentReport})

			if err := cfg.Validate(); err != nil {
				fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
				os.Exit(1)
			}

			res, err := backend.Open(cfg, logger)
			if err != nil {
				fmt.Fprintf(os.Stderr, "open backend: %v\n", err)
				os.Exit(1)
			}
			defer res.Cleanup()

			store := finance.New(context.Background(), res.KV, finance.WithLogger(logger))

			if params.Output != "" {
				if err := report.ExportXLSX(params.Output, store.Transactions(), store.Goals()); err != nil {
					fmt.Fprintf(os.Stderr, "export: %v\n", err)
					os.Exit(1)
				}
				fmt.Printf("Exported to %s\n", params.Output)
				return
			}

			limit := params.Limit
			if limit <= 0 {
				limit = 10
			}
			txs := store.Transactions()
			if len(txs) > limit {
				txs = txs[:limit]
			}
			recent := make([]core.Transaction, len(txs))
			copy(recent, txs)

			report.RenderSummary(os.Stdout, store.Summary(), recent)
		}).
		Run()
}
