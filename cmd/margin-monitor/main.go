// margin-monitor loads a cached account-state snapshot, aggregates it into
// risk metrics, and reports liquidation proximity. With -watch it re-reads
// the snapshot on an interval, the way a fetcher-fed deployment runs it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/GoMargin/margin-go-sdk/pkg/fixedpoint"
	"github.com/GoMargin/margin-go-sdk/pkg/logger"
	"github.com/GoMargin/margin-go-sdk/pkg/markets"
	"github.com/GoMargin/margin-go-sdk/pkg/risk"
)

func main() {
	var (
		statePath = flag.String("state", "", "Path to the account-state JSON snapshot (required)")
		watch     = flag.Duration("watch", 0, "Re-read and report on this interval (0 = once)")
	)
	flag.Parse()

	if *statePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	slog := logger.Default()

	report := func() {
		adapter, account, err := markets.LoadState(*statePath)
		if err != nil {
			log.Fatalf("load state failed: %v", err)
		}
		if account == nil {
			fmt.Println("No account connected.")
			return
		}

		snap := risk.Aggregate(adapter)
		m := snap.Metrics()
		level := risk.LevelFor(m.HealthFactor)

		fmt.Printf("account=%s protocol=%s\n", account.Hex(), adapter.Protocol())
		fmt.Printf("collateral=$%s weighted=$%s debt=$%s\n",
			fixedpoint.DecimalFromWad(snap.Collateral).StringFixed(2),
			fixedpoint.DecimalFromWad(snap.WeightedCollateral).StringFixed(2),
			fixedpoint.DecimalFromWad(snap.Debt).StringFixed(2),
		)
		if m.HealthFactor.Cmp(fixedpoint.MaxUint256) == 0 {
			fmt.Printf("ltv=%s healthFactor=inf level=%s\n",
				fixedpoint.DecimalFromWad(m.Ltv).StringFixed(4), level)
		} else {
			fmt.Printf("ltv=%s healthFactor=%s level=%s\n",
				fixedpoint.DecimalFromWad(m.Ltv).StringFixed(4),
				fixedpoint.DecimalFromWad(m.HealthFactor).StringFixed(4), level)
		}

		switch level {
		case risk.LevelLiquidatable:
			slog.Error("position is liquidation-eligible",
				"account", account.Hex(),
				"healthFactor", fixedpoint.DecimalFromWad(m.HealthFactor).String(),
			)
		case risk.LevelWarning:
			slog.Warn("position is approaching liquidation",
				"account", account.Hex(),
				"healthFactor", fixedpoint.DecimalFromWad(m.HealthFactor).String(),
			)
		}
	}

	report()
	if *watch <= 0 {
		return
	}
	ticker := time.NewTicker(*watch)
	defer ticker.Stop()
	for range ticker.C {
		report()
	}
}
