package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/contactkeval/option-greeks/internal/config"
	"github.com/contactkeval/option-greeks/internal/data"
	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/pipeline"
	"github.com/contactkeval/option-greeks/internal/report"
	"github.com/contactkeval/option-greeks/internal/sheet"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config (defaults used when empty)")
	providerName := flag.String("provider", "yahoo", "data provider: yahoo or synthetic")
	flag.Parse()

	// .env is optional; API-less providers run without one
	_ = godotenv.Load()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Errorf("loading config: %v", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	logger.SetVerbosity(cfg.Verbosity)

	var prov data.Provider
	switch *providerName {
	case "synthetic":
		prov = data.NewSyntheticProvider(time.Now().UnixNano())
		logger.Infof("synthetic provider enabled")
	default:
		prov = data.NewYahooProvider()
		logger.Infof("yahoo provider enabled")
	}

	wb := sheet.NewWorkbook(cfg.Workbook)
	if err := wb.Ensure(); err != nil {
		logger.Errorf("preparing workbook: %v", err)
		os.Exit(1)
	}

	start := time.Now()
	results, runErr := pipeline.New(cfg, prov, wb).Run()

	if cfg.ReportDir != "" {
		for _, res := range results {
			if res.Status != pipeline.StatusOK {
				continue
			}
			if err := report.WriteCSV(res.Rows, cfg.ReportDir, res.Sheet); err != nil {
				logger.Errorf("writing CSV report %s: %v", res.Sheet, err)
			}
		}
	}

	report.PrintSummary(os.Stdout, results)
	logger.Infof("finished in %v, data saved to %s", time.Since(start).Truncate(time.Millisecond), cfg.Workbook)

	if runErr != nil {
		logger.Errorf("%v", runErr)
		os.Exit(1)
	}
}
