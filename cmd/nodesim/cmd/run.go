package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/nodesim/config"
	"github.com/rustyeddy/nodesim/internal/id"
	"github.com/rustyeddy/nodesim/journal"
	"github.com/rustyeddy/nodesim/logger"
	"github.com/rustyeddy/nodesim/report"
	"github.com/rustyeddy/nodesim/sim"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a projection and print the result",
	Long: `Run a projection from defaults, a configuration file or flags, print
the summary and the first rows of the ledger, and record the run to the
configured journal.

Flags override values loaded from the config file.

Examples:
  nodesim run
  nodesim run --investment 25000 --days 90 --rows 20
  nodesim run --config projection.yaml --journal sqlite`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

// projectionFlags are the inputs shared by run and view.
type projectionFlags struct {
	configPath  string
	days        int
	investment  float64
	leverage    int
	wins        int
	losses      int
	seedPct     float64
	winPct      float64
	lossPct     float64
	referralPct float64
}

func (p *projectionFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&p.configPath, "config", "f", "", "path to config file (YAML or JSON)")
	f.IntVar(&p.days, "days", config.MaxDays, "number of days to project")
	f.Float64Var(&p.investment, "investment", sim.DefaultInitialInvestment, "initial investment")
	f.IntVar(&p.leverage, "leverage", sim.DefaultLeverage, "futures leverage (display only)")
	f.IntVar(&p.wins, "wins", sim.DefaultWinCount, "winning trades per day")
	f.IntVar(&p.losses, "losses", sim.DefaultLossCount, "losing trades per day")
	f.Float64Var(&p.seedPct, "seed-pct", 1, "percent of capital used as seed per trade")
	f.Float64Var(&p.winPct, "win-pct", 5, "profit percent on a winning trade")
	f.Float64Var(&p.lossPct, "loss-pct", 10, "loss percent on a losing trade")
	f.Float64Var(&p.referralPct, "referral-pct", 20, "self referral percent of the trading fee")
}

// load builds the configuration: defaults, then the config file, then
// any flag the user set.
func (p *projectionFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if p.configPath != "" {
		loaded, err := config.LoadFromFile(p.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("days") {
		cfg.Simulation.Days = p.days
	}
	if f.Changed("investment") {
		cfg.Simulation.InitialInvestment = p.investment
	}
	if f.Changed("leverage") {
		cfg.Simulation.Leverage = p.leverage
	}
	if f.Changed("wins") {
		cfg.Simulation.WinCount = p.wins
	}
	if f.Changed("losses") {
		cfg.Simulation.LossCount = p.losses
	}
	if f.Changed("seed-pct") {
		cfg.Rates.SeedPct = p.seedPct
	}
	if f.Changed("win-pct") {
		cfg.Rates.WinProfitPct = p.winPct
	}
	if f.Changed("loss-pct") {
		cfg.Rates.LossPct = p.lossPct
	}
	if f.Changed("referral-pct") {
		cfg.Rates.SelfReferralPct = p.referralPct
	}
	return cfg, nil
}

var (
	runFlags   projectionFlags
	runRows    int
	runJournal string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runFlags.register(runCmd)
	runCmd.Flags().IntVar(&runRows, "rows", 10, "ledger rows to print (0 for none, -1 for all)")
	runCmd.Flags().StringVar(&runJournal, "journal", "", "journal type override (csv, sqlite, parquet or none)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := runFlags.load(cmd)
	if err != nil {
		return err
	}
	if runFlags.configPath != "" {
		if err := configureLogger(cmd, cfg.Log); err != nil {
			return err
		}
	}
	if runJournal != "" {
		setJournalType(&cfg.Journal, runJournal)
	}

	rec, days, err := project(cfg, time.Now())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.PrintSummary(out, report.Run{
		RunID:    rec.RunID,
		Created:  rec.Created,
		Settings: rec.Settings,
		Summary:  rec.Summary,
	})
	if err := printRows(out, days, runRows); err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if err := journal.Record(j, rec, days); err != nil {
		j.Close()
		return err
	}
	if err := j.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}

	logger.Get().WithComponent("journal").WithFields(logger.Fields{
		"run_id": rec.RunID,
		"type":   cfg.Journal.Type,
		"days":   rec.Days,
	}).Info("run recorded")
	return nil
}

// project validates cfg and runs the engine for the configured days.
func project(cfg *config.Config, now time.Time) (journal.RunRecord, []sim.DayResult, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return journal.RunRecord{}, nil, fmt.Errorf("invalid input: %w", err)
	}

	start := time.Now()
	days, err := sim.Run(settings, cfg.Simulation.Days)
	if err != nil {
		return journal.RunRecord{}, nil, fmt.Errorf("run projection: %w", err)
	}

	rec := journal.NewRunRecord(id.RunIDAt(now), now, settings, days)
	logger.Get().WithComponent("sim").WithFields(logger.Fields{
		"run_id":  rec.RunID,
		"days":    rec.Days,
		"nodes":   rec.Summary.TotalNodesIssued,
		"elapsed": time.Since(start).String(),
	}).Debug("projection finished")
	return rec, days, nil
}

// setJournalType switches the journal backend, filling in a default
// destination when the config has none for it.
func setJournalType(jc *config.JournalConfig, typ string) {
	jc.Type = typ
	switch typ {
	case "csv":
		if jc.RunsFile == "" {
			jc.RunsFile = "./runs.csv"
		}
		if jc.DaysFile == "" {
			jc.DaysFile = "./days.csv"
		}
	case "sqlite":
		if jc.DBPath == "" {
			jc.DBPath = defaultDBPath
		}
	case "parquet":
		if jc.ParquetFile == "" {
			jc.ParquetFile = "./days.parquet"
		}
	}
}

func printRows(w io.Writer, days []sim.DayResult, rows int) error {
	if rows == 0 || len(days) == 0 {
		return nil
	}
	if rows > 0 && rows < len(days) {
		days = days[:rows]
	}
	fmt.Fprintln(w)
	return report.WriteTable(w, days)
}
