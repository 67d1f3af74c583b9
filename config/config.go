package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/nodesim/sim"
	"gopkg.in/yaml.v3"
)

// Config represents the complete projection configuration
type Config struct {
	Simulation SimulationConfig `json:"simulation" yaml:"simulation"`
	Rates      RatesConfig      `json:"rates" yaml:"rates"`
	Nodes      NodesConfig      `json:"nodes" yaml:"nodes"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
	Log        LogConfig        `json:"log" yaml:"log"`
}

// SimulationConfig holds the values the input form collects
type SimulationConfig struct {
	Days              int     `json:"days" yaml:"days"`
	InitialInvestment float64 `json:"initial_investment" yaml:"initial_investment"`
	Leverage          int     `json:"leverage" yaml:"leverage"`
	WinCount          int     `json:"win_count" yaml:"win_count"`
	LossCount         int     `json:"loss_count" yaml:"loss_count"`
}

// RatesConfig holds rates as percentages (5 means 5%)
type RatesConfig struct {
	SelfReferralPct float64 `json:"self_referral_pct" yaml:"self_referral_pct"`
	SeedPct         float64 `json:"seed_pct" yaml:"seed_pct"`
	WinProfitPct    float64 `json:"win_profit_pct" yaml:"win_profit_pct"`
	LossPct         float64 `json:"loss_pct" yaml:"loss_pct"`
	TradeFeePct     float64 `json:"trade_fee_pct" yaml:"trade_fee_pct"`
	BootingPct      float64 `json:"booting_pct" yaml:"booting_pct"`
	AirdropPerDay   int     `json:"airdrop_per_day" yaml:"airdrop_per_day"`
}

// NodesConfig contains insurance node economics
type NodesConfig struct {
	Cost            float64 `json:"cost" yaml:"cost"`
	ActivationDelay int     `json:"activation_delay" yaml:"activation_delay"`
	ExpiryDays      int     `json:"expiry_days" yaml:"expiry_days"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type        string `json:"type" yaml:"type"` // "csv", "sqlite", "parquet" or "none"
	RunsFile    string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	DaysFile    string `json:"days_file,omitempty" yaml:"days_file,omitempty"`
	DBPath      string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	ParquetFile string `json:"parquet_file,omitempty" yaml:"parquet_file,omitempty"`
}

// LogConfig contains logger parameters
type LogConfig struct {
	Level      string `json:"level" yaml:"level"`
	Format     string `json:"format" yaml:"format"`
	Output     string `json:"output,omitempty" yaml:"output,omitempty"`
	MaxAgeDays int    `json:"max_age_days,omitempty" yaml:"max_age_days,omitempty"`
}

// Form limits
const (
	MinInitialInvestment = 100
	MinLeverage          = 1
	MaxLeverage          = 100
	MinDays              = 1
	MaxDays              = 365
)

// LoadFromFile loads configuration from a file (YAML or JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	s := c.Simulation
	if s.Days < MinDays || s.Days > MaxDays {
		return fmt.Errorf("simulation.days must be between %d and %d", MinDays, MaxDays)
	}
	if s.InitialInvestment < MinInitialInvestment {
		return fmt.Errorf("simulation.initial_investment must be at least %d", MinInitialInvestment)
	}
	if s.Leverage < MinLeverage || s.Leverage > MaxLeverage {
		return fmt.Errorf("simulation.leverage must be between %d and %d", MinLeverage, MaxLeverage)
	}
	if s.WinCount < 0 {
		return fmt.Errorf("simulation.win_count must not be negative")
	}
	if s.LossCount < 0 {
		return fmt.Errorf("simulation.loss_count must not be negative")
	}

	r := c.Rates
	for _, p := range []struct {
		name string
		v    float64
		min  float64
	}{
		{"rates.seed_pct", r.SeedPct, 1},
		{"rates.win_profit_pct", r.WinProfitPct, 1},
		{"rates.loss_pct", r.LossPct, 1},
		{"rates.self_referral_pct", r.SelfReferralPct, 0},
		{"rates.trade_fee_pct", r.TradeFeePct, 0},
	} {
		if p.v < p.min || p.v > 100 {
			return fmt.Errorf("%s must be between %g and 100", p.name, p.min)
		}
	}
	if r.BootingPct < 0 || r.BootingPct >= 100 {
		return fmt.Errorf("rates.booting_pct must be at least 0 and below 100")
	}
	if r.AirdropPerDay < 0 {
		return fmt.Errorf("rates.airdrop_per_day must not be negative")
	}

	n := c.Nodes
	if n.Cost <= 0 {
		return fmt.Errorf("nodes.cost must be positive")
	}
	if n.ActivationDelay < 0 {
		return fmt.Errorf("nodes.activation_delay must not be negative")
	}
	if n.ExpiryDays <= n.ActivationDelay {
		return fmt.Errorf("nodes.expiry_days must be greater than nodes.activation_delay")
	}

	switch c.Journal.Type {
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.DaysFile == "" {
			return fmt.Errorf("journal runs_file and days_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "parquet":
		if c.Journal.ParquetFile == "" {
			return fmt.Errorf("journal parquet_file required for Parquet type")
		}
	case "none", "":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite', 'parquet' or 'none'")
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	if c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log.max_age_days must not be negative")
	}
	return nil
}

// Settings converts the configuration into validated engine settings.
func (c *Config) Settings() (sim.Settings, error) {
	if err := c.Validate(); err != nil {
		return sim.Settings{}, err
	}
	s := c.Simulation
	return sim.NewSettings(s.InitialInvestment, s.Leverage, s.WinCount, s.LossCount,
		sim.WithSeedRate(c.Rates.SeedPct/100),
		sim.WithWinProfitRate(c.Rates.WinProfitPct/100),
		sim.WithLossRate(c.Rates.LossPct/100),
		sim.WithSelfReferralRate(c.Rates.SelfReferralPct/100),
		sim.WithTradeFeeRate(c.Rates.TradeFeePct/100),
		sim.WithBootingRate(c.Rates.BootingPct/100),
		sim.WithAirdropPerDay(c.Rates.AirdropPerDay),
		sim.WithNodeCost(c.Nodes.Cost),
		sim.WithNodeActivationDelay(c.Nodes.ActivationDelay),
		sim.WithNodeExpiryDays(c.Nodes.ExpiryDays),
	)
}

// Default returns a configuration matching sim.DefaultSettings
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Days:              MaxDays,
			InitialInvestment: sim.DefaultInitialInvestment,
			Leverage:          sim.DefaultLeverage,
			WinCount:          sim.DefaultWinCount,
			LossCount:         sim.DefaultLossCount,
		},
		Rates: RatesConfig{
			SelfReferralPct: 20,
			SeedPct:         1,
			WinProfitPct:    5,
			LossPct:         10,
			TradeFeePct:     3,
			BootingPct:      10,
		},
		Nodes: NodesConfig{
			Cost:            sim.DefaultNodeCost,
			ActivationDelay: sim.DefaultNodeActivationDelay,
			ExpiryDays:      sim.DefaultNodeExpiryDays,
		},
		Journal: JournalConfig{
			Type:     "csv",
			RunsFile: "./runs.csv",
			DaysFile: "./days.csv",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
