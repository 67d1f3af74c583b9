package sim

import (
	"fmt"
	"math"
)

// Settings is the fixed configuration for one projection run. Build it
// with NewSettings (or DefaultSettings) and treat it as a value: the
// engine keeps its own copy.
type Settings struct {
	// InitialInvestment is the capital committed before the booting haircut.
	InitialInvestment float64 `json:"initial_investment" yaml:"initial_investment"`
	// Leverage is recorded for display only. No part of the projection
	// multiplies by it.
	Leverage int `json:"leverage" yaml:"leverage"`

	WinCount  int `json:"win_count" yaml:"win_count"`
	LossCount int `json:"loss_count" yaml:"loss_count"`

	// BootingRate is taken off InitialInvestment once, before day 1.
	BootingRate float64 `json:"booting_rate" yaml:"booting_rate"`
	// TradeFeeRate is the fee per trade as a share of the day's seed.
	TradeFeeRate float64 `json:"trade_fee_rate" yaml:"trade_fee_rate"`
	// SelfReferralRate is the share of the daily fee rebated back.
	SelfReferralRate float64 `json:"self_referral_rate" yaml:"self_referral_rate"`
	// DailyTrades is the trade count the fee is charged on.
	DailyTrades int `json:"daily_trades" yaml:"daily_trades"`

	// SeedRate is the share of capital put to work each day.
	SeedRate float64 `json:"seed_rate" yaml:"seed_rate"`
	// WinProfitRate is the profit per winning trade as a share of the seed.
	WinProfitRate float64 `json:"win_profit_rate" yaml:"win_profit_rate"`
	// LossRate is the loss per losing trade as a share of the seed.
	LossRate float64 `json:"loss_rate" yaml:"loss_rate"`

	// AirdropPerDay is collected from the input form and carried along
	// for display. The reward schedule comes from the airdrop table.
	AirdropPerDay int `json:"airdrop_per_day" yaml:"airdrop_per_day"`

	// NodeCost is the accumulated loss that mints one insurance node.
	NodeCost float64 `json:"node_cost" yaml:"node_cost"`
	// NodeActivationDelay is the number of days a cohort waits before it
	// becomes active.
	NodeActivationDelay int `json:"node_activation_delay" yaml:"node_activation_delay"`
	// NodeExpiryDays is the number of days after issuance at which a
	// cohort expires.
	NodeExpiryDays int `json:"node_expiry_days" yaml:"node_expiry_days"`
}

// Default values used by DefaultSettings.
const (
	DefaultInitialInvestment   = 10000.0
	DefaultLeverage            = 25
	DefaultWinCount            = 75
	DefaultLossCount           = 30
	DefaultBootingRate         = 0.10
	DefaultTradeFeeRate        = 0.03
	DefaultSelfReferralRate    = 0.20
	DefaultSeedRate            = 0.01
	DefaultWinProfitRate       = 0.05
	DefaultLossRate            = 0.10
	DefaultNodeCost            = 100.0
	DefaultNodeActivationDelay = 3
	DefaultNodeExpiryDays      = 53
)

// DefaultSettings returns the stock configuration.
func DefaultSettings() Settings {
	return Settings{
		InitialInvestment:   DefaultInitialInvestment,
		Leverage:            DefaultLeverage,
		WinCount:            DefaultWinCount,
		LossCount:           DefaultLossCount,
		BootingRate:         DefaultBootingRate,
		TradeFeeRate:        DefaultTradeFeeRate,
		SelfReferralRate:    DefaultSelfReferralRate,
		DailyTrades:         DefaultWinCount + DefaultLossCount,
		SeedRate:            DefaultSeedRate,
		WinProfitRate:       DefaultWinProfitRate,
		LossRate:            DefaultLossRate,
		NodeCost:            DefaultNodeCost,
		NodeActivationDelay: DefaultNodeActivationDelay,
		NodeExpiryDays:      DefaultNodeExpiryDays,
	}
}

// Option overrides one of the fixed settings.
type Option func(*Settings)

// WithBootingRate sets the one-off haircut applied to the initial investment.
func WithBootingRate(r float64) Option { return func(s *Settings) { s.BootingRate = r } }

// WithTradeFeeRate sets the per-trade fee as a share of the seed.
func WithTradeFeeRate(r float64) Option { return func(s *Settings) { s.TradeFeeRate = r } }

// WithSelfReferralRate sets the share of the daily fee paid back as a rebate.
func WithSelfReferralRate(r float64) Option { return func(s *Settings) { s.SelfReferralRate = r } }

// WithDailyTrades overrides the trade count fees are charged on. By
// default it is WinCount+LossCount.
func WithDailyTrades(n int) Option { return func(s *Settings) { s.DailyTrades = n } }

// WithSeedRate sets the share of capital traded each day.
func WithSeedRate(r float64) Option { return func(s *Settings) { s.SeedRate = r } }

// WithWinProfitRate sets the profit per winning trade as a share of the seed.
func WithWinProfitRate(r float64) Option { return func(s *Settings) { s.WinProfitRate = r } }

// WithLossRate sets the loss per losing trade as a share of the seed.
func WithLossRate(r float64) Option { return func(s *Settings) { s.LossRate = r } }

// WithAirdropPerDay records the form's airdrop-per-day value.
func WithAirdropPerDay(n int) Option { return func(s *Settings) { s.AirdropPerDay = n } }

// WithNodeCost sets the loss needed to mint one insurance node.
func WithNodeCost(c float64) Option { return func(s *Settings) { s.NodeCost = c } }

// WithNodeActivationDelay sets the days between issuance and activation.
func WithNodeActivationDelay(days int) Option {
	return func(s *Settings) { s.NodeActivationDelay = days }
}

// WithNodeExpiryDays sets the days between issuance and expiry.
func WithNodeExpiryDays(days int) Option { return func(s *Settings) { s.NodeExpiryDays = days } }

// NewSettings builds validated settings from the user-supplied values.
// DailyTrades follows winCount+lossCount unless an option overrides it.
func NewSettings(initialInvestment float64, leverage, winCount, lossCount int, opts ...Option) (Settings, error) {
	s := DefaultSettings()
	s.InitialInvestment = initialInvestment
	s.Leverage = leverage
	s.WinCount = winCount
	s.LossCount = lossCount
	s.DailyTrades = winCount + lossCount

	for _, opt := range opts {
		opt(&s)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// CapitalSeed is the capital left for trading after the booting haircut.
// It is day 1's starting capital.
func (s Settings) CapitalSeed() float64 {
	return s.InitialInvestment * (1 - s.BootingRate)
}

// Validate rejects settings the projection cannot give a meaningful
// answer for.
func (s Settings) Validate() error {
	floats := []struct {
		field string
		v     float64
	}{
		{"initial_investment", s.InitialInvestment},
		{"booting_rate", s.BootingRate},
		{"trade_fee_rate", s.TradeFeeRate},
		{"self_referral_rate", s.SelfReferralRate},
		{"seed_rate", s.SeedRate},
		{"win_profit_rate", s.WinProfitRate},
		{"loss_rate", s.LossRate},
		{"node_cost", s.NodeCost},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.field, "must be a finite number")
		}
		if f.v < 0 {
			return invalid(f.field, "must not be negative")
		}
	}

	if s.InitialInvestment == 0 {
		return invalid("initial_investment", "must be positive")
	}
	if s.BootingRate >= 1 {
		return invalid("booting_rate", "must be less than 1")
	}
	if s.NodeCost == 0 {
		return invalid("node_cost", "must be positive")
	}

	ints := []struct {
		field string
		v     int
	}{
		{"leverage", s.Leverage},
		{"win_count", s.WinCount},
		{"loss_count", s.LossCount},
		{"daily_trades", s.DailyTrades},
		{"airdrop_per_day", s.AirdropPerDay},
		{"node_activation_delay", s.NodeActivationDelay},
	}
	for _, f := range ints {
		if f.v < 0 {
			return invalid(f.field, "must not be negative")
		}
	}

	if s.NodeExpiryDays <= s.NodeActivationDelay {
		return invalid("node_expiry_days",
			fmt.Sprintf("must exceed node_activation_delay (%d)", s.NodeActivationDelay))
	}
	return nil
}
