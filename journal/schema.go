// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	days INTEGER NOT NULL,
	settings TEXT NOT NULL,
	initial_capital REAL NOT NULL,
	final_end_capital REAL NOT NULL,
	final_total_capital REAL NOT NULL,
	net_profit REAL NOT NULL,
	total_airdrop REAL NOT NULL,
	active_nodes INTEGER NOT NULL,
	peak_active_nodes INTEGER NOT NULL,
	total_nodes_issued INTEGER NOT NULL,
	total_nodes_expired INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS days (
	run_id TEXT NOT NULL REFERENCES runs(run_id),
	day INTEGER NOT NULL,
	capital_plus_claim REAL NOT NULL,
	start_capital REAL NOT NULL,
	cumulative_claim REAL NOT NULL,
	seed REAL NOT NULL,
	win_count INTEGER NOT NULL,
	loss_count INTEGER NOT NULL,
	total_profit REAL NOT NULL,
	total_loss REAL NOT NULL,
	daily_pnl REAL NOT NULL,
	daily_fee REAL NOT NULL,
	self_referral REAL NOT NULL,
	net_pnl REAL NOT NULL,
	end_capital REAL NOT NULL,
	insurance_node_cumulative REAL NOT NULL,
	new_nodes_today INTEGER NOT NULL,
	carryover_loss REAL NOT NULL,
	waiting_nodes INTEGER NOT NULL,
	active_nodes INTEGER NOT NULL,
	expired_nodes INTEGER NOT NULL,
	newly_activated_nodes INTEGER NOT NULL,
	today_airdrop_total REAL NOT NULL,
	cumulative_airdrop REAL NOT NULL,
	total_capital REAL NOT NULL,
	PRIMARY KEY (run_id, day)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created);
`
