package journal

// Times are written in UTC so the DATETIME text sorts chronologically.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	date DATETIME NOT NULL,
	asset TEXT NOT NULL,
	direction TEXT NOT NULL CHECK (direction IN ('LONG', 'SHORT')),
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	position_size REAL NOT NULL,
	commission REAL NOT NULL DEFAULT 0,
	notes TEXT,
	gross_pl REAL NOT NULL,
	net_pl REAL NOT NULL,
	return_pct REAL NOT NULL,
	is_win INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
`

const tradeColumns = `id, created_at, updated_at, date, asset, direction,
	entry_price, exit_price, position_size, commission, notes,
	gross_pl, net_pl, return_pct, is_win`
