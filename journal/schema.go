// journal/schema.go
package journal

// Schema is applied on every open; CREATE IF NOT EXISTS keeps it idempotent
// and never destructive. Leg arrays (strikes, option_types, quantities) are
// stored as JSON text to preserve order and duplicates.
const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME NOT NULL,
	underlying VARCHAR(5) NOT NULL,
	underlying_price REAL NOT NULL,
	iv_rank REAL NOT NULL,
	strategy TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	expiration DATE NOT NULL,
	strikes TEXT NOT NULL,
	premium REAL NOT NULL,
	margin REAL,
	second_expiration DATE,
	option_types TEXT,
	quantities TEXT,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id INTEGER PRIMARY KEY AUTOINCREMENT,
	position_id INTEGER NOT NULL REFERENCES positions(id),
	timestamp DATETIME NOT NULL,
	underlying_price REAL NOT NULL,
	iv_rank REAL NOT NULL,
	premium REAL NOT NULL,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS adjustments (
	adjustment_id INTEGER PRIMARY KEY AUTOINCREMENT,
	position_id INTEGER NOT NULL REFERENCES positions(id),
	timestamp DATETIME NOT NULL,
	underlying_price REAL NOT NULL,
	iv_rank REAL NOT NULL,
	option_types TEXT,
	quantities TEXT,
	strikes TEXT,
	expiration DATE,
	second_expiration DATE,
	margin REAL,
	premium REAL NOT NULL,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS equities (
	timestamp DATETIME NOT NULL,
	symbol VARCHAR(5) NOT NULL,
	direction TEXT NOT NULL CHECK (direction IN ('LONG', 'SHORT')),
	quantity INTEGER NOT NULL,
	price REAL NOT NULL,
	margin REAL,
	notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_trades_position ON trades(position_id);
CREATE INDEX IF NOT EXISTS idx_adjustments_position ON adjustments(position_id);
`
