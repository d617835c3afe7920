package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresSchema mirrors the SQLite schema with native Postgres types. Leg
// arrays are JSONB, dates are DATE, ids are identity columns.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS positions (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	timestamp TIMESTAMPTZ NOT NULL,
	underlying VARCHAR(5) NOT NULL,
	underlying_price DOUBLE PRECISION NOT NULL,
	iv_rank DOUBLE PRECISION NOT NULL,
	strategy TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	expiration DATE NOT NULL,
	strikes JSONB NOT NULL,
	premium DOUBLE PRECISION NOT NULL,
	margin DOUBLE PRECISION,
	second_expiration DATE,
	option_types JSONB,
	quantities JSONB,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	position_id BIGINT NOT NULL REFERENCES positions(id),
	timestamp TIMESTAMPTZ NOT NULL,
	underlying_price DOUBLE PRECISION NOT NULL,
	iv_rank DOUBLE PRECISION NOT NULL,
	premium DOUBLE PRECISION NOT NULL,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS adjustments (
	adjustment_id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	position_id BIGINT NOT NULL REFERENCES positions(id),
	timestamp TIMESTAMPTZ NOT NULL,
	underlying_price DOUBLE PRECISION NOT NULL,
	iv_rank DOUBLE PRECISION NOT NULL,
	option_types JSONB,
	quantities JSONB,
	strikes JSONB,
	expiration DATE,
	second_expiration DATE,
	margin DOUBLE PRECISION,
	premium DOUBLE PRECISION NOT NULL,
	notes TEXT
);

CREATE TABLE IF NOT EXISTS equities (
	timestamp TIMESTAMPTZ NOT NULL,
	symbol VARCHAR(5) NOT NULL,
	direction TEXT NOT NULL CHECK (direction IN ('LONG', 'SHORT')),
	quantity INTEGER NOT NULL,
	price DOUBLE PRECISION NOT NULL,
	margin DOUBLE PRECISION,
	notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_trades_position ON trades(position_id);
CREATE INDEX IF NOT EXISTS idx_adjustments_position ON adjustments(position_id);
`

// PostgresStore keeps the journal in a Postgres database reached by a
// postgres:// connection string.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres connects, pings, and ensures the schema exists.
func NewPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) OpenPosition(ctx context.Context, p Position) (int64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}

	strikes, err := legsToJSON(p.Strikes)
	if err != nil {
		return 0, err
	}
	optionTypes, err := legsToJSON(p.OptionTypes)
	if err != nil {
		return 0, err
	}
	quantities, err := legsToJSON(p.Quantities)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.pool.QueryRow(ctx, `
		INSERT INTO positions
		(timestamp, underlying, underlying_price, iv_rank, strategy, quantity,
		 expiration, strikes, premium, margin, second_expiration, option_types, quantities, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`,
		p.Timestamp.UTC(), p.Underlying, p.UnderlyingPrice, p.IVRank, p.Strategy, p.Quantity,
		p.Expiration, strikes, p.Premium, p.Margin,
		p.SecondExpiration, optionTypes, quantities, textOrNull(p.Notes),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert position: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) CloseTrade(ctx context.Context, t ClosingTrade) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if err := s.requireOpen(ctx, t.PositionID); err != nil {
		return 0, err
	}

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO trades
		(position_id, timestamp, underlying_price, iv_rank, premium, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING trade_id`,
		t.PositionID, t.Timestamp.UTC(), t.UnderlyingPrice, t.IVRank, t.Premium, textOrNull(t.Notes),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert closing trade: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) AdjustTrade(ctx context.Context, a Adjustment) (int64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := s.requireOpen(ctx, a.PositionID); err != nil {
		return 0, err
	}

	optionTypes, err := legsToJSON(a.OptionTypes)
	if err != nil {
		return 0, err
	}
	quantities, err := legsToJSON(a.Quantities)
	if err != nil {
		return 0, err
	}
	strikes, err := legsToJSON(a.Strikes)
	if err != nil {
		return 0, err
	}

	var id int64
	err = s.pool.QueryRow(ctx, `
		INSERT INTO adjustments
		(position_id, timestamp, underlying_price, iv_rank, option_types, quantities,
		 strikes, expiration, second_expiration, margin, premium, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING adjustment_id`,
		a.PositionID, a.Timestamp.UTC(), a.UnderlyingPrice, a.IVRank, optionTypes, quantities,
		strikes, a.Expiration, a.SecondExpiration, a.Margin, a.Premium, textOrNull(a.Notes),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert adjustment: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) RecordEquityTrade(ctx context.Context, e EquityTrade) error {
	if err := e.Validate(); err != nil {
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO equities
		(timestamp, symbol, direction, quantity, price, margin, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.Timestamp.UTC(), e.Symbol, string(e.Direction), e.Quantity, e.Price, e.Margin, textOrNull(e.Notes),
	)
	if err != nil {
		return fmt.Errorf("insert equity trade: %w", err)
	}
	return nil
}

func (s *PostgresStore) OpenPositions(ctx context.Context) ([]Position, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+positionColumns+`
		FROM positions
		WHERE id NOT IN (SELECT position_id FROM trades)
		ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query open positions: %w", err)
	}
	defer rows.Close()

	var out []Position
	for rows.Next() {
		p, err := scanPositionPG(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Position(ctx context.Context, id int64) (Position, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+positionColumns+`
		FROM positions
		WHERE id = $1`, id)
	if err != nil {
		return Position{}, fmt.Errorf("query position: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Position{}, err
		}
		return Position{}, fmt.Errorf("position %d: %w", id, ErrPositionNotFound)
	}
	return scanPositionPG(rows)
}

func (s *PostgresStore) ClosedTrades(ctx context.Context) ([]ClosedTrade, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			t.trade_id,
			t.position_id,
			p.strategy,
			p.quantity,
			p.expiration,
			p.strikes,
			p.timestamp AS entry_time,
			t.timestamp AS exit_time,
			p.underlying_price AS entry_price,
			t.underlying_price AS exit_price,
			p.iv_rank AS entry_ivr,
			t.iv_rank AS exit_ivr,
			p.premium AS entry_premium,
			t.premium AS exit_premium,
			p.margin,
			p.second_expiration,
			p.option_types,
			p.quantities,
			p.notes AS entry_notes,
			t.notes AS exit_notes
		FROM trades t
		INNER JOIN positions p ON t.position_id = p.id
		ORDER BY t.trade_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query closed trades: %w", err)
	}
	defer rows.Close()

	var out []ClosedTrade
	for rows.Next() {
		var (
			ct                    ClosedTrade
			strikes, types, quans []byte
			margin                *float64
			secondExp             *time.Time
			entryNotes, exitNotes *string
		)
		err := rows.Scan(
			&ct.TradeID,
			&ct.PositionID,
			&ct.Strategy,
			&ct.Quantity,
			&ct.Expiration,
			&strikes,
			&ct.EntryTime,
			&ct.ExitTime,
			&ct.EntryPrice,
			&ct.ExitPrice,
			&ct.EntryIVRank,
			&ct.ExitIVRank,
			&ct.EntryPremium,
			&ct.ExitPremium,
			&margin,
			&secondExp,
			&types,
			&quans,
			&entryNotes,
			&exitNotes,
		)
		if err != nil {
			return nil, err
		}
		if ct.Strikes, err = legsFromRaw[float64](strikes); err != nil {
			return nil, err
		}
		if ct.OptionTypes, err = legsFromRaw[string](types); err != nil {
			return nil, err
		}
		if ct.Quantities, err = legsFromRaw[int](quans); err != nil {
			return nil, err
		}
		ct.Margin = margin
		ct.SecondExpiration = secondExp
		ct.EntryNotes = stringOrEmpty(entryNotes)
		ct.ExitNotes = stringOrEmpty(exitNotes)
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Adjustments(ctx context.Context, positionID int64) ([]Adjustment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT adjustment_id, position_id, timestamp, underlying_price, iv_rank,
			option_types, quantities, strikes, expiration, second_expiration, margin, premium, notes
		FROM adjustments
		WHERE position_id = $1
		ORDER BY adjustment_id ASC`, positionID)
	if err != nil {
		return nil, fmt.Errorf("query adjustments: %w", err)
	}
	defer rows.Close()

	var out []Adjustment
	for rows.Next() {
		var (
			a                     Adjustment
			types, quans, strikes []byte
			exp, secondExp        *time.Time
			margin                *float64
			notes                 *string
		)
		err := rows.Scan(
			&a.ID,
			&a.PositionID,
			&a.Timestamp,
			&a.UnderlyingPrice,
			&a.IVRank,
			&types,
			&quans,
			&strikes,
			&exp,
			&secondExp,
			&margin,
			&a.Premium,
			&notes,
		)
		if err != nil {
			return nil, err
		}
		if a.OptionTypes, err = legsFromRaw[string](types); err != nil {
			return nil, err
		}
		if a.Quantities, err = legsFromRaw[int](quans); err != nil {
			return nil, err
		}
		if a.Strikes, err = legsFromRaw[float64](strikes); err != nil {
			return nil, err
		}
		a.Expiration = exp
		a.SecondExpiration = secondExp
		a.Margin = margin
		a.Notes = stringOrEmpty(notes)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) requireOpen(ctx context.Context, positionID int64) error {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM positions WHERE id = $1)`, positionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("look up position %d: %w", positionID, err)
	}
	if !exists {
		return fmt.Errorf("position %d: %w", positionID, ErrPositionNotFound)
	}

	var closed bool
	err = s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM trades WHERE position_id = $1)`, positionID).Scan(&closed)
	if err != nil {
		return fmt.Errorf("look up trades for position %d: %w", positionID, err)
	}
	if closed {
		return fmt.Errorf("position %d: %w", positionID, ErrPositionClosed)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPositionPG(rows pgx.Rows) (Position, error) {
	var (
		p                     Position
		strikes, types, quans []byte
		margin                *float64
		secondExp             *time.Time
		notes                 *string
	)
	err := rows.Scan(
		&p.ID,
		&p.Timestamp,
		&p.Underlying,
		&p.UnderlyingPrice,
		&p.IVRank,
		&p.Strategy,
		&p.Quantity,
		&p.Expiration,
		&strikes,
		&p.Premium,
		&margin,
		&secondExp,
		&types,
		&quans,
		&notes,
	)
	if err != nil {
		return Position{}, err
	}
	if p.Strikes, err = legsFromRaw[float64](strikes); err != nil {
		return Position{}, err
	}
	if p.OptionTypes, err = legsFromRaw[string](types); err != nil {
		return Position{}, err
	}
	if p.Quantities, err = legsFromRaw[int](quans); err != nil {
		return Position{}, err
	}
	p.Margin = margin
	p.SecondExpiration = secondExp
	p.Notes = stringOrEmpty(notes)
	return p, nil
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
