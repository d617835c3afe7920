package journal

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore keeps the journal in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the journal database at path and ensures the
// schema exists.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) OpenPosition(ctx context.Context, p Position) (int64, error) {
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

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO positions
		(timestamp, underlying, underlying_price, iv_rank, strategy, quantity,
		 expiration, strikes, premium, margin, second_expiration, option_types, quantities, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Timestamp.UTC(), p.Underlying, p.UnderlyingPrice, p.IVRank, p.Strategy, p.Quantity,
		dateColumn(p.Expiration), strikes, p.Premium, p.Margin,
		dateOrNull(p.SecondExpiration), optionTypes, quantities, textOrNull(p.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert position: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) CloseTrade(ctx context.Context, t ClosingTrade) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if err := s.requireOpen(ctx, t.PositionID); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO trades
		(position_id, timestamp, underlying_price, iv_rank, premium, notes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.PositionID, t.Timestamp.UTC(), t.UnderlyingPrice, t.IVRank, t.Premium, textOrNull(t.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert closing trade: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) AdjustTrade(ctx context.Context, a Adjustment) (int64, error) {
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

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO adjustments
		(position_id, timestamp, underlying_price, iv_rank, option_types, quantities,
		 strikes, expiration, second_expiration, margin, premium, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.PositionID, a.Timestamp.UTC(), a.UnderlyingPrice, a.IVRank, optionTypes, quantities,
		strikes, dateOrNull(a.Expiration), dateOrNull(a.SecondExpiration), a.Margin,
		a.Premium, textOrNull(a.Notes),
	)
	if err != nil {
		return 0, fmt.Errorf("insert adjustment: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) RecordEquityTrade(ctx context.Context, e EquityTrade) error {
	if err := e.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO equities
		(timestamp, symbol, direction, quantity, price, margin, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.UTC(), e.Symbol, string(e.Direction), e.Quantity, e.Price, e.Margin, textOrNull(e.Notes),
	)
	if err != nil {
		return fmt.Errorf("insert equity trade: %w", err)
	}
	return nil
}

// requireOpen is the reference check behind close and adjust: the position
// must exist and must not already carry a closing trade.
func (s *SQLiteStore) requireOpen(ctx context.Context, positionID int64) error {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM positions WHERE id = ?`, positionID).Scan(&n)
	if err != nil {
		return fmt.Errorf("look up position %d: %w", positionID, err)
	}
	if n == 0 {
		return fmt.Errorf("position %d: %w", positionID, ErrPositionNotFound)
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM trades WHERE position_id = ?`, positionID).Scan(&n)
	if err != nil {
		return fmt.Errorf("look up trades for position %d: %w", positionID, err)
	}
	if n > 0 {
		return fmt.Errorf("position %d: %w", positionID, ErrPositionClosed)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
