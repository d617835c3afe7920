package journal

import (
	"context"
	"database/sql"
	"fmt"
)

const positionColumns = `id, timestamp, underlying, underlying_price, iv_rank, strategy,
	quantity, expiration, strikes, premium, margin, second_expiration, option_types, quantities, notes`

// OpenPositions returns every position with no closing trade, in insertion
// order.
func (s *SQLiteStore) OpenPositions(ctx context.Context) ([]Position, error) {
	rows, err := s.db.QueryContext(ctx, `
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
		p, err := scanPosition(rows)
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

// Position returns a single position by id.
func (s *SQLiteStore) Position(ctx context.Context, id int64) (Position, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+positionColumns+`
		FROM positions
		WHERE id = ?`, id)

	p, err := scanPosition(row)
	if err == sql.ErrNoRows {
		return Position{}, fmt.Errorf("position %d: %w", id, ErrPositionNotFound)
	}
	if err != nil {
		return Position{}, err
	}
	return p, nil
}

// ClosedTrades joins every closing trade with its originating position.
func (s *SQLiteStore) ClosedTrades(ctx context.Context) ([]ClosedTrade, error) {
	rows, err := s.db.QueryContext(ctx, `
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
			strikes, types, quans sql.NullString
			margin                sql.NullFloat64
			secondExp             sql.NullTime
			entryNotes, exitNotes sql.NullString
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
		if ct.Strikes, err = legsFromJSON[float64](strikes); err != nil {
			return nil, err
		}
		if ct.OptionTypes, err = legsFromJSON[string](types); err != nil {
			return nil, err
		}
		if ct.Quantities, err = legsFromJSON[int](quans); err != nil {
			return nil, err
		}
		ct.Margin = ptrFromNullFloat(margin)
		ct.SecondExpiration = ptrFromNullTime(secondExp)
		ct.EntryNotes = entryNotes.String
		ct.ExitNotes = exitNotes.String
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Adjustments returns the adjustment history of a position, oldest first.
func (s *SQLiteStore) Adjustments(ctx context.Context, positionID int64) ([]Adjustment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT adjustment_id, position_id, timestamp, underlying_price, iv_rank,
			option_types, quantities, strikes, expiration, second_expiration, margin, premium, notes
		FROM adjustments
		WHERE position_id = ?
		ORDER BY adjustment_id ASC`, positionID)
	if err != nil {
		return nil, fmt.Errorf("query adjustments: %w", err)
	}
	defer rows.Close()

	var out []Adjustment
	for rows.Next() {
		var (
			a                     Adjustment
			types, quans, strikes sql.NullString
			exp, secondExp        sql.NullTime
			margin                sql.NullFloat64
			notes                 sql.NullString
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
		if a.OptionTypes, err = legsFromJSON[string](types); err != nil {
			return nil, err
		}
		if a.Quantities, err = legsFromJSON[int](quans); err != nil {
			return nil, err
		}
		if a.Strikes, err = legsFromJSON[float64](strikes); err != nil {
			return nil, err
		}
		a.Expiration = ptrFromNullTime(exp)
		a.SecondExpiration = ptrFromNullTime(secondExp)
		a.Margin = ptrFromNullFloat(margin)
		a.Notes = notes.String
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPosition(row rowScanner) (Position, error) {
	var (
		p                     Position
		strikes, types, quans sql.NullString
		margin                sql.NullFloat64
		secondExp             sql.NullTime
		notes                 sql.NullString
	)
	err := row.Scan(
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
	if p.Strikes, err = legsFromJSON[float64](strikes); err != nil {
		return Position{}, err
	}
	if p.OptionTypes, err = legsFromJSON[string](types); err != nil {
		return Position{}, err
	}
	if p.Quantities, err = legsFromJSON[int](quans); err != nil {
		return Position{}, err
	}
	p.Margin = ptrFromNullFloat(margin)
	p.SecondExpiration = ptrFromNullTime(secondExp)
	p.Notes = notes.String
	return p, nil
}
