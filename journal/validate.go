package journal

// Validate checks the position's write contract: symbol bounds, a non-empty
// strike list, valid option-type tags, and parallel leg arrays. Stores call
// it before every insert so a bad record never reaches the backing store.
func (p *Position) Validate() error {
	if err := validSymbol("underlying", p.Underlying); err != nil {
		return err
	}
	if p.Strategy == "" {
		return invalidf("strategy", "a strategy name is required")
	}
	if p.Expiration.IsZero() {
		return invalidf("expiration", "an expiration date is required")
	}
	if len(p.Strikes) == 0 {
		return invalidf("strikes", "at least one strike is required")
	}
	return validLegArrays(len(p.Strikes), p.OptionTypes, p.Quantities)
}

// Validate checks the closing trade's write contract. The reference check
// against the positions table is the store's job.
func (t *ClosingTrade) Validate() error {
	if t.PositionID <= 0 {
		return invalidf("position_id", "a positive position id is required")
	}
	return nil
}

// Validate rejects adjustments that change nothing: at least one of
// option_types, quantities, strikes, expiration or second_expiration must be
// set. A pure market snapshot is not an adjustment.
func (a *Adjustment) Validate() error {
	if a.PositionID <= 0 {
		return invalidf("position_id", "a positive position id is required")
	}
	changed := a.OptionTypes != nil || a.Quantities != nil || a.Strikes != nil ||
		a.Expiration != nil || a.SecondExpiration != nil
	if !changed {
		return invalidf("adjustment", "at least one of option_types, quantities, strikes, expiration or second_expiration must change")
	}
	if a.Strikes != nil {
		if err := validLegArrays(len(a.Strikes), a.OptionTypes, a.Quantities); err != nil {
			return err
		}
	}
	return validOptionTypes(a.OptionTypes)
}

// Validate checks the equity trade's write contract.
func (e *EquityTrade) Validate() error {
	if err := validSymbol("symbol", e.Symbol); err != nil {
		return err
	}
	if e.Direction != Long && e.Direction != Short {
		return invalidf("direction", "%q is not a direction (want LONG or SHORT)", string(e.Direction))
	}
	if e.Quantity == 0 {
		return invalidf("quantity", "a non-zero quantity is required")
	}
	return nil
}

func validSymbol(field, sym string) error {
	if sym == "" {
		return invalidf(field, "a symbol is required")
	}
	if len(sym) > MaxSymbolLen {
		return invalidf(field, "%q is longer than %d characters", sym, MaxSymbolLen)
	}
	return nil
}

func validLegArrays(strikes int, types []string, quantities []int) error {
	if types != nil && len(types) != strikes {
		return invalidf("option_types", "%d tags for %d strikes", len(types), strikes)
	}
	if quantities != nil && len(quantities) != strikes {
		return invalidf("quantities", "%d quantities for %d strikes", len(quantities), strikes)
	}
	return validOptionTypes(types)
}

func validOptionTypes(types []string) error {
	for _, tag := range types {
		if tag != "P" && tag != "C" {
			return invalidf("option_types", "%q is not an option type (want P or C)", tag)
		}
	}
	return nil
}
