package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/trestle/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// dateValue is a YYYY-MM-DD flag. The zero value is unset.
type dateValue struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*dateValue)(nil)

func (d *dateValue) String() string {
	if !d.set {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d *dateValue) Set(s string) error {
	t, err := domain.ParseDate(s)
	if err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	d.t, d.set = t, true
	return nil
}

func (d *dateValue) Type() string { return "date" }

// orDefault returns the parsed date or fallback when the flag was not given.
func (d *dateValue) orDefault(fallback time.Time) time.Time {
	if d.set {
		return d.t
	}
	return fallback
}

// moneyValue is a non-negative decimal amount flag.
type moneyValue struct {
	d   decimal.Decimal
	set bool
}

var _ pflag.Value = (*moneyValue)(nil)

func (m *moneyValue) String() string {
	if !m.set {
		return ""
	}
	return m.d.String()
}

func (m *moneyValue) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("not a decimal amount")
	}
	if d.IsNegative() {
		return fmt.Errorf("amount must be non-negative")
	}
	m.d, m.set = d, true
	return nil
}

func (m *moneyValue) Type() string { return "amount" }

// addDateFlag registers a dateValue on fs.
func addDateFlag(fs *pflag.FlagSet, v *dateValue, name, usage string) {
	fs.Var(v, name, usage+" (YYYY-MM-DD)")
}

// addMoneyFlag registers a moneyValue on fs.
func addMoneyFlag(fs *pflag.FlagSet, v *moneyValue, name, usage string) {
	fs.Var(v, name, usage)
}
