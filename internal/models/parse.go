package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/budgetkeeper/internal/common"
	"github.com/shopspring/decimal"
)

const (
	// InputDateLayout is how users type dates: yy/mm/dd.
	InputDateLayout = "06/01/02"
	// StoredDateLayout is how dates are kept in the database. It matches
	// the input layout so files written by earlier releases stay readable.
	StoredDateLayout = InputDateLayout
)

var (
	signedAmountRe   = regexp.MustCompile(`^-?\$?\d+(\.\d{2})?$`)
	unsignedAmountRe = regexp.MustCompile(`^\$?\d+(\.\d{2})?$`)
)

// unpaddedDateLayout accepts month and day with or without a leading zero.
const unpaddedDateLayout = "06/1/2"

// ParseDate parses a user-entered yy/mm/dd date. Month and day may be
// typed without the leading zero.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(InputDateLayout, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(unpaddedDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must look like yy/mm/dd", common.ErrorValidation, s)
	}
	return d, nil
}

// FormatDate renders d the way users type it.
func FormatDate(d time.Time) string {
	return d.Format(InputDateLayout)
}

// ParseStoredDate parses a date column value. Rows written by hand may
// omit the leading zeros, so the unpadded layout is accepted too.
func ParseStoredDate(s string) (time.Time, error) {
	d, err := time.Parse(StoredDateLayout, s)
	if err == nil {
		return d, nil
	}
	if d, err2 := time.Parse(unpaddedDateLayout, s); err2 == nil {
		return d, nil
	}
	return time.Time{}, err
}

// StoredDate renders d for a date column.
func StoredDate(d time.Time) string {
	return d.Format(StoredDateLayout)
}

// ParseAmount parses a currency string such as "12", "$12.50" or, when
// allowNegative is set, "-$3.99". Cents are optional but must be two digits.
func ParseAmount(s string, allowNegative bool) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	re := unsignedAmountRe
	if allowNegative {
		re = signedAmountRe
	}
	if !re.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: amount %q is not a valid currency value", common.ErrorValidation, s)
	}

	d, err := decimal.NewFromString(strings.Replace(s, "$", "", 1))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %v", common.ErrorValidation, s, err)
	}
	return d, nil
}

// FormatAmount renders d as dollars with two decimals, e.g. "$-3.99".
func FormatAmount(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
