package domain

import (
	"errors"
	"math"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultReferenceColumn = "Reference"
	DefaultAmountColumn    = "Amount"
	DefaultTolerance       = 0.01
)

// Options binds the reconciler to the columns of each ledger.
type Options struct {
	BankReferenceColumn     string  `json:"bank_reference_column"`
	PracticeReferenceColumn string  `json:"practice_reference_column"`
	BankAmountColumn        string  `json:"bank_amount_column"`
	PracticeAmountColumn    string  `json:"practice_amount_column"`
	Tolerance               float64 `json:"tolerance"`
}

// DefaultOptions returns the Reference/Amount bindings with a one-cent tolerance.
func DefaultOptions() Options {
	return Options{
		BankReferenceColumn:     DefaultReferenceColumn,
		PracticeReferenceColumn: DefaultReferenceColumn,
		BankAmountColumn:        DefaultAmountColumn,
		PracticeAmountColumn:    DefaultAmountColumn,
		Tolerance:               DefaultTolerance,
	}
}

// Validate checks that every column is named and the tolerance is a finite non-negative number.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.BankReferenceColumn, validation.Required),
		validation.Field(&o.PracticeReferenceColumn, validation.Required),
		validation.Field(&o.BankAmountColumn, validation.Required),
		validation.Field(&o.PracticeAmountColumn, validation.Required),
		validation.Field(&o.Tolerance, validation.Min(0.0), validation.By(finite)),
	)
}

func finite(value interface{}) error {
	f, _ := value.(float64)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("must be a finite number")
	}
	return nil
}
