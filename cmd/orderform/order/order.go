package order

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	FieldCustomerName = "customer_name"
	FieldAmount       = "amount"

	NameMinLength = 2
	NameMaxLength = 255

	MsgNameRequired = "The customer name field is required."
	MsgNameMin      = "The customer name field must be at least 2 characters."
	MsgNameMax      = "The customer name field must not be greater than 255 characters."
	MsgNameLetters  = "Customer name must contain only letters and spaces."

	MsgAmountRequired = "The amount field is required."
	MsgAmountNumeric  = "The amount field must be a number."
	MsgAmountMin      = "The amount field must be at least 1."
)

// Bounds on an accepted amount. Anything outside them is not treated as a
// number, which also keeps exponent notation like 1e100000000 from being
// expanded.
const (
	MaxAmountLength        = 64
	MaxAmountIntegerDigits = 18
	MaxAmountScale         = 18
)

// MinAmount is inclusive.
var MinAmount = decimal.NewFromInt(1)

var lettersAndSpaces = regexp.MustCompile(`^[A-Za-z\t\n\v\f\r ]+$`)

// Submission is the raw form input of one request.
type Submission struct {
	CustomerName string
	Amount       string
}

type Validated struct {
	CustomerName string
	Amount       decimal.Decimal
}

type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// First returns the first message recorded for field, or "".
func (e *ValidationError) First(field string) string {
	if msgs := e.Fields[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// NormalizeName collapses whitespace runs to a single space and trims the ends.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Validate checks every field and returns all failures in one *ValidationError.
func Validate(s Submission) (Validated, error) {
	verr := &ValidationError{}

	name := NormalizeName(s.CustomerName)
	if name == "" {
		verr.add(FieldCustomerName, MsgNameRequired)
	} else {
		n := utf8.RuneCountInString(name)
		if n < NameMinLength {
			verr.add(FieldCustomerName, MsgNameMin)
		}
		if n > NameMaxLength {
			verr.add(FieldCustomerName, MsgNameMax)
		}
		if !lettersAndSpaces.MatchString(s.CustomerName) {
			verr.add(FieldCustomerName, MsgNameLetters)
		}
	}

	amount := validateAmount(s.Amount, verr)

	if len(verr.Fields) > 0 {
		return Validated{}, verr
	}

	return Validated{CustomerName: name, Amount: amount}, nil
}

func validateAmount(raw string, verr *ValidationError) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		verr.add(FieldAmount, MsgAmountRequired)
		return decimal.Decimal{}
	}

	if len(raw) > MaxAmountLength {
		verr.add(FieldAmount, MsgAmountNumeric)
		return decimal.Decimal{}
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil || !withinBounds(amount) {
		verr.add(FieldAmount, MsgAmountNumeric)
		return decimal.Decimal{}
	}

	if amount.LessThan(MinAmount) {
		verr.add(FieldAmount, MsgAmountMin)
	}

	return amount
}

// withinBounds inspects only the coefficient and exponent, never a rescaled value.
func withinBounds(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -MaxAmountScale {
		return false
	}

	digits := int64(len(d.Coefficient().Text(10)))
	if d.Sign() < 0 {
		digits--
	}
	return digits+exp <= MaxAmountIntegerDigits
}
