// Package expr compiles the conditional-expression suffix of a dispatch
// name into a predicate over a container's invocation ordinal.
//
// The expression grammar is deliberately tiny. An expression is one or
// two operands separated by "=":
//
//	4       - fires on the 4th invocation (right side defaults to n)
//	n       - always fires (ordinal compared to itself)
//	1=1     - always fires (the default when a name has no expression)
//	4=n     - fires on the 4th invocation, spelled out
//
// An operand is either a string of decimal digits (a Constant) or the
// literal token "n" (the Ordinal, the container's invocation count at
// dispatch time). Anything else fails to compile with an
// UnsupportedTokenError.
package expr

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnsupportedToken is matched by errors.Is for any expression token
// that is neither an integer literal nor the ordinal symbol.
var ErrUnsupportedToken = errors.New("unsupported expression token")

// UnsupportedTokenError reports the offending token of an expression
// that failed to compile.
type UnsupportedTokenError struct {
	// Token is the operand text that could not be compiled.
	Token string

	// Source is the full expression source the token came from.
	Source string
}

// Error implements the error interface.
func (e *UnsupportedTokenError) Error() string {
	return "unsupported expression token " + strconv.Quote(e.Token) + " in " + strconv.Quote(e.Source)
}

// Is allows errors.Is to match UnsupportedTokenError with ErrUnsupportedToken.
func (e *UnsupportedTokenError) Is(target error) bool {
	return target == ErrUnsupportedToken
}

// Operand is one side of a compiled expression. The set of
// implementations is closed: Constant and Ordinal.
type Operand interface {
	// Eval returns the operand's value for the given invocation ordinal.
	Eval(ordinal int) int

	isOperand()
}

// Constant is an operand with a fixed integer value.
type Constant int

// Eval returns the constant's value regardless of the ordinal.
func (c Constant) Eval(int) int {
	return int(c)
}

func (Constant) isOperand() {}

// Ordinal is the operand written "n": it evaluates to the container's
// invocation count at dispatch time.
type Ordinal struct{}

// Eval returns the ordinal unchanged.
func (Ordinal) Eval(ordinal int) int {
	return ordinal
}

func (Ordinal) isOperand() {}

// Predicate gates a binding to specific invocation ordinals of its
// container. The zero value is not usable; obtain predicates from Parse
// or Always.
type Predicate struct {
	Left  Operand
	Right Operand
}

// Eval reports whether the predicate holds for the given ordinal.
func (p Predicate) Eval(ordinal int) bool {
	return p.Left.Eval(ordinal) == p.Right.Eval(ordinal)
}

// Always returns the default always-true predicate, 1=1.
func Always() Predicate {
	return Predicate{Left: Constant(1), Right: Constant(1)}
}

// Parse compiles an expression source into a Predicate. The source may
// carry its enclosing brackets ("[4]") or not ("4"); an empty source
// compiles to the always-true default. A missing right side defaults to
// the ordinal symbol, so "4" fires on the fourth invocation.
func Parse(src string) (Predicate, error) {
	inner := strings.TrimSuffix(strings.TrimPrefix(src, "["), "]")
	if inner == "" {
		return Always(), nil
	}

	leftTok, rightTok, explicit := strings.Cut(inner, "=")

	left, err := parseOperand(leftTok, src)
	if err != nil {
		return Predicate{}, err
	}

	var right Operand = Ordinal{}
	if explicit {
		right, err = parseOperand(rightTok, src)
		if err != nil {
			return Predicate{}, err
		}
	}

	return Predicate{Left: left, Right: right}, nil
}

// parseOperand compiles a single operand token.
func parseOperand(token, source string) (Operand, error) {
	if token == "n" {
		return Ordinal{}, nil
	}
	if isDigits(token) {
		v, err := strconv.Atoi(token)
		if err != nil {
			// Digits-only strings can still overflow int
			return nil, &UnsupportedTokenError{Token: token, Source: source}
		}
		return Constant(v), nil
	}
	return nil, &UnsupportedTokenError{Token: token, Source: source}
}

// isDigits reports whether s is a non-empty string of decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
