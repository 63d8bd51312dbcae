package rpn

import (
	"strings"

	apperrors "github.com/agbru/mpnum/internal/errors"
)

// Kind classifies a token.
type Kind int

const (
	// Number is a real literal.
	Number Kind = iota
	// Imaginary is a literal with an "i" suffix, valid in complex mode.
	Imaginary
	// Operator is an operation or stack manipulation word.
	Operator
)

// Token is one word of an expression.
type Token struct {
	Kind Kind
	Text string
	// Pos is the zero-based index of the token in the expression.
	Pos int
}

var operators = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"neg": true, "abs": true, "sqr": true, "sqrt": true,
	"trunc": true, "floor": true, "ceil": true, "frac": true, "modf": true,
	"conj": true, "norm": true, "proj": true,
	"dup": true, "swap": true, "drop": true,
}

// binary reports whether op consumes two operands and produces one value.
func binary(op string) bool {
	switch op {
	case "+", "-", "*", "/":
		return true
	}
	return false
}

// Tokenize splits expr on whitespace and classifies each word. Imaginary
// literals are only recognised when complexMode is set.
func Tokenize(expr string, complexMode bool) ([]Token, error) {
	words := strings.Fields(expr)
	if len(words) == 0 {
		return nil, apperrors.ValidationError{Field: "expression", Message: "the expression is empty"}
	}
	tokens := make([]Token, 0, len(words))
	for i, w := range words {
		tok := Token{Kind: Number, Text: w, Pos: i}
		switch {
		case operators[strings.ToLower(w)]:
			tok.Kind = Operator
			tok.Text = strings.ToLower(w)
		case complexMode && strings.HasSuffix(w, "i") && !isInf(w):
			tok.Kind = Imaginary
			tok.Text = strings.TrimSuffix(w, "i")
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

func isInf(w string) bool {
	w = strings.TrimLeft(strings.ToLower(w), "+-")
	return w == "inf"
}
