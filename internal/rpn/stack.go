package rpn

import (
	"strconv"

	apperrors "github.com/agbru/mpnum/internal/errors"
)

// stack is the operand stack of an evaluation.
type stack[V any] struct {
	items []*V
}

func (s *stack[V]) push(v ...*V) { s.items = append(s.items, v...) }

func (s *stack[V]) len() int { return len(s.items) }

// pop removes the top n values and returns them bottom first.
func (s *stack[V]) pop(tok Token, n int) ([]*V, error) {
	if len(s.items) < n {
		return nil, apperrors.ValidationError{
			Field:   tok.Text,
			Message: "stack underflow at token " + strconv.Itoa(tok.Pos),
		}
	}
	top := s.items[len(s.items)-n:]
	vs := make([]*V, n)
	copy(vs, top)
	clear(top)
	s.items = s.items[:len(s.items)-n]
	return vs, nil
}

func (s *stack[V]) top() *V { return s.items[len(s.items)-1] }

// manipulate applies the stack words dup, swap and drop. It reports false
// for any other word.
func (s *stack[V]) manipulate(tok Token, clone func(*V) *V) (bool, error) {
	switch tok.Text {
	case "dup":
		vs, err := s.pop(tok, 1)
		if err != nil {
			return true, err
		}
		s.push(vs[0], clone(vs[0]))
	case "swap":
		vs, err := s.pop(tok, 2)
		if err != nil {
			return true, err
		}
		s.push(vs[1], vs[0])
	case "drop":
		_, err := s.pop(tok, 1)
		return true, err
	default:
		return false, nil
	}
	return true, nil
}
