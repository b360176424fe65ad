// Package stackperm checks whether a sequence can be produced as the pop
// order of a stack that is fed another sequence in a fixed push order.
package stackperm

import (
	"fmt"

	"github.com/maxmcd/stackperm/internal/errs"
)

type OpKind int

const (
	Push OpKind = iota
	Pop
)

func (k OpKind) String() string {
	switch k {
	case Push:
		return "push"
	case Pop:
		return "pop"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is a single stack operation performed during a check.
type Op struct {
	Kind  OpKind
	Value int
}

func (o Op) String() string { return fmt.Sprintf("%s %d", o.Kind, o.Value) }

type Result struct {
	Valid bool
	// Ops lists every push and pop in the order they were performed. When
	// Valid is true replaying the pops yields the target order.
	Ops []Op
	// Matched is the number of target elements that were popped.
	Matched int
	// Remaining is what was left on the stack, bottom first.
	Remaining []int
}

// IsStackPermutation reports whether targetOrder can be popped off a stack
// that receives pushOrder one element at a time. Sequences of different
// lengths are never stack permutations of each other.
func IsStackPermutation(pushOrder, targetOrder []int) bool {
	res, err := Check(pushOrder, targetOrder)
	return err == nil && res.Valid
}

// Check pushes pushOrder onto a stack, popping whenever the top matches the
// next element of targetOrder, and records every operation it performs.
// Mismatched lengths return errs.ErrLengthMismatch.
func Check(pushOrder, targetOrder []int) (res Result, err error) {
	if len(pushOrder) != len(targetOrder) {
		return res, errs.ErrLengthMismatch{Push: len(pushOrder), Target: len(targetOrder)}
	}
	res.Ops = make([]Op, 0, len(pushOrder)*2)
	stack := &intStack{}
	for _, v := range pushOrder {
		stack.Push(v)
		res.Ops = append(res.Ops, Op{Kind: Push, Value: v})
		for res.Matched < len(targetOrder) {
			top, ok := stack.Peek()
			if !ok || top != targetOrder[res.Matched] {
				break
			}
			res.Ops = append(res.Ops, Op{Kind: Pop, Value: stack.Pop()})
			res.Matched++
		}
	}
	res.Valid = stack.Len() == 0
	if !res.Valid {
		res.Remaining = append([]int(nil), stack.store...)
	}
	return res, nil
}
