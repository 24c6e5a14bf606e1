// Package arith holds the arithmetic trainings: addition, subtraction,
// multiplication and place-value addition.
package arith

import (
	"fmt"
	"math/rand"

	"github.com/abhisek/mathrooms/internal/plugin"
)

// binary is a two-operand question with an integer answer.
type binary struct {
	a, b int
	op   string
	want int
}

func (q binary) Read() plugin.Content {
	return plugin.Content{Text: fmt.Sprintf("%d %s %d =", q.a, q.op, q.b)}
}

func (q binary) reveal() string {
	return fmt.Sprintf("%d %s %d = %d", q.a, q.op, q.b, q.want)
}

func (q binary) Answer(raw string) plugin.Result {
	return plugin.CheckInt(raw, q.want, q.reveal())
}

func (q binary) Reveal() plugin.Result {
	return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.reveal()}
}

// between returns a uniform integer in [lo, hi]. hi < lo yields lo.
func between(rnd *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rnd.Intn(hi-lo+1)
}

// Plus generates sums that grow by five per level.
type Plus struct{ rnd *rand.Rand }

func (p *Plus) MakeQuestion(level int) plugin.Question {
	level = max(level, 0)
	const minOperand = 2
	maxSum := max(10+level*5, minOperand*2)
	a := between(p.rnd, minOperand, maxSum-minOperand)
	b := between(p.rnd, minOperand, maxSum-a)
	return binary{a: a, b: b, op: "+", want: a + b}
}

// Minus generates differences; negative results appear from level index 3.
type Minus struct{ rnd *rand.Rand }

func (p *Minus) MakeQuestion(level int) plugin.Question {
	level = max(level, 0)
	maxValue := 10 + level*5
	a := between(p.rnd, 0, maxValue)
	var b int
	if level >= 3 {
		b = between(p.rnd, 0, maxValue)
	} else {
		b = between(p.rnd, 0, a)
	}
	return binary{a: a, b: b, op: "-", want: a - b}
}

// Multiplication multiplies 0..level+1 with 0..10.
type Multiplication struct{ rnd *rand.Rand }

func (p *Multiplication) MakeQuestion(level int) plugin.Question {
	level = max(level, 0)
	a := between(p.rnd, 0, level+1)
	b := between(p.rnd, 0, 10)
	return binary{a: a, b: b, op: "x", want: a * b}
}

type factory struct {
	info plugin.Info
	make func(*rand.Rand) plugin.Plugin
}

func (f factory) Info() plugin.Info { return f.info }

func (f factory) New(rnd *rand.Rand) (plugin.Plugin, error) {
	if rnd == nil {
		return nil, fmt.Errorf("%s: nil random source", f.info.ID)
	}
	return f.make(rnd), nil
}

// PlusFactory describes the addition training.
func PlusFactory() plugin.Factory {
	return factory{
		info: plugin.Info{
			ID:          "plus",
			Name:        "Addition",
			Description: "Add two numbers. Sums grow with every level.",
			Icon:        plugin.Icon{Emoji: "➕"},
			Mode:        plugin.Difficulty(0),
		},
		make: func(rnd *rand.Rand) plugin.Plugin { return &Plus{rnd: rnd} },
	}
}

// MinusFactory describes the subtraction training.
func MinusFactory() plugin.Factory {
	return factory{
		info: plugin.Info{
			ID:          "minus",
			Name:        "Subtraction",
			Description: "Subtract numbers. Higher levels have negative answers.",
			Icon:        plugin.Icon{Emoji: "➖"},
			Mode:        plugin.Difficulty(0),
		},
		make: func(rnd *rand.Rand) plugin.Plugin { return &Minus{rnd: rnd} },
	}
}

// MultiplicationFactory describes the times-table training.
func MultiplicationFactory() plugin.Factory {
	return factory{
		info: plugin.Info{
			ID:          "multiplication",
			Name:        "Multiplication",
			Description: "Times tables, one more row per level.",
			Icon:        plugin.Icon{Emoji: "✖"},
			Mode:        plugin.Difficulty(0),
		},
		make: func(rnd *rand.Rand) plugin.Plugin { return &Multiplication{rnd: rnd} },
	}
}
