package arith

import (
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/mathrooms/internal/plugin"
)

// figureSpace has the width of a digit in most fonts, so stacked numbers line up.
const figureSpace = "\u2007"

// PlaceValue adds numbers that each have a single non-zero digit,
// e.g. 3000 + 40 + 7.
type PlaceValue struct{ rnd *rand.Rand }

func (p *PlaceValue) MakeQuestion(level int) plugin.Question {
	level = max(level, 0)
	maxPower := 2 + level
	maxTerms := min(3+level/2, maxPower+1)
	count := between(p.rnd, 2, maxTerms)

	powers := p.rnd.Perm(maxPower + 1)[:count]
	terms := make([]int, 0, count)
	for _, pow := range powers {
		terms = append(terms, between(p.rnd, 1, 9)*pow10(pow))
	}
	sort.Sort(sort.Reverse(sort.IntSlice(terms)))
	return placeValueQuestion{terms: terms}
}

func pow10(n int) int {
	v := 1
	for range n {
		v *= 10
	}
	return v
}

type placeValueQuestion struct {
	terms []int
}

func (q placeValueQuestion) sum() int {
	total := 0
	for _, t := range q.terms {
		total += t
	}
	return total
}

func (q placeValueQuestion) Read() plugin.Content {
	return plugin.Content{Text: q.stacked(false)}
}

// Answer ignores whitespace inside the number so "3 047" is accepted.
func (q placeValueQuestion) Answer(raw string) plugin.Result {
	return plugin.CheckInt(plugin.StripSpace(raw), q.sum(), q.stacked(true))
}

func (q placeValueQuestion) Reveal() plugin.Result {
	return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.stacked(true)}
}

func (q placeValueQuestion) stacked(withAnswer bool) string {
	width := 0
	for _, t := range q.terms {
		width = max(width, len([]rune(groupDigits(t))))
	}
	if withAnswer {
		width = max(width, len([]rune(groupDigits(q.sum()))))
	}

	lines := make([]string, 0, len(q.terms)+1)
	for i, t := range q.terms {
		prefix := figureSpace + figureSpace
		if i > 0 {
			prefix = "+" + figureSpace
		}
		lines = append(lines, prefix+padLeft(groupDigits(t), width))
	}
	if withAnswer {
		lines = append(lines, "="+figureSpace+padLeft(groupDigits(q.sum()), width))
	}
	return strings.Join(lines, "\n")
}

// groupDigits writes n with a figure space between groups of three digits.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteString(figureSpace)
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

func padLeft(s string, width int) string {
	pad := width - len([]rune(s))
	if pad <= 0 {
		return s
	}
	return strings.Repeat(figureSpace, pad) + s
}

// PlaceValueFactory describes the place-value addition training.
func PlaceValueFactory() plugin.Factory {
	return factory{
		info: plugin.Info{
			ID:          "place_value",
			Name:        "Place value addition",
			Description: "Add numbers built from different powers of ten.",
			Icon:        plugin.Icon{Emoji: "🔟"},
			Mode:        plugin.Difficulty(0),
		},
		make: func(rnd *rand.Rand) plugin.Plugin { return &PlaceValue{rnd: rnd} },
	}
}
