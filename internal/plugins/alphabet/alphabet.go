// Package alphabet trains the Swedish alphabet: the letter that follows
// another and sorting letters alphabetically.
package alphabet

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/mathrooms/internal/plugin"
)

// Letters is the Swedish alphabet in order.
var Letters = []rune("abcdefghijklmnopqrstuvwxyzåäö")

func indexOf(r rune) int {
	for i, l := range Letters {
		if l == r {
			return i
		}
	}
	return -1
}

// NextLetter asks for the letter after a shown one. The window of letters
// starts at a..j and grows by five letters per level.
type NextLetter struct{ rnd *rand.Rand }

func (p *NextLetter) MakeQuestion(level int) plugin.Question {
	level = max(level, 0)
	maxIndex := max(min(len(Letters)-1, 9+level*5), 1)
	i := p.rnd.Intn(maxIndex)
	return nextLetterQuestion{current: Letters[i], want: Letters[i+1]}
}

type nextLetterQuestion struct {
	current, want rune
}

func (q nextLetterQuestion) Read() plugin.Content {
	return plugin.Content{Text: fmt.Sprintf("Which letter comes after '%c'?", q.current)}
}

func (q nextLetterQuestion) reveal() string {
	return fmt.Sprintf("Correct answer: %c", q.want)
}

// Answer judges the first typed letter, case-insensitively.
func (q nextLetterQuestion) Answer(raw string) plugin.Result {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return plugin.Result{Outcome: plugin.OutcomeInvalidInput, Reveal: q.reveal()}
	}
	first, _ := utf8.DecodeRuneInString(raw)
	if first == q.want {
		return plugin.Result{Outcome: plugin.OutcomeCorrect, Reveal: q.reveal()}
	}
	return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.reveal()}
}

func (q nextLetterQuestion) Reveal() plugin.Result {
	return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.reveal()}
}

// Order shows 3+level shuffled letters to be typed back in alphabetical order.
type Order struct{ rnd *rand.Rand }

func (p *Order) MakeQuestion(level int) plugin.Question {
	level = max(level, 0)
	n := max(min(len(Letters), 3+level), 2)

	picked := make([]rune, 0, n)
	for _, i := range p.rnd.Perm(len(Letters))[:n] {
		picked = append(picked, Letters[i])
	}
	sorted := append([]rune(nil), picked...)
	sort.Slice(sorted, func(i, j int) bool { return indexOf(sorted[i]) < indexOf(sorted[j]) })
	p.rnd.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })
	return orderQuestion{shown: picked, want: sorted}
}

type orderQuestion struct {
	shown, want []rune
}

func spaced(rs []rune) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

func (q orderQuestion) Read() plugin.Content {
	return plugin.Content{Text: "Put the letters in alphabetical order:\n" + spaced(q.shown)}
}

func (q orderQuestion) reveal() string {
	return "Correct order: " + spaced(q.want)
}

// Answer ignores spaces. A different number of letters is invalid input.
func (q orderQuestion) Answer(raw string) plugin.Result {
	given := []rune(strings.ToLower(plugin.StripSpace(raw)))
	if len(given) != len(q.want) {
		return plugin.Result{Outcome: plugin.OutcomeInvalidInput, Reveal: q.reveal()}
	}
	for i := range given {
		if given[i] != q.want[i] {
			return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.reveal()}
		}
	}
	return plugin.Result{Outcome: plugin.OutcomeCorrect, Reveal: q.reveal()}
}

func (q orderQuestion) Reveal() plugin.Result {
	return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.reveal()}
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

// NextLetterFactory describes the next-letter training.
func NextLetterFactory() plugin.Factory {
	return factory{
		info: plugin.Info{
			ID:          "next_letter",
			Name:        "Next letter",
			Description: "Which letter comes next in the Swedish alphabet (including å, ä, ö)?",
			Icon:        plugin.Icon{Emoji: "🔤"},
			Mode:        plugin.Difficulty(0),
		},
		make: func(rnd *rand.Rand) plugin.Plugin { return &NextLetter{rnd: rnd} },
	}
}

// OrderFactory describes the alphabetical-order training.
func OrderFactory() plugin.Factory {
	return factory{
		info: plugin.Info{
			ID:          "alphabet_order",
			Name:        "Alphabetical order",
			Description: "Sort letters of the Swedish alphabet.",
			Icon:        plugin.Icon{Emoji: "🔠"},
			Mode:        plugin.Difficulty(0),
		},
		make: func(rnd *rand.Rand) plugin.Plugin { return &Order{rnd: rnd} },
	}
}
