// Package keyboard is a touch-typing drill: type the shown letters without
// looking at the keyboard.
package keyboard

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/abhisek/mathrooms/internal/plugin"
)

// LayoutImage is the keyboard picture shown with every question.
const LayoutImage = "https://raw.githubusercontent.com/frippz/wasd-iso-sv-aek2/refs/heads/master/WASD-ISO-SV-AEKII-light.png"

// progression orders keys by how early they are learnt when touch typing.
var progression = []rune("JFKDLSÖAHGEIRUWOTYQPÅZXCVBNMÄ,.")

// Drill generates letter sequences. Each level adds two keys to the pool and
// allows one more letter per question.
type Drill struct{ rnd *rand.Rand }

func (d *Drill) MakeQuestion(level int) plugin.Question {
	level = max(level, 0)
	pool := progression[:min(len(progression), 4+level*2)]
	n := 3 + d.rnd.Intn(level+1)
	letters := make([]rune, n)
	for i := range letters {
		letters[i] = pool[d.rnd.Intn(len(pool))]
	}
	return question{letters: string(letters)}
}

type question struct {
	letters string
}

func (q question) prompt() string {
	return "Don't look at the keyboard.\nType: " + q.letters
}

func (q question) Read() plugin.Content {
	return plugin.Content{
		Text:  q.prompt(),
		Media: []plugin.Media{{Ref: LayoutImage, Caption: "Keyboard layout"}},
	}
}

// Answer ignores whitespace and case. A different length is invalid input.
func (q question) Answer(raw string) plugin.Result {
	typed := strings.ToUpper(plugin.StripSpace(raw))
	switch {
	case len([]rune(typed)) != len([]rune(q.letters)):
		return plugin.Result{Outcome: plugin.OutcomeInvalidInput, Reveal: q.prompt()}
	case typed == q.letters:
		return plugin.Result{Outcome: plugin.OutcomeCorrect, Reveal: q.prompt()}
	default:
		return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.prompt()}
	}
}

func (q question) Reveal() plugin.Result {
	return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.prompt()}
}

type factory struct{}

// Factory describes the keyboard drill.
func Factory() plugin.Factory { return factory{} }

func (factory) Info() plugin.Info {
	return plugin.Info{
		ID:          "keyboard",
		Name:        "Keyboard training",
		Description: "Type letters without looking at the keyboard.",
		Icon:        plugin.Icon{Emoji: "⌨️"},
		Mode:        plugin.Difficulty(0),
		AnswerKeys:  []plugin.AnswerKey{plugin.KeyEnter},
	}
}

func (factory) New(rnd *rand.Rand) (plugin.Plugin, error) {
	if rnd == nil {
		return nil, fmt.Errorf("keyboard: nil random source")
	}
	return &Drill{rnd: rnd}, nil
}
