// Package plugintest provides a deterministic plugin for tests.
package plugintest

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/abhisek/mathrooms/internal/plugin"
)

// Correct is the only answer the scripted questions accept.
const Correct = "yes"

// Plugin hands out scripted questions and records the requested indices.
type Plugin struct {
	Requested []int
}

// MakeQuestion implements plugin.Plugin.
func (p *Plugin) MakeQuestion(index int) plugin.Question {
	p.Requested = append(p.Requested, index)
	return &Question{Index: index, Serial: len(p.Requested)}
}

// Question accepts Correct, rejects empty input as invalid and judges
// anything else wrong.
type Question struct {
	Index  int
	Serial int
}

func (q *Question) Read() plugin.Content {
	return plugin.Content{Text: fmt.Sprintf("level %d question %d", q.Index, q.Serial)}
}

func (q *Question) Answer(raw string) plugin.Result {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return plugin.Result{Outcome: plugin.OutcomeInvalidInput, Reveal: Correct}
	case Correct:
		return plugin.Result{Outcome: plugin.OutcomeCorrect, Reveal: Correct}
	default:
		return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: Correct}
	}
}

func (q *Question) Reveal() plugin.Result {
	return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: Correct}
}

// Factory builds scripted plugins. Err, when set, is returned by New.
type Factory struct {
	Meta  plugin.Info
	Err   error
	Built []*Plugin
}

// NewFactory returns a factory for a difficulty plugin with the given level count.
func NewFactory(id string, levels int) *Factory {
	return &Factory{Meta: plugin.Info{
		ID:          id,
		Name:        strings.ToUpper(id[:1]) + id[1:],
		Description: "scripted " + id,
		Icon:        plugin.Icon{Emoji: "*"},
		Mode:        plugin.Difficulty(levels),
	}}
}

func (f *Factory) Info() plugin.Info { return f.Meta }

func (f *Factory) New(_ *rand.Rand) (plugin.Plugin, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	p := &Plugin{}
	f.Built = append(f.Built, p)
	return p, nil
}
