// Package plugin defines the contract between question generators and the
// training core: plugins produce questions for a level or chapter index and
// judge raw answers.
package plugin

import "math/rand"

// Outcome is the verdict on a single answer.
type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeWrong
	OutcomeInvalidInput
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeInvalidInput:
		return "invalid-input"
	default:
		return "unknown"
	}
}

// Result is the evaluation of an answer together with the canonical answer
// text shown to the player after a miss.
type Result struct {
	Outcome Outcome
	Reveal  string
}

// Media is a reference to a picture shown with a question.
type Media struct {
	Ref     string
	Caption string
}

// Content is what a question shows to the player.
type Content struct {
	Text  string
	Media []Media
}

// Question is a single generated question.
type Question interface {
	// Read returns the prompt and any media references.
	Read() Content

	// Answer judges the raw text typed by the player.
	Answer(raw string) Result

	// Reveal returns the canonical answer. The outcome is always OutcomeWrong.
	Reveal() Result
}

// Plugin generates questions for a level (difficulty mode) or chapter
// (chapter mode). The index is zero-based.
type Plugin interface {
	MakeQuestion(index int) Question
}

// Factory describes a plugin and builds fresh instances of it. The random
// source is owned by the returned plugin.
type Factory interface {
	Info() Info
	New(rnd *rand.Rand) (Plugin, error)
}
