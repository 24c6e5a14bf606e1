package glossary

import (
	"math/rand"

	"github.com/abhisek/mathrooms/internal/plugin"
)

// trainer walks every chapter in a shuffled order and reshuffles once a
// chapter has been exhausted, so no entry repeats within a round.
type trainer struct {
	book   *Book
	rnd    *rand.Rand
	cycles [][]Entry
	pos    []int
}

func newTrainer(b *Book, rnd *rand.Rand) *trainer {
	t := &trainer{
		book:   b,
		rnd:    rnd,
		cycles: make([][]Entry, len(b.Chapters)),
		pos:    make([]int, len(b.Chapters)),
	}
	for i := range b.Chapters {
		t.reshuffle(i)
	}
	return t
}

func (t *trainer) reshuffle(chapter int) {
	cycle := append([]Entry(nil), t.book.Chapters[chapter].Entries...)
	t.rnd.Shuffle(len(cycle), func(i, j int) { cycle[i], cycle[j] = cycle[j], cycle[i] })
	t.cycles[chapter] = cycle
	t.pos[chapter] = 0
}

func (t *trainer) MakeQuestion(index int) plugin.Question {
	ch := max(0, min(index, len(t.book.Chapters)-1))
	if t.pos[ch] >= len(t.cycles[ch]) {
		t.reshuffle(ch)
	}
	e := t.cycles[ch][t.pos[ch]]
	t.pos[ch]++

	q := question{prompt: t.book.Prompt, chapter: t.book.Chapters[ch].Name, entry: e}
	if len(e.Pictures) > 0 {
		q.picture = e.Pictures[t.rnd.Intn(len(e.Pictures))]
	}
	return q
}

type question struct {
	prompt  string
	chapter string
	entry   Entry
	picture string
}

func (q question) Read() plugin.Content {
	text := q.prompt
	if q.entry.Clue != "" {
		text += "\n" + q.entry.Clue
	}
	c := plugin.Content{Text: text}
	if q.picture != "" {
		c.Media = []plugin.Media{{Ref: q.picture, Caption: q.chapter}}
	}
	return c
}

func (q question) reveal() string {
	return "Correct answer: " + q.entry.Answer
}

// Answer compares case-insensitively with runs of whitespace collapsed.
func (q question) Answer(raw string) plugin.Result {
	given := plugin.NormalizeText(raw)
	switch {
	case given == "":
		return plugin.Result{Outcome: plugin.OutcomeInvalidInput, Reveal: q.reveal()}
	case given == plugin.NormalizeText(q.entry.Answer):
		return plugin.Result{Outcome: plugin.OutcomeCorrect, Reveal: q.reveal()}
	default:
		return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.reveal()}
	}
}

func (q question) Reveal() plugin.Result {
	return plugin.Result{Outcome: plugin.OutcomeWrong, Reveal: q.reveal()}
}
