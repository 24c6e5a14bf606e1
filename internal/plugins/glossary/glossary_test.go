package glossary

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathrooms/internal/plugin"
)

func TestFactories_LoadEmbeddedBooks(t *testing.T) {
	factories, err := Factories()
	require.NoError(t, err)
	require.Len(t, factories, 2)

	info := factories[0].Info()
	assert.Equal(t, "glossary", info.ID)
	assert.Equal(t, plugin.ModeChapters, info.Mode.Kind)
	require.Len(t, info.Mode.Chapters, 3)
	assert.Equal(t, 8, info.Mode.Chapters[0].RequiredStreak, "defaults to entry count")
	assert.Equal(t, 5, info.Mode.Chapters[1].RequiredStreak, "explicit override")
	assert.False(t, info.Accepts(plugin.KeySpace))
}

func TestParseBook_RejectsInvalidContent(t *testing.T) {
	tests := map[string]string{
		"not json":       `{`,
		"no chapters":    `{"id":"x","name":"X","prompt":"p","chapters":[]}`,
		"empty chapter":  `{"id":"x","name":"X","prompt":"p","chapters":[{"name":"A","entries":[]}]}`,
		"no clue or pic": `{"id":"x","name":"X","prompt":"p","chapters":[{"name":"A","entries":[{"answer":"a"}]}]}`,
		"blank answers":  `{"id":"x","name":"X","prompt":"p","chapters":[{"name":"A","entries":[{"answer":"  ","clue":"b"}]}]}`,
		"bad id":         `{"id":"Bad Id","name":"X","prompt":"p","chapters":[{"name":"A","entries":[{"answer":"a","clue":"b"}]}]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseBook([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestTrainer_NoRepeatsWithinRound(t *testing.T) {
	b, err := ParseBook([]byte(`{"id":"x","name":"X","prompt":"Say:","chapters":[
		{"name":"A","entries":[{"answer":"one","clue":"ett"},{"answer":"two","clue":"två"},{"answer":"three","clue":"tre"}]}]}`))
	require.NoError(t, err)

	p, err := NewFactory(b).New(rand.New(rand.NewSource(3)))
	require.NoError(t, err)

	for round := 0; round < 3; round++ {
		seen := map[string]bool{}
		for i := 0; i < 3; i++ {
			q := p.MakeQuestion(0).(question)
			require.False(t, seen[q.entry.Answer], "entry %q repeated within a round", q.entry.Answer)
			seen[q.entry.Answer] = true
		}
	}
}

func TestTrainer_ClampsChapterIndex(t *testing.T) {
	b, err := ParseBook([]byte(`{"id":"x","name":"X","prompt":"Say:","chapters":[
		{"name":"A","entries":[{"answer":"one","clue":"ett"}]},
		{"name":"B","entries":[{"answer":"two","pictures":["b.png"]}]}]}`))
	require.NoError(t, err)
	p, err := NewFactory(b).New(rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	q := p.MakeQuestion(9).(question)
	assert.Equal(t, "two", q.entry.Answer)
	c := q.Read()
	assert.Equal(t, "Say:", c.Text)
	require.Len(t, c.Media, 1)
	assert.Equal(t, "b.png", c.Media[0].Ref)

	q = p.MakeQuestion(-1).(question)
	assert.Equal(t, "one", q.entry.Answer)
	assert.Equal(t, "Say:\nett", q.Read().Text)
}

func TestQuestion_Answer(t *testing.T) {
	q := question{entry: Entry{Answer: "Light Blue", Clue: "ljusblå"}}
	assert.Equal(t, plugin.OutcomeCorrect, q.Answer("  light   blue ").Outcome)
	assert.Equal(t, plugin.OutcomeWrong, q.Answer("blue").Outcome)
	assert.Equal(t, plugin.OutcomeInvalidInput, q.Answer("   ").Outcome)
	assert.Equal(t, "Correct answer: Light Blue", q.Reveal().Reveal)
}
