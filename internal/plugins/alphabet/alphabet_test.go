package alphabet

import (
	"math/rand"
	"testing"

	"github.com/abhisek/mathrooms/internal/plugin"
)

func TestNextLetter_WindowGrowsWithLevel(t *testing.T) {
	p := &NextLetter{rnd: rand.New(rand.NewSource(1))}
	for i := 0; i < 300; i++ {
		q := p.MakeQuestion(0).(nextLetterQuestion)
		if indexOf(q.want) > 9 {
			t.Fatalf("level 0 asked for %c beyond j", q.want)
		}
		if indexOf(q.want) != indexOf(q.current)+1 {
			t.Fatalf("want %c does not follow %c", q.want, q.current)
		}
	}
	sawLate := false
	for i := 0; i < 500; i++ {
		if p.MakeQuestion(10).(nextLetterQuestion).want == 'ö' {
			sawLate = true
			break
		}
	}
	if !sawLate {
		t.Error("high level never asked for the last letter")
	}
}

func TestNextLetter_Answer(t *testing.T) {
	q := nextLetterQuestion{current: 'ä', want: 'ö'}
	tests := []struct {
		raw  string
		want plugin.Outcome
	}{
		{"ö", plugin.OutcomeCorrect},
		{" Ö ", plugin.OutcomeCorrect},
		{"öx", plugin.OutcomeCorrect},
		{"o", plugin.OutcomeWrong},
		{"  ", plugin.OutcomeInvalidInput},
	}
	for _, tt := range tests {
		if got := q.Answer(tt.raw).Outcome; got != tt.want {
			t.Errorf("Answer(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
	if got := q.Reveal().Reveal; got != "Correct answer: ö" {
		t.Errorf("Reveal() = %q", got)
	}
}

func TestOrder_QuestionIsSolvable(t *testing.T) {
	p := &Order{rnd: rand.New(rand.NewSource(7))}
	q := p.MakeQuestion(2).(orderQuestion)
	if len(q.shown) != 5 || len(q.want) != 5 {
		t.Fatalf("level 2 should show 5 letters, got %d", len(q.shown))
	}
	for i := 1; i < len(q.want); i++ {
		if indexOf(q.want[i-1]) >= indexOf(q.want[i]) {
			t.Fatalf("want %q not sorted", string(q.want))
		}
	}
	if got := q.Answer(string(q.want)).Outcome; got != plugin.OutcomeCorrect {
		t.Errorf("sorted answer judged %v", got)
	}
}

func TestOrder_Answer(t *testing.T) {
	q := orderQuestion{shown: []rune("cåa"), want: []rune("acå")}
	if got := q.Answer("a c å").Outcome; got != plugin.OutcomeCorrect {
		t.Errorf("spaced answer = %v, want correct", got)
	}
	if got := q.Answer("caå").Outcome; got != plugin.OutcomeWrong {
		t.Errorf("wrong order = %v, want wrong", got)
	}
	if got := q.Answer("ac").Outcome; got != plugin.OutcomeInvalidInput {
		t.Errorf("short answer = %v, want invalid", got)
	}
}
