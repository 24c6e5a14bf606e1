package arith

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathrooms/internal/plugin"
)

func TestPlus_SumsStayInRange(t *testing.T) {
	p := &Plus{rnd: rand.New(rand.NewSource(1))}
	for level := 0; level < 5; level++ {
		for i := 0; i < 200; i++ {
			q := p.MakeQuestion(level).(binary)
			if q.a < 2 || q.b < 2 {
				t.Fatalf("level %d: operands %d, %d below 2", level, q.a, q.b)
			}
			if q.want > 10+level*5 {
				t.Fatalf("level %d: sum %d above %d", level, q.want, 10+level*5)
			}
		}
	}
}

func TestMinus_NegativeOnlyFromLevelThree(t *testing.T) {
	p := &Minus{rnd: rand.New(rand.NewSource(2))}
	for i := 0; i < 500; i++ {
		q := p.MakeQuestion(2).(binary)
		if q.want < 0 {
			t.Fatalf("level 2 produced negative answer %d", q.want)
		}
	}
	sawNegative := false
	for i := 0; i < 500; i++ {
		if p.MakeQuestion(3).(binary).want < 0 {
			sawNegative = true
			break
		}
	}
	if !sawNegative {
		t.Error("level 3 never produced a negative answer")
	}
}

func TestMultiplication_FactorRange(t *testing.T) {
	p := &Multiplication{rnd: rand.New(rand.NewSource(3))}
	for i := 0; i < 300; i++ {
		q := p.MakeQuestion(1).(binary)
		if q.a < 0 || q.a > 2 || q.b < 0 || q.b > 10 {
			t.Fatalf("factors out of range: %d x %d", q.a, q.b)
		}
	}
}

func TestBinary_AnswerAndReveal(t *testing.T) {
	q := binary{a: 3, b: 4, op: "+", want: 7}
	assert.Equal(t, "3 + 4 =", q.Read().Text)
	assert.Equal(t, plugin.OutcomeCorrect, q.Answer("7").Outcome)
	assert.Equal(t, plugin.OutcomeWrong, q.Answer("8").Outcome)
	assert.Equal(t, plugin.OutcomeInvalidInput, q.Answer("x").Outcome)

	r := q.Reveal()
	assert.Equal(t, plugin.OutcomeWrong, r.Outcome)
	assert.Equal(t, "3 + 4 = 7", r.Reveal)
}

func TestPlaceValue_TermsArePowersOfTen(t *testing.T) {
	p := &PlaceValue{rnd: rand.New(rand.NewSource(4))}
	for i := 0; i < 200; i++ {
		q := p.MakeQuestion(2).(placeValueQuestion)
		require.GreaterOrEqual(t, len(q.terms), 2)
		for j, term := range q.terms {
			digits := strings.TrimRight(strconv.Itoa(term), "0")
			require.Len(t, digits, 1, "term %d has more than one non-zero digit", term)
			if j > 0 {
				require.Less(t, term, q.terms[j-1], "terms not strictly descending")
			}
		}
	}
}

func TestPlaceValue_AcceptsGroupedAnswer(t *testing.T) {
	q := placeValueQuestion{terms: []int{3000, 40, 7}}
	assert.Equal(t, plugin.OutcomeCorrect, q.Answer("3 047").Outcome)
	assert.Equal(t, plugin.OutcomeCorrect, q.Answer("3047").Outcome)
	assert.Equal(t, plugin.OutcomeWrong, q.Answer("3470").Outcome)
	assert.Equal(t, plugin.OutcomeInvalidInput, q.Answer("three").Outcome)

	lines := strings.Split(q.Reveal().Reveal, "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "+"))
	assert.True(t, strings.HasPrefix(lines[3], "="))
}

func TestGroupDigits(t *testing.T) {
	tests := map[int]string{
		7:       "7",
		300:     "300",
		3000:    "3" + figureSpace + "000",
		1234567: "1" + figureSpace + "234" + figureSpace + "567",
	}
	for n, want := range tests {
		if got := groupDigits(n); got != want {
			t.Errorf("groupDigits(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestFactories_RequireRandomSource(t *testing.T) {
	for _, f := range []plugin.Factory{PlusFactory(), MinusFactory(), MultiplicationFactory(), PlaceValueFactory()} {
		_, err := f.New(nil)
		assert.Error(t, err, f.Info().ID)

		p, err := f.New(rand.New(rand.NewSource(5)))
		require.NoError(t, err)
		assert.NotEmpty(t, p.MakeQuestion(0).Read().Text)
	}
}
