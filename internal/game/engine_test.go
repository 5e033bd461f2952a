package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_SelfIsAllCorrect(t *testing.T) {
	t.Parallel()

	for _, w := range []string{"crane", "robot", "aaaaa", "eerie", "zzzzz"} {
		fb, err := Evaluate(w, w)
		require.NoError(t, err)
		assert.True(t, fb.Solved(), w)
	}
}

func TestEvaluate_DisjointLettersAllAbsent(t *testing.T) {
	t.Parallel()

	fb, err := Evaluate("crane", "pilot")
	require.NoError(t, err)
	assert.Equal(t, Feedback{Absent, Absent, Absent, Absent, Absent}, fb)
}

func TestEvaluate_DuplicateLetters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		secret, guess string
		want          string
	}{
		// one b, two o's in robot: first b present, o at 1 correct,
		// o at 2 present, second b absent, y absent.
		{"robot", "booby", "YGY.."},
		{"abbey", "babes", "YYGG."},
		{"crane", "eerie", "..Y.G"},
		{"later", "alert", "YYYYY"},
		{"speed", "eerie", "YY..."},
		{"crane", "slate", "..G.G"},
	}
	for _, tt := range tests {
		fb, err := Evaluate(tt.secret, tt.guess)
		require.NoError(t, err)
		assert.Equal(t, tt.want, fb.String(), "%s vs %s", tt.secret, tt.guess)
	}
}

func TestEvaluate_RobotBoobyExactMarks(t *testing.T) {
	t.Parallel()

	fb, err := Evaluate("robot", "booby")
	require.NoError(t, err)
	assert.Equal(t, Feedback{Present, Correct, Present, Absent, Absent}, fb)
}

func TestEvaluate_InvalidWord(t *testing.T) {
	t.Parallel()

	for _, pair := range [][2]string{
		{"crane", "cran"},
		{"crane", "cranes"},
		{"CRANE", "crane"},
		{"crane", "cr4ne"},
		{"", "crane"},
	} {
		_, err := Evaluate(pair[0], pair[1])
		assert.ErrorIs(t, err, ErrInvalidWord, "%v", pair)
	}
}

func TestParseFeedback(t *testing.T) {
	t.Parallel()

	fb, err := ParseFeedback("gY.-2")
	require.NoError(t, err)
	assert.Equal(t, Feedback{Correct, Present, Absent, Absent, Correct}, fb)
	assert.Equal(t, "GY..G", fb.String())

	_, err = ParseFeedback("GGGG")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
	_, err = ParseFeedback("GGGGQ")
	assert.ErrorIs(t, err, ErrInvalidFeedback)
}

func TestFeedback_Index(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Feedback{}.Index())
	assert.Equal(t, 242, AllCorrect.Index())
	assert.Equal(t, 1, Feedback{Absent, Absent, Absent, Absent, Present}.Index())
}

func TestFeedback_JSON(t *testing.T) {
	t.Parallel()

	turn := Turn{Guess: "slate", Feedback: Feedback{Absent, Absent, Correct, Absent, Correct}}
	b, err := json.Marshal(turn)
	require.NoError(t, err)
	assert.JSONEq(t, `{"guess":"slate","feedback":"..G.G"}`, string(b))

	var back Turn
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, turn, back)
}

func TestGame_Win(t *testing.T) {
	t.Parallel()

	g, err := New(" Crane ")
	require.NoError(t, err)
	assert.Equal(t, "", g.Reveal())

	_, st, err := g.Guess("slate")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)

	fb, st, err := g.Guess("CRANE")
	require.NoError(t, err)
	assert.True(t, fb.Solved())
	assert.Equal(t, StatusWon, st)
	assert.Equal(t, 2, g.Attempts())
	assert.Equal(t, "crane", g.Reveal())

	_, _, err = g.Guess("crane")
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestGame_LoseAfterSixMisses(t *testing.T) {
	t.Parallel()

	g, err := New("crane")
	require.NoError(t, err)
	for i := 0; i < MaxAttempts; i++ {
		_, st, err := g.Guess("pilot")
		require.NoError(t, err)
		if i < MaxAttempts-1 {
			assert.Equal(t, StatusInProgress, st)
		} else {
			assert.Equal(t, StatusLost, st)
		}
	}
	_, _, err = g.Guess("crane")
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestGame_InvalidGuessDoesNotCount(t *testing.T) {
	t.Parallel()

	g, err := New("crane")
	require.NoError(t, err)
	_, _, err = g.Guess("abc")
	assert.ErrorIs(t, err, ErrInvalidWord)
	assert.Equal(t, 0, g.Attempts())

	_, err = New("nope")
	assert.ErrorIs(t, err, ErrInvalidWord)
}
