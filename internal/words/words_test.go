package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NormalisesAndCountsDropped(t *testing.T) {
	t.Parallel()

	src := `# comment
CRANE
slate
 brave
crane
toolong
abc
cr4ne

grape
`
	l, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate", "brave", "grape"}, l.Words)
	assert.Equal(t, 3, l.Dropped)
	assert.Nil(t, l.Weights)
}

func TestParse_Weights(t *testing.T) {
	t.Parallel()

	l, err := Parse(strings.NewReader("crane\t12.5\nslate 3\nbrave\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate", "brave"}, l.Words)
	assert.Equal(t, 12.5, l.Weights["crane"])
	assert.Equal(t, 3.0, l.Weights["slate"])
	_, ok := l.Weights["brave"]
	assert.False(t, ok)
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	l, err := Parse(strings.NewReader("# nothing\nxyz\n"))
	assert.ErrorIs(t, err, ErrEmpty)
	require.NotNil(t, l)
	assert.Equal(t, 1, l.Dropped)
}

func TestParseYAML_Sequence(t *testing.T) {
	t.Parallel()

	l, err := ParseYAML([]byte("- apple\n- Grape\n- nope\n- apple\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "grape"}, l.Words)
	assert.Equal(t, 1, l.Dropped)
}

func TestParseYAML_Mapping(t *testing.T) {
	t.Parallel()

	l, err := ParseYAML([]byte("crane: 10\nslate: 2.5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Words)
	assert.Equal(t, 10.0, l.Weights["crane"])
	assert.Equal(t, 2.5, l.Weights["slate"])
}

func TestLoad_ByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	txt := filepath.Join(dir, "list.txt")
	yml := filepath.Join(dir, "list.yaml")
	require.NoError(t, os.WriteFile(txt, []byte("crane\nslate\n"), 0o644))
	require.NoError(t, os.WriteFile(yml, []byte("- robot\n- booby\n"), 0o644))

	l, err := Load(txt)
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Words)
	assert.Equal(t, txt, l.Source)

	l, err = Load(yml)
	require.NoError(t, err)
	assert.Equal(t, []string{"robot", "booby"}, l.Words)

	_, err = Load(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	l, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "embedded", l.Source)
	assert.Greater(t, len(l.Words), 400)
	assert.Equal(t, 0, l.Dropped)
	for _, w := range []string{"crane", "slate", "robot", "apple"} {
		assert.True(t, l.Contains(w), w)
	}
	assert.False(t, l.Contains("zzzzz"))
}

func TestLoadOrDefault(t *testing.T) {
	t.Parallel()

	l, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", l.Source)

	sorted := l.Sorted()
	assert.True(t, sorted[0] <= sorted[len(sorted)-1])
}
