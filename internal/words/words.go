// apps/go-solver/internal/words/words.go
//
// Word list loading for the solver.
//
// Responsibilities:
//   - Load a word list from a file (plain text, TSV or YAML) or fall back to
//     the embedded default list.
//   - Normalise entries to lowercase, drop malformed ones (counted in
//     List.Dropped) and remove duplicates while keeping first-seen order.
//   - Keep optional per-word frequency weights.
//
// Formats:
//   • .txt/.tsv: one word per line, optional weight after whitespace/tab,
//     blank lines and "#" comments ignored.
//   • .yaml/.yml: either a sequence of words or a mapping word -> weight.
//
// Environment variables:
//   WORDLE_WORDS_FILE=/path/to/words.txt (read by the config package)

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
	"github.com/robalobadob/wordle/apps/go-solver/internal/game"
)

// ErrEmpty is returned when a source yields no valid word.
var ErrEmpty = errors.New("words: list is empty")

// List is a normalised, deduplicated word list.
type List struct {
	Words   []string           // valid words in first-seen order
	Weights map[string]float64 // optional; nil when the source carries none
	Dropped int                // malformed entries skipped while loading
	Source  string             // file path or "embedded"
}

// Load reads a word list from path, choosing the format by extension.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var l *List
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, rerr := io.ReadAll(f)
		if rerr != nil {
			return nil, rerr
		}
		l, err = ParseYAML(data)
	default:
		l, err = Parse(f)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	l.Source = path
	return l, nil
}

// Default returns the embedded word list.
func Default() (*List, error) {
	f, err := assets.OpenDefault()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Parse(f)
	if err != nil {
		return nil, err
	}
	l.Source = "embedded"
	return l, nil
}

// LoadOrDefault loads path when set and the embedded list otherwise.
func LoadOrDefault(path string) (*List, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Parse reads line-oriented word lists.
func Parse(r io.Reader) (*List, error) {
	b := newBuilder()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		weight, hasWeight := 0.0, false
		if len(fields) >= 2 {
			if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
				weight, hasWeight = v, true
			}
		}
		b.add(fields[0], weight, hasWeight)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return b.list()
}

// ParseYAML reads a YAML sequence of words or a mapping of word to weight.
func ParseYAML(data []byte) (*List, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	b := newBuilder()
	if len(node.Content) == 0 {
		return b.list()
	}
	doc := node.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		var seq []string
		if err := doc.Decode(&seq); err != nil {
			return nil, err
		}
		for _, w := range seq {
			b.add(w, 0, false)
		}
	case yaml.MappingNode:
		// Decode pairwise to keep the file order.
		for i := 0; i+1 < len(doc.Content); i += 2 {
			var weight float64
			hasWeight := doc.Content[i+1].Decode(&weight) == nil
			b.add(doc.Content[i].Value, weight, hasWeight)
		}
	default:
		return nil, fmt.Errorf("yaml word list: unsupported node kind %d", doc.Kind)
	}
	return b.list()
}

// Contains reports whether w is in the list.
func (l *List) Contains(w string) bool {
	w = game.Normalize(w)
	for _, x := range l.Words {
		if x == w {
			return true
		}
	}
	return false
}

// Sorted returns a lexicographically sorted copy of the words.
func (l *List) Sorted() []string {
	out := append([]string(nil), l.Words...)
	sort.Strings(out)
	return out
}

// builder accumulates entries while tracking drops and duplicates.
type builder struct {
	seen    map[string]struct{}
	words   []string
	weights map[string]float64
	dropped int
}

func newBuilder() *builder {
	return &builder{seen: make(map[string]struct{})}
}

func (b *builder) add(raw string, weight float64, hasWeight bool) {
	w := game.Normalize(raw)
	if !game.ValidWord(w) {
		b.dropped++
		return
	}
	if _, dup := b.seen[w]; dup {
		return
	}
	b.seen[w] = struct{}{}
	b.words = append(b.words, w)
	if hasWeight {
		if b.weights == nil {
			b.weights = make(map[string]float64)
		}
		b.weights[w] = weight
	}
}

func (b *builder) list() (*List, error) {
	if len(b.words) == 0 {
		return &List{Dropped: b.dropped}, ErrEmpty
	}
	return &List{Words: b.words, Weights: b.weights, Dropped: b.dropped}, nil
}
