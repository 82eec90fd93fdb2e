// Package generator builds randomized word drills.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// Options controls drill text generation.
type Options struct {
	Count int
	// CapsPct is the probability that a word starts with a capital letter.
	CapsPct float64
	// PunctPct is the probability that a word carries a punctuation mark.
	PunctPct float64
	PunctSet []rune
}

// Opening marks wrap the word with their closing partner instead of trailing it.
var pairs = map[rune]rune{
	'(':  ')',
	'[':  ']',
	'{':  '}',
	'<':  '>',
	'"':  '"',
	'\'': '\'',
	'`':  '`',
}

// Generator produces drill words. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate picks opts.Count words uniformly and decorates them. It returns
// nil when there is nothing to pick from.
func (g *Generator) Generate(words []string, opts Options) []string {
	if len(words) == 0 || opts.Count <= 0 {
		return nil
	}
	out := make([]string, opts.Count)
	for i := range out {
		word := words[g.rnd.Intn(len(words))]
		if g.chance(opts.CapsPct) {
			word = capitalize(word)
		}
		if len(opts.PunctSet) > 0 && g.chance(opts.PunctPct) {
			word = punctuate(word, opts.PunctSet[g.rnd.Intn(len(opts.PunctSet))])
		}
		out[i] = word
	}
	return out
}

// Text joins a generated drill with single spaces.
func (g *Generator) Text(words []string, opts Options) string {
	return strings.Join(g.Generate(words, opts), " ")
}

func (g *Generator) chance(p float64) bool {
	return p > 0 && g.rnd.Float64() < p
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func punctuate(word string, mark rune) string {
	if closing, ok := pairs[mark]; ok {
		return string(mark) + word + string(closing)
	}
	return word + string(mark)
}
