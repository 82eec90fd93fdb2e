package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/verte-zerg/typecore/internal/generator"
	"github.com/verte-zerg/typecore/internal/model"
	"github.com/verte-zerg/typecore/internal/wordlist"
)

// WordDrillID identifies generated word drills.
const WordDrillID = "words"

// WordDrill generates a word drill exercise from a word list.
func WordDrill(gen *generator.Generator, words []string, lang string, opts generator.Options) model.Exercise {
	sep := " "
	if lang == "zh" {
		sep = ""
	}
	parts := gen.Generate(words, opts)
	content := strings.Join(parts, sep)
	return model.Exercise{
		ID:       WordDrillID,
		Category: model.CategoryWords,
		Title:    fmt.Sprintf("Word drill (%s, %d words)", lang, len(parts)),
		Content:  content,
	}
}

// CorpusWords collects the distinct words of the given exercises in order of
// first appearance, keeping those the language filter accepts. Chinese text
// contributes single characters.
func CorpusWords(exercises []model.Exercise, lang string) []string {
	keep := wordlist.FilterForLang(lang)
	seen := map[string]struct{}{}
	var out []string
	add := func(word string) {
		if word == "" || !keep(word) {
			return
		}
		if _, ok := seen[word]; ok {
			return
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	for _, ex := range exercises {
		if lang == "zh" {
			for _, r := range ex.Content {
				add(string(r))
			}
			continue
		}
		for _, field := range strings.Fields(ex.Content) {
			add(strings.ToLower(strings.TrimFunc(field, func(r rune) bool {
				return !unicode.IsLetter(r)
			})))
		}
	}
	return out
}
