// Package catalog provides practice exercises.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"github.com/verte-zerg/typecore/internal/model"
)

//go:embed builtin.toml
var builtinTOML string

type catalogFile struct {
	Exercises []model.Exercise `toml:"exercise"`
}

// Builtin returns the exercises shipped with the binary.
func Builtin() ([]model.Exercise, error) {
	exercises, err := Decode(strings.NewReader(builtinTOML))
	if err != nil {
		return nil, fmt.Errorf("failed to decode builtin catalog: %w", err)
	}
	return exercises, nil
}

// Decode reads exercises from TOML, normalizes their text to NFC and
// validates each of them.
func Decode(r io.Reader) ([]model.Exercise, error) {
	var f catalogFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	for i := range f.Exercises {
		f.Exercises[i] = Normalize(f.Exercises[i])
		if err := Validate(f.Exercises[i]); err != nil {
			return nil, err
		}
	}
	return f.Exercises, nil
}

// Normalize returns ex with its text in Unicode NFC, so that precomposed
// input from a keyboard or input method matches the target rune for rune.
func Normalize(ex model.Exercise) model.Exercise {
	ex.Title = norm.NFC.String(ex.Title)
	ex.Content = norm.NFC.String(ex.Content)
	ex.Author = norm.NFC.String(ex.Author)
	ex.Translation = norm.NFC.String(ex.Translation)
	if len(ex.Pinyin) > 0 {
		pinyin := make([]model.PinyinChar, len(ex.Pinyin))
		for i, p := range ex.Pinyin {
			pinyin[i] = model.PinyinChar{Char: norm.NFC.String(p.Char), Pinyin: norm.NFC.String(p.Pinyin)}
		}
		ex.Pinyin = pinyin
	}
	return ex
}

// DecodeFile reads exercises from a TOML file.
func DecodeFile(path string) ([]model.Exercise, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only exercise file.
			_ = cerr
		}
	}()
	return Decode(file)
}

// Validate checks that an exercise is usable as a typing target.
func Validate(ex model.Exercise) error {
	if strings.TrimSpace(ex.ID) == "" {
		return fmt.Errorf("exercise id must not be empty")
	}
	if !ex.Category.Valid() {
		return fmt.Errorf("exercise %q: unknown category %q", ex.ID, ex.Category)
	}
	if ex.Content == "" {
		return fmt.Errorf("exercise %q: content must not be empty", ex.ID)
	}
	if len(ex.Pinyin) > 0 {
		chars := nonSpaceRunes(ex.Content)
		if len(chars) != len(ex.Pinyin) {
			return fmt.Errorf("exercise %q: %d pinyin entries for %d characters", ex.ID, len(ex.Pinyin), len(chars))
		}
		for i, p := range ex.Pinyin {
			if p.Char != string(chars[i]) {
				return fmt.Errorf("exercise %q: pinyin entry %d is %q, content has %q", ex.ID, i, p.Char, string(chars[i]))
			}
		}
	}
	return nil
}

// PinyinAt returns the romanization of the target character at cursor, or an
// empty string when the exercise has none for that position.
func PinyinAt(ex model.Exercise, cursor int) string {
	if len(ex.Pinyin) == 0 {
		return ""
	}
	idx := 0
	for i, r := range []rune(ex.Content) {
		if unicode.IsSpace(r) {
			if i == cursor {
				return ""
			}
			continue
		}
		if i == cursor {
			if idx < len(ex.Pinyin) {
				return ex.Pinyin[idx].Pinyin
			}
			return ""
		}
		idx++
	}
	return ""
}

// Catalog indexes exercises by id and category.
type Catalog struct {
	exercises []model.Exercise
	byID      map[string]int
}

// New builds a catalog. Later exercises replace earlier ones with the same id,
// so imported exercises can override built-in ones.
func New(sets ...[]model.Exercise) *Catalog {
	c := &Catalog{byID: map[string]int{}}
	for _, set := range sets {
		for _, ex := range set {
			if idx, ok := c.byID[ex.ID]; ok {
				c.exercises[idx] = ex
				continue
			}
			c.byID[ex.ID] = len(c.exercises)
			c.exercises = append(c.exercises, ex)
		}
	}
	return c
}

// All returns every exercise ordered by category then id.
func (c *Catalog) All() []model.Exercise {
	out := make([]model.Exercise, len(c.exercises))
	copy(out, c.exercises)
	order := map[model.Category]int{}
	for i, cat := range model.Categories() {
		order[cat] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return order[out[i].Category] < order[out[j].Category]
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ByCategory returns the exercises of one category ordered by id.
func (c *Catalog) ByCategory(cat model.Category) []model.Exercise {
	var out []model.Exercise
	for _, ex := range c.All() {
		if ex.Category == cat {
			out = append(out, ex)
		}
	}
	return out
}

// Find looks up an exercise by id.
func (c *Catalog) Find(id string) (model.Exercise, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return model.Exercise{}, false
	}
	return c.exercises[idx], true
}

// Next returns the exercise after id within its category, wrapping around.
func (c *Catalog) Next(id string) (model.Exercise, bool) {
	current, ok := c.Find(id)
	if !ok {
		return model.Exercise{}, false
	}
	list := c.ByCategory(current.Category)
	for i, ex := range list {
		if ex.ID == id {
			return list[(i+1)%len(list)], true
		}
	}
	return current, true
}

// Categories returns the categories that have at least one exercise.
func (c *Catalog) Categories() []model.Category {
	var out []model.Category
	for _, cat := range model.Categories() {
		if len(c.ByCategory(cat)) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

func nonSpaceRunes(s string) []rune {
	var out []rune
	for _, r := range s {
		if !unicode.IsSpace(r) {
			out = append(out, r)
		}
	}
	return out
}
