package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/verte-zerg/typecore/internal/catalog"
	"github.com/verte-zerg/typecore/internal/config"
	"github.com/verte-zerg/typecore/internal/generator"
	"github.com/verte-zerg/typecore/internal/model"
	"github.com/verte-zerg/typecore/internal/tui"
	"github.com/verte-zerg/typecore/internal/wordlist"
)

// pickExercise selects the starting exercise and how tab advances from it.
func pickExercise(cat *catalog.Catalog, cfg model.Config, drill func() model.Exercise) (model.Exercise, tui.NextFunc, error) {
	if cfg.Category == model.CategoryWords {
		if drill == nil {
			return model.Exercise{}, nil, fmt.Errorf("no words available for a %s drill", cfg.Lang)
		}
		next := func(model.Exercise) (model.Exercise, bool) {
			return drill(), true
		}
		return drill(), next, nil
	}

	next := func(current model.Exercise) (model.Exercise, bool) {
		return cat.Next(current.ID)
	}
	if cfg.ExerciseID != "" {
		ex, ok := cat.Find(cfg.ExerciseID)
		if !ok {
			return model.Exercise{}, nil, fmt.Errorf("unknown exercise %q (see: typecore list)", cfg.ExerciseID)
		}
		if cfg.Category != "" && ex.Category != cfg.Category {
			return model.Exercise{}, nil, fmt.Errorf("exercise %q is in category %q, not %q", ex.ID, ex.Category, cfg.Category)
		}
		return ex, next, nil
	}

	category := cfg.Category
	if category == "" {
		category = model.CategoryBasic
	}
	list := cat.ByCategory(category)
	if len(list) == 0 {
		return model.Exercise{}, nil, fmt.Errorf("no exercises in category %q", category)
	}
	return list[0], next, nil
}

func newDrill(cfg model.Config, words []string) func() model.Exercise {
	if len(words) == 0 {
		return nil
	}
	gen := generator.New()
	opts := generator.Options{
		Count:    cfg.Words,
		CapsPct:  cfg.CapsPct,
		PunctPct: cfg.PunctPct,
		PunctSet: []rune(cfg.PunctSet),
	}
	if cfg.Lang == "zh" {
		opts.CapsPct = 0
		opts.PunctPct = 0
	}
	return func() model.Exercise {
		return catalog.WordDrill(gen, words, cfg.Lang, opts)
	}
}

// loadDrillWords reads the installed word list for lang, falling back to the
// words of the catalog when no list is installed.
func loadDrillWords(cat *catalog.Catalog, lang string) ([]string, error) {
	path := config.DefaultWordListPath(lang)
	words, err := wordlist.LoadWords(path, wordlist.FilterForLang(lang))
	if err == nil && len(words) > 0 {
		return words, nil
	}
	if err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, wordlist.ErrEmpty) {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}

	words = catalog.CorpusWords(cat.All(), lang)
	if len(words) == 0 {
		return nil, fmt.Errorf("no word list for %q: create %s with one word per line", lang, path)
	}
	logErrln("No word list at", path+"; drilling words from the built-in exercises")
	return words, nil
}
