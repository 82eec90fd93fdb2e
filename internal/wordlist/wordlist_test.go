package wordlist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadWordsFiltersAndSkipsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "en.txt")
	content := "# common words\nhello\n\n  world  \nnaïve\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}

	words, err := LoadWords(path, FilterForLang("en"))
	if err != nil {
		t.Fatalf("load words: %v", err)
	}
	if len(words) != 2 || words[0] != "hello" || words[1] != "world" {
		t.Fatalf("unexpected words: %v", words)
	}
}

func TestLoadWordsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, []byte("Ünïcode\n"), 0o644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	if _, err := LoadWords(path, FilterForLang("en")); err == nil {
		t.Fatalf("expected error for list with no usable words")
	}
	words, err := LoadWords(path, nil)
	if err != nil {
		t.Fatalf("load words without filter: %v", err)
	}
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %v", words)
	}
}

func TestParseDropsBOMAndDuplicates(t *testing.T) {
	words, err := Parse(strings.NewReader("\ufeff明月\n故乡\n明月\n# 注释\n"), FilterForLang("zh"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if strings.Join(words, ",") != "明月,故乡" {
		t.Fatalf("unexpected words: %v", words)
	}
	if _, err := Parse(strings.NewReader("\n#only comments\n"), nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}
