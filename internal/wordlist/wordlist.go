// Package wordlist reads drill vocabularies.
//
// A word list is plain UTF-8 text with one word per line. Blank lines and
// lines starting with # are ignored, and duplicates keep their first position.
package wordlist

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrEmpty is returned when a list yields no usable words.
var ErrEmpty = errors.New("word list is empty")

// LoadWords reads the word list at path, keeping the words accepted by keep.
// A nil keep accepts every word.
func LoadWords(path string, keep FilterFunc) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return Parse(file, keep)
}

// Parse reads a word list from r.
func Parse(r io.Reader, keep FilterFunc) ([]string, error) {
	seen := map[string]struct{}{}
	var words []string
	scanner := bufio.NewScanner(r)
	for first := true; scanner.Scan(); first = false {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		word := strings.TrimSpace(line)
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		if keep != nil && !keep(word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}
