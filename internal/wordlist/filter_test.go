package wordlist

import "testing"

func TestFilterEnglishASCII(t *testing.T) {
	filter := FilterForLang("en")
	if !filter("hello") {
		t.Fatalf("expected hello to pass english filter")
	}
	for _, word := range []string{"résumé", "naïve", "don’t", "co-op"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestFilterHan(t *testing.T) {
	filter := FilterForLang("zh")
	if !filter("明月") {
		t.Fatalf("expected han word to pass")
	}
	for _, word := range []string{"", "abc", "明a", "月。"} {
		if filter(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}
