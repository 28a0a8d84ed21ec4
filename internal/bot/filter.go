package bot

import (
	"strings"
	"unicode"
)

// SwearFilter — пословный классификатор грубой лексики по словарю
// стоп-слов. Predict даёт бинарный вердикт, PredictProba — долю
// стоп-слов среди слов сообщения.
type SwearFilter struct {
	stopWords map[string]struct{}
}

func NewSwearFilter(stopWords []string) *SwearFilter {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return &SwearFilter{stopWords: set}
}

func (f *SwearFilter) tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Predict возвращает 1, если в тексте есть хотя бы одно стоп-слово.
func (f *SwearFilter) Predict(text string) int {
	for _, tok := range f.tokens(text) {
		if _, ok := f.stopWords[tok]; ok {
			return 1
		}
	}
	return 0
}

// PredictProba — доля стоп-слов среди всех слов текста.
func (f *SwearFilter) PredictProba(text string) float64 {
	toks := f.tokens(text)
	if len(toks) == 0 {
		return 0
	}
	matched := 0
	for _, tok := range toks {
		if _, ok := f.stopWords[tok]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(toks))
}
