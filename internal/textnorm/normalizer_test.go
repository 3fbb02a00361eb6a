package textnorm

import (
	"reflect"
	"testing"
)

func TestQuestion(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "Noise line and quoted negation",
			raw:      "noise line\nЧТО ОЗНАЧАЕТ СЛОВО «НЕ»?\n",
			expected: `что означает слово ""?`,
		},
		{
			name:     "Single line is kept whole",
			raw:      "Какая планета ближе к Солнцу?",
			expected: "какая планета ближе к солнцу?",
		},
		{
			name:     "Identical whitespace runs collapse",
			raw:      "header\nкакой  город   старше?",
			expected: "какой город старше?",
		},
		{
			name:     "Negation inside a word survives",
			raw:      "header\nчто значит нет?",
			expected: "что значит нет?",
		},
		{
			name:     "Guillemets become straight quotes",
			raw:      "header\nкнига «Война и мир»",
			expected: `книга "война и мир"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Question(tt.raw); got != tt.expected {
				t.Errorf("Question(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestAnswers(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "Interior empty line is kept in place",
			raw:      "Apple\nbanana\n\nbanana\n",
			expected: []string{"apple", "banana", "", "banana"},
		},
		{
			name:     "Per line whitespace collapse",
			raw:      "first  option\nsecond   option",
			expected: []string{"first option", "second option"},
		},
		{
			name:     "Single answer",
			raw:      "  Москва  ",
			expected: []string{"москва"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Answers(tt.raw)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Answers(%q) = %q, want %q", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestCollapseWhitespace_MixedRunsAreKept(t *testing.T) {
	// Only runs of the same whitespace character collapse; a space
	// followed by a tab is two different characters.
	if got := collapseWhitespace("a \tb"); got != "a \tb" {
		t.Errorf("collapseWhitespace() = %q, want %q", got, "a \tb")
	}
	if got := collapseWhitespace("a\t\t\tb"); got != "a\tb" {
		t.Errorf("collapseWhitespace() = %q, want %q", got, "a\tb")
	}
}

func TestNormalize(t *testing.T) {
	result := Normalize("header\nВопрос?", "Да\nНет")
	if result.Question != "вопрос?" {
		t.Errorf("question = %q, want %q", result.Question, "вопрос?")
	}
	if !reflect.DeepEqual(result.Answers, []string{"да", "нет"}) {
		t.Errorf("answers = %q", result.Answers)
	}
}
