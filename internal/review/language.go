package review

import "strings"

// languageMarkers maps each language to the keyword and symbol fragments
// that distinguish it. Matching is case-insensitive substring counting.
var languageMarkers = map[Language][]string{
	LangPython: {
		"def ", "elif", "import ", "from ", "__init__", "self.", "lambda ",
	},
	LangJavaScript: {
		"function", "const ", "let ", "=>", "console.log", "var ",
	},
	LangJava: {
		"public class", "private ", "protected ", "import java", "system.out",
	},
	LangCPP: {
		"#include", "namespace", "std::", "template<", "cout <<",
	},
	LangGo: {
		"func ", "package ", "import (", ":= ", "go func",
	},
}

// languagePriority breaks score ties. Earlier entries win.
var languagePriority = []Language{
	LangPython, LangJavaScript, LangJava, LangCPP, LangGo,
}

// Detect maps a code snippet to a language label by counting marker
// occurrences per language. The strictly highest count wins; ties fall to
// the fixed priority order; zero matches everywhere yields LangUnknown.
// Detect never fails and is pure.
func Detect(snippet string) Language {
	if strings.TrimSpace(snippet) == "" {
		return LangUnknown
	}
	lower := strings.ToLower(snippet)

	best := LangUnknown
	bestScore := 0
	for _, lang := range languagePriority {
		score := 0
		for _, marker := range languageMarkers[lang] {
			score += strings.Count(lower, marker)
		}
		if score > bestScore {
			best = lang
			bestScore = score
		}
	}
	return best
}

// SupportedLanguages returns the detectable languages in priority order.
func SupportedLanguages() []Language {
	out := make([]Language, len(languagePriority))
	copy(out, languagePriority)
	return out
}
