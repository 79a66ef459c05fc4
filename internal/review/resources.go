package review

import "strings"

// resourceLink pairs trigger fragments with a documentation link. A link is
// included when any trigger appears in a comment (or, for codeTriggers, in
// the snippet).
type resourceLink struct {
	triggers     []string
	codeTriggers []string
	link         string
}

// resourceTable maps each language to its curated documentation links.
var resourceTable = map[Language][]resourceLink{
	LangPython: {
		{triggers: []string{"naming", "variable", "name"}, link: "[PEP 8 - Naming Conventions](https://peps.python.org/pep-0008/#naming-conventions)"},
		{triggers: []string{"efficient", "performance", "loop", "slow"}, link: "[Python Performance Tips](https://wiki.python.org/moin/PythonSpeed/PerformanceTips)"},
		{triggers: []string{"comprehension"}, link: "[List Comprehensions](https://docs.python.org/3/tutorial/datastructures.html#list-comprehensions)"},
		{triggers: []string{"style", "formatting"}, codeTriggers: []string{"== true", "== false"}, link: "[PEP 8 - Style Guide](https://peps.python.org/pep-0008/)"},
		{triggers: []string{"docstring", "document"}, link: "[PEP 257 - Docstring Conventions](https://peps.python.org/pep-0257/)"},
	},
	LangJavaScript: {
		{triggers: []string{"naming", "variable", "name"}, link: "[MDN JavaScript Guidelines](https://developer.mozilla.org/en-US/docs/MDN/Writing_guidelines/Writing_style_guide/Code_style_guide/JavaScript)"},
		{triggers: []string{"efficient", "performance", "loop", "slow"}, link: "[JavaScript Performance](https://developer.mozilla.org/en-US/docs/Learn/Performance/JavaScript)"},
		{triggers: []string{"async", "promise"}, link: "[Async/Await Best Practices](https://developer.mozilla.org/en-US/docs/Learn/JavaScript/Asynchronous/Async_await)"},
		{triggers: []string{"const", "let", "arrow", "es6"}, codeTriggers: []string{"var "}, link: "[Modern JavaScript Features](https://developer.mozilla.org/en-US/docs/Web/JavaScript/New_in_JavaScript)"},
	},
	LangJava: {
		{triggers: []string{"naming", "variable", "name"}, link: "[Java Naming Conventions](https://www.oracle.com/java/technologies/javase/codeconventions-namingconventions.html)"},
		{triggers: []string{"efficient", "performance", "slow"}, link: "[Java Performance Tuning](https://docs.oracle.com/javase/8/docs/technotes/guides/performance/)"},
		{triggers: []string{"thread", "concurrent"}, link: "[Java Concurrency Tutorial](https://docs.oracle.com/javase/tutorial/essential/concurrency/)"},
		{triggers: []string{"style", "convention"}, link: "[Google Java Style Guide](https://google.github.io/styleguide/javaguide.html)"},
	},
	LangCPP: {
		{triggers: []string{"naming", "variable", "name"}, link: "[C++ Core Guidelines - Naming](https://isocpp.github.io/CppCoreGuidelines/CppCoreGuidelines#S-naming)"},
		{triggers: []string{"efficient", "performance", "slow"}, link: "[C++ Core Guidelines - Performance](https://isocpp.github.io/CppCoreGuidelines/CppCoreGuidelines#S-performance)"},
		{triggers: []string{"modern", "c++11", "c++14"}, link: "[C++ Core Guidelines](https://isocpp.github.io/CppCoreGuidelines/CppCoreGuidelines)"},
	},
	LangGo: {
		{triggers: []string{"naming", "variable", "name"}, link: "[Go Code Review Comments](https://go.dev/wiki/CodeReviewComments)"},
		{triggers: []string{"efficient", "performance", "slow"}, link: "[Profiling Go Programs](https://go.dev/blog/pprof)"},
		{triggers: []string{"format", "gofmt", "style"}, link: "[Effective Go](https://go.dev/doc/effective_go)"},
	},
}

// RelevantResources selects documentation links for the detected language
// based on comment and snippet content. Order follows the table; duplicates
// are removed. Unknown language yields nothing.
func RelevantResources(snippet string, comments []string, lang Language) []string {
	links := resourceTable[lang]
	if len(links) == 0 {
		return nil
	}

	lowerSnippet := strings.ToLower(snippet)
	lowerComments := make([]string, len(comments))
	for i, c := range comments {
		lowerComments[i] = strings.ToLower(c)
	}

	var out []string
	seen := map[string]bool{}
	for _, rl := range links {
		if seen[rl.link] {
			continue
		}
		if resourceTriggered(rl, lowerSnippet, lowerComments) {
			seen[rl.link] = true
			out = append(out, rl.link)
		}
	}
	return out
}

func resourceTriggered(rl resourceLink, lowerSnippet string, lowerComments []string) bool {
	for _, t := range rl.triggers {
		for _, c := range lowerComments {
			if strings.Contains(c, t) {
				return true
			}
		}
	}
	for _, t := range rl.codeTriggers {
		if strings.Contains(lowerSnippet, t) {
			return true
		}
	}
	return false
}
