package review

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Persona is a labeled tone configuration consumed only by the prompt
// builder. The pipeline treats it as opaque.
type Persona struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Voice       string `yaml:"voice"`
}

// DefaultPersona is used when no persona is configured.
const DefaultPersona = "senior_developer"

var builtinPersonas = map[string]Persona{
	"senior_developer": {
		Name:        "senior_developer",
		Description: "Pragmatic engineer with years of production experience",
		Voice: `You are a seasoned senior software engineer. Your approach:
- Pragmatic and solution-focused; balance perfectionism with practicality
- Share real-world experience when relevant
- Emphasize maintainability and long-term code health
- Use phrases like "In my experience" and "Consider the trade-offs"`,
	},
	"tech_lead": {
		Name:        "tech_lead",
		Description: "Balances technical excellence with team dynamics",
		Voice: `You are a technical lead balancing excellence with team dynamics. Your approach:
- Think about team consistency and shared standards
- Consider deadlines and business requirements
- Explain the bigger picture and architectural implications
- Use phrases like "For our team's consistency" and "Let's ensure everyone understands"`,
	},
	"pair_programming": {
		Name:        "pair_programming",
		Description: "Collaborative partner working side-by-side",
		Voice: `You are a collaborative pair programming partner. Your approach:
- Conversational; think out loud and invite discussion
- Suggest exploring alternatives together
- Ask thought-provoking questions
- Use phrases like "What do you think about" and "How about we explore"`,
	},
	"mentor": {
		Name:        "mentor",
		Description: "Patient teacher focused on growth",
		Voice: `You are a patient, encouraging mentor focused on teaching. Your approach:
- Extremely encouraging; celebrate progress
- Break complex concepts into digestible pieces
- Provide learning resources and next steps
- Use phrases like "Great job on" and "You're on the right track"`,
	},
}

// personaPack is the YAML shape of a custom persona file.
type personaPack struct {
	Personas []Persona `yaml:"personas"`
}

// LoadPersonas returns the built-in personas, optionally extended or
// overridden by a YAML persona pack. Returns the builtins when path is
// empty.
func LoadPersonas(path string) (map[string]Persona, error) {
	personas := make(map[string]Persona, len(builtinPersonas))
	for k, v := range builtinPersonas {
		personas[k] = v
	}
	if path == "" {
		return personas, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading persona file: %w", err)
	}
	var pack personaPack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("parsing persona file: %w", err)
	}
	for _, p := range pack.Personas {
		if p.Name == "" {
			return nil, fmt.Errorf("persona file: persona with empty name")
		}
		if p.Voice == "" {
			return nil, fmt.Errorf("persona file: persona %q has no voice", p.Name)
		}
		personas[p.Name] = p
	}
	return personas, nil
}

// PersonaNames returns the sorted names in a persona set.
func PersonaNames(personas map[string]Persona) []string {
	names := make([]string, 0, len(personas))
	for name := range personas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
