package recipe

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Diagnostics written into the "error" slot when the completion service does
// not honor the JSON-only instruction.
const (
	errNoJSON  = "No JSON found in response"
	errBadJSON = "Could not parse JSON from response"
)

// The completion service is not guaranteed to return JSON only, so parsing
// is two-tier: try the whole response, then the first greedy {...} or [...]
// span inside it.
var (
	jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)
	jsonArrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
)

// parseSubstitutions recovers an ingredient-to-substitute mapping from a
// model response. It never fails: an unparseable response yields a mapping
// with a single "error" key, which is a valid terminal shape.
func parseSubstitutions(raw string) map[string]string {
	content := strings.TrimSpace(raw)

	var subs map[string]string
	if err := json.Unmarshal([]byte(content), &subs); err == nil {
		return nonNil(subs)
	}

	span := jsonObjectPattern.FindString(content)
	if span == "" {
		return map[string]string{"error": errNoJSON}
	}
	if err := json.Unmarshal([]byte(span), &subs); err != nil {
		return map[string]string{"error": errBadJSON}
	}
	return nonNil(subs)
}

// parseMealPlan recovers a day-to-meals mapping with the same two-tier
// policy as parseSubstitutions.
func parseMealPlan(raw string) map[string][]string {
	content := strings.TrimSpace(raw)

	var plan map[string][]string
	if err := json.Unmarshal([]byte(content), &plan); err == nil {
		return nonNilPlan(plan)
	}

	span := jsonObjectPattern.FindString(content)
	if span == "" {
		return map[string][]string{"error": {errNoJSON}}
	}
	if err := json.Unmarshal([]byte(span), &plan); err != nil {
		return map[string][]string{"error": {errBadJSON}}
	}
	return nonNilPlan(plan)
}

// parseStringList recovers a JSON array of strings, scanning for the first
// [...] span when the full response does not parse.
func parseStringList(raw string) ([]string, bool) {
	content := strings.TrimSpace(raw)

	var items []string
	if err := json.Unmarshal([]byte(content), &items); err == nil {
		return items, true
	}

	span := jsonArrayPattern.FindString(content)
	if span == "" {
		return nil, false
	}
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, false
	}
	return items, true
}

func nonNil(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilPlan(m map[string][]string) map[string][]string {
	if m == nil {
		return map[string][]string{}
	}
	return m
}

// encodeMealPlan renders a plan as JSON for embedding into a prompt.
// Marshaling a map of strings to string slices cannot fail.
func encodeMealPlan(plan map[string][]string) string {
	b, _ := json.Marshal(plan)
	return string(b)
}
