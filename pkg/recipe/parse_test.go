package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSubstitutions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			"clean json",
			`{"rice": "quinoa", "egg": "tofu"}`,
			map[string]string{"rice": "quinoa", "egg": "tofu"},
		},
		{
			"json wrapped in prose",
			"Sure! Here are your substitutions:\n{\"butter\": \"olive oil\"}\nEnjoy!",
			map[string]string{"butter": "olive oil"},
		},
		{
			"json in code fence",
			"```json\n{\"milk\": \"oat milk\"}\n```",
			map[string]string{"milk": "oat milk"},
		},
		{
			"no json at all",
			"I could not think of any substitutions.",
			map[string]string{"error": "No JSON found in response"},
		},
		{
			"braces but invalid json",
			"here {not json at all} sorry",
			map[string]string{"error": "Could not parse JSON from response"},
		},
		{
			"empty object",
			"{}",
			map[string]string{},
		},
		{
			"null response",
			"null",
			map[string]string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSubstitutions(tt.raw))
		})
	}
}

func TestParseMealPlan(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string][]string
	}{
		{
			"clean json",
			`{"Monday": ["oatmeal", "lentil curry"], "Tuesday": ["toast"]}`,
			map[string][]string{"Monday": {"oatmeal", "lentil curry"}, "Tuesday": {"toast"}},
		},
		{
			"json wrapped in prose",
			"Here is your plan:\n{\"Monday\": [\"soup\"]}",
			map[string][]string{"Monday": {"soup"}},
		},
		{
			"no json",
			"sorry, no plan today",
			map[string][]string{"error": {"No JSON found in response"}},
		},
		{
			"invalid json",
			"{Monday: soup}",
			map[string][]string{"error": {"Could not parse JSON from response"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseMealPlan(tt.raw))
		})
	}
}

func TestParseStringList(t *testing.T) {
	items, ok := parseStringList(`["tofu", "soy sauce"]`)
	assert.True(t, ok)
	assert.Equal(t, []string{"tofu", "soy sauce"}, items)

	items, ok = parseStringList("You need:\n[\"rice\"]\nhave fun")
	assert.True(t, ok)
	assert.Equal(t, []string{"rice"}, items)

	_, ok = parseStringList("nothing to buy")
	assert.False(t, ok)

	_, ok = parseStringList("[not, json]")
	assert.False(t, ok)
}

func TestEncodeMealPlan(t *testing.T) {
	got := encodeMealPlan(map[string][]string{"Monday": {"soup"}})
	assert.JSONEq(t, `{"Monday": ["soup"]}`, got)
}
