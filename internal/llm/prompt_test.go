package llm

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt_Golden(t *testing.T) {
	cases := map[string]string{
		"prompt_single_line": "Decision date 12.03.2021, debt 1500, fine 300",
		"prompt_multi_page":  "DISTRICT COURT\nDecision of 01.02.2020\n\nThe defendant shall pay 25 000 rubles and a fine of 1 000 rubles.",
		"prompt_empty":       "",
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			g.Assert(t, name, []byte(BuildUserPrompt(text)))
		})
	}
}

func TestBuildUserPrompt_Pure(t *testing.T) {
	text := "Решение от 12.03.2021, долг 1500 руб., штраф 300 руб."
	first := BuildUserPrompt(text)
	for range 5 {
		assert.Equal(t, first, BuildUserPrompt(text))
	}
	assert.Contains(t, first, `"`+text+`"`)
	for _, key := range FieldNames {
		assert.Contains(t, first, key)
	}
}
