package bot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRoleCard(t *testing.T) {
	spy := formatRoleCard(RoleCard{IsSpy: true})
	assert.Contains(t, spy, "SPY")
	assert.NotContains(t, spy, "Casino")

	innocent := formatRoleCard(RoleCard{Location: "Casino", Role: "Dealer"})
	assert.Contains(t, innocent, "Casino")
	assert.Contains(t, innocent, "Dealer")
}

func TestFormatHistoryLimit(t *testing.T) {
	history := make([]Exchange, 10)
	for i := range history {
		history[i] = Exchange{Kind: "question", From: "Bob", To: "Carol", Content: fmt.Sprintf("q%d", i)}
	}

	limited := formatHistory(history, 6)
	assert.NotContains(t, limited, "q3", "older entries are dropped")
	assert.Contains(t, limited, "q4")
	assert.Contains(t, limited, "q9")

	full := formatHistory(history, 0)
	assert.Contains(t, full, "q0")

	assert.Contains(t, formatHistory(nil, 6), "no questions asked yet")
}

func TestBuildQuestionPrompt(t *testing.T) {
	prompt := buildQuestionPrompt(QuestionInput{
		Self:      PlayerRef{ID: "b1", Name: "Ivy"},
		Card:      RoleCard{IsSpy: true},
		Targets:   []PlayerRef{{ID: "p2", Name: "Bob"}, {ID: "p3", Name: "Carol"}},
		History:   []Exchange{{Kind: "question", From: "Bob", To: "Ivy", Content: "Nice weather?"}},
		Locations: []string{"Casino", "Beach"},
	})

	assert.Contains(t, prompt, "Ivy")
	assert.Contains(t, prompt, "p2")
	assert.Contains(t, prompt, "p3")
	assert.Contains(t, prompt, "Casino")
	assert.Contains(t, prompt, "Nice weather?")
	assert.Contains(t, prompt, `"target_id"`)
	// Legal targets only: the bot itself is never listed
	assert.NotContains(t, prompt, "- Ivy: b1")
}

func TestBuildAccusationPromptObligation(t *testing.T) {
	input := AccusationInput{
		Self:    PlayerRef{ID: "b1", Name: "Ivy"},
		Targets: []PlayerRef{{ID: "p2", Name: "Bob"}},
	}

	optional := buildAccusationPrompt(input)
	assert.Contains(t, optional, "may decline")

	input.MustAccuse = true
	mandatory := buildAccusationPrompt(input)
	assert.Contains(t, mandatory, "must pick a suspect")
	assert.False(t, strings.Contains(mandatory, "may decline"))
}

func TestBuildVotePrompt(t *testing.T) {
	prompt := buildVotePrompt(VoteInput{
		Self:    PlayerRef{ID: "b1", Name: "Ivy"},
		Card:    RoleCard{Location: "Beach", Role: "Lifeguard"},
		Accuser: PlayerRef{ID: "p2", Name: "Bob"},
		Accused: PlayerRef{ID: "p3", Name: "Carol"},
	})

	assert.Contains(t, prompt, "Bob has accused Carol")
	assert.Contains(t, prompt, `"vote_guilty"`)
	assert.Contains(t, prompt, "Lifeguard")
}
