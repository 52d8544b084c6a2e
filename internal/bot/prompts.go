package bot

import (
	"fmt"
	"strings"
)

// gameDescription is shared strategic context included in every prompt
const gameDescription = `Spyfall is a social deduction game. Each round, players are assigned a location and role. One player is the spy who doesn't know the location.
- The spy's objective is to avoid exposure until the end of a given round or identify the current location.
- The non-spies' objective is to establish consensus on the identity of the spy and expose him or her.

Strategies:
- Non-spies should refrain from being too explicit in their questions: an overly specific question instantly reveals the location to the spy. However, when a player's questions and answers are too vague, other players might start suspecting them of being the spy, enabling the real spy to win.
- The spy should listen carefully, avoid blowing their cover, and try to identify the location before time runs out. A spy who never attempts to guess the location is taking a risk: the other players may well identify them after discussion and voting.`

// historyLimitQuestion caps how much transcript the question prompt carries
const historyLimitQuestion = 6

func formatRoleCard(card RoleCard) string {
	if card.IsSpy {
		return "- You are the SPY\n- Location: unknown to you\n- Role: none"
	}
	return fmt.Sprintf("- Location: %s\n- Role: %s", card.Location, card.Role)
}

func formatLocations(locations []string) string {
	var b strings.Builder
	for _, name := range locations {
		fmt.Fprintf(&b, "- %s\n", name)
	}
	return b.String()
}

func formatTargets(targets []PlayerRef) string {
	var b strings.Builder
	for _, t := range targets {
		fmt.Fprintf(&b, "- %s: %s\n", t.Name, t.ID)
	}
	return b.String()
}

func formatHistory(history []Exchange, limit int) string {
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	if len(history) == 0 {
		return "(no questions asked yet)\n"
	}
	var b strings.Builder
	for _, ex := range history {
		to := ex.To
		if to == "" {
			to = "all"
		}
		fmt.Fprintf(&b, "- From %s to %s: %q\n", ex.From, to, ex.Content)
	}
	return b.String()
}

// buildQuestionPrompt asks the model to pick a target and question,
// responding as a JSON object
func buildQuestionPrompt(input QuestionInput) string {
	return fmt.Sprintf(`You are %s playing a game of Spyfall. It is your turn to ask another player a question.

GAME DESCRIPTION:
%s

LIST OF ALL GAME LOCATIONS:
%s
YOUR CARD:
%s

PREVIOUS Q&A:
%s
WHO YOU CAN ASK:
You must choose the id of ONE of these players
%s
YOUR TASK:
Choose your target and a brief question. Respond with only a JSON object in this exact format:
{"target_id": "player_id", "question": "your question"}`,
		input.Self.Name,
		gameDescription,
		formatLocations(input.Locations),
		formatRoleCard(input.Card),
		formatHistory(input.History, historyLimitQuestion),
		formatTargets(input.Targets))
}

// buildAnswerPrompt asks the model to answer the open question
func buildAnswerPrompt(input AnswerInput) string {
	return fmt.Sprintf(`You are %s playing Spyfall. It is your turn to answer another player's question.

GAME DESCRIPTION:
%s

LIST OF ALL GAME LOCATIONS:
%s
YOUR CARD:
%s

PREVIOUS Q&A:
%s
QUESTION:
%s asked you: %q

YOUR TASK:
Give a brief answer in character. Respond with only a JSON object in this exact format:
{"answer": "your answer"}`,
		input.Self.Name,
		gameDescription,
		formatLocations(input.Locations),
		formatRoleCard(input.Card),
		formatHistory(input.History, 0),
		input.Asker.Name,
		input.Question)
}

// buildAccusationPrompt asks the model whether to accuse and whom
func buildAccusationPrompt(input AccusationInput) string {
	obligation := "You may decline to accuse by setting should_accuse to false."
	if input.MustAccuse {
		obligation = "The round timer has expired and it is your turn to accuse: you must pick a suspect."
	}
	return fmt.Sprintf(`You are %s playing Spyfall and deciding whether to accuse another player of being the spy.

GAME DESCRIPTION:
%s

LIST OF ALL GAME LOCATIONS:
%s
YOUR CARD:
%s

PREVIOUS Q&A:
%s
WHO YOU CAN ACCUSE:
You must choose the id of ONE of these players
%s
YOUR TASK:
%s Respond with only a JSON object in this exact format:
{"should_accuse": true, "target_id": "player_id", "reasoning": "brief reasoning"}`,
		input.Self.Name,
		gameDescription,
		formatLocations(input.Locations),
		formatRoleCard(input.Card),
		formatHistory(input.History, 0),
		formatTargets(input.Targets),
		obligation)
}

// buildVotePrompt asks the model for a guilty/innocent verdict
func buildVotePrompt(input VoteInput) string {
	return fmt.Sprintf(`You are %s playing Spyfall and need to vote on an accusation that has been made.

GAME DESCRIPTION:
%s

LIST OF ALL GAME LOCATIONS:
%s
YOUR CARD:
%s

PREVIOUS Q&A:
%s
ACCUSATION:
%s has accused %s of being the spy.

YOUR TASK:
Decide whether to vote %s guilty of being the spy. Respond with only a JSON object in this exact format:
{"vote_guilty": true, "reasoning": "brief reasoning"}`,
		input.Self.Name,
		gameDescription,
		formatLocations(input.Locations),
		formatRoleCard(input.Card),
		formatHistory(input.History, 0),
		input.Accuser.Name,
		input.Accused.Name,
		input.Accused.Name)
}
