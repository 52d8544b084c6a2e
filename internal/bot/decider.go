// Package bot provides the decision collaborator consulted for autonomous
// players: given a view of the game, it chooses questions, answers, votes
// and accusations. The scheduler treats every failure mode the same way —
// the bot simply takes no action this tick.
package bot

import (
	"context"
	"errors"
)

// ErrNoDecision signals that the collaborator could not produce a usable,
// legal decision. Callers treat it exactly like a timeout: the bot
// abstains and the game waits for the next trigger.
var ErrNoDecision = errors.New("bot: no decision")

// PlayerRef identifies a player in decision inputs
type PlayerRef struct {
	ID   string
	Name string
}

// RoleCard is the acting bot's secret information. Location and Role are
// empty for the spy.
type RoleCard struct {
	IsSpy    bool
	Location string
	Role     string
}

// Exchange is one transcript entry as shown to the model
type Exchange struct {
	Kind    string // "question" or "answer"
	From    string // Display name
	To      string // Display name, may be empty
	Content string
}

// QuestionInput asks the collaborator to pick a target and a question
type QuestionInput struct {
	Self      PlayerRef
	Card      RoleCard
	Targets   []PlayerRef // The only legal targets
	History   []Exchange
	Locations []string
}

// QuestionDecision is the chosen target and question text
type QuestionDecision struct {
	TargetID string
	Question string
}

// AnswerInput asks the collaborator to answer the open question
type AnswerInput struct {
	Self      PlayerRef
	Card      RoleCard
	Asker     PlayerRef
	Question  string
	History   []Exchange
	Locations []string
}

// AnswerDecision is the answer text
type AnswerDecision struct {
	Answer string
}

// AccusationInput asks the collaborator whether to accuse and whom.
// MustAccuse is set during end-of-round voting, where declining only
// delays the bot's mandatory accusation.
type AccusationInput struct {
	Self       PlayerRef
	Card       RoleCard
	Targets    []PlayerRef // The only legal targets
	History    []Exchange
	Locations  []string
	MustAccuse bool
}

// AccusationDecision is the verdict on whether to accuse
type AccusationDecision struct {
	Accuse    bool
	TargetID  string
	Reasoning string
}

// VoteInput asks the collaborator for a guilty/innocent verdict on the
// pending accusation
type VoteInput struct {
	Self      PlayerRef
	Card      RoleCard
	Accuser   PlayerRef
	Accused   PlayerRef
	History   []Exchange
	Locations []string
}

// VoteDecision is the verdict
type VoteDecision struct {
	Guilty    bool
	Reasoning string
}

// Decider produces decisions for autonomous players. Implementations must
// respect ctx deadlines and return ErrNoDecision (possibly wrapped) when
// no structurally valid, legal decision is available.
type Decider interface {
	ChooseQuestion(ctx context.Context, input QuestionInput) (QuestionDecision, error)
	ComposeAnswer(ctx context.Context, input AnswerInput) (AnswerDecision, error)
	ConsiderAccusation(ctx context.Context, input AccusationInput) (AccusationDecision, error)
	DecideVote(ctx context.Context, input VoteInput) (VoteDecision, error)
}
