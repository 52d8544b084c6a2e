package app

import (
	"context"
	"time"

	"spyfall/internal/bot"
	"spyfall/internal/domain"
)

// botAction is the kind of move a bot currently owes the game
type botAction int

const (
	botActionNone botAction = iota
	botActionAnswer
	botActionAsk    // May turn into a mid-round accusation instead
	botActionVote
	botActionAccuse // Mandatory end-of-round accusation
)

// owedBotActionLocked determines whether any bot owes the game a move right
// now, and which bot it is. At most one bot acts per scheduling pass; chained
// bot turns drain one action at a time through rescheduling. Caller must
// hold mu.
func (s *GameSession) owedBotActionLocked() (botAction, *domain.Player) {
	if s.cfg.Decider == nil || s.game.Finished() {
		return botActionNone, nil
	}

	switch s.game.Phase {
	case domain.PhaseVoting, domain.PhaseEndOfRoundVoting:
		if accusation := s.game.CurrentAccusation(); accusation != nil {
			for _, p := range s.game.Players {
				if p.IsBot && p.ID != accusation.AccusedID && !accusation.HasVoted(p.ID) {
					return botActionVote, p
				}
			}
			return botActionNone, nil
		}
		if s.game.Phase == domain.PhaseEndOfRoundVoting {
			if p, err := s.game.GetPlayer(s.game.CurrentTurn); err == nil && p.IsBot {
				return botActionAccuse, p
			}
		}

	case domain.PhaseInProgress:
		if s.game.ClockStopped {
			return botActionNone, nil
		}
		p, err := s.game.GetPlayer(s.game.CurrentTurn)
		if err != nil || !p.IsBot {
			return botActionNone, nil
		}
		if s.game.PendingQuestionFor(p.ID) != nil {
			return botActionAnswer, p
		}
		return botActionAsk, p
	}

	return botActionNone, nil
}

// scheduleBotActionLocked cancels any pending bot move and, if a bot owes
// the game an action, schedules it after the thinking delay. The current
// generation is captured so the move is dropped if the game changes before
// it lands. Caller must hold mu.
func (s *GameSession) scheduleBotActionLocked() {
	s.stopBotTimerLocked()

	action, player := s.owedBotActionLocked()
	if action == botActionNone {
		return
	}

	gen := s.generation
	playerID := player.ID
	s.botTimer = time.AfterFunc(s.cfg.ThinkingDelay, func() {
		s.runBotAction(gen, action, playerID)
	})
}

// stopBotTimerLocked cancels the pending bot move, if any. Caller must
// hold mu.
func (s *GameSession) stopBotTimerLocked() {
	if s.botTimer != nil {
		s.botTimer.Stop()
		s.botTimer = nil
	}
}

// runBotAction executes a scheduled bot move: snapshot the inputs under the
// lock, consult the decider with the lock released, then reacquire the lock
// and apply the move only if the game has not changed in the meantime. Any
// failure leaves the game untouched and schedules a retry.
func (s *GameSession) runBotAction(gen uint64, action botAction, playerID string) {
	select {
	case <-s.done:
		return
	default:
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	player, err := s.game.GetPlayer(playerID)
	if err != nil {
		s.mu.Unlock()
		return
	}

	switch action {
	case botActionAnswer:
		input, ok := s.answerInputLocked(player)
		s.mu.Unlock()
		if !ok {
			return
		}
		s.runBotAnswer(gen, playerID, input)

	case botActionAsk:
		var accusationInput *bot.AccusationInput
		if !player.HasAccusedThisRound && s.game.QARoundsCompleted >= 1 {
			in := s.accusationInputLocked(player, false)
			accusationInput = &in
		}
		questionInput := s.questionInputLocked(player)
		s.mu.Unlock()
		s.runBotAsk(gen, playerID, accusationInput, questionInput)

	case botActionVote:
		input, ok := s.voteInputLocked(player)
		s.mu.Unlock()
		if !ok {
			return
		}
		s.runBotVote(gen, playerID, input)

	case botActionAccuse:
		input := s.accusationInputLocked(player, true)
		s.mu.Unlock()
		s.runBotAccuse(gen, playerID, input)

	default:
		s.mu.Unlock()
	}
}

func (s *GameSession) runBotAnswer(gen uint64, playerID string, input bot.AnswerInput) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.DecisionTimeout)
	decision, err := s.cfg.Decider.ComposeAnswer(ctx, input)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err != nil {
		s.logger.Warn("bot answer failed", "playerID", playerID, "error", err)
		s.scheduleBotActionLocked()
		return
	}

	if err := s.game.GiveAnswer(playerID, decision.Answer); err != nil {
		s.logger.Warn("bot answer rejected", "playerID", playerID, "error", err)
		s.scheduleBotActionLocked()
		return
	}
	s.afterActionLocked(domain.EventAnswerGiven, s.lastMessageViewLocked())
}

// runBotAsk first gives an eligible bot the chance to accuse; if it
// declines, it asks its question
func (s *GameSession) runBotAsk(gen uint64, playerID string, accusationInput *bot.AccusationInput, questionInput bot.QuestionInput) {
	if accusationInput != nil {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.DecisionTimeout)
		decision, err := s.cfg.Decider.ConsiderAccusation(ctx, *accusationInput)
		cancel()

		if err == nil && decision.Accuse {
			s.mu.Lock()
			defer s.mu.Unlock()
			if gen != s.generation {
				return
			}
			if err := s.game.StopClockForAccusation(playerID, decision.TargetID); err != nil {
				s.logger.Warn("bot accusation rejected", "playerID", playerID, "error", err)
				s.scheduleBotActionLocked()
				return
			}
			s.afterActionLocked(domain.EventAccusationMade, map[string]string{
				"accuser": playerID,
				"accused": decision.TargetID,
			})
			return
		}
		// Errors count as declining: the bot falls through to its question
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.DecisionTimeout)
	decision, err := s.cfg.Decider.ChooseQuestion(ctx, questionInput)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err != nil {
		s.logger.Warn("bot question failed", "playerID", playerID, "error", err)
		s.scheduleBotActionLocked()
		return
	}

	if err := s.game.AskQuestion(playerID, decision.TargetID, decision.Question); err != nil {
		s.logger.Warn("bot question rejected", "playerID", playerID, "error", err)
		s.scheduleBotActionLocked()
		return
	}
	s.afterActionLocked(domain.EventQuestionAsked, s.lastMessageViewLocked())
}

func (s *GameSession) runBotVote(gen uint64, playerID string, input bot.VoteInput) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.DecisionTimeout)
	decision, err := s.cfg.Decider.DecideVote(ctx, input)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err != nil {
		s.logger.Warn("bot vote failed", "playerID", playerID, "error", err)
		s.scheduleBotActionLocked()
		return
	}

	switch s.game.Phase {
	case domain.PhaseVoting:
		err = s.game.VoteOnAccusation(playerID, decision.Guilty)
	case domain.PhaseEndOfRoundVoting:
		err = s.game.VoteOnEndOfRoundAccusation(playerID, decision.Guilty)
	default:
		return
	}
	if err != nil {
		s.logger.Warn("bot vote rejected", "playerID", playerID, "error", err)
		s.scheduleBotActionLocked()
		return
	}
	s.afterActionLocked(domain.EventVoteCast, map[string]interface{}{
		"voter":  playerID,
		"guilty": decision.Guilty,
	})
}

// runBotAccuse handles the mandatory end-of-round accusation. A bot that
// produces no usable suspect simply retries; the rotation cannot advance
// without its accusation.
func (s *GameSession) runBotAccuse(gen uint64, playerID string, input bot.AccusationInput) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.DecisionTimeout)
	decision, err := s.cfg.Decider.ConsiderAccusation(ctx, input)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return
	}
	if err != nil || !decision.Accuse {
		s.logger.Warn("bot end-of-round accusation failed", "playerID", playerID, "error", err)
		s.scheduleBotActionLocked()
		return
	}

	if err := s.game.MakeEndOfRoundAccusation(playerID, decision.TargetID); err != nil {
		s.logger.Warn("bot end-of-round accusation rejected", "playerID", playerID, "error", err)
		s.scheduleBotActionLocked()
		return
	}
	s.afterActionLocked(domain.EventAccusationMade, map[string]string{
		"accuser": playerID,
		"accused": decision.TargetID,
	})
}

// Input builders. All run under mu and copy what they need, so the decider
// call can proceed with the lock released.

func (s *GameSession) nameOfLocked(playerID string) string {
	if p, err := s.game.GetPlayer(playerID); err == nil {
		return p.Name
	}
	return playerID
}

func (s *GameSession) roleCardLocked(p *domain.Player) bot.RoleCard {
	card := bot.RoleCard{IsSpy: p.Role == domain.RoleSpy}
	if !card.IsSpy && s.game.Location != nil {
		card.Location = s.game.Location.Name
		card.Role = p.LocationRole
	}
	return card
}

func (s *GameSession) historyLocked() []bot.Exchange {
	history := make([]bot.Exchange, 0, len(s.game.Messages))
	for _, m := range s.game.Messages {
		history = append(history, bot.Exchange{
			Kind:    string(m.Kind),
			From:    s.nameOfLocked(m.From),
			To:      s.nameOfLocked(m.To),
			Content: m.Content,
		})
	}
	return history
}

// targetsLocked lists every player except self and the excluded ids
func (s *GameSession) targetsLocked(selfID string, exclude ...string) []bot.PlayerRef {
	targets := make([]bot.PlayerRef, 0, len(s.game.Players))
	for _, p := range s.game.Players {
		if p.ID == selfID {
			continue
		}
		skip := false
		for _, ex := range exclude {
			if p.ID == ex {
				skip = true
				break
			}
		}
		if !skip {
			targets = append(targets, bot.PlayerRef{ID: p.ID, Name: p.Name})
		}
	}
	return targets
}

func (s *GameSession) questionInputLocked(p *domain.Player) bot.QuestionInput {
	return bot.QuestionInput{
		Self:      bot.PlayerRef{ID: p.ID, Name: p.Name},
		Card:      s.roleCardLocked(p),
		Targets:   s.targetsLocked(p.ID, s.game.LastQuestionedBy),
		History:   s.historyLocked(),
		Locations: domain.LocationNames(),
	}
}

func (s *GameSession) answerInputLocked(p *domain.Player) (bot.AnswerInput, bool) {
	question := s.game.PendingQuestionFor(p.ID)
	if question == nil {
		return bot.AnswerInput{}, false
	}
	return bot.AnswerInput{
		Self:      bot.PlayerRef{ID: p.ID, Name: p.Name},
		Card:      s.roleCardLocked(p),
		Asker:     bot.PlayerRef{ID: question.From, Name: s.nameOfLocked(question.From)},
		Question:  question.Content,
		History:   s.historyLocked(),
		Locations: domain.LocationNames(),
	}, true
}

func (s *GameSession) accusationInputLocked(p *domain.Player, mustAccuse bool) bot.AccusationInput {
	return bot.AccusationInput{
		Self:       bot.PlayerRef{ID: p.ID, Name: p.Name},
		Card:       s.roleCardLocked(p),
		Targets:    s.targetsLocked(p.ID),
		History:    s.historyLocked(),
		Locations:  domain.LocationNames(),
		MustAccuse: mustAccuse,
	}
}

func (s *GameSession) voteInputLocked(p *domain.Player) (bot.VoteInput, bool) {
	accusation := s.game.CurrentAccusation()
	if accusation == nil {
		return bot.VoteInput{}, false
	}
	return bot.VoteInput{
		Self:      bot.PlayerRef{ID: p.ID, Name: p.Name},
		Card:      s.roleCardLocked(p),
		Accuser:   bot.PlayerRef{ID: accusation.AccuserID, Name: s.nameOfLocked(accusation.AccuserID)},
		Accused:   bot.PlayerRef{ID: accusation.AccusedID, Name: s.nameOfLocked(accusation.AccusedID)},
		History:   s.historyLocked(),
		Locations: domain.LocationNames(),
	}, true
}
