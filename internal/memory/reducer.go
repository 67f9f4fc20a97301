package memory

import "github.com/google/uuid"

// Reduce applies a to s and returns the next state. It never mutates s:
// any slice it changes is copied first. Actions that do not apply to the
// current state return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case StartGame:
		return startGame(s, a)
	case FlipCard:
		return flipCard(s, a)
	case CheckMatch:
		return checkMatch(s, a)
	case ResetFlippedCards:
		return resetFlipped(s)
	case ResetGame:
		return NewState(s.BestScores)
	case UpdateBestScore:
		return updateBestScore(s)
	default:
		return s
	}
}

func startGame(s State, a StartGame) State {
	at := a.At
	s.Cards = append([]Card(nil), a.Deck...)
	s.Moves = 0
	s.MatchedPairs = 0
	s.IsPlaying = true
	s.Difficulty = a.Difficulty
	s.StartTime = &at
	s.EndTime = nil
	s.FlippedCards = nil
	s.Mismatched = nil
	return s
}

func flipCard(s State, a FlipCard) State {
	idx := s.CardIndex(a.CardID)
	if idx < 0 {
		return s
	}
	card := s.Cards[idx]
	if card.IsMatched || len(s.FlippedCards) >= 2 || s.IsSelected(card.ID) {
		return s
	}

	card.IsFlipped = true
	s.Cards = replaceCard(s.Cards, idx, card)

	flipped := make([]Card, 0, 2)
	flipped = append(flipped, s.FlippedCards...)
	s.FlippedCards = append(flipped, card)

	// A move is a completed pair attempt, not a single flip.
	if len(s.FlippedCards) == 2 {
		s.Moves++
	}
	return s
}

func checkMatch(s State, a CheckMatch) State {
	if len(s.FlippedCards) != 2 {
		return s
	}
	first, second := s.FlippedCards[0], s.FlippedCards[1]
	isMatch := first.Value == second.Value

	cards := append([]Card(nil), s.Cards...)
	for i := range cards {
		if cards[i].ID != first.ID && cards[i].ID != second.ID {
			continue
		}
		if isMatch {
			cards[i].IsMatched = true
			cards[i].IsFlipped = true
		}
	}
	s.Cards = cards
	s.FlippedCards = nil

	if !isMatch {
		s.Mismatched = []uuid.UUID{first.ID, second.ID}
		return s
	}

	s.MatchedPairs++
	if s.MatchedPairs == s.TotalPairs() && s.EndTime == nil {
		at := a.At
		s.EndTime = &at
	}
	return s
}

func resetFlipped(s State) State {
	if len(s.FlippedCards) == 0 && len(s.Mismatched) == 0 {
		return s
	}

	pending := make(map[uuid.UUID]struct{}, len(s.FlippedCards)+len(s.Mismatched))
	for _, c := range s.FlippedCards {
		pending[c.ID] = struct{}{}
	}
	for _, id := range s.Mismatched {
		pending[id] = struct{}{}
	}

	cards := append([]Card(nil), s.Cards...)
	for i := range cards {
		if _, ok := pending[cards[i].ID]; ok && !cards[i].IsMatched {
			cards[i].IsFlipped = false
		}
	}
	s.Cards = cards
	s.FlippedCards = nil
	s.Mismatched = nil
	return s
}

func updateBestScore(s State) State {
	elapsed, ok := s.Duration()
	if !ok {
		return s
	}
	if best := s.BestScores.Get(s.Difficulty); best != nil && elapsed >= *best {
		return s
	}
	s.BestScores = s.BestScores.With(s.Difficulty, elapsed)
	return s
}

func replaceCard(cards []Card, idx int, c Card) []Card {
	out := append([]Card(nil), cards...)
	out[idx] = c
	return out
}
