package service

import (
	"fmt"
	"sync"

	"wordpath/internal/models"
)

const (
	// Stop once the search range shrinks below this many ranks.
	placementMinRange = 5
	// Hard cap on questions per session.
	placementMaxQuestions = 20

	// Every 5th question probes below the established floor to catch
	// lucky guesses.
	regressionInterval = 5
	// The probe targets 20% below the current lower bound.
	regressionFactor = 0.20
	// The probe picks randomly within +-5 ranks of the target.
	regressionSpread = 5
)

// PlacementStep is the state returned after starting a session or answering
// a question. Word is nil once the session is complete.
type PlacementStep struct {
	Session    *models.PlacementSession
	Word       *models.Word
	IsComplete bool
	Message    string
}

// PlacementService runs the adaptive placement test: a binary search over
// the 1-100 difficulty axis with periodic regression checks.
type PlacementService struct {
	sessions PlacementStore
	words    WordStore
	users    UserStore

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
}

// NewPlacementService creates a new placement service.
func NewPlacementService(sessions PlacementStore, words WordStore, users UserStore) *PlacementService {
	return &PlacementService{
		sessions:  sessions,
		words:     words,
		users:     users,
		userLocks: make(map[int64]*sync.Mutex),
	}
}

// lockFor returns the per-user mutex guarding the session's
// read-modify-write cycle. Two concurrent answers for the same user must
// not both read the same bounds.
func (s *PlacementService) lockFor(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// Start begins a placement session, or resumes the user's existing active
// one. Starting is idempotent: at most one active session per user.
func (s *PlacementService) Start(userID int64) (*PlacementStep, error) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.ActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		session = &models.PlacementSession{
			UserID:     userID,
			LowerBound: models.MinDifficultyRank,
			UpperBound: models.MaxDifficultyRank,
			Active:     true,
		}
		if err := s.sessions.Create(session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
	}

	word, err := s.nextWord(session)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, ErrNoPlacementWords
	}

	return &PlacementStep{
		Session: session,
		Word:    word,
		Message: fmt.Sprintf("Placement test started. Question %d of up to %d.", session.QuestionCount+1, placementMaxQuestions),
	}, nil
}

// SubmitAnswer records whether the user knew the current word and advances
// the binary search. Knowing the word raises the lower bound above the
// midpoint; not knowing it drops the upper bound to the midpoint. The
// session completes when the range collapses or the question cap is hit,
// and the final level is written back to the user.
func (s *PlacementService) SubmitAnswer(userID int64, isKnown bool) (*PlacementStep, error) {
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.sessions.ActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}

	mid := session.Midpoint()
	if isKnown {
		session.LowerBound = mid + 1
	} else {
		session.UpperBound = mid
	}
	session.QuestionCount++

	if session.RangeSize() < placementMinRange || session.QuestionCount >= placementMaxQuestions {
		if err := s.finalize(session); err != nil {
			return nil, err
		}
		return &PlacementStep{
			Session:    session,
			IsComplete: true,
			Message: fmt.Sprintf(
				"Placement test complete! Your vocabulary level has been determined: Level %d. You answered %d questions.",
				*session.FinalLevel, session.QuestionCount),
		}, nil
	}

	if err := s.sessions.Update(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	word, err := s.nextWord(session)
	if err != nil {
		return nil, err
	}
	if word == nil {
		// Catalog exhausted inside the remaining range
		if err := s.finalize(session); err != nil {
			return nil, err
		}
		return &PlacementStep{
			Session:    session,
			IsComplete: true,
			Message: fmt.Sprintf(
				"Placement test complete (no more suitable words). Your vocabulary level: Level %d.",
				*session.FinalLevel),
		}, nil
	}

	hint := ""
	if s.isRegressionQuestion(session) {
		hint = " (Regression check)"
	}
	return &PlacementStep{
		Session: session,
		Word:    word,
		Message: fmt.Sprintf("Question %d of up to %d%s. Current range: [%d, %d]",
			session.QuestionCount+1, placementMaxQuestions, hint,
			session.LowerBound, session.UpperBound),
	}, nil
}

// ActiveSession returns the user's active session.
func (s *PlacementService) ActiveSession(userID int64) (*models.PlacementSession, error) {
	session, err := s.sessions.ActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrNoActiveSession
	}
	return session, nil
}

// finalize deactivates the session, fixes the final level at the midpoint
// of the remaining range, and propagates it to the user row.
func (s *PlacementService) finalize(session *models.PlacementSession) error {
	final := session.Midpoint()
	session.Active = false
	session.FinalLevel = &final

	if err := s.sessions.Update(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.users.UpdateLevel(session.UserID, final); err != nil {
		return fmt.Errorf("failed to update user level: %w", err)
	}
	return nil
}

// isRegressionQuestion reports whether the upcoming question is a
// regression check: every 5th question, once a floor above rank 1 exists.
func (s *PlacementService) isRegressionQuestion(session *models.PlacementSession) bool {
	return (session.QuestionCount+1)%regressionInterval == 0 && session.LowerBound > models.MinDifficultyRank
}

// nextWord selects the upcoming question's word. Regression questions draw
// randomly from a window around 20% below the current floor; normal
// questions prefer the exact midpoint rank and fall back to the nearest
// ranked word inside the range.
func (s *PlacementService) nextWord(session *models.PlacementSession) (*models.Word, error) {
	if s.isRegressionQuestion(session) {
		target := int(float64(session.LowerBound) * (1 - regressionFactor))
		if target < models.MinDifficultyRank {
			target = models.MinDifficultyRank
		}

		lo := target - regressionSpread
		if lo < models.MinDifficultyRank {
			lo = models.MinDifficultyRank
		}
		hi := target + regressionSpread
		if hi > session.LowerBound-1 {
			hi = session.LowerBound - 1
		}

		if lo <= hi {
			word, err := s.words.RandomInRange(lo, hi)
			if err != nil {
				return nil, fmt.Errorf("failed to pick regression word: %w", err)
			}
			if word != nil {
				return word, nil
			}
		}
	}

	mid := session.Midpoint()
	word, err := s.words.ByRank(mid)
	if err != nil {
		return nil, fmt.Errorf("failed to pick placement word: %w", err)
	}
	if word != nil {
		return word, nil
	}

	word, err = s.words.ClosestInRange(mid, session.LowerBound, session.UpperBound)
	if err != nil {
		return nil, fmt.Errorf("failed to pick placement word: %w", err)
	}
	return word, nil
}
