package service

import (
	"context"
	"sort"
	"time"

	"wordpath/internal/models"
)

// In-memory store fakes. They keep deterministic ordering (slice order /
// lowest ID) where the real repositories randomize, so tests can assert on
// exact picks.

type fakeWordStore struct {
	words         []*models.Word
	triaged       map[int64]bool
	randomInRange [][2]int // recorded (lo, hi) calls
	applied       []map[int64]int
	totalOverride int
}

func newFakeWordStore() *fakeWordStore {
	return &fakeWordStore{triaged: make(map[int64]bool)}
}

func (f *fakeWordStore) add(id int64, unit, rank int) *models.Word {
	word := &models.Word{ID: id, Term: "w", Translation: "t", Unit: unit, DifficultyRank: rank}
	f.words = append(f.words, word)
	return word
}

func (f *fakeWordStore) ByID(id int64) (*models.Word, error) {
	for _, w := range f.words {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWordStore) ByRank(rank int) (*models.Word, error) {
	for _, w := range f.words {
		if w.DifficultyRank == rank {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWordStore) ClosestInRange(target, lo, hi int) (*models.Word, error) {
	var best *models.Word
	bestDist := 0
	for _, w := range f.words {
		if w.DifficultyRank < lo || w.DifficultyRank > hi {
			continue
		}
		dist := w.DifficultyRank - target
		if dist < 0 {
			dist = -dist
		}
		if best == nil || dist < bestDist {
			best = w
			bestDist = dist
		}
	}
	return best, nil
}

func (f *fakeWordStore) RandomInRange(lo, hi int) (*models.Word, error) {
	f.randomInRange = append(f.randomInRange, [2]int{lo, hi})
	for _, w := range f.words {
		if w.DifficultyRank >= lo && w.DifficultyRank <= hi {
			return w, nil
		}
	}
	return nil, nil
}

func (f *fakeWordStore) RandomUntriaged(userID int64, unit int) (*models.Word, int, error) {
	var pick *models.Word
	remaining := 0
	for _, w := range f.words {
		if w.Unit != unit || f.triaged[w.ID] {
			continue
		}
		remaining++
		if pick == nil {
			pick = w
		}
	}
	return pick, remaining, nil
}

func (f *fakeWordStore) Count() (int, error) {
	if f.totalOverride > 0 {
		return f.totalOverride, nil
	}
	return len(f.words), nil
}

func (f *fakeWordStore) CountByUnit() (map[int]int, error) {
	counts := make(map[int]int)
	for _, w := range f.words {
		counts[w.Unit]++
	}
	return counts, nil
}

func (f *fakeWordStore) ApplyDifficultyLevels(_ context.Context, levels map[int64]int) error {
	copied := make(map[int64]int, len(levels))
	for id, level := range levels {
		copied[id] = level
	}
	f.applied = append(f.applied, copied)
	return nil
}

type fakeProgressStore struct {
	records  []*models.WordProgress
	nextID   int64
	outcomes []models.WordOutcomeCounts
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{}
}

func (f *fakeProgressStore) seed(p models.WordProgress) *models.WordProgress {
	f.nextID++
	p.ID = f.nextID
	stored := p
	f.records = append(f.records, &stored)
	return &stored
}

func (f *fakeProgressStore) ByUserAndWord(userID, wordID int64) (*models.WordProgress, error) {
	for _, p := range f.records {
		if p.UserID == userID && p.WordID == wordID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeProgressStore) Create(p *models.WordProgress) error {
	f.nextID++
	p.ID = f.nextID
	stored := *p
	f.records = append(f.records, &stored)
	return nil
}

func (f *fakeProgressStore) Update(p *models.WordProgress) error {
	for i, existing := range f.records {
		if existing.ID == p.ID {
			stored := *p
			f.records[i] = &stored
			return nil
		}
	}
	return nil
}

func (f *fakeProgressStore) Due(userID int64, now time.Time, limit int) ([]models.ReviewItem, error) {
	var items []models.ReviewItem
	for _, p := range f.records {
		if p.UserID != userID {
			continue
		}
		neverScheduled := p.Status == models.StatusLearning && !p.NextReview.Scheduled()
		if p.NextReview.Due(now) || neverScheduled {
			items = append(items, models.ReviewItem{Progress: *p})
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		ai, iOK := items[i].Progress.NextReview.At()
		aj, jOK := items[j].Progress.NextReview.At()
		if iOK != jOK {
			return iOK // scheduled before unscheduled
		}
		return ai.Before(aj)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (f *fakeProgressStore) ReviewStats(userID int64, now time.Time) (models.ReviewStats, error) {
	var stats models.ReviewStats
	for _, p := range f.records {
		if p.UserID != userID {
			continue
		}
		if at, ok := p.NextReview.At(); ok {
			if !at.After(now) {
				stats.DueCount++
			} else if stats.NextDueAt == nil || at.Before(*stats.NextDueAt) {
				next := at
				stats.NextDueAt = &next
			}
		} else if p.Status == models.StatusLearning {
			stats.NewCount++
		}
	}
	return stats, nil
}

func (f *fakeProgressStore) StatusCounts(userID int64) (map[models.WordStatus]int, error) {
	counts := make(map[models.WordStatus]int)
	for _, p := range f.records {
		if p.UserID == userID {
			counts[p.Status]++
		}
	}
	return counts, nil
}

func (f *fakeProgressStore) UnitWords(userID int64, unit, limit int) ([]models.UnitWord, error) {
	return nil, nil
}

func (f *fakeProgressStore) LearnedCountByUnit(userID int64) (map[int]int, error) {
	return map[int]int{}, nil
}

func (f *fakeProgressStore) OutcomeCountsByWord(_ context.Context) ([]models.WordOutcomeCounts, error) {
	return f.outcomes, nil
}

type fakePlacementStore struct {
	sessions []*models.PlacementSession
	nextID   int64
	created  int
}

func newFakePlacementStore() *fakePlacementStore {
	return &fakePlacementStore{}
}

func copySession(s *models.PlacementSession) *models.PlacementSession {
	copied := *s
	if s.FinalLevel != nil {
		level := *s.FinalLevel
		copied.FinalLevel = &level
	}
	return &copied
}

func (f *fakePlacementStore) ActiveByUser(userID int64) (*models.PlacementSession, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.Active {
			return copySession(s), nil
		}
	}
	return nil, nil
}

func (f *fakePlacementStore) Create(s *models.PlacementSession) error {
	f.nextID++
	f.created++
	s.ID = f.nextID
	f.sessions = append(f.sessions, copySession(s))
	return nil
}

func (f *fakePlacementStore) Update(s *models.PlacementSession) error {
	for i, existing := range f.sessions {
		if existing.ID == s.ID {
			f.sessions[i] = copySession(s)
			return nil
		}
	}
	return nil
}

type fakeUserStore struct {
	users        map[int64]*models.User
	levelUpdates map[int64]int
	activitySave int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:        make(map[int64]*models.User),
		levelUpdates: make(map[int64]int),
	}
}

func copyUser(u *models.User) *models.User {
	copied := *u
	if u.LastActiveDate != nil {
		t := *u.LastActiveDate
		copied.LastActiveDate = &t
	}
	if u.LastGoalDate != nil {
		t := *u.LastGoalDate
		copied.LastGoalDate = &t
	}
	return &copied
}

func (f *fakeUserStore) seed(u models.User) *models.User {
	stored := copyUser(&u)
	f.users[u.ID] = stored
	return stored
}

func (f *fakeUserStore) ByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (f *fakeUserStore) UpdateLevel(userID int64, level int) error {
	f.levelUpdates[userID] = level
	if u, ok := f.users[userID]; ok {
		u.Level = level
	}
	return nil
}

func (f *fakeUserStore) UpdateActivity(user *models.User) error {
	f.activitySave++
	f.users[user.ID] = copyUser(user)
	return nil
}

func (f *fakeUserStore) ListWithEmail() ([]models.User, error) {
	var ids []int64
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var users []models.User
	for _, id := range ids {
		u := f.users[id]
		if u.Email != "" {
			users = append(users, *copyUser(u))
		}
	}
	return users, nil
}
