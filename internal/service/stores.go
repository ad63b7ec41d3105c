package service

import (
	"context"
	"time"

	"wordpath/internal/models"
	"wordpath/internal/repository"
)

// The store interfaces cover exactly what the services need from the
// persistence layer. The SQL repositories satisfy them; tests substitute
// in-memory fakes.

// WordStore reads the word catalog and writes crowd-sourced difficulty.
type WordStore interface {
	ByID(id int64) (*models.Word, error)
	ByRank(rank int) (*models.Word, error)
	ClosestInRange(target, lo, hi int) (*models.Word, error)
	RandomInRange(lo, hi int) (*models.Word, error)
	RandomUntriaged(userID int64, unit int) (*models.Word, int, error)
	Count() (int, error)
	CountByUnit() (map[int]int, error)
	ApplyDifficultyLevels(ctx context.Context, levels map[int64]int) error
}

// ProgressStore reads and writes per-(user, word) learning records.
type ProgressStore interface {
	ByUserAndWord(userID, wordID int64) (*models.WordProgress, error)
	Create(p *models.WordProgress) error
	Update(p *models.WordProgress) error
	Due(userID int64, now time.Time, limit int) ([]models.ReviewItem, error)
	ReviewStats(userID int64, now time.Time) (models.ReviewStats, error)
	StatusCounts(userID int64) (map[models.WordStatus]int, error)
	UnitWords(userID int64, unit, limit int) ([]models.UnitWord, error)
	LearnedCountByUnit(userID int64) (map[int]int, error)
	OutcomeCountsByWord(ctx context.Context) ([]models.WordOutcomeCounts, error)
}

// PlacementStore reads and writes placement sessions.
type PlacementStore interface {
	ActiveByUser(userID int64) (*models.PlacementSession, error)
	Create(s *models.PlacementSession) error
	Update(s *models.PlacementSession) error
}

// UserStore reads users and writes their level and activity fields.
type UserStore interface {
	ByID(id int64) (*models.User, error)
	UpdateLevel(userID int64, level int) error
	UpdateActivity(user *models.User) error
	ListWithEmail() ([]models.User, error)
}

var (
	_ WordStore      = (*repository.WordRepository)(nil)
	_ ProgressStore  = (*repository.ProgressRepository)(nil)
	_ PlacementStore = (*repository.PlacementRepository)(nil)
	_ UserStore      = (*repository.UserRepository)(nil)
)
