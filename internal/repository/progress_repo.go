package repository

import (
	"context"
	"database/sql"
	"time"
	"wordpath/internal/database"
	"wordpath/internal/models"
)

// ProgressRepository handles word progress database operations
type ProgressRepository struct {
	db *database.DB
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db *database.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressColumns = `id, user_id, word_id, status, next_review,
	repetitions, easiness_factor, interval_days, created_at, updated_at`

// nextReviewValue converts the tagged scheduling state to a nullable column value
func nextReviewValue(n models.NextReview) interface{} {
	if at, ok := n.At(); ok {
		return at.UTC()
	}
	return nil
}

// nextReviewFromColumn converts a nullable column value to the tagged state
func nextReviewFromColumn(t sql.NullTime) models.NextReview {
	if t.Valid {
		return models.ScheduledAt(t.Time)
	}
	return models.Unscheduled()
}

func scanProgressFields(p *models.WordProgress, status *string, next *sql.NullTime) []interface{} {
	return []interface{}{
		&p.ID,
		&p.UserID,
		&p.WordID,
		status,
		next,
		&p.SRS.Repetitions,
		&p.SRS.EasinessFactor,
		&p.SRS.IntervalDays,
		&p.CreatedAt,
		&p.UpdatedAt,
	}
}

// ByUserAndWord retrieves the progress record for a (user, word) pair, or
// nil if the pair has never been triaged or reviewed
func (r *ProgressRepository) ByUserAndWord(userID, wordID int64) (*models.WordProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM word_progress WHERE user_id = ? AND word_id = ?`

	p := &models.WordProgress{}
	var status string
	var next sql.NullTime

	err := r.db.QueryRow(query, userID, wordID).Scan(scanProgressFields(p, &status, &next)...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Status = models.WordStatus(status)
	p.NextReview = nextReviewFromColumn(next)
	return p, nil
}

// Create inserts a new progress record and fills in its ID
func (r *ProgressRepository) Create(p *models.WordProgress) error {
	query := `
		INSERT INTO word_progress (user_id, word_id, status, next_review,
			repetitions, easiness_factor, interval_days)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		p.UserID,
		p.WordID,
		string(p.Status),
		nextReviewValue(p.NextReview),
		p.SRS.Repetitions,
		p.SRS.EasinessFactor,
		p.SRS.IntervalDays,
	)
	if err != nil {
		return err
	}

	p.ID = id
	return nil
}

// Update modifies an existing progress record
func (r *ProgressRepository) Update(p *models.WordProgress) error {
	query := `
		UPDATE word_progress
		SET status = ?, next_review = ?, repetitions = ?, easiness_factor = ?,
			interval_days = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		string(p.Status),
		nextReviewValue(p.NextReview),
		p.SRS.Repetitions,
		p.SRS.EasinessFactor,
		p.SRS.IntervalDays,
		p.ID,
	)
	return err
}

// Due retrieves the user's review feed: scheduled records that are due, plus
// Learning records that were never scheduled. Overdue records come first,
// never-scheduled ones last.
func (r *ProgressRepository) Due(userID int64, now time.Time, limit int) ([]models.ReviewItem, error) {
	query := `
		SELECT wp.id, wp.user_id, wp.word_id, wp.status, wp.next_review,
		       wp.repetitions, wp.easiness_factor, wp.interval_days,
		       wp.created_at, wp.updated_at,
		       w.id, w.term, w.translation, w.unit, w.difficulty_rank,
		       w.difficulty_level, w.example_sentence, w.audio_url,
		       w.created_at, w.updated_at
		FROM word_progress wp
		JOIN words w ON w.id = wp.word_id
		WHERE wp.user_id = ?
		  AND (wp.next_review <= ? OR (wp.status = 'Learning' AND wp.next_review IS NULL))
		ORDER BY CASE WHEN wp.next_review IS NULL THEN 1 ELSE 0 END, wp.next_review ASC
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, now.UTC(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ReviewItem
	for rows.Next() {
		var item models.ReviewItem
		var status string
		var next sql.NullTime
		var level sql.NullInt64

		dest := scanProgressFields(&item.Progress, &status, &next)
		dest = append(dest,
			&item.Word.ID,
			&item.Word.Term,
			&item.Word.Translation,
			&item.Word.Unit,
			&item.Word.DifficultyRank,
			&level,
			&item.Word.ExampleSentence,
			&item.Word.AudioURL,
			&item.Word.CreatedAt,
			&item.Word.UpdatedAt,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}

		item.Progress.Status = models.WordStatus(status)
		item.Progress.NextReview = nextReviewFromColumn(next)
		if level.Valid {
			l := int(level.Int64)
			item.Word.DifficultyLevel = &l
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ReviewStats returns queue statistics: due count, never-scheduled Learning
// count, and the earliest upcoming review after now (nil if none)
func (r *ProgressRepository) ReviewStats(userID int64, now time.Time) (models.ReviewStats, error) {
	var stats models.ReviewStats
	utcNow := now.UTC()

	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM word_progress
		WHERE user_id = ? AND next_review IS NOT NULL AND next_review <= ?
	`, userID, utcNow).Scan(&stats.DueCount)
	if err != nil {
		return stats, err
	}

	err = r.db.QueryRow(`
		SELECT COUNT(*) FROM word_progress
		WHERE user_id = ? AND status = 'Learning' AND next_review IS NULL
	`, userID).Scan(&stats.NewCount)
	if err != nil {
		return stats, err
	}

	var next sql.NullTime
	err = r.db.QueryRow(`
		SELECT MIN(next_review) FROM word_progress
		WHERE user_id = ? AND next_review > ?
	`, userID, utcNow).Scan(&next)
	if err != nil {
		return stats, err
	}
	if next.Valid {
		stats.NextDueAt = &next.Time
	}

	return stats, nil
}

// StatusCounts returns the user's progress row counts grouped by status
func (r *ProgressRepository) StatusCounts(userID int64) (map[models.WordStatus]int, error) {
	rows, err := r.db.Query(`
		SELECT status, COUNT(*) FROM word_progress
		WHERE user_id = ?
		GROUP BY status
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.WordStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[models.WordStatus(status)] = count
	}
	return counts, rows.Err()
}

// UnitWords retrieves the words of a unit paired with the user's progress.
// Progress is nil for words the user has never touched.
func (r *ProgressRepository) UnitWords(userID int64, unit, limit int) ([]models.UnitWord, error) {
	query := `
		SELECT w.id, w.term, w.translation, w.unit, w.difficulty_rank,
		       w.difficulty_level, w.example_sentence, w.audio_url,
		       w.created_at, w.updated_at,
		       wp.id, wp.user_id, wp.word_id, wp.status, wp.next_review,
		       wp.repetitions, wp.easiness_factor, wp.interval_days,
		       wp.created_at, wp.updated_at
		FROM words w
		LEFT JOIN word_progress wp ON wp.word_id = w.id AND wp.user_id = ?
		WHERE w.unit = ?
		ORDER BY w.id
		LIMIT ?
	`

	rows, err := r.db.Query(query, userID, unit, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.UnitWord
	for rows.Next() {
		var item models.UnitWord
		var level sql.NullInt64
		var pID, pUserID, pWordID sql.NullInt64
		var pStatus sql.NullString
		var pNext sql.NullTime
		var pReps, pInterval sql.NullInt64
		var pEF sql.NullFloat64
		var pCreated, pUpdated sql.NullTime

		err := rows.Scan(
			&item.Word.ID,
			&item.Word.Term,
			&item.Word.Translation,
			&item.Word.Unit,
			&item.Word.DifficultyRank,
			&level,
			&item.Word.ExampleSentence,
			&item.Word.AudioURL,
			&item.Word.CreatedAt,
			&item.Word.UpdatedAt,
			&pID, &pUserID, &pWordID, &pStatus, &pNext,
			&pReps, &pEF, &pInterval, &pCreated, &pUpdated,
		)
		if err != nil {
			return nil, err
		}

		if level.Valid {
			l := int(level.Int64)
			item.Word.DifficultyLevel = &l
		}

		if pID.Valid {
			item.Progress = &models.WordProgress{
				ID:         pID.Int64,
				UserID:     pUserID.Int64,
				WordID:     pWordID.Int64,
				Status:     models.WordStatus(pStatus.String),
				NextReview: nextReviewFromColumn(pNext),
				SRS: models.SRSState{
					Repetitions:    int(pReps.Int64),
					EasinessFactor: pEF.Float64,
					IntervalDays:   int(pInterval.Int64),
				},
				CreatedAt: pCreated.Time,
				UpdatedAt: pUpdated.Time,
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// LearnedCountByUnit returns, per unit, how many of the user's words have
// reached Review or Mastered
func (r *ProgressRepository) LearnedCountByUnit(userID int64) (map[int]int, error) {
	rows, err := r.db.Query(`
		SELECT w.unit, COUNT(*)
		FROM word_progress wp
		JOIN words w ON w.id = wp.word_id
		WHERE wp.user_id = ? AND wp.status IN ('Review', 'Mastered')
		GROUP BY w.unit
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var unit, count int
		if err := rows.Scan(&unit, &count); err != nil {
			return nil, err
		}
		counts[unit] = count
	}
	return counts, rows.Err()
}

// OutcomeCountsByWord aggregates, across all users, each word's total
// progress rows and successful (Review or Mastered) rows. Words nobody has
// touched do not appear.
func (r *ProgressRepository) OutcomeCountsByWord(ctx context.Context) ([]models.WordOutcomeCounts, error) {
	query := `
		SELECT word_id,
		       COUNT(*),
		       SUM(CASE WHEN status IN ('Review', 'Mastered') THEN 1 ELSE 0 END)
		FROM word_progress
		WHERE status IN ('Learning', 'Review', 'Mastered')
		GROUP BY word_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []models.WordOutcomeCounts
	for rows.Next() {
		var c models.WordOutcomeCounts
		if err := rows.Scan(&c.WordID, &c.Total, &c.Successes); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
