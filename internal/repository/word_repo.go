package repository

import (
	"context"
	"database/sql"
	"fmt"
	"wordpath/internal/database"
	"wordpath/internal/models"
)

// WordRepository handles word catalog database operations
type WordRepository struct {
	db *database.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *database.DB) *WordRepository {
	return &WordRepository{db: db}
}

const wordColumns = `id, term, translation, unit, difficulty_rank, difficulty_level,
	example_sentence, audio_url, created_at, updated_at`

func scanWord(row *sql.Row) (*models.Word, error) {
	word := &models.Word{}
	var level sql.NullInt64

	err := row.Scan(
		&word.ID,
		&word.Term,
		&word.Translation,
		&word.Unit,
		&word.DifficultyRank,
		&level,
		&word.ExampleSentence,
		&word.AudioURL,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if level.Valid {
		l := int(level.Int64)
		word.DifficultyLevel = &l
	}
	return word, nil
}

// ByID retrieves a word by ID, or nil if it does not exist
func (r *WordRepository) ByID(id int64) (*models.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = ?`
	return scanWord(r.db.QueryRow(query, id))
}

// ByRank retrieves a word at the exact difficulty rank, or nil if none exists
func (r *WordRepository) ByRank(rank int) (*models.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE difficulty_rank = ? LIMIT 1`
	return scanWord(r.db.QueryRow(query, rank))
}

// ClosestInRange retrieves the word within [lo, hi] whose difficulty rank is
// nearest to target, or nil if the range holds no words
func (r *WordRepository) ClosestInRange(target, lo, hi int) (*models.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE difficulty_rank >= ? AND difficulty_rank <= ?
		ORDER BY ABS(difficulty_rank - ?)
		LIMIT 1
	`
	return scanWord(r.db.QueryRow(query, lo, hi, target))
}

// RandomInRange retrieves a uniformly random word with difficulty rank in
// [lo, hi], or nil if the range holds no words
func (r *WordRepository) RandomInRange(lo, hi int) (*models.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE difficulty_rank >= ? AND difficulty_rank <= ?
		ORDER BY ` + r.db.Dialect.RandomFunc() + `
		LIMIT 1
	`
	return scanWord(r.db.QueryRow(query, lo, hi))
}

// RandomUntriaged retrieves a random word in the unit that the user has no
// progress record for, plus the count of such words remaining
func (r *WordRepository) RandomUntriaged(userID int64, unit int) (*models.Word, int, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE unit = ?
		  AND id NOT IN (SELECT word_id FROM word_progress WHERE user_id = ?)
		ORDER BY ` + r.db.Dialect.RandomFunc() + `
		LIMIT 1
	`
	word, err := scanWord(r.db.QueryRow(query, unit, userID))
	if err != nil {
		return nil, 0, err
	}

	countQuery := `
		SELECT COUNT(*)
		FROM words
		WHERE unit = ?
		  AND id NOT IN (SELECT word_id FROM word_progress WHERE user_id = ?)
	`
	var remaining int
	if err := r.db.QueryRow(countQuery, unit, userID).Scan(&remaining); err != nil {
		return nil, 0, err
	}

	return word, remaining, nil
}

// Count returns the total number of words in the catalog
func (r *WordRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM words").Scan(&count)
	return count, err
}

// CountByUnit returns the number of words per unit
func (r *WordRepository) CountByUnit() (map[int]int, error) {
	rows, err := r.db.Query("SELECT unit, COUNT(*) FROM words GROUP BY unit")
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

// ApplyDifficultyLevels writes the given crowd-sourced difficulty levels in
// one transaction, so a failed batch leaves no partial update visible
func (r *WordRepository) ApplyDifficultyLevels(ctx context.Context, levels map[int64]int) error {
	if len(levels) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "UPDATE words SET difficulty_level = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	for wordID, level := range levels {
		if _, err := tx.ExecContext(ctx, query, level, wordID); err != nil {
			return fmt.Errorf("failed to update word %d: %w", wordID, err)
		}
	}

	return tx.Commit()
}
