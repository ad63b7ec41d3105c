package repository

import (
	"database/sql"
	"wordpath/internal/database"
	"wordpath/internal/models"
)

// PlacementRepository handles placement session database operations
type PlacementRepository struct {
	db *database.DB
}

// NewPlacementRepository creates a new placement repository
func NewPlacementRepository(db *database.DB) *PlacementRepository {
	return &PlacementRepository{db: db}
}

const placementColumns = `id, user_id, lower_bound, upper_bound, question_count,
	is_active, final_level, created_at, updated_at`

func scanPlacement(row *sql.Row) (*models.PlacementSession, error) {
	s := &models.PlacementSession{}
	var finalLevel sql.NullInt64

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.LowerBound,
		&s.UpperBound,
		&s.QuestionCount,
		&s.Active,
		&finalLevel,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if finalLevel.Valid {
		l := int(finalLevel.Int64)
		s.FinalLevel = &l
	}
	return s, nil
}

// ActiveByUser retrieves the user's active session, or nil if none exists.
// A user has at most one active session at a time.
func (r *PlacementRepository) ActiveByUser(userID int64) (*models.PlacementSession, error) {
	query := `SELECT ` + placementColumns + ` FROM placement_sessions WHERE user_id = ? AND is_active = ? LIMIT 1`
	return scanPlacement(r.db.QueryRow(query, userID, true))
}

// Create inserts a new session and fills in its ID
func (r *PlacementRepository) Create(s *models.PlacementSession) error {
	query := `
		INSERT INTO placement_sessions (user_id, lower_bound, upper_bound, question_count, is_active)
		VALUES (?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, s.UserID, s.LowerBound, s.UpperBound, s.QuestionCount, s.Active)
	if err != nil {
		return err
	}

	s.ID = id
	return nil
}

// Update modifies an existing session
func (r *PlacementRepository) Update(s *models.PlacementSession) error {
	query := `
		UPDATE placement_sessions
		SET lower_bound = ?, upper_bound = ?, question_count = ?, is_active = ?,
			final_level = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	var finalLevel interface{}
	if s.FinalLevel != nil {
		finalLevel = *s.FinalLevel
	}

	_, err := r.db.Exec(query, s.LowerBound, s.UpperBound, s.QuestionCount, s.Active, finalLevel, s.ID)
	return err
}
