package repository

import (
	"database/sql"
	"time"
	"wordpath/internal/database"
	"wordpath/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, level, xp, current_streak, daily_words_reviewed,
	last_active_date, last_goal_date, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var lastActive, lastGoal sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Level,
		&user.XP,
		&user.CurrentStreak,
		&user.DailyWordsReviewed,
		&lastActive,
		&lastGoal,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if lastActive.Valid {
		user.LastActiveDate = &lastActive.Time
	}
	if lastGoal.Valid {
		user.LastGoalDate = &lastGoal.Time
	}
	return user, nil
}

func nullableDay(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// ByID retrieves a user by ID, or nil if the user does not exist
func (r *UserRepository) ByID(id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(r.db.QueryRow(query, id))
}

// Create inserts a new user and fills in their ID
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (email, level, xp, current_streak, daily_words_reviewed, last_active_date, last_goal_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		user.Email, user.Level, user.XP, user.CurrentStreak, user.DailyWordsReviewed,
		nullableDay(user.LastActiveDate), nullableDay(user.LastGoalDate))
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// UpdateLevel sets the user's vocabulary level
func (r *UserRepository) UpdateLevel(userID int64, level int) error {
	_, err := r.db.Exec(
		"UPDATE users SET level = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		level, userID)
	return err
}

// UpdateActivity writes the user's daily activity fields
func (r *UserRepository) UpdateActivity(user *models.User) error {
	query := `
		UPDATE users
		SET xp = ?, current_streak = ?, daily_words_reviewed = ?,
			last_active_date = ?, last_goal_date = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		user.XP, user.CurrentStreak, user.DailyWordsReviewed,
		nullableDay(user.LastActiveDate), nullableDay(user.LastGoalDate), user.ID)
	return err
}

// ListWithEmail retrieves all users with a non-empty email address, for the
// reminder sweep
func (r *UserRepository) ListWithEmail() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email != '' ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		var lastActive, lastGoal sql.NullTime

		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Level,
			&user.XP,
			&user.CurrentStreak,
			&user.DailyWordsReviewed,
			&lastActive,
			&lastGoal,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if lastActive.Valid {
			user.LastActiveDate = &lastActive.Time
		}
		if lastGoal.Valid {
			user.LastGoalDate = &lastGoal.Time
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
