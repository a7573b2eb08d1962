// internal/store/profiles.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"loan-marketplace-workers/internal/models"
)

const (
	profileIDPrefix = "U"
	// allocation races with a concurrent signup are retried this many times
	maxProfileIDAttempts = 3
)

const profileColumns = `profile_id, COALESCE(auth_id, ''), name, age, COALESCE(city, ''),
		COALESCE(email, ''), COALESCE(phone, ''), monthly_income, employment_type,
		years_employed, credit_score, existing_emi, created_at, COALESCE(updated_at, created_at)`

// ProfileRepository reads and writes the users table.
type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetProfile(ctx context.Context, profileID string) (models.UserProfile, error) {
	return r.getBy(ctx, "profile_id", profileID)
}

func (r *ProfileRepository) GetProfileByAuthID(ctx context.Context, authID string) (models.UserProfile, error) {
	return r.getBy(ctx, "auth_id", authID)
}

func (r *ProfileRepository) getBy(ctx context.Context, column, value string) (models.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM users WHERE `+column+` = $1`, value)

	var p models.UserProfile
	err := row.Scan(
		&p.ProfileID, &p.AuthID, &p.Name, &p.Age, &p.City,
		&p.Email, &p.Phone, &p.MonthlyIncome, &p.EmploymentType,
		&p.YearsEmployed, &p.CreditScore, &p.ExistingEMI, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, fmt.Errorf("profile %s=%s: %w", column, value, ErrNotFound)
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("get profile %s=%s: %w", column, value, err)
	}
	return p, nil
}

// ListProfileIDs returns every allocated profile id.
func (r *ProfileRepository) ListProfileIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT profile_id FROM users ORDER BY profile_id`)
	if err != nil {
		return nil, fmt.Errorf("list profile ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CreateProfile allocates the next free profile id and inserts p under it.
// The stored profile is returned.
func (r *ProfileRepository) CreateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	for attempt := 0; attempt < maxProfileIDAttempts; attempt++ {
		existing, err := r.ListProfileIDs(ctx)
		if err != nil {
			return models.UserProfile{}, err
		}
		p.ProfileID = NextProfileID(existing)

		err = r.db.QueryRowContext(ctx, `
			INSERT INTO users (profile_id, auth_id, name, age, city, email, phone,
			                   monthly_income, employment_type, years_employed, credit_score, existing_emi)
			VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING created_at, created_at`,
			p.ProfileID, p.AuthID, p.Name, p.Age, p.City, p.Email, p.Phone,
			p.MonthlyIncome, p.EmploymentType, p.YearsEmployed, p.CreditScore, p.ExistingEMI,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
		if err == nil {
			return p, nil
		}
		if !isUniqueViolation(err) {
			return models.UserProfile{}, fmt.Errorf("insert profile: %w", err)
		}
	}
	return models.UserProfile{}, fmt.Errorf("insert profile: %w", ErrDuplicate)
}

// UpdateProfile writes every mutable column of p.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	err := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET name = $2, age = $3, city = $4, email = $5, phone = $6, monthly_income = $7,
		    employment_type = $8, years_employed = $9, credit_score = $10, existing_emi = $11,
		    updated_at = NOW()
		WHERE profile_id = $1
		RETURNING updated_at`,
		p.ProfileID, p.Name, p.Age, p.City, p.Email, p.Phone, p.MonthlyIncome,
		p.EmploymentType, p.YearsEmployed, p.CreditScore, p.ExistingEMI,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{}, fmt.Errorf("profile %s: %w", p.ProfileID, ErrNotFound)
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("update profile %s: %w", p.ProfileID, err)
	}
	return p, nil
}

// NextProfileID returns the lowest free id of the form U001, U002, ...
// Ids that do not follow the pattern are ignored.
func NextProfileID(existing []string) string {
	taken := make(map[int]bool, len(existing))
	for _, id := range existing {
		n, ok := parseProfileNumber(id)
		if ok {
			taken[n] = true
		}
	}
	n := 1
	for taken[n] {
		n++
	}
	return fmt.Sprintf("%s%03d", profileIDPrefix, n)
}

func parseProfileNumber(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, profileIDPrefix)
	if !ok || digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
