package postgres

import (
	"context"
	"errors"

	"go-social-backend/internal/domain"
	"go-social-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

// GetOrCreateByUserID lazily creates an empty profile on first access.
func (r *profileRepo) GetOrCreateByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	query := `SELECT id, user_id, bio, location, created_at, updated_at
              FROM profiles WHERE user_id = $1`
	var p domain.Profile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.Bio, &p.Location, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperror.Internal(err)
	}

	// ON CONFLICT handles the race where two requests create simultaneously
	insert := `INSERT INTO profiles (user_id, created_at, updated_at)
               VALUES ($1, NOW(), NOW())
               ON CONFLICT (user_id) DO UPDATE SET updated_at = profiles.updated_at
               RETURNING id, user_id, bio, location, created_at, updated_at`
	err = r.db.QueryRow(ctx, insert, userID).Scan(
		&p.ID, &p.UserID, &p.Bio, &p.Location, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &p, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `UPDATE profiles SET bio = $2, location = $3, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, profile.ID, profile.Bio, profile.Location)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Profile not found")
	}
	return nil
}

func (r *profileRepo) ListSkills(ctx context.Context, profileID int64) ([]domain.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, name FROM skills WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var skills []domain.Skill
	for rows.Next() {
		var s domain.Skill
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.Name); err != nil {
			return nil, apperror.Internal(err)
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

func (r *profileRepo) ListExperiences(ctx context.Context, profileID int64) ([]domain.Experience, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, title, company, start_date, end_date, description
         FROM experiences WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var experiences []domain.Experience
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.Title, &e.Company, &e.StartDate, &e.EndDate, &e.Description); err != nil {
			return nil, apperror.Internal(err)
		}
		experiences = append(experiences, e)
	}
	return experiences, rows.Err()
}

func (r *profileRepo) ListEducations(ctx context.Context, profileID int64) ([]domain.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, profile_id, school, degree, field, start_date, end_date
         FROM educations WHERE profile_id = $1 ORDER BY id`, profileID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	var educations []domain.Education
	for rows.Next() {
		var e domain.Education
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.School, &e.Degree, &e.Field, &e.StartDate, &e.EndDate); err != nil {
			return nil, apperror.Internal(err)
		}
		educations = append(educations, e)
	}
	return educations, rows.Err()
}

// ReplaceSkills implements full-replace semantics: the stored collection is
// deleted and the provided set inserted in one transaction.
func (r *profileRepo) ReplaceSkills(ctx context.Context, profileID int64, skills []domain.Skill) error {
	return r.replaceChildren(ctx, profileID, `DELETE FROM skills WHERE profile_id = $1`,
		func(tx pgx.Tx) error {
			for _, s := range skills {
				if _, err := tx.Exec(ctx,
					`INSERT INTO skills (profile_id, name) VALUES ($1, $2)`, profileID, s.Name); err != nil {
					return err
				}
			}
			return nil
		})
}

func (r *profileRepo) ReplaceExperiences(ctx context.Context, profileID int64, experiences []domain.Experience) error {
	return r.replaceChildren(ctx, profileID, `DELETE FROM experiences WHERE profile_id = $1`,
		func(tx pgx.Tx) error {
			for _, e := range experiences {
				if _, err := tx.Exec(ctx,
					`INSERT INTO experiences (profile_id, title, company, start_date, end_date, description)
                     VALUES ($1, $2, $3, $4, $5, $6)`,
					profileID, e.Title, e.Company, e.StartDate, e.EndDate, e.Description); err != nil {
					return err
				}
			}
			return nil
		})
}

func (r *profileRepo) ReplaceEducations(ctx context.Context, profileID int64, educations []domain.Education) error {
	return r.replaceChildren(ctx, profileID, `DELETE FROM educations WHERE profile_id = $1`,
		func(tx pgx.Tx) error {
			for _, e := range educations {
				if _, err := tx.Exec(ctx,
					`INSERT INTO educations (profile_id, school, degree, field, start_date, end_date)
                     VALUES ($1, $2, $3, $4, $5, $6)`,
					profileID, e.School, e.Degree, e.Field, e.StartDate, e.EndDate); err != nil {
					return err
				}
			}
			return nil
		})
}

func (r *profileRepo) replaceChildren(ctx context.Context, profileID int64, deleteQuery string, insert func(pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteQuery, profileID); err != nil {
		return apperror.Internal(err)
	}
	if err := insert(tx); err != nil {
		return apperror.Internal(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// DeleteByUserID removes the profile and every owned child collection.
func (r *profileRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.Internal(err)
	}
	defer tx.Rollback(ctx)

	var profileID int64
	err = tx.QueryRow(ctx, `SELECT id FROM profiles WHERE user_id = $1`, userID).Scan(&profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil // nothing to delete
		}
		return apperror.Internal(err)
	}

	for _, q := range []string{
		`DELETE FROM skills WHERE profile_id = $1`,
		`DELETE FROM experiences WHERE profile_id = $1`,
		`DELETE FROM educations WHERE profile_id = $1`,
		`DELETE FROM profiles WHERE id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, profileID); err != nil {
			return apperror.Internal(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
