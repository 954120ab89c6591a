package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/dberrors"
	"github.com/yigit/launchpad/internal/pkg/logger"
)

// UserRepository handles users and their role memberships
type UserRepository struct {
	db *db.PostgresDB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{db: database}
}

// CreateWithRoles inserts the user together with its initial memberships in one transaction.
// investor is stored only when the investor role is requested.
func (r *UserRepository) CreateWithRoles(ctx context.Context, user *models.User, roles []models.Role, investor *models.InvestorProfile) error {
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (name, email, password_hash, bio, photo_url)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING user_id, join_date`,
			user.Name, user.Email, user.PasswordHash, user.Bio, user.PhotoURL,
		).Scan(&user.ID, &user.JoinDate)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
				return apperrors.ErrEmailAlreadyExists
			}
			return fmt.Errorf("error inserting user: %w", err)
		}

		user.Roles = models.NewRoleSet()
		for _, role := range roles {
			if err := addRoleTx(ctx, tx, user.ID, role, investor); err != nil {
				return err
			}
			user.Roles.Add(role)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debug().Int64("userID", user.ID).Int("roles", len(roles)).Msg("User created")
	return nil
}

func addRoleTx(ctx context.Context, tx pgx.Tx, userID int64, role models.Role, investor *models.InvestorProfile) error {
	if _, err := tx.Exec(ctx,
		`INSERT INTO user_roles (user_id, role) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, role,
	); err != nil {
		return fmt.Errorf("error adding role %s: %w", role, err)
	}

	if role == models.RoleInvestor {
		p := investor
		if p == nil {
			p = &models.InvestorProfile{}
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO investor_profiles (user_id, type, website, location)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO UPDATE
			SET type = COALESCE(EXCLUDED.type, investor_profiles.type),
			    website = COALESCE(EXCLUDED.website, investor_profiles.website),
			    location = COALESCE(EXCLUDED.location, investor_profiles.location)`,
			userID, p.Type, p.Website, p.Location,
		); err != nil {
			return fmt.Errorf("error saving investor profile: %w", err)
		}
	}
	return nil
}

// AddRole grants a membership. Granting a role the user already holds is a no-op.
func (r *UserRepository) AddRole(ctx context.Context, userID int64, role models.Role, investor *models.InvestorProfile) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return addRoleTx(ctx, tx, userID, role, investor)
	})
}

// HasRole reports whether the user currently holds role
func (r *UserRepository) HasRole(ctx context.Context, userID int64, role models.Role) (bool, error) {
	var has bool
	err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_roles WHERE user_id = $1 AND role = $2)`,
		userID, role,
	).Scan(&has)
	if err != nil {
		return false, fmt.Errorf("error checking role: %w", err)
	}
	return has, nil
}

// GetRoles returns the user's memberships
func (r *UserRepository) GetRoles(ctx context.Context, userID int64) (models.RoleSet, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT role FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying roles: %w", err)
	}
	roles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("error scanning roles: %w", err)
	}

	set := models.NewRoleSet()
	for _, r := range roles {
		set.Add(models.Role(r))
	}
	return set, nil
}

func (r *UserRepository) selectUserQuery() squirrel.SelectBuilder {
	return squirrel.Select("user_id", "name", "email", "password_hash", "bio", "photo_url", "join_date").
		From("users").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *UserRepository) findOne(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sqlStr, args, err := r.selectUserQuery().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var u models.User
	err = r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Bio, &u.PhotoURL, &u.JoinDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	if u.Roles, err = r.GetRoles(ctx, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns the user with its role set
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, squirrel.Eq{"user_id": id})
}

// FindByEmail returns the user with its role set
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

// GetProfile returns the user together with the details of each membership
func (r *UserRepository) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	profile := &models.UserProfile{User: *user}

	if user.Roles.Has(models.RoleInvestor) {
		var p models.InvestorProfile
		err := r.db.Pool.QueryRow(ctx,
			`SELECT user_id, type, website, location FROM investor_profiles WHERE user_id = $1`, id,
		).Scan(&p.UserID, &p.Type, &p.Website, &p.Location)
		switch {
		case err == nil:
			profile.Investor = &p
		case !errors.Is(err, pgx.ErrNoRows):
			return nil, fmt.Errorf("error querying investor profile: %w", err)
		}
	}

	if user.Roles.Has(models.RoleFounder) {
		rows, err := r.db.Pool.Query(ctx, `SELECT phone FROM founder_phones WHERE user_id = $1 ORDER BY phone`, id)
		if err != nil {
			return nil, fmt.Errorf("error querying founder phones: %w", err)
		}
		if profile.Phones, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
			return nil, fmt.Errorf("error scanning founder phones: %w", err)
		}
	}

	if user.Roles.Has(models.RoleMentor) {
		rows, err := r.db.Pool.Query(ctx, `SELECT expertise FROM mentor_expertise WHERE user_id = $1 ORDER BY expertise`, id)
		if err != nil {
			return nil, fmt.Errorf("error querying mentor expertise: %w", err)
		}
		if profile.Expertise, err = pgx.CollectRows(rows, pgx.RowTo[string]); err != nil {
			return nil, fmt.Errorf("error scanning mentor expertise: %w", err)
		}
	}

	return profile, nil
}

// UpdateProfile applies the non-nil fields to the user row
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, name, bio, photoURL *string) error {
	builder := squirrel.Update("users").Where(squirrel.Eq{"user_id": id}).PlaceholderFormat(squirrel.Dollar)
	changed := false
	if name != nil {
		builder = builder.Set("name", *name)
		changed = true
	}
	if bio != nil {
		builder = builder.Set("bio", *bio)
		changed = true
	}
	if photoURL != nil {
		builder = builder.Set("photo_url", *photoURL)
		changed = true
	}
	if !changed {
		return nil
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ReplaceFounderPhones replaces the founder's phone list
func (r *UserRepository) ReplaceFounderPhones(ctx context.Context, userID int64, phones []string) error {
	return r.replaceList(ctx, "founder_phones", "phone", userID, phones)
}

// ReplaceMentorExpertise replaces the mentor's expertise list
func (r *UserRepository) ReplaceMentorExpertise(ctx context.Context, userID int64, expertise []string) error {
	return r.replaceList(ctx, "mentor_expertise", "expertise", userID, expertise)
}

func (r *UserRepository) replaceList(ctx context.Context, table, column string, userID int64, values []string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		del, args, err := squirrel.Delete(table).Where(squirrel.Eq{"user_id": userID}).
			PlaceholderFormat(squirrel.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, del, args...); err != nil {
			return fmt.Errorf("error clearing %s: %w", table, err)
		}
		if len(values) == 0 {
			return nil
		}

		ins := squirrel.Insert(table).Columns("user_id", column).Suffix("ON CONFLICT DO NOTHING").
			PlaceholderFormat(squirrel.Dollar)
		for _, v := range values {
			ins = ins.Values(userID, v)
		}
		sqlStr, args, err := ins.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("error inserting %s: %w", table, err)
		}
		return nil
	})
}
