package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
	"github.com/yigit/launchpad/internal/pkg/dberrors"
)

// CommunityRepository handles comments, ratings and favorites on startups
type CommunityRepository struct {
	db *db.PostgresDB
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(database *db.PostgresDB) *CommunityRepository {
	return &CommunityRepository{db: database}
}

// mapStartupFK turns a dangling startup reference into a not-found error
func mapStartupFK(err error, action string) error {
	if dberrors.IsForeignKeyViolation(err) {
		return startupNotFound()
	}
	return fmt.Errorf("error %s: %w", action, err)
}

// AddComment stores a comment and fills in its id and timestamp
func (r *CommunityRepository) AddComment(ctx context.Context, c *models.Comment) error {
	sqlStr, args, err := squirrel.Insert("comments").
		Columns("user_id", "startup_id", "content").
		Values(c.UserID, c.StartupID, c.Content).
		Suffix("RETURNING comment_id, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.Pool.QueryRow(ctx, sqlStr, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return mapStartupFK(err, "inserting comment")
	}
	return nil
}

// ListComments returns the startup's comments, newest first, with author names
func (r *CommunityRepository) ListComments(ctx context.Context, startupID int64) ([]models.Comment, error) {
	sqlStr, args, err := squirrel.Select(
		"c.comment_id", "c.user_id", "c.startup_id", "c.content", "c.created_at", "u.name", "u.photo_url",
	).From("comments c").
		Join("users u ON u.user_id = c.user_id").
		Where(squirrel.Eq{"c.startup_id": startupID}).
		OrderBy("c.created_at DESC", "c.comment_id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	comments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Comment, error) {
		var c models.Comment
		err := row.Scan(&c.ID, &c.UserID, &c.StartupID, &c.Content, &c.CreatedAt, &c.UserName, &c.PhotoURL)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning comments: %w", err)
	}
	return comments, nil
}

// UpsertRating stores the user's score for the startup, replacing any earlier one
func (r *CommunityRepository) UpsertRating(ctx context.Context, rating *models.Rating) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO ratings (user_id, startup_id, score, feedback)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, startup_id) DO UPDATE
		SET score = EXCLUDED.score, feedback = EXCLUDED.feedback, date = NOW()
		RETURNING date`,
		rating.UserID, rating.StartupID, rating.Score, rating.Feedback,
	).Scan(&rating.Date)
	if err != nil {
		return mapStartupFK(err, "saving rating")
	}
	return nil
}

// ListRatings returns the startup's ratings, newest first
func (r *CommunityRepository) ListRatings(ctx context.Context, startupID int64) ([]models.Rating, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT rt.user_id, rt.startup_id, rt.score, rt.feedback, rt.date, u.name, u.photo_url
		FROM ratings rt
		JOIN users u ON u.user_id = rt.user_id
		WHERE rt.startup_id = $1
		ORDER BY rt.date DESC, rt.user_id`, startupID)
	if err != nil {
		return nil, fmt.Errorf("error querying ratings: %w", err)
	}
	ratings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Rating, error) {
		var rt models.Rating
		err := row.Scan(&rt.UserID, &rt.StartupID, &rt.Score, &rt.Feedback, &rt.Date, &rt.UserName, &rt.PhotoURL)
		return rt, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning ratings: %w", err)
	}
	return ratings, nil
}

// ToggleFavorite adds the startup to the user's favorites, or removes it if already present.
// It returns whether the startup is a favorite after the call.
func (r *CommunityRepository) ToggleFavorite(ctx context.Context, userID, startupID int64) (bool, error) {
	var favorited bool
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND startup_id = $2`, userID, startupID)
		if err != nil {
			return fmt.Errorf("error removing favorite: %w", err)
		}
		if tag.RowsAffected() > 0 {
			favorited = false
			return nil
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO favorites (user_id, startup_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			userID, startupID,
		); err != nil {
			return mapStartupFK(err, "adding favorite")
		}
		favorited = true
		return nil
	})
	return favorited, err
}

// CountFavorites returns how many users favorited the startup
func (r *CommunityRepository) CountFavorites(ctx context.Context, startupID int64) (int, error) {
	var n int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE startup_id = $1`, startupID,
	).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting favorites: %w", err)
	}
	return n, nil
}

// ListFavorites returns the user's favorite startups, most recently added first
func (r *CommunityRepository) ListFavorites(ctx context.Context, userID int64) ([]models.FavoriteStartup, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT s.startup_id, s.name, s.logo_url, s.sector, s.status, f.added_at
		FROM favorites f
		JOIN startups s ON s.startup_id = f.startup_id
		WHERE f.user_id = $1
		ORDER BY f.added_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying favorites: %w", err)
	}
	favs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FavoriteStartup, error) {
		var f models.FavoriteStartup
		err := row.Scan(&f.StartupID, &f.Name, &f.LogoURL, &f.Sector, &f.Status, &f.AddedAt)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning favorites: %w", err)
	}
	return favs, nil
}
