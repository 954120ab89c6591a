package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/launchpad/internal/app/models"
	"github.com/yigit/launchpad/internal/db"
	"github.com/yigit/launchpad/internal/pkg/apperrors"
	"github.com/yigit/launchpad/internal/pkg/logger"
)

// StartupRepository handles startups, their tags and ownership links
type StartupRepository struct {
	db *db.PostgresDB
}

// NewStartupRepository creates a new StartupRepository
func NewStartupRepository(database *db.PostgresDB) *StartupRepository {
	return &StartupRepository{db: database}
}

func startupNotFound() error {
	return apperrors.NewCustomError(apperrors.ErrStartupNotFound, "startup not found")
}

func (r *StartupRepository) selectStartupQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"s.startup_id", "s.name", "s.description", "s.logo_url", "s.founding_date",
		"s.status", "s.sector", "s.location", "s.created_at",
	).From("startups s").
		PlaceholderFormat(squirrel.Dollar)
}

func scanStartup(row pgx.Row) (*models.Startup, error) {
	var s models.Startup
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.LogoURL, &s.FoundingDate,
		&s.Status, &s.Sector, &s.Location, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Tags = []string{}
	return &s, nil
}

// Create inserts the startup, links the founder and attaches tags in one transaction
func (r *StartupRepository) Create(ctx context.Context, founderID int64, s *models.Startup, roleLabel string) error {
	if roleLabel == "" {
		roleLabel = "Founder"
	}
	if s.Status == "" {
		s.Status = models.StartupStatusActive
	}

	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sqlStr, args, err := squirrel.Insert("startups").
			Columns("name", "description", "logo_url", "founding_date", "status", "sector", "location").
			Values(s.Name, s.Description, s.LogoURL, s.FoundingDate, s.Status, s.Sector, s.Location).
			Suffix("RETURNING startup_id, created_at").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sqlStr, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
			return fmt.Errorf("error inserting startup: %w", err)
		}

		joined := time.Now().UTC()
		if s.FoundingDate != nil {
			joined = *s.FoundingDate
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO startup_founders (founder_id, startup_id, role_label, joined_date) VALUES ($1, $2, $3, $4)`,
			founderID, s.ID, roleLabel, joined,
		); err != nil {
			return fmt.Errorf("error linking founder: %w", err)
		}

		tags, err := attachTags(ctx, tx, s.ID, s.Tags)
		if err != nil {
			return err
		}
		s.Tags = tags
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debug().Int64("startupID", s.ID).Int64("founderID", founderID).Msg("Startup created")
	return nil
}

// normalizeTags trims, drops empties and removes duplicates, keeping first-seen order
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func attachTags(ctx context.Context, tx pgx.Tx, startupID int64, tags []string) ([]string, error) {
	tags = normalizeTags(tags)
	for _, name := range tags {
		var tagID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING tag_id`, name,
		).Scan(&tagID)
		if err != nil {
			return nil, fmt.Errorf("error upserting tag %q: %w", name, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO startup_tags (startup_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			startupID, tagID,
		); err != nil {
			return nil, fmt.Errorf("error tagging startup: %w", err)
		}
	}
	return tags, nil
}

// EnsureTags creates any missing tags from names
func (r *StartupRepository) EnsureTags(ctx context.Context, names []string) (int64, error) {
	names = normalizeTags(names)
	if len(names) == 0 {
		return 0, nil
	}

	builder := squirrel.Insert("tags").Columns("name").Suffix("ON CONFLICT (name) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)
	for _, n := range names {
		builder = builder.Values(n)
	}
	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Pool.Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("error inserting tags: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetByID returns the startup with its tags and founders
func (r *StartupRepository) GetByID(ctx context.Context, id int64) (*models.Startup, error) {
	sqlStr, args, err := r.selectStartupQuery().Where(squirrel.Eq{"s.startup_id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	s, err := scanStartup(r.db.Pool.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, startupNotFound()
		}
		return nil, fmt.Errorf("error querying startup: %w", err)
	}

	tagMap, err := r.tagsFor(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if tags, ok := tagMap[id]; ok {
		s.Tags = tags
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT u.user_id, u.name, u.photo_url, sf.role_label, sf.joined_date
		FROM startup_founders sf
		JOIN users u ON u.user_id = sf.founder_id
		WHERE sf.startup_id = $1
		ORDER BY sf.joined_date, u.user_id`, id)
	if err != nil {
		return nil, fmt.Errorf("error querying founders: %w", err)
	}
	s.Founders, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.FounderLink, error) {
		var f models.FounderLink
		err := row.Scan(&f.UserID, &f.Name, &f.PhotoURL, &f.RoleLabel, &f.JoinedDate)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning founders: %w", err)
	}

	return s, nil
}

// Exists reports whether a startup with the id exists
func (r *StartupRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM startups WHERE startup_id = $1)`, id,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking startup: %w", err)
	}
	return exists, nil
}

// IsFounder reports whether the user holds an ownership link to the startup
func (r *StartupRepository) IsFounder(ctx context.Context, userID, startupID int64) (bool, error) {
	var linked bool
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM startup_founders WHERE founder_id = $1 AND startup_id = $2)`,
		userID, startupID,
	).Scan(&linked); err != nil {
		return false, fmt.Errorf("error checking ownership: %w", err)
	}
	return linked, nil
}

func applyStartupFilter(b squirrel.SelectBuilder, f models.StartupFilter) squirrel.SelectBuilder {
	if f.Sector != "" {
		b = b.Where(squirrel.Eq{"s.sector": f.Sector})
	}
	if f.Name != "" {
		b = b.Where(squirrel.ILike{"s.name": "%" + f.Name + "%"})
	}
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"s.status": f.Status})
	}
	if f.Tag != "" {
		b = b.Where(`s.startup_id IN (
			SELECT st.startup_id FROM startup_tags st
			JOIN tags t ON t.tag_id = st.tag_id
			WHERE t.name ILIKE ?)`, "%"+f.Tag+"%")
	}
	return b
}

// List returns one page of startups matching the filter and the total match count
func (r *StartupRepository) List(ctx context.Context, filter models.StartupFilter, offset uint64, limit int) ([]models.Startup, int64, error) {
	countSQL, countArgs, err := applyStartupFilter(
		squirrel.Select("COUNT(*)").From("startups s").PlaceholderFormat(squirrel.Dollar), filter,
	).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting startups: %w", err)
	}
	if total == 0 {
		return []models.Startup{}, 0, nil
	}

	sqlStr, args, err := applyStartupFilter(r.selectStartupQuery(), filter).
		OrderBy("s.created_at DESC", "s.startup_id DESC").
		Offset(offset).
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	startups, err := r.queryStartups(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, err
	}
	return startups, total, nil
}

// ListByFounder returns every startup the user is linked to as a founder
func (r *StartupRepository) ListByFounder(ctx context.Context, founderID int64) ([]models.Startup, error) {
	sqlStr, args, err := r.selectStartupQuery().
		Join("startup_founders sf ON sf.startup_id = s.startup_id").
		Where(squirrel.Eq{"sf.founder_id": founderID}).
		OrderBy("s.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}
	return r.queryStartups(ctx, sqlStr, args...)
}

func (r *StartupRepository) queryStartups(ctx context.Context, sqlStr string, args ...interface{}) ([]models.Startup, error) {
	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying startups: %w", err)
	}
	defer rows.Close()

	startups := []models.Startup{}
	ids := []int64{}
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning startup: %w", err)
		}
		startups = append(startups, *s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating startups: %w", err)
	}
	if len(ids) == 0 {
		return startups, nil
	}

	tagMap, err := r.tagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range startups {
		if tags, ok := tagMap[startups[i].ID]; ok {
			startups[i].Tags = tags
		}
	}
	return startups, nil
}

func (r *StartupRepository) tagsFor(ctx context.Context, ids []int64) (map[int64][]string, error) {
	sqlStr, args, err := squirrel.Select("st.startup_id", "t.name").
		From("startup_tags st").
		Join("tags t ON t.tag_id = st.tag_id").
		Where(squirrel.Eq{"st.startup_id": ids}).
		OrderBy("t.name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying tags: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]string, len(ids))
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("error scanning tags: %w", err)
		}
		out[id] = append(out[id], name)
	}
	return out, rows.Err()
}

// Update applies a partial update. Tags, when given, replace the current set.
func (r *StartupRepository) Update(ctx context.Context, id int64, upd models.StartupUpdate) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		builder := squirrel.Update("startups").Where(squirrel.Eq{"startup_id": id}).PlaceholderFormat(squirrel.Dollar)
		fields := 0
		set := func(col string, v interface{}) {
			builder = builder.Set(col, v)
			fields++
		}
		if upd.Name != nil {
			set("name", *upd.Name)
		}
		if upd.Description != nil {
			set("description", *upd.Description)
		}
		if upd.LogoURL != nil {
			set("logo_url", *upd.LogoURL)
		}
		if upd.Status != nil {
			set("status", *upd.Status)
		}
		if upd.Sector != nil {
			set("sector", *upd.Sector)
		}
		if upd.Location != nil {
			set("location", *upd.Location)
		}

		if fields > 0 {
			sqlStr, args, err := builder.ToSql()
			if err != nil {
				return fmt.Errorf("error building SQL: %w", err)
			}
			tag, err := tx.Exec(ctx, sqlStr, args...)
			if err != nil {
				return fmt.Errorf("error updating startup: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return startupNotFound()
			}
		}

		if upd.Tags != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM startup_tags WHERE startup_id = $1`, id); err != nil {
				return fmt.Errorf("error clearing tags: %w", err)
			}
			if _, err := attachTags(ctx, tx, id, upd.Tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// startupDependents lists, in deletion order, the tables holding rows that reference a startup.
var startupDependents = []string{
	"investments",
	"funding_rounds",
	"startup_tags",
	"ratings",
	"comments",
	"favorites",
	"startup_founders",
}

// Delete removes the startup and every dependent row in one transaction.
func (r *StartupRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		// Holding the row blocks round allocation and new investments until
		// the cascade commits, so no dependent can slip in behind it.
		var locked int64
		err := tx.QueryRow(ctx, `SELECT startup_id FROM startups WHERE startup_id = $1 FOR UPDATE`, id).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return startupNotFound()
		}
		if err != nil {
			return fmt.Errorf("error locking startup: %w", err)
		}

		for _, table := range startupDependents {
			sqlStr, args, err := squirrel.Delete(table).Where(squirrel.Eq{"startup_id": id}).
				PlaceholderFormat(squirrel.Dollar).ToSql()
			if err != nil {
				return fmt.Errorf("error building SQL: %w", err)
			}
			if _, err := tx.Exec(ctx, sqlStr, args...); err != nil {
				return fmt.Errorf("error deleting from %s: %w", table, err)
			}
		}

		tag, err := tx.Exec(ctx, `DELETE FROM startups WHERE startup_id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting startup: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return startupNotFound()
		}
		return nil
	})
}

// Sectors returns the distinct non-empty sectors, alphabetically
func (r *StartupRepository) Sectors(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT DISTINCT sector FROM startups
		WHERE sector IS NOT NULL AND sector <> ''
		ORDER BY sector ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying sectors: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// Tags returns every known tag name, alphabetically
func (r *StartupRepository) Tags(ctx context.Context) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying tags: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
