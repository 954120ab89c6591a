package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// DefaultTags are created on first start so the tag picker is never empty.
var DefaultTags = []string{
	"AI", "Fintech", "Healthtech", "Edtech", "SaaS", "Marketplace",
	"Climate", "Mobility", "E-commerce", "Biotech", "Gaming", "Cybersecurity",
}

// TagStore creates tags that do not exist yet
type TagStore interface {
	EnsureTags(ctx context.Context, names []string) (int64, error)
}

// CreateDefaultData creates the default tags if they don't exist.
func CreateDefaultData(ctx context.Context, tags TagStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Tags)...")
	var finalErr error

	created, err := tags.EnsureTags(ctx, DefaultTags)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default tags")
		finalErr = errors.Join(finalErr, err)
	} else {
		lgr.Info().Int64("created", created).Msg("Default tags ensured")
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
