package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"erpBack/internal/repositories"
	"erpBack/internal/specification"
)

// SpecificationStore reads and rewrites stored item specifications.
type SpecificationStore interface {
	ListSpecifications(ctx context.Context) ([]repositories.StoredSpecification, error)
	UpdateSpecifications(ctx context.Context, itemID, specifications string) error
}

// NormalizeReport summarizes a normalization run.
type NormalizeReport struct {
	Scanned   int
	Rewritten int
}

// NormalizeSpecifications rewrites every stored specification that is not a
// flat JSON object of strings (legacy features payloads, double encoded or
// malformed values) into its normalized form. With dryRun nothing is written.
func NormalizeSpecifications(ctx context.Context, store SpecificationStore, dryRun bool, log zerolog.Logger) (NormalizeReport, error) {
	specs, err := store.ListSpecifications(ctx)
	if err != nil {
		return NormalizeReport{}, err
	}

	report := NormalizeReport{Scanned: len(specs)}
	for _, stored := range specs {
		if stored.Raw.Valid && specification.IsFlat(stored.Raw.String) {
			continue
		}

		normalized, err := specification.Serialize(specification.Normalize(stored.Raw.String))
		if err != nil {
			return report, fmt.Errorf("item %s: %w", stored.ItemID, err)
		}

		log.Info().
			Str("item_id", stored.ItemID).
			Str("from", stored.Raw.String).
			Str("to", normalized).
			Bool("dry_run", dryRun).
			Msg("normalize specification")

		if !dryRun {
			if err := store.UpdateSpecifications(ctx, stored.ItemID, normalized); err != nil {
				return report, fmt.Errorf("item %s: %w", stored.ItemID, err)
			}
		}
		report.Rewritten++
	}
	return report, nil
}
