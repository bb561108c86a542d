package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/venture-compass/internal/types"
)

// FetchCompanyProfile retrieves the profile attributes for a company. Returns
// nil when no profile row exists.
func (db *DB) FetchCompanyProfile(ctx context.Context, companyID uuid.UUID) (*types.CompanyProfile, error) {
	var p types.CompanyProfile
	err := db.pool.QueryRow(ctx,
		`SELECT company_id, industry_id, stage, size, business_model,
		        COALESCE(focus_areas, '{}'), maturity_score
		 FROM company_profiles WHERE company_id = $1`,
		companyID,
	).Scan(&p.CompanyID, &p.IndustryID, &p.Stage, &p.Size, &p.BusinessModel,
		&p.FocusAreas, &p.MaturityScore)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch company profile: %w", err)
	}
	return &p, nil
}
