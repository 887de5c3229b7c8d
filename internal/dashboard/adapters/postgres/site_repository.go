package postgres

import (
	"context"

	"github.com/lib/pq"

	"ga-dashboard-service/internal/dashboard/core/domain"
	"ga-dashboard-service/internal/dashboard/core/ports"
)

const (
	DefaultSitesTable       = "sites"
	DefaultLegacyFlagColumn = "is_enable"
)

// SiteRepository reads the site registry. Older rows may carry the enabled
// flag in a legacy column; both are returned untouched.
type SiteRepository struct {
	db         DB
	table      string
	legacyFlag string
}

func NewSiteRepository(db DB, table, legacyFlag string) *SiteRepository {
	if table == "" {
		table = DefaultSitesTable
	}
	return &SiteRepository{db: db, table: table, legacyFlag: legacyFlag}
}

var _ ports.SiteRegistryPort = (*SiteRepository)(nil)

func (r *SiteRepository) ListSites(ctx context.Context) ([]domain.SiteFlags, error) {
	legacy := "NULL"
	if r.legacyFlag != "" {
		legacy = pq.QuoteIdentifier(r.legacyFlag)
	}

	query := `
SELECT property_id, is_enabled, ` + legacy + `
FROM ` + pq.QuoteIdentifier(r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []domain.SiteFlags
	for rows.Next() {
		var groupID, enabled, legacyEnabled any
		if err := rows.Scan(&groupID, &enabled, &legacyEnabled); err != nil {
			return nil, err
		}
		sites = append(sites, domain.SiteFlags{
			GroupID:       domain.CoerceString(groupID),
			HasGroupID:    groupID != nil,
			Enabled:       enabled,
			LegacyEnabled: legacyEnabled,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sites, nil
}
