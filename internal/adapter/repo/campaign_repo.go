package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/infra"
	"pixdoacao/internal/sqlinline"
)

// CampaignRepositoryPG implements domain.CampaignRepository on PostgreSQL.
// An empty campaign_stats table yields the fallback stats.
type CampaignRepositoryPG struct {
	sql      infra.SQLExecutor
	fallback domain.CampaignStats
}

// NewCampaignRepository creates the repository.
func NewCampaignRepository(sql infra.SQLExecutor, fallback domain.CampaignStats) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{sql: sql, fallback: fallback}
}

// Stats returns the most recent campaign row.
func (r *CampaignRepositoryPG) Stats(ctx context.Context) (domain.CampaignStats, error) {
	stats, err := scanStats(r.sql.QueryRow(ctx, sqlinline.QSelectCampaignStats))
	if err != nil {
		if infra.IsNoRows(err) {
			return r.fallback, nil
		}
		return domain.CampaignStats{}, fmt.Errorf("load campaign stats: %w", err)
	}
	return stats, nil
}

// Save stores stats as the newest snapshot and returns it as persisted.
func (r *CampaignRepositoryPG) Save(ctx context.Context, stats domain.CampaignStats) (domain.CampaignStats, error) {
	if stats.Participants < 0 || stats.RaisedMinor < 0 || stats.GoalMinor <= 0 {
		return domain.CampaignStats{}, fmt.Errorf("save campaign stats: participants and raised must be >= 0 and goal > 0")
	}
	saved, err := scanStats(r.sql.QueryRow(ctx, sqlinline.QInsertCampaignStats, stats.Participants, stats.RaisedMinor, stats.GoalMinor))
	if err != nil {
		return domain.CampaignStats{}, fmt.Errorf("save campaign stats: %w", err)
	}
	return saved, nil
}

// RecordDonation counts one more participant and adds amountMinor to the raised total.
// It fails with ErrCampaignNotInitialized until a snapshot has been saved.
func (r *CampaignRepositoryPG) RecordDonation(ctx context.Context, amountMinor int64) (domain.CampaignStats, error) {
	if amountMinor <= 0 {
		return domain.CampaignStats{}, fmt.Errorf("%w: %d", domain.ErrInvalidAmount, amountMinor)
	}
	saved, err := scanStats(r.sql.QueryRow(ctx, sqlinline.QRecordCampaignDonation, amountMinor))
	if err != nil {
		if infra.IsNoRows(err) {
			return domain.CampaignStats{}, ErrCampaignNotInitialized
		}
		return domain.CampaignStats{}, fmt.Errorf("record donation: %w", err)
	}
	return saved, nil
}

// ErrCampaignNotInitialized means campaign_stats holds no snapshot yet.
var ErrCampaignNotInitialized = errors.New("campaign stats not initialized")

func scanStats(row pgx.Row) (domain.CampaignStats, error) {
	var stats domain.CampaignStats
	var updatedAt time.Time
	if err := row.Scan(&stats.Participants, &stats.RaisedMinor, &stats.GoalMinor, &updatedAt); err != nil {
		return domain.CampaignStats{}, err
	}
	stats.UpdatedAt = updatedAt
	return stats, nil
}

// StaticCampaignRepository serves fixed stats when no database is configured.
type StaticCampaignRepository struct {
	stats domain.CampaignStats
}

// NewStaticCampaignRepository returns a repository that always answers stats.
func NewStaticCampaignRepository(stats domain.CampaignStats) *StaticCampaignRepository {
	return &StaticCampaignRepository{stats: stats}
}

func (r *StaticCampaignRepository) Stats(context.Context) (domain.CampaignStats, error) {
	return r.stats, nil
}

var (
	_ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
	_ domain.CampaignRepository = (*StaticCampaignRepository)(nil)
)
