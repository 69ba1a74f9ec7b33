package domain

import "context"

// CampaignRepository loads campaign statistics.
type CampaignRepository interface {
	Stats(ctx context.Context) (CampaignStats, error)
}
