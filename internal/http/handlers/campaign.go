package handlers

import (
	"net/http"
	"time"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/middleware"
	"pixdoacao/internal/money"
)

type amountOption struct {
	Value int64  `json:"value"`
	Minor int64  `json:"minor"`
	Label string `json:"label"`
}

type moneyValue struct {
	Minor int64  `json:"minor"`
	Label string `json:"label"`
}

type campaignResponse struct {
	Locale          string         `json:"locale"`
	Currency        string         `json:"currency"`
	Amounts         []amountOption `json:"amounts"`
	Participants    int64          `json:"participants"`
	Raised          moneyValue     `json:"raised"`
	Goal            moneyValue     `json:"goal"`
	ProgressPercent int            `json:"progress_percent"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
}

// CampaignSummary answers GET /v1/campaign with the amount buttons and progress numbers,
// labelled for the request locale.
func (a *App) CampaignSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Campaign.Stats(r.Context())
	if err != nil {
		a.internal(w, r, err)
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	tag := money.Tag(locale)

	amounts := domain.DonationAmounts()
	options := make([]amountOption, 0, len(amounts))
	for _, v := range amounts {
		minor := v * 100
		options = append(options, amountOption{Value: v, Minor: minor, Label: money.Label(tag, minor)})
	}

	resp := campaignResponse{
		Locale:          locale,
		Currency:        money.Currency.String(),
		Amounts:         options,
		Participants:    stats.Participants,
		Raised:          moneyValue{Minor: stats.RaisedMinor, Label: money.Label(tag, stats.RaisedMinor)},
		Goal:            moneyValue{Minor: stats.GoalMinor, Label: money.Label(tag, stats.GoalMinor)},
		ProgressPercent: stats.ProgressPercent(),
	}
	if !stats.UpdatedAt.IsZero() {
		updated := stats.UpdatedAt.UTC()
		resp.UpdatedAt = &updated
	}
	a.json(w, http.StatusOK, resp)
}
