package handlers

import (
	"encoding/json"
	"net/http"

	"pixdoacao/internal/domain"
	"pixdoacao/internal/infra"
	"pixdoacao/internal/pix"
)

const maxBodyBytes = 1 << 16

type App struct {
	Logger    *infra.Logger
	Generator *pix.Generator
	Campaign  domain.CampaignRepository
}

func NewApp(logger *infra.Logger, generator *pix.Generator, campaign domain.CampaignRepository) *App {
	if logger == nil {
		logger = infra.DiscardLogger()
	}
	return &App{Logger: logger, Generator: generator, Campaign: campaign}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, msg string) {
	a.json(w, code, map[string]string{"error": msg})
}

// internal logs err and answers with a generic 500 body.
func (a *App) internal(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Error().
		Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	a.error(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}
