package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"pixdoacao/internal/adapter/repo"
	"pixdoacao/internal/domain"
	"pixdoacao/internal/infra"
	"pixdoacao/internal/money"
)

func main() {
	var (
		participantsFlag int64
		raisedFlag       string
		goalFlag         string
		donationFlag     string
		verboseFlag      bool
	)

	flag.Int64Var(&participantsFlag, "participants", 0, "participant count for a new snapshot")
	flag.StringVar(&raisedFlag, "raised", "0", "amount raised so far, in reais")
	flag.StringVar(&goalFlag, "goal", "", "campaign goal, in reais (required unless -donation is set)")
	flag.StringVar(&donationFlag, "donation", "", "record a single donation of this many reais on top of the newest snapshot")
	flag.BoolVar(&verboseFlag, "v", false, "log queries")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("failed to connect database: %w", err))
	}
	defer pool.Close()

	logger := infra.NewCLILogger(verboseFlag).With().Str("cmd", "campaignstats").Logger()
	campaign := repo.NewCampaignRepository(infra.NewSQLRunner(pool, logger), domain.DefaultCampaignStats)

	var stats domain.CampaignStats
	if donation := strings.TrimSpace(donationFlag); donation != "" {
		minor, err := parseReais("-donation", donation)
		if err != nil {
			exitWithError(err)
		}
		stats, err = campaign.RecordDonation(ctx, minor)
		if err != nil {
			exitWithError(fmt.Errorf("failed to record donation: %w", err))
		}
	} else {
		if strings.TrimSpace(goalFlag) == "" {
			exitWithError(errors.New("-goal is required"))
		}
		goal, err := parseReais("-goal", goalFlag)
		if err != nil {
			exitWithError(err)
		}
		var raised int64
		if r := strings.TrimSpace(raisedFlag); r != "" && r != "0" {
			if raised, err = parseReais("-raised", r); err != nil {
				exitWithError(err)
			}
		}
		stats, err = campaign.Save(ctx, domain.CampaignStats{
			Participants: participantsFlag,
			RaisedMinor:  raised,
			GoalMinor:    goal,
		})
		if err != nil {
			exitWithError(fmt.Errorf("failed to save campaign stats: %w", err))
		}
	}

	tag := money.Tag("pt")
	fmt.Printf("participants=%d\n", stats.Participants)
	fmt.Printf("raised=%s\n", money.Label(tag, stats.RaisedMinor))
	fmt.Printf("goal=%s\n", money.Label(tag, stats.GoalMinor))
	fmt.Printf("progress=%d%%\n", stats.ProgressPercent())
	fmt.Printf("updated_at=%s\n", stats.UpdatedAt.UTC().Format(time.RFC3339))
}

func parseReais(name, raw string) (int64, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	rounded := amount.Round(2)
	if !rounded.IsPositive() {
		return 0, fmt.Errorf("%s: %w: %s", name, domain.ErrInvalidAmount, raw)
	}
	return rounded.Shift(2).IntPart(), nil
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
