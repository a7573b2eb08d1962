// cmd/tools/score-profile/commands.go
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"loan-marketplace-workers/internal/advisor"
	"loan-marketplace-workers/internal/common/config"
	"loan-marketplace-workers/internal/common/database"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

type report struct {
	ProfileID       string                   `json:"profileId"`
	Eligibility     models.EligibilityResult `json:"eligibility"`
	Recommendations []models.Recommendation  `json:"recommendations"`
}

func newReport(ev *advisor.Evaluation) report {
	recos := ev.Recommendations
	if recos == nil {
		recos = []models.Recommendation{}
	}
	return report{ProfileID: ev.Profile.ProfileID, Eligibility: ev.Result, Recommendations: recos}
}

func newFileCmd() *cobra.Command {
	var profilePath, catalogPath string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a profile JSON file against a catalog JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := scoreFiles(profilePath, catalogPath)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringVar(&profilePath, "profile", "", "Profile JSON file")
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Catalog JSON file (array of loan products)")
	_ = cmd.MarkFlagRequired("profile")
	_ = cmd.MarkFlagRequired("catalog")
	return cmd
}

func newDBCmd() *cobra.Command {
	var profileID, loanType string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Score a stored profile against the loans table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer pg.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			r, err := scoreStored(ctx, pg.DB, profileID, loanType)
			if err != nil {
				return err
			}
			return printReport(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringVar(&profileID, "profile-id", "", "Profile id in the users table")
	cmd.Flags().StringVar(&loanType, "loan-type", "", "Restrict the catalog to one loan type")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Query timeout")
	_ = cmd.MarkFlagRequired("profile-id")
	return cmd
}

func scoreFiles(profilePath, catalogPath string) (report, error) {
	var profile models.UserProfile
	if err := readJSON(profilePath, &profile); err != nil {
		return report{}, err
	}
	var catalog []models.LoanProduct
	if err := readJSON(catalogPath, &catalog); err != nil {
		return report{}, err
	}

	ev, err := advisor.Score(profile, catalog)
	if err != nil {
		return report{}, err
	}
	return newReport(ev), nil
}

// scoreStored reads without a cache so the result reflects the tables.
func scoreStored(ctx context.Context, db *sql.DB, profileID, loanType string) (report, error) {
	loanType = strings.ToLower(strings.TrimSpace(loanType))
	if loanType != "" && !models.IsValidLoanType(loanType) {
		return report{}, fmt.Errorf("unknown loan type %q", loanType)
	}

	a := advisor.New(store.NewProfiles(db, nil, 0), store.NewCatalog(db, nil, 0))
	ev, err := a.Evaluate(ctx, profileID, loanType)
	if err != nil {
		return report{}, err
	}
	return newReport(ev), nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func printReport(w io.Writer, r report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
