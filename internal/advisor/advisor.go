// internal/advisor/advisor.go

// Package advisor loads a profile and the loan catalog and runs the
// eligibility engine over them. Workers and the score-profile tool share it.
package advisor

import (
	"context"
	"errors"

	apperrors "loan-marketplace-workers/internal/common/errors"
	"loan-marketplace-workers/internal/common/metrics"
	"loan-marketplace-workers/internal/eligibility"
	"loan-marketplace-workers/internal/models"
	"loan-marketplace-workers/internal/store"
)

// ProfileSource returns one profile.
type ProfileSource interface {
	Get(ctx context.Context, profileID string) (models.UserProfile, error)
}

// CatalogSource returns the catalog, optionally narrowed to one loan type.
type CatalogSource interface {
	Loans(ctx context.Context, loanType string) ([]models.LoanProduct, error)
}

type Advisor struct {
	profiles ProfileSource
	catalog  CatalogSource
}

func New(profiles ProfileSource, catalog CatalogSource) *Advisor {
	return &Advisor{profiles: profiles, catalog: catalog}
}

// Evaluation is the engine output for one profile together with the
// recommendations projected from its top loans.
type Evaluation struct {
	Profile         models.UserProfile
	Result          models.EligibilityResult
	Recommendations []models.Recommendation
}

// Evaluate runs the engine for profileID. Errors are job errors.
func (a *Advisor) Evaluate(ctx context.Context, profileID, loanType string) (*Evaluation, error) {
	profile, err := a.profiles.Get(ctx, profileID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.NewProfileNotFoundError(profileID)
	}
	if err != nil {
		return nil, store.QueryError("get_profile", err)
	}

	catalog, err := a.catalog.Loans(ctx, loanType)
	if err != nil {
		return nil, store.QueryError("list_loans", err)
	}

	return Score(profile, catalog)
}

// Score runs the engine on already loaded inputs.
func Score(profile models.UserProfile, catalog []models.LoanProduct) (*Evaluation, error) {
	if err := eligibility.ValidateProfile(profile); err != nil {
		return nil, apperrors.NewProfileValidationFailedError(err.Error(), err)
	}

	result := eligibility.FindEligibleLoans(profile, catalog)
	metrics.RecordEligibility(result.Eligible, result.EligibilityScore, len(result.SkippedLoans))

	return &Evaluation{
		Profile:         profile,
		Result:          result,
		Recommendations: eligibility.ProjectRecommendations(profile.ProfileID, profile, result.RecommendedLoans),
	}, nil
}
