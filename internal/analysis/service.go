// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/hamzahey/brainwave-api/internal/platform/apperr"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
	"github.com/hamzahey/brainwave-api/pkg/uuid"
)

// Service maps inference output onto stored analyses and enforces who may
// read them back.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates the analysis service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// InferenceResult is one patient's prediction as emitted by the model
// service. Outcome follows the CPC convention: 1 and 2 predict a good
// neurological outcome, 3 through 5 a poor one.
type InferenceResult struct {
	PatientID          string  `json:"patient_id"`
	Outcome            int     `json:"outcome"`
	OutcomeProbability float64 `json:"outcome_probability"`
	CPC                int     `json:"cpc"`
}

// SaveInput is the batch payload from one inference run.
type SaveInput struct {
	Patients []InferenceResult `json:"patients"`
}

// Save converts an inference batch into completed analysis records and
// stores them atomically.
func (s *Service) Save(ctx context.Context, requestedBy string, in SaveInput) ([]Analysis, error) {
	if len(in.Patients) == 0 {
		return nil, apperr.ValidationError("No patient results to save")
	}

	now := time.Now().UTC()
	analyses := make([]Analysis, 0, len(in.Patients))
	for _, result := range in.Patients {
		if result.PatientID == "" {
			return nil, apperr.ValidationError("Every result needs a patient_id")
		}
		analyses = append(analyses, Analysis{
			ID:          uuid.New(),
			PatientID:   result.PatientID,
			RequestedBy: requestedBy,
			Status:      StatusCompleted,
			Results: Results{
				Classification:  classify(result.Outcome),
				ConfidenceScore: result.OutcomeProbability,
				CPCScore:        result.CPC,
			},
			CreatedAt: now,
		})
	}

	if err := s.repo.SaveAll(ctx, analyses); err != nil {
		return nil, apperr.Internal(err)
	}

	s.logger.InfoContext(ctx, "analyses saved",
		slog.Int("count", len(analyses)),
		slog.String("requested_by", requestedBy),
	)
	return analyses, nil
}

// List returns the analyses the caller may see: administrators see all of
// them, everyone else only what they submitted themselves.
func (s *Service) List(ctx context.Context, claims *sec.AuthClaims) ([]Analysis, error) {
	var (
		analyses []Analysis
		err      error
	)
	if claims.Role == sec.RoleAdmin {
		analyses, err = s.repo.ListAll(ctx)
	} else {
		analyses, err = s.repo.ListByRequester(ctx, claims.UserID)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return analyses, nil
}

// classify maps a CPC-style outcome code onto the clinical label.
func classify(outcome int) string {
	if outcome == 1 || outcome == 2 {
		return ClassificationGood
	}
	return ClassificationPoor
}
