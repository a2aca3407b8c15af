// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package analysis_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamzahey/brainwave-api/internal/analysis"
	"github.com/hamzahey/brainwave-api/internal/platform/apperr"
	"github.com/hamzahey/brainwave-api/internal/platform/sec"
)

// memoryRepo stores analyses in a slice.
type memoryRepo struct {
	saved []analysis.Analysis
}

func (m *memoryRepo) SaveAll(_ context.Context, analyses []analysis.Analysis) error {
	m.saved = append(m.saved, analyses...)
	return nil
}

func (m *memoryRepo) ListAll(_ context.Context) ([]analysis.Analysis, error) {
	return m.saved, nil
}

func (m *memoryRepo) ListByRequester(_ context.Context, userID string) ([]analysis.Analysis, error) {
	var out []analysis.Analysis
	for _, a := range m.saved {
		if a.RequestedBy == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func newService() (*analysis.Service, *memoryRepo) {
	repo := &memoryRepo{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return analysis.NewService(repo, logger), repo
}

/*
TestService_Save verifies outcome mapping: codes 1 and 2 classify as Good,
everything else as Poor, and every record lands completed with the caller
recorded.
*/
func TestService_Save(t *testing.T) {
	service, repo := newService()

	saved, err := service.Save(context.Background(), "doctor-1", analysis.SaveInput{
		Patients: []analysis.InferenceResult{
			{PatientID: "BW-0001", Outcome: 1, OutcomeProbability: 0.91, CPC: 1},
			{PatientID: "BW-0002", Outcome: 2, OutcomeProbability: 0.72, CPC: 2},
			{PatientID: "BW-0003", Outcome: 4, OutcomeProbability: 0.88, CPC: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, saved, 3)
	require.Len(t, repo.saved, 3)

	assert.Equal(t, analysis.ClassificationGood, saved[0].Results.Classification)
	assert.Equal(t, analysis.ClassificationGood, saved[1].Results.Classification)
	assert.Equal(t, analysis.ClassificationPoor, saved[2].Results.Classification)

	for _, a := range saved {
		assert.Equal(t, analysis.StatusCompleted, a.Status)
		assert.Equal(t, "doctor-1", a.RequestedBy)
		assert.NotEmpty(t, a.ID)
	}
	assert.InDelta(t, 0.91, saved[0].Results.ConfidenceScore, 1e-9)
	assert.Equal(t, 4, saved[2].Results.CPCScore)
}

/*
TestService_Save_Validation verifies empty batches and missing patient IDs
are rejected before anything is written.
*/
func TestService_Save_Validation(t *testing.T) {
	service, repo := newService()

	_, err := service.Save(context.Background(), "doctor-1", analysis.SaveInput{})
	require.Error(t, err)

	_, err = service.Save(context.Background(), "doctor-1", analysis.SaveInput{
		Patients: []analysis.InferenceResult{{Outcome: 1}},
	})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	assert.Empty(t, repo.saved)
}

/*
TestService_List verifies visibility: admins see everything, other roles
only their own submissions.
*/
func TestService_List(t *testing.T) {
	service, _ := newService()

	_, err := service.Save(context.Background(), "doctor-1", analysis.SaveInput{
		Patients: []analysis.InferenceResult{{PatientID: "BW-0001", Outcome: 1}},
	})
	require.NoError(t, err)
	_, err = service.Save(context.Background(), "doctor-2", analysis.SaveInput{
		Patients: []analysis.InferenceResult{{PatientID: "BW-0002", Outcome: 3}},
	})
	require.NoError(t, err)

	// 1. Admin sees both
	all, err := service.List(context.Background(), &sec.AuthClaims{UserID: "admin-1", Role: sec.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// 2. A doctor sees only their own
	own, err := service.List(context.Background(), &sec.AuthClaims{UserID: "doctor-1", Role: sec.RoleDoctor})
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "BW-0001", own[0].PatientID)

	// 3. A doctor with no submissions sees an empty list
	none, err := service.List(context.Background(), &sec.AuthClaims{UserID: "doctor-3", Role: sec.RoleDoctor})
	require.NoError(t, err)
	assert.Empty(t, none)
}
