// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package analysis

import "context"

// Repository is the persistence contract for analysis records.
type Repository interface {
	// SaveAll inserts a batch of analyses atomically.
	SaveAll(ctx context.Context, analyses []Analysis) error

	// ListAll returns every analysis, newest first. Admin view.
	ListAll(ctx context.Context) ([]Analysis, error)

	// ListByRequester returns the analyses submitted by one user, newest first.
	ListByRequester(ctx context.Context, userID string) ([]Analysis, error)
}
