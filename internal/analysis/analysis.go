// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

/*
Package analysis stores EEG inference outcomes and serves them back to the
clinicians and patients who are allowed to see them.

The inference itself runs in a separate model service; this package only
receives its classification output, maps it onto the clinical vocabulary
and persists it per patient.
*/
package analysis

import "time"

// Status tracks an analysis through its lifecycle. Results delivered by the
// model service arrive finished, so most records are created completed;
// the earlier states exist for asynchronous ingestion paths.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Classification labels for the neurological outcome prediction.
const (
	ClassificationGood = "Good"
	ClassificationPoor = "Poor"
)

// Results is the clinical summary of one inference run, stored as JSONB.
type Results struct {
	Classification    string   `json:"classification"`
	ConfidenceScore   float64  `json:"confidence_score"`
	CPCScore          int      `json:"cpc_score"`
	DetectedArtifacts []string `json:"detected_artifacts,omitempty"`
}

// Analysis is one stored inference outcome for one patient.
type Analysis struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"` // Hospital identifier, not a row ID.
	RequestedBy string    `json:"requested_by"`
	Status      Status    `json:"status"`
	Results     Results   `json:"results"`
	CreatedAt   time.Time `json:"created_at"`
}
