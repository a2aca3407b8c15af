// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

// Package doctor holds doctor profile records and their Postgres store.
package doctor

import "time"

// Doctor is the professional profile attached to a user account with the
// doctor role. RegistrationNumber is the medical-council identifier and is
// unique across the system.
type Doctor struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"user_id"`
	Specialization     string    `json:"specialization"`
	Department         string    `json:"department"`
	RegistrationNumber string    `json:"registration_number"`
	HospitalName       string    `json:"hospital_name,omitempty"`
	Qualifications     []string  `json:"qualifications,omitempty"`
	YearsOfExperience  int       `json:"years_of_experience"`
	CreatedAt          time.Time `json:"created_at"`
}
