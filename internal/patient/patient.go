// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

// Package patient holds patient profile records and their Postgres store.
package patient

import "time"

// # Domain Entities

// Address is the patient's postal address, stored as a JSONB document.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// MedicalEntry is a single item of the patient's medical history.
type MedicalEntry struct {
	Condition     string `json:"condition"`
	DiagnosedDate string `json:"diagnosed_date,omitempty"` // YYYY-MM-DD
	Notes         string `json:"notes,omitempty"`
}

// EmergencyContact identifies who to reach when the patient cannot respond.
type EmergencyContact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

// Patient is the clinical profile attached to a user account with the
// patient role. PatientID is the hospital-issued identifier and is unique
// across the system, independently of the account email.
type Patient struct {
	ID               string            `json:"id"`
	UserID           string            `json:"user_id"`
	PatientID        string            `json:"patient_id"`
	DateOfBirth      string            `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Gender           string            `json:"gender,omitempty"`
	Address          *Address          `json:"address,omitempty"`
	MedicalHistory   []MedicalEntry    `json:"medical_history,omitempty"`
	Allergies        []string          `json:"allergies,omitempty"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// Genders accepted by profile validation.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// AllGenders lists every accepted gender value, for validation.
var AllGenders = []string{GenderMale, GenderFemale, GenderOther}
