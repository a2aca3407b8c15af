// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

// Package admin exposes the administrator directory: read-only listings of
// patient and doctor profiles joined with their account identities.
package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hamzahey/brainwave-api/internal/doctor"
	"github.com/hamzahey/brainwave-api/internal/patient"
	"github.com/hamzahey/brainwave-api/internal/platform/apperr"
	requestutil "github.com/hamzahey/brainwave-api/internal/platform/request"
	"github.com/hamzahey/brainwave-api/internal/platform/respond"
)

// Handler serves the admin directory endpoints. Routes are expected to be
// mounted behind authentication plus an admin role gate.
type Handler struct {
	patients patient.Repository
	doctors  doctor.Repository
}

// NewHandler creates the admin directory handler.
func NewHandler(patients patient.Repository, doctors doctor.Repository) *Handler {
	return &Handler{patients: patients, doctors: doctors}
}

// Routes builds the /admin route tree.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/patients", h.listPatients)
	router.Get("/patient/{patientId}", h.getPatient)
	router.Get("/doctors", h.listDoctors)
	router.Get("/doctor/{registrationNumber}", h.getDoctor)

	return router
}

type listResponse[T any] struct {
	Count int `json:"count"`
	Items []T `json:"items"`
}

func (h *Handler) listPatients(w http.ResponseWriter, r *http.Request) {
	records, err := h.patients.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, listResponse[patient.Record]{Count: len(records), Items: records})
}

func (h *Handler) getPatient(w http.ResponseWriter, r *http.Request) {
	patientID := requestutil.Param(r, "patientId")

	record, err := h.patients.FindByPatientID(r.Context(), patientID)
	if err != nil {
		if errors.Is(err, patient.ErrNotFound) {
			respond.Error(w, r, apperr.NotFound("Patient"))
			return
		}
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, record)
}

func (h *Handler) listDoctors(w http.ResponseWriter, r *http.Request) {
	records, err := h.doctors.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, listResponse[doctor.Record]{Count: len(records), Items: records})
}

func (h *Handler) getDoctor(w http.ResponseWriter, r *http.Request) {
	registrationNumber := requestutil.Param(r, "registrationNumber")

	record, err := h.doctors.FindByRegistrationNumber(r.Context(), registrationNumber)
	if err != nil {
		if errors.Is(err, doctor.ErrNotFound) {
			respond.Error(w, r, apperr.NotFound("Doctor"))
			return
		}
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, record)
}
