// Copyright (c) 2026 BrainWave. All rights reserved.
// Author: hamzahey@brainwave.health

package analysis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/hamzahey/brainwave-api/internal/platform/request"
	"github.com/hamzahey/brainwave-api/internal/platform/respond"
)

// Handler serves the analysis endpoints. Routes are expected to be mounted
// behind authentication; per-record visibility is enforced in the service.
type Handler struct {
	service *Service
}

// NewHandler creates the analysis HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes builds the /analysis route tree.
func (h *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/save", h.save)
	router.Get("/", h.list)

	return router
}

type analysesResponse struct {
	Count    int        `json:"count"`
	Analyses []Analysis `json:"analyses"`
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	userID, err := requestutil.RequiredUserID(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var in SaveInput
	if err := requestutil.DecodeJSON(r, &in); err != nil {
		respond.Error(w, r, err)
		return
	}

	analyses, err := h.service.Save(r.Context(), userID, in)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.Created(w, analysesResponse{Count: len(analyses), Analyses: analyses})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	claims, err := requestutil.RequiredClaims(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	analyses, err := h.service.List(r.Context(), claims)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.OK(w, analysesResponse{Count: len(analyses), Analyses: analyses})
}
