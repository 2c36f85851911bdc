// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/poiesic/reach/browse"
	"github.com/poiesic/reach/core"
	"github.com/poiesic/reach/ingestion"
	"github.com/poiesic/reach/storage"
)

// handleListContacts returns all contacts, newest first, with optional
// industry/location substring filters and a limit. GET /api/contacts.
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.ListContacts(r.Context())
	if err != nil {
		s.logger.Error("error listing contacts", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to list contacts")
		return
	}

	industry := r.URL.Query().Get("industry")
	location := r.URL.Query().Get("location")
	if industry != "" || location != "" {
		filtered := contacts[:0]
		for _, c := range contacts {
			if industry != "" && !containsFold(c.Industry, industry) {
				continue
			}
			if location != "" && !containsFold(c.Location, location) {
				continue
			}
			filtered = append(filtered, c)
		}
		contacts = filtered
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		if limit < len(contacts) {
			contacts = contacts[:limit]
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

type createContactRequest struct {
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Company         string     `json:"company"`
	Role            string     `json:"role"`
	Location        string     `json:"location"`
	Industry        string     `json:"industry"`
	EventType       string     `json:"event_type"`
	MeetingLocation string     `json:"meeting_location"`
	MetDate         *time.Time `json:"met_date"`
	Priority        int        `json:"priority"`
	Tags            []string   `json:"tags"`
	RawContext      string     `json:"raw_context"`
}

// handleCreateContact captures a new contact through the ingestion
// pipeline. POST /api/contacts.
func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	if s.capture == nil {
		writeError(w, http.StatusServiceUnavailable, "Contact capture unavailable")
		return
	}

	var req createContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact, err := s.capture.Capture(r.Context(), &ingestion.CaptureRequest{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		Role:            req.Role,
		Location:        req.Location,
		Industry:        req.Industry,
		EventType:       req.EventType,
		MeetingLocation: req.MeetingLocation,
		MetDate:         req.MetDate,
		Priority:        req.Priority,
		Tags:            req.Tags,
		RawContext:      req.RawContext,
	})
	if err != nil {
		if errors.Is(err, core.ErrInvalidContact) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("error capturing contact", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to save contact")
		return
	}

	writeJSON(w, http.StatusCreated, contact)
}

// handleGetContact returns one contact by id. GET /api/contacts/{id}.
func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	contact, err := s.contacts.GetContact(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		s.logger.Error("error fetching contact", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch contact")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}

// ContactPatch carries a field-level partial update. Nil fields are
// left untouched; Id and CreatedAt can never be patched.
type ContactPatch struct {
	Name            *string    `json:"name,omitempty"`
	Email           *string    `json:"email,omitempty"`
	Phone           *string    `json:"phone,omitempty"`
	Company         *string    `json:"company,omitempty"`
	Role            *string    `json:"role,omitempty"`
	LinkedInURL     *string    `json:"linkedin_url,omitempty"`
	CardImageURL    *string    `json:"card_image_url,omitempty"`
	Location        *string    `json:"location,omitempty"`
	Industry        *string    `json:"industry,omitempty"`
	EventType       *string    `json:"event_type,omitempty"`
	MeetingLocation *string    `json:"meeting_location,omitempty"`
	MetDate         *time.Time `json:"met_date,omitempty"`
	Tags            *[]string  `json:"tags,omitempty"`
	RawContext      *string    `json:"raw_context,omitempty"`
	Priority        *int       `json:"priority,omitempty"`
}

func (p *ContactPatch) apply(c *core.Contact) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setStr(&c.Name, p.Name)
	setStr(&c.Email, p.Email)
	setStr(&c.Phone, p.Phone)
	setStr(&c.Company, p.Company)
	setStr(&c.Role, p.Role)
	setStr(&c.LinkedInURL, p.LinkedInURL)
	setStr(&c.CardImageURL, p.CardImageURL)
	setStr(&c.Location, p.Location)
	setStr(&c.Industry, p.Industry)
	setStr(&c.EventType, p.EventType)
	setStr(&c.MeetingLocation, p.MeetingLocation)
	setStr(&c.RawContext, p.RawContext)
	if p.MetDate != nil {
		c.MetDate = p.MetDate
	}
	if p.Tags != nil {
		c.Tags = *p.Tags
	}
	if p.Priority != nil {
		c.Priority = *p.Priority
	}
}

// handlePatchContact applies a partial update. PATCH /api/contacts/{id}.
func (s *Server) handlePatchContact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch ContactPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact, err := s.contacts.GetContact(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		s.logger.Error("error fetching contact", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch contact")
		return
	}

	patch.apply(contact)
	if err := core.ValidateContact(contact); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := s.contacts.UpdateContact(r.Context(), contact)
	if err != nil {
		s.logger.Error("error updating contact", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to update contact")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteContact removes a contact. DELETE /api/contacts/{id}.
func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.contacts.DeleteContacts(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		s.logger.Error("error deleting contact", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete contact")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// handleTags returns tag frequencies over the deduplicated contact
// list for quick-filter chips. GET /api/tags.
func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.ListContacts(r.Context())
	if err != nil {
		s.logger.Error("error listing contacts", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to list contacts")
		return
	}

	counts := browse.TagCounts(contacts)

	writeJSON(w, http.StatusOK, map[string]any{
		"tags":     counts,
		"contacts": len(browse.Dedupe(contacts)),
	})
}
