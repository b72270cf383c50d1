// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"os"

	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/internal/utils"
	"github.com/MKhiriev/mission-control/models"
)

// digestHeader carries the canonical digest of the served document when it
// parses as a config object.
const digestHeader = "X-Config-Digest"

// getConfig serves the document file as-is. The file is read on every request
// so edits show up without restarting the server. A document that does not
// parse is still served; the problem is only logged.
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := os.ReadFile(h.documentPath)
	if err != nil {
		log.Err(err).Str("document", h.documentPath).Msg("error reading config document")
		status, msg := responseFromError(err)
		http.Error(w, msg, status)
		return
	}

	cfg, skipped, err := models.ParseConfigMap(body)
	if err != nil {
		log.Warn().Err(err).Msg("served document is not a valid config")
	} else {
		if len(skipped) > 0 {
			log.Warn().Strs("skipped_keys", skipped).Msg("served document has unsupported values")
		}
		w.Header().Set(digestHeader, cfg.Digest())
	}

	if _, err = utils.WriteRawJSON(w, body, http.StatusOK); err != nil {
		log.Err(err).Msg("error writing response")
	}
}

func (h *Handler) getEmptyConfig(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) getInvalidConfig(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteRawJSON(w, []byte(`{"TestBool": true, "TestInt": `), http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

func (h *Handler) getArrayConfig(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, []any{"TestBool", true, "TestInt", 8}, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
