// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod is meant to be installed with [chi.Mux.MethodNotAllowed].
// It answers 404 instead of chi's 405 when the path exists but the method is
// not registered for it, so the server has a single "not here" answer. A
// request whose method is registered on the exact pattern is passed back to
// router.
//
// Only literal patterns are compared; routes with URL parameters or
// wildcards never match.
func CheckHTTPMethod(router *chi.Mux) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern != r.URL.Path {
				continue
			}
			if _, ok := route.Handlers[r.Method]; ok {
				router.ServeHTTP(w, r)
				return
			}
			break
		}

		http.NotFound(w, r)
	}
}
