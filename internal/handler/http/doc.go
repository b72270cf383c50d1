// Package http implements the development config server: a chi router that
// hosts a JSON config document for the client to fetch, plus a few
// deliberately broken documents for exercising the client's error handling.
//
// Routes:
//
//	GET /config          the document file, re-read on every request
//	GET /config/empty    200 with an empty body
//	GET /config/invalid  200 with a body that is not JSON
//	GET /config/array    200 with a JSON array
//	GET /version         build version, plain text
//
// Every other path, and every unregistered method, answers 404.
package http
