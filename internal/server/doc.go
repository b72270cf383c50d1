// Package server runs the development config server and shuts it down
// gracefully on SIGINT, SIGTERM or SIGQUIT.
package server
