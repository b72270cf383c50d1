// Package config provides configuration loading, merging, and validation
// facilities for mission-control.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win, later ones only fill gaps):
//  1. Command-line flags
//  2. Environment variables
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetClientConfig] for the config client commands
// and [GetServerConfig] for the development config server.
package config
