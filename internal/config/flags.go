// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// Flag names shared by the commands.
const (
	FlagConfig          = "config"
	FlagURL             = "url"
	FlagRequestTimeout  = "request-timeout"
	FlagCacheDSN        = "cache-dsn"
	FlagRefreshInterval = "refresh-interval"
	FlagLocalDefaults   = "local-defaults"
	FlagMetricsAddress  = "metrics-address"
	FlagLogFile         = "log-file"
	FlagLogLevel        = "log-level"
	FlagAddress         = "address"
	FlagFile            = "file"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// RegisterCommonFlags adds the flags every command understands.
func RegisterCommonFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "JSON config file path")
	fs.String(FlagLogFile, "", "log file path (default: \"logs\" next to the executable)")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
}

// RegisterClientFlags adds the flags of the config client commands.
//
// Flags:
//
//	-u/--url remote config document URL
//	--request-timeout timeout of a single fetch (e.g. "10s")
//	-d/--cache-dsn SQLite cache file (":memory:" disables persistence)
//	--refresh-interval background refresh period (e.g. "1m")
//	-l/--local-defaults JSON file with local default settings
//	--metrics-address host:port serving /metrics
func RegisterClientFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagURL, "u", "", "remote config document URL")
	fs.Duration(FlagRequestTimeout, 0, "timeout of a single fetch (e.g. 10s)")
	fs.StringP(FlagCacheDSN, "d", "", "SQLite cache file (\":memory:\" disables persistence)")
	fs.Duration(FlagRefreshInterval, 0, "background refresh period (e.g. 1m)")
	fs.StringP(FlagLocalDefaults, "l", "", "JSON file with local default settings")
	fs.Var(&NetAddress{}, FlagMetricsAddress, "host:port serving Prometheus /metrics")
}

// RegisterServerFlags adds the flags of the development config server.
//
// Flags:
//
//	-a/--address listen address in format host:port
//	-f/--file JSON document served at /config
func RegisterServerFlags(fs *pflag.FlagSet) {
	fs.VarP(&NetAddress{}, FlagAddress, "a", "listen address host:port")
	fs.StringP(FlagFile, "f", "", "JSON document served at /config")
}

// parseFlags reads every known flag that is defined on fs. Flags that were
// not registered for the running command are left zero.
func parseFlags(fs *pflag.FlagSet) (*StructuredConfig, error) {
	var (
		cfg  StructuredConfig
		errs []error
	)

	str := func(name string) string {
		f := fs.Lookup(name)
		if f == nil {
			return ""
		}
		return f.Value.String()
	}
	dur := func(name string) int64 {
		if fs.Lookup(name) == nil {
			return 0
		}
		d, err := fs.GetDuration(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("flag --%s: %w", name, err))
		}
		return int64(d)
	}

	cfg.JSONFilePath = str(FlagConfig)
	cfg.Remote.URL = str(FlagURL)
	cfg.Remote.RequestTimeout = time.Duration(dur(FlagRequestTimeout))
	cfg.Storage.DB.DSN = str(FlagCacheDSN)
	cfg.Workers.RefreshInterval = time.Duration(dur(FlagRefreshInterval))
	cfg.App.LocalDefaultsPath = str(FlagLocalDefaults)
	cfg.App.LogFile = str(FlagLogFile)
	cfg.App.LogLevel = str(FlagLogLevel)
	cfg.Metrics.Address = str(FlagMetricsAddress)
	cfg.Server.HTTPAddress = str(FlagAddress)
	cfg.Server.ConfigFile = str(FlagFile)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return &cfg, nil
}

// String returns a canonical host:port string for a NetAddress, or "" when
// neither part is set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
