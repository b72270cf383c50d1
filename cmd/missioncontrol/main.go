// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command missioncontrol resolves remote settings from the command line and
// runs a development server that publishes a JSON config document.
package main

import (
	"fmt"
	"os"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
