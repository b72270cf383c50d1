// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package missioncontrol reads typed settings from a remote JSON document,
// with a persisted copy of the last good document and application supplied
// defaults behind it.
//
// A value is looked up in three tiers, first hit wins:
//
//  1. remote: the document fetched by the last successful refresh;
//  2. cached: the same document persisted on disk, surviving restarts;
//  3. local:  the defaults passed to [Client.Launch].
//
// A value that exists but has the wrong type is skipped, and when no tier
// holds a usable value the caller's fallback is returned. Lookups never wait
// for the network.
//
//	mc, err := missioncontrol.New(missioncontrol.WithCacheDSN("settings.db"))
//	if err != nil {
//		return err
//	}
//	defer mc.Close()
//
//	mc.Launch(missioncontrol.ConfigMap{"timeout": missioncontrol.Int(5)}, "https://example.com/config.json")
//	timeout := mc.Double("timeout", 10)
//
// Refresh outcomes are reported to an optional [Delegate], to subscribers of
// [DidRefreshConfig] and [DidFailRefreshingConfig], and to the completion
// passed to [Client.Refresh], in that order.
package missioncontrol
