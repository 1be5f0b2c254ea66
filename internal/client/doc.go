// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the device-side command-line application.
//
// It wires the sync services, the progress screen and the background sync
// worker into sub-commands:
//
//	sync     run one sync (-first, -full push|pull, -reduce, -plain)
//	compare  reconcile by id in one direction (-limit, -plain)
//	daemon   sync now and then every interval until interrupted
//	put      store documents read from a JSON file in the local database
//
// Host describes the machine for the post-sync report.
package client
