// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the diagnostic log for palaver.
//
// The Logger is an explicit collaborator passed to the components that
// need it; there is no package-level singleton. Each write opens the
// backing file in append mode, writes one timestamped line, and closes
// the handle again, so a crash can never leave the log file held open
// and concurrent writers never interleave partial lines.
package logging
