/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 *
 * Grounded on original_source/dictwalk/backend.py's resolve_backend, which
 * validates a requested backend name against the set this distribution
 * actually ships. The Python original chooses between a Rust extension and
 * failing hard; this module has exactly one backend (the pure-Go evaluator
 * in this package), so the valid set shrinks to {"auto", "go"} and
 * resolution always succeeds once the name itself is valid.
 */

package dictwalk

import (
	"fmt"
	"os"
	"strings"
)

// BackendEnvVar is the environment variable host applications may set to
// pin (or override) the backend preference, mirroring DICTWALK_BACKEND.
const BackendEnvVar = "DICTWALK_BACKEND"

var validBackends = map[string]bool{"auto": true, "go": true}

// ResolveBackend validates preference (or, if empty, the DICTWALK_BACKEND
// environment variable, defaulting to "auto") against the backends this
// module ships, returning the resolved backend name. Both "auto" and "go"
// resolve to the same pure-Go evaluator; the distinction exists so host
// configuration written against the original multi-backend contract still
// validates here.
func ResolveBackend(preference string) (string, error) {
	requested := preference
	if requested == "" {
		requested = os.Getenv(BackendEnvVar)
	}
	if requested == "" {
		requested = "auto"
	}
	requested = strings.ToLower(strings.TrimSpace(requested))

	if !validBackends[requested] {
		return "", fmt.Errorf("dictwalk: invalid backend %q; expected one of: auto, go", requested)
	}
	return "go", nil
}
