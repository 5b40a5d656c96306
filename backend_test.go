/*
 * Copyright 2026 dictwalk-go authors.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package dictwalk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveBackendExplicitPreference(t *testing.T) {
	backend, err := ResolveBackend("go")
	require.NoError(t, err)
	require.Equal(t, "go", backend)
}

func TestResolveBackendDefaultsToAuto(t *testing.T) {
	t.Setenv(BackendEnvVar, "")
	backend, err := ResolveBackend("")
	require.NoError(t, err)
	require.Equal(t, "go", backend)
}

func TestResolveBackendReadsEnvVar(t *testing.T) {
	t.Setenv(BackendEnvVar, "go")
	backend, err := ResolveBackend("")
	require.NoError(t, err)
	require.Equal(t, "go", backend)
}

func TestResolveBackendInvalidNameErrors(t *testing.T) {
	_, err := ResolveBackend("rust")
	require.Error(t, err)
}

func TestResolveBackendCaseInsensitive(t *testing.T) {
	backend, err := ResolveBackend("AUTO")
	require.NoError(t, err)
	require.Equal(t, "go", backend)
}
