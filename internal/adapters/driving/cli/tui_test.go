package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "tui", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Long, "compliance check")
}

func TestTUIPorts(t *testing.T) {
	ts, cleanup := setupTestServicesWith()
	defer cleanup()

	watched := false
	services.WatchCredentials = func(context.Context) (<-chan struct{}, error) {
		watched = true
		return nil, nil
	}

	ports := tuiPorts(services)

	require.NoError(t, ports.Validate())
	assert.Same(t, ts.docs, ports.Documents)
	assert.Same(t, ts.cmp, ports.Comparisons)
	assert.Same(t, ts.qa, ports.QA)
	assert.Same(t, ts.auth, ports.Auth)
	assert.NotNil(t, ports.Payloads)
	assert.NotNil(t, ports.Decoder)

	_, err := ports.WatchCredentials(context.Background())
	require.NoError(t, err)
	assert.True(t, watched)
}

func TestTUI_NotConfigured(t *testing.T) {
	prevServices, prevBootstrap := services, bootstrap
	defer func() { services, bootstrap = prevServices, prevBootstrap }()
	services, bootstrap = nil, nil

	_, err := execute("tui")

	assert.ErrorIs(t, err, errNotConfigured)
}

func TestTUI_InvalidPorts(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	services.Auth = nil

	_, err := execute("tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TUI")
}

func TestTUI_ReleasesPayloadsOnExit(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	store := &closingPayloadStore{}
	services.Payloads = store
	services.Auth = nil

	_, err := execute("tui")

	require.Error(t, err)
	assert.Equal(t, 1, store.closed)
}
