package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/mineguard-cli/internal/adapters/driven/storage/memory"
)

func TestCredentialTokenSource(t *testing.T) {
	store := memory.NewCredentialStore("", "")
	src := CredentialTokenSource{Store: store}

	_, err := src.Token()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Store("a", "abc"))
	tok, err := src.Token()
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "http://example.com", nil)
	tok.SetAuthHeader(req)
	assert.Equal(t, "Bearer abc", req.Header.Get("Authorization"))
}

func TestCredentialTokenSource_NilStore(t *testing.T) {
	_, err := CredentialTokenSource{}.Token()
	assert.ErrorIs(t, err, ErrNoToken)
}
