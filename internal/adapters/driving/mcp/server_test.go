package mcp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil document service returns error", func(t *testing.T) {
		ports := &Ports{}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingDocumentService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		ports := &Ports{
			Documents: &mockDocumentService{},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil document service returns error", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingDocumentService)
	})

	t.Run("documents only is valid", func(t *testing.T) {
		ports := &Ports{
			Documents: &mockDocumentService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Documents:   &mockDocumentService{},
			Comparisons: &mockComparisonService{},
			QA:          &mockQAService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestServer_HandlerServesMetrics(t *testing.T) {
	server, err := NewServer(&Ports{Documents: &mockDocumentService{}})
	require.NoError(t, err)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("mineguard_gateway_requests_total 1\n"))
	})

	rec := httptest.NewRecorder()
	server.Handler(metrics).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, MetricsPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mineguard_gateway_requests_total")
}
