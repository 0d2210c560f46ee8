package opentdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trivia-harvester/internal/config"
	"trivia-harvester/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const homepageTemplate = `<!DOCTYPE html>
<html><body>
<div class="container">
  <div class="row">%s</div>
</div>
</body></html>`

const countBanner = `<div class="col-lg-8 col-lg-offset-2 text-center text-shadow">
  <h1>Open Trivia Database</h1>
  <h4>4,050 Verified Questions and 5,899 Pending Questions</h4>
</div>`

func testDeps() (*zap.Logger, config.HarvestConfig) {
	return zap.NewNop(), config.HarvestConfig{HTTPTimeout: 5 * time.Second, UserAgent: "test"}
}

func serveHTML(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHomepageCountDiscoverer_Discover(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		want      int
		wantError error
	}{
		{
			name:   "parses verified question count",
			status: http.StatusOK,
			body:   sprintfHTML(countBanner),
			want:   4050,
		},
		{
			name:      "no banner",
			status:    http.StatusOK,
			body:      sprintfHTML(`<div class="col-lg-8">nothing</div>`),
			wantError: domain.ErrPageStructure,
		},
		{
			name:      "two banners",
			status:    http.StatusOK,
			body:      sprintfHTML(countBanner + countBanner),
			wantError: domain.ErrPageStructure,
		},
		{
			name:      "banner without children",
			status:    http.StatusOK,
			body:      sprintfHTML(`<div class="col-lg-8 col-lg-offset-2 text-center text-shadow">4,050</div>`),
			wantError: domain.ErrPageStructure,
		},
		{
			name:      "banner without h4",
			status:    http.StatusOK,
			body:      sprintfHTML(`<div class="col-lg-8 col-lg-offset-2 text-center text-shadow"><h3>4,050 Verified</h3></div>`),
			wantError: domain.ErrPageStructure,
		},
		{
			name:      "header text changed",
			status:    http.StatusOK,
			body:      sprintfHTML(`<div class="col-lg-8 col-lg-offset-2 text-center text-shadow"><h4>Lots of Questions</h4></div>`),
			wantError: domain.ErrPageFormat,
		},
		{
			name:      "server error",
			status:    http.StatusBadGateway,
			body:      "bad gateway",
			wantError: domain.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveHTML(t, tt.status, tt.body)
			logger, cfg := testDeps()
			discoverer := NewHomepageCountDiscoverer(NewHTTPClient(cfg, logger), srv.URL, logger)

			got, err := discoverer.Discover(context.Background())

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHomepageCountDiscoverer_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	logger, cfg := testDeps()
	discoverer := NewHomepageCountDiscoverer(NewHTTPClient(cfg, logger), url, logger)

	_, err := discoverer.Discover(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestParseQuestionCount(t *testing.T) {
	tests := []struct {
		text    string
		want    int
		wantErr bool
	}{
		{text: "4,050 Verified Questions and 5,899 Pending Questions", want: 4050},
		{text: "12,345,678 Verified Questions", want: 12345678},
		{text: "  987 Verified Questions  ", want: 987},
		{text: "0 Verified Questions", wantErr: true},
		{text: "", wantErr: true},
		{text: "Verified Questions: 4,050", wantErr: true},
		{text: "-5 Verified Questions", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseQuestionCount(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrPageFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func sprintfHTML(inner string) string {
	return fmt.Sprintf(homepageTemplate, inner)
}
