package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"DB_SECRET_NAME", "AWS_REGION", "DATABASE_URL", "SHOES_TABLE", "CCS_URL",
		"TACTICS_URL", "RENDER_BACKEND", "BROWSER_WINDOW", "CCS_PAIRING", "HTTP_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "prod/database", cfg.SecretName)
	require.Equal(t, "us-east-2", cfg.AWSRegion)
	require.Equal(t, "shoes", cfg.TableName)
	require.Equal(t, DefaultCCSURL, cfg.CCSURL)
	require.Equal(t, DefaultTacticsURL, cfg.TacticsURL)
	require.Equal(t, "selenium", cfg.RenderBackend)
	require.Equal(t, 1400, cfg.WindowWidth)
	require.Equal(t, 1500, cfg.WindowHeight)
	require.Equal(t, "truncate", cfg.CCSPairing)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.False(t, cfg.ReportEnabled())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RENDER_BACKEND", "ChromeDP")
	t.Setenv("BROWSER_WINDOW", "800, 600")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("DATABASE_URL", "postgresql://u:p@localhost:5432/shoes")
	t.Setenv("SENDGRID_API_KEY", "key")
	t.Setenv("REPORT_TO", "ops@example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "chromedp", cfg.RenderBackend)
	require.Equal(t, 800, cfg.WindowWidth)
	require.Equal(t, 600, cfg.WindowHeight)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "postgresql://u:p@localhost:5432/shoes", cfg.DatabaseURL)
	require.True(t, cfg.ReportEnabled())
}

func TestLoadRejectsBadSettings(t *testing.T) {
	cases := []struct {
		key   string
		value string
	}{
		{key: "RENDER_BACKEND", value: "playwright"},
		{key: "CCS_PAIRING", value: "pad"},
		{key: "BROWSER_WINDOW", value: "1400x1500"},
		{key: "BROWSER_WINDOW", value: "wide,1500"},
	}

	for _, test := range cases {
		t.Run(test.key+"="+test.value, func(t *testing.T) {
			t.Setenv(test.key, test.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
