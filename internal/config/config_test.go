package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mapEnv(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnv(t *testing.T) {
	testCases := []struct {
		name     string
		env      map[string]string
		expected Config
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			expected: Config{
				Addr:         DefaultAddr,
				DefaultModel: DefaultModel,
				Scraper:      ScraperFirecrawl,
			},
		},
		{
			name: "everything set",
			env: map[string]string{
				"FLOWCANVAS_ADDR":            ":8080",
				"FLOWCANVAS_DEFAULT_MODEL":   "gpt-5",
				"FLOWCANVAS_WORKFLOW":        "flow.yaml",
				"FLOWCANVAS_SCRAPER":         "WebFetch",
				"FLOWCANVAS_LOG_FILE":        "flowcanvas.log",
				"OPENAI_API_KEY":             "sk-1",
				"FIRECRAWL_API_KEY":          "fc-1",
				"GOOGLE_SHEETS_CLIENT_EMAIL": "bot@proj",
				"GOOGLE_SHEETS_PRIVATE_KEY":  `-----BEGIN-----\nabc\n-----END-----\n`,
				"FLOWCANVAS_SERVER_URL":      "http://localhost:3000",
			},
			expected: Config{
				Addr:              ":8080",
				DefaultModel:      "gpt-5",
				Workflow:          "flow.yaml",
				Scraper:           ScraperWebFetch,
				LogFile:           "flowcanvas.log",
				OpenAIAPIKey:      "sk-1",
				FirecrawlAPIKey:   "fc-1",
				SheetsClientEmail: "bot@proj",
				SheetsPrivateKey:  "-----BEGIN-----\nabc\n-----END-----\n",
				SheetsServerURL:   "http://localhost:3000",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromEnv(mapEnv(tc.env))
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSheetsConfigured(t *testing.T) {
	if (Config{SheetsClientEmail: "a"}).SheetsConfigured() {
		t.Error("Expected email alone to be unconfigured")
	}
	if !(Config{SheetsClientEmail: "a", SheetsPrivateKey: "k"}).SheetsConfigured() {
		t.Error("Expected email and key to be configured")
	}
}

func TestLoadEnv_FirstFileWins(t *testing.T) {
	const key = "FLOWCANVAS_CONFIG_TEST_VALUE"
	t.Cleanup(func() { os.Unsetenv(key) })

	dir := t.TempDir()
	local := filepath.Join(dir, ".env.local")
	shared := filepath.Join(dir, ".env")
	if err := os.WriteFile(local, []byte(key+"=local\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(shared, []byte(key+"=shared\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := LoadEnv(local, filepath.Join(dir, "missing.env"), shared); err != nil {
		t.Fatalf("Expected missing files to be skipped, got %v", err)
	}
	if got := os.Getenv(key); got != "local" {
		t.Errorf("Expected value from first file, got %q", got)
	}
}
