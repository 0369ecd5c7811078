package valuation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", cfg.Currency)
	}
	if cfg.DefaultSession != Closed {
		t.Errorf("DefaultSession = %s, want closed", cfg.DefaultSession)
	}
}

func TestLoadConfig(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "valuation.yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("full file", func(t *testing.T) {
		cfg, err := LoadConfig(write(t, "currency: EUR\ndefault_session: eth\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Currency != "EUR" || cfg.DefaultSession != ETH {
			t.Errorf("LoadConfig() = %+v, want EUR/eth", cfg)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfig(write(t, "currency: GBP\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Currency != "GBP" || cfg.DefaultSession != Closed {
			t.Errorf("LoadConfig() = %+v, want GBP with the closed default", cfg)
		}
	})

	t.Run("bad session", func(t *testing.T) {
		if _, err := LoadConfig(write(t, "default_session: brunch\n")); err == nil {
			t.Error("LoadConfig() accepted an unknown session")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("LoadConfig() accepted a missing file")
		}
	})
}
