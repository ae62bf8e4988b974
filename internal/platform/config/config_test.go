package config_test

import (
	"testing"
	"time"

	"joinlist/internal/platform/config"
	"joinlist/internal/platform/testkit"
)

func TestPrefixComposition(t *testing.T) {
	t.Setenv("API_PORT", "4000")
	cfg := config.New().Prefix("API_")
	if got := cfg.MayString("PORT", ""); got != "4000" {
		t.Fatalf("expected prefixed lookup, got %q", got)
	}
}

func TestHas(t *testing.T) {
	t.Setenv("CAPTCHA_SECRET", " ")
	cfg := config.New()
	if cfg.Has("CAPTCHA_SECRET") {
		t.Fatalf("whitespace-only value should not count as present")
	}
	t.Setenv("CAPTCHA_SECRET", "0xabc")
	if !cfg.Has("CAPTCHA_SECRET") {
		t.Fatalf("expected key to be present")
	}
}

func TestMustString(t *testing.T) {
	t.Setenv("DEFINITELY_NOT_SET", "")
	t.Setenv("DEFINITELY_SET", "value")
	cfg := config.New()
	testkit.MustPanic(t, func() { cfg.MustString("DEFINITELY_NOT_SET") })
	testkit.MustNotPanic(t, func() { cfg.MustString("DEFINITELY_SET") })
}

func TestMustPort(t *testing.T) {
	t.Setenv("GOOD_PORT", "8080")
	cfg := config.New()
	if got := cfg.MustPort("GOOD_PORT"); got != ":8080" {
		t.Fatalf("MustPort: %q", got)
	}

	t.Setenv("BAD_PORT", "99999")
	testkit.MustPanic(t, func() { cfg.MustPort("BAD_PORT") })
}

func TestMayAccessorsDefaults(t *testing.T) {
	cfg := config.New()

	if got := cfg.MayString("NOPE_STR", "fallback"); got != "fallback" {
		t.Fatalf("MayString default: %q", got)
	}
	if got := cfg.MayInt("NOPE_INT", 5); got != 5 {
		t.Fatalf("MayInt default: %d", got)
	}
	if got := cfg.MayBool("NOPE_BOOL", true); !got {
		t.Fatalf("MayBool default: %v", got)
	}
	if got := cfg.MayDuration("NOPE_DUR", time.Minute); got != time.Minute {
		t.Fatalf("MayDuration default: %v", got)
	}
}

func TestMayAccessorsParse(t *testing.T) {
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_WINDOW", "60s")
	t.Setenv("PROFILER", "true")
	cfg := config.New()

	if got := cfg.MayInt("RATE_LIMIT", 0); got != 5 {
		t.Fatalf("MayInt: %d", got)
	}
	if got := cfg.MayDuration("RATE_WINDOW", 0); got != 60*time.Second {
		t.Fatalf("MayDuration: %v", got)
	}
	if got := cfg.MayBool("PROFILER", false); !got {
		t.Fatalf("MayBool: %v", got)
	}
}

func TestMayInvalidFallsBack(t *testing.T) {
	t.Setenv("BAD_INT", "five")
	t.Setenv("BAD_DUR", "soon")
	cfg := config.New()

	if got := cfg.MayInt("BAD_INT", 7); got != 7 {
		t.Fatalf("invalid int should fall back, got %d", got)
	}
	if got := cfg.MayDuration("BAD_DUR", time.Second); got != time.Second {
		t.Fatalf("invalid duration should fall back, got %v", got)
	}
}
