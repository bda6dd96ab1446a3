package model

import "testing"

func TestRelayed(t *testing.T) {
	if (Config{}).Relayed() {
		t.Fatalf("empty config should not relay")
	}
	if !(Config{NatsURL: "nats://localhost:4222"}).Relayed() {
		t.Fatalf("url alone should count as relayed")
	}
}

func TestSeedOr(t *testing.T) {
	if got := (Config{}).SeedOr(42); got != 42 {
		t.Fatalf("expected fallback, got %d", got)
	}
	if got := (Config{Seed: 7}).SeedOr(42); got != 7 {
		t.Fatalf("expected configured seed, got %d", got)
	}
}
