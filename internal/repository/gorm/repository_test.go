package gormrepository

import "testing"

func TestAccuracyRates(t *testing.T) {
	acc, weighted := accuracyRates(4, 2, 1)
	if acc.String() != "0.5" {
		t.Fatalf("accuracy=%s want=0.5", acc.String())
	}
	if weighted.String() != "0.625" {
		t.Fatalf("weighted=%s want=0.625", weighted.String())
	}
}

func TestAccuracyRates_NoVerified(t *testing.T) {
	acc, weighted := accuracyRates(0, 0, 0)
	if !acc.IsZero() || !weighted.IsZero() {
		t.Fatalf("acc=%s weighted=%s want both zero", acc.String(), weighted.String())
	}
}

func TestNormalizeLimit(t *testing.T) {
	if got := normalizeLimit(0, 50); got != 50 {
		t.Fatalf("limit=%d want=50", got)
	}
	if got := normalizeLimit(-3, 50); got != 50 {
		t.Fatalf("limit=%d want=50", got)
	}
	if got := normalizeLimit(500, 50); got != 200 {
		t.Fatalf("limit=%d want=200", got)
	}
	if got := normalizeLimit(25, 50); got != 25 {
		t.Fatalf("limit=%d want=25", got)
	}
}
