package models

import (
	"testing"
	"time"
)

func datePtr(t time.Time) *time.Time { return &t }

func TestStatus_PendingWithoutTargetDate(t *testing.T) {
	p := &Prediction{}
	if got := p.Status(time.Now()); got != StatusPending {
		t.Fatalf("status=%s want=%s", got, StatusPending)
	}
}

func TestStatus_PendingBeforeTargetDate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Prediction{TargetDate: datePtr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))}
	if got := p.Status(now); got != StatusPending {
		t.Fatalf("status=%s want=%s", got, StatusPending)
	}
}

func TestStatus_OverduePastTargetDate(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Prediction{TargetDate: datePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))}
	if got := p.Status(now); got != StatusOverdue {
		t.Fatalf("status=%s want=%s", got, StatusOverdue)
	}
}

func TestStatus_TargetDateTodayNotOverdue(t *testing.T) {
	now := time.Date(2024, 3, 1, 23, 0, 0, 0, time.UTC)
	p := &Prediction{TargetDate: datePtr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))}
	if got := p.Status(now); got != StatusPending {
		t.Fatalf("status=%s want=%s", got, StatusPending)
	}
}

func TestStatus_VerifiedBeatsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Prediction{
		TargetDate:   datePtr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Verification: &Verification{Outcome: OutcomeCorrect},
	}
	if got := p.Status(now); got != StatusVerified {
		t.Fatalf("status=%s want=%s", got, StatusVerified)
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories() {
		if !ValidCategory(c) {
			t.Fatalf("category %q rejected", c)
		}
	}
	if ValidCategory("finance") {
		t.Fatal("unknown category accepted")
	}
	if len(Categories()) != 9 {
		t.Fatalf("categories=%d want=9", len(Categories()))
	}
}

func TestValidOutcome(t *testing.T) {
	for _, o := range Outcomes() {
		if !ValidOutcome(o) {
			t.Fatalf("outcome %q rejected", o)
		}
	}
	if ValidOutcome("maybe") {
		t.Fatal("unknown outcome accepted")
	}
}
