package repair

import (
	"testing"
	"time"
)

func TestCanTransitionAndApply(t *testing.T) {
	if !CanTransition(StatusOpen, StatusInProgress) {
		t.Fatalf("expected open -> in_progress allowed")
	}
	if CanTransition(StatusDelivered, StatusOpen) {
		t.Fatalf("expected delivered -> open not allowed")
	}
	if !CanTransition(StatusCompleted, StatusCanceled) {
		t.Fatalf("expected completed -> canceled allowed")
	}

	o := &Order{Status: StatusOpen}
	now := time.Now()
	if err := ApplyTransition(o, StatusInProgress, now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if o.Status != StatusInProgress {
		t.Fatalf("expected status in_progress, got %s", o.Status)
	}
	if o.StartedAt == nil {
		t.Fatalf("expected started_at set")
	}

	if err := ApplyTransition(o, StatusDelivered, now); err == nil {
		t.Fatalf("expected invalid shortcut transition to fail")
	}

	if err := ApplyTransition(o, StatusCompleted, now); err != nil {
		t.Fatalf("ApplyTransition: %v", err)
	}
	if o.CompletedAt == nil {
		t.Fatalf("expected completed_at set")
	}
}
