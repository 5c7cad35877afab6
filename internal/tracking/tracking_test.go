package tracking

import (
	"errors"
	"testing"
	"time"

	"backend/internal/models"
)

var now = time.Date(2025, time.July, 1, 10, 0, 0, 0, time.UTC)

func TestNewRecordStartsAtOrdered(t *testing.T) {
	rec := NewRecord("order_1", now)

	want := models.StageFlags{Ordered: true}
	if rec.Status != want {
		t.Fatalf("expected only ordered=true, got %+v", rec.Status)
	}
	if rec.ReturnRequest != nil {
		t.Fatal("new record must not carry a return request")
	}
}

func TestAdvanceFullPipeline(t *testing.T) {
	rec := NewRecord("order_1", now)

	for _, stage := range []Stage{StageShipped, StageOutForDelivery, StageDelivered} {
		var err error
		rec, err = Advance(rec, stage, now)
		if err != nil {
			t.Fatalf("Advance to %s failed: %v", stage, err)
		}
		if Current(rec.Status) != stage {
			t.Fatalf("expected current stage %s, got %s", stage, Current(rec.Status))
		}
	}

	if !rec.Status.Delivered || !rec.Status.OutForDelivery || !rec.Status.Shipped || !rec.Status.Ordered {
		t.Fatalf("earlier flags must stay true: %+v", rec.Status)
	}
}

func TestAdvanceRejectsSkippedStage(t *testing.T) {
	rec := NewRecord("order_1", now)

	_, err := Advance(rec, StageDelivered, now)
	var illegal IllegalTransitionError
	if !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
	if illegal.From != StageOrdered || illegal.To != StageDelivered {
		t.Fatalf("unexpected transition detail: %+v", illegal)
	}
}

func TestAdvanceRejectsSkipAfterShipped(t *testing.T) {
	rec := NewRecord("order_1", now)
	rec, err := Advance(rec, StageShipped, now)
	if err != nil {
		t.Fatalf("Advance to Shipped failed: %v", err)
	}

	if _, err := Advance(rec, StageDelivered, now); err == nil {
		t.Fatal("expected rejection when skipping OutForDelivery")
	}
}

func TestAdvanceRejectsRepeatAndBackwards(t *testing.T) {
	rec := NewRecord("order_1", now)
	rec, _ = Advance(rec, StageShipped, now)

	if _, err := Advance(rec, StageShipped, now); err == nil {
		t.Fatal("expected rejection of repeated stage")
	}
	if _, err := Advance(rec, StageOrdered, now); err == nil {
		t.Fatal("expected rejection of backwards stage")
	}
}

func TestRequestReturnRequiresDelivery(t *testing.T) {
	rec := NewRecord("order_1", now)

	_, err := RequestReturn(rec, "damaged", now)
	if !errors.Is(err, ErrNotDelivered) {
		t.Fatalf("expected ErrNotDelivered, got %v", err)
	}
}

func deliveredRecord(t *testing.T) models.TrackingRecord {
	t.Helper()
	rec := NewRecord("order_1", now)
	for _, stage := range []Stage{StageShipped, StageOutForDelivery, StageDelivered} {
		var err error
		rec, err = Advance(rec, stage, now)
		if err != nil {
			t.Fatalf("Advance to %s failed: %v", stage, err)
		}
	}
	return rec
}

func TestRequestReturnSucceedsOnceDelivered(t *testing.T) {
	rec := deliveredRecord(t)

	rec, err := RequestReturn(rec, "  damaged  ", now)
	if err != nil {
		t.Fatalf("RequestReturn failed: %v", err)
	}
	if rec.ReturnRequest == nil || rec.ReturnRequest.Status != models.ReturnPending {
		t.Fatalf("expected pending return request, got %+v", rec.ReturnRequest)
	}
	if rec.ReturnRequest.Reason != "damaged" {
		t.Fatalf("expected trimmed reason, got %q", rec.ReturnRequest.Reason)
	}

	if _, err := RequestReturn(rec, "again", now); !errors.Is(err, ErrReturnOpen) {
		t.Fatalf("expected ErrReturnOpen for second request, got %v", err)
	}
}

func TestRequestReturnRejectsBlankReason(t *testing.T) {
	rec := deliveredRecord(t)

	if _, err := RequestReturn(rec, "   ", now); !errors.Is(err, ErrEmptyReason) {
		t.Fatalf("expected ErrEmptyReason, got %v", err)
	}
}

func TestRequestReturnAllowedAfterRejection(t *testing.T) {
	rec := deliveredRecord(t)
	rec, _ = RequestReturn(rec, "damaged", now)
	rec, err := ResolveReturn(rec, false, now)
	if err != nil {
		t.Fatalf("ResolveReturn failed: %v", err)
	}
	if rec.ReturnRequest.Status != models.ReturnRejected {
		t.Fatalf("expected rejected status, got %s", rec.ReturnRequest.Status)
	}

	if _, err := RequestReturn(rec, "still damaged", now); err != nil {
		t.Fatalf("expected new request after rejection, got %v", err)
	}
}

func TestResolveReturnWithoutPendingRequest(t *testing.T) {
	rec := deliveredRecord(t)

	if _, err := ResolveReturn(rec, true, now); err == nil {
		t.Fatal("expected error when no pending request exists")
	}
}

func TestCanCancelOnlyBeforeDelivery(t *testing.T) {
	rec := NewRecord("order_1", now)
	if err := CanCancel(rec); err != nil {
		t.Fatalf("expected cancellation allowed at Ordered, got %v", err)
	}

	rec, _ = Advance(rec, StageShipped, now)
	if err := CanCancel(rec); err != nil {
		t.Fatalf("expected cancellation allowed at Shipped, got %v", err)
	}

	rec = deliveredRecord(t)
	if err := CanCancel(rec); !errors.Is(err, ErrAlreadyDelivered) {
		t.Fatalf("expected ErrAlreadyDelivered, got %v", err)
	}
}

func TestParseStage(t *testing.T) {
	if _, err := ParseStage("Teleported"); !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
	stage, err := ParseStage(" Shipped ")
	if err != nil || stage != StageShipped {
		t.Fatalf("expected Shipped, got %v %v", stage, err)
	}
}
