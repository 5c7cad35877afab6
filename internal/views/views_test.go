package views

import (
	"fmt"
	"testing"

	"backend/internal/models"
)

func TestPushPrependsNewestView(t *testing.T) {
	list := Push(nil, models.Product{ID: "p1"})
	list = Push(list, models.Product{ID: "p2"})

	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].ID != "p2" || list[1].ID != "p1" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestPushDeduplicatesAndMovesToFront(t *testing.T) {
	list := Push(nil, models.Product{ID: "p1"})
	list = Push(list, models.Product{ID: "p2"})
	list = Push(list, models.Product{ID: "p1"})

	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].ID != "p1" || list[1].ID != "p2" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestPushCapsHistory(t *testing.T) {
	var list []models.Product
	for i := 0; i < 15; i++ {
		list = Push(list, models.Product{ID: fmt.Sprintf("p%d", i)})
	}

	if len(list) != recentViewsCap {
		t.Fatalf("expected %d entries, got %d", recentViewsCap, len(list))
	}
	if list[0].ID != "p14" {
		t.Fatalf("newest view must be first, got %s", list[0].ID)
	}
	if list[len(list)-1].ID != "p5" {
		t.Fatalf("oldest surviving view should be p5, got %s", list[len(list)-1].ID)
	}
}
