package wishlist

import (
	"testing"

	"github.com/shopspring/decimal"

	"backend/internal/models"
)

func product(id string) models.Product {
	return models.Product{ID: id, Title: "Product " + id, Price: decimal.NewFromInt(100)}
}

func TestToggleAddsAbsentProduct(t *testing.T) {
	w, favorited := Toggle(models.Wishlist{OwnerID: "u1"}, product("p1"))

	if !favorited {
		t.Fatal("toggling an absent product must favorite it")
	}
	if len(w.Items) != 1 || w.Items[0].ID != "p1" {
		t.Fatalf("unexpected items: %+v", w.Items)
	}
}

func TestToggleRemovesPresentProduct(t *testing.T) {
	w, _ := Toggle(models.Wishlist{OwnerID: "u1"}, product("p1"))

	w, favorited := Toggle(w, product("p1"))
	if favorited {
		t.Fatal("toggling a present product must unfavorite it")
	}
	if !w.IsEmpty() {
		t.Fatalf("expected empty wishlist, got %+v", w.Items)
	}
}

func TestToggleKeepsOtherItems(t *testing.T) {
	w, _ := Toggle(models.Wishlist{}, product("p1"))
	w, _ = Toggle(w, product("p2"))
	w, _ = Toggle(w, product("p3"))

	w, _ = Toggle(w, product("p2"))
	if len(w.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(w.Items))
	}
	if w.Items[0].ID != "p1" || w.Items[1].ID != "p3" {
		t.Fatalf("unexpected items: %+v", w.Items)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	original, _ := Toggle(models.Wishlist{}, product("p1"))
	original, _ = Toggle(original, product("p2"))

	Toggle(original, product("p1"))
	Remove(original, "p2")

	if len(original.Items) != 2 {
		t.Fatalf("input wishlist was mutated: %+v", original.Items)
	}
}

func TestFind(t *testing.T) {
	w, _ := Toggle(models.Wishlist{}, product("p1"))

	if _, ok := Find(w, "p1"); !ok {
		t.Fatal("p1 should be found")
	}
	if _, ok := Find(w, "p9"); ok {
		t.Fatal("p9 should not be found")
	}
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	w, _ := Toggle(models.Wishlist{}, product("p1"))

	out := Remove(w, "p9")
	if len(out.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(out.Items))
	}
}
