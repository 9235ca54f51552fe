package cart

import (
	"encoding/json"
	"testing"

	"github.com/cometcontrol/comet-backend/pkg/enums"
	"github.com/cometcontrol/comet-backend/pkg/types"
)

type memoryStorage struct {
	blobs map[string][]byte
	saves int
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{blobs: map[string][]byte{}}
}

func (m *memoryStorage) Load(name string) ([]byte, error) {
	return m.blobs[name], nil
}

func (m *memoryStorage) Save(name string, data []byte) error {
	m.saves++
	m.blobs[name] = append([]byte(nil), data...)
	return nil
}

func snapshotFor(id string) Snapshot {
	return Snapshot{
		ProductID:   id,
		ProductSlug: id + "-slug",
		ProductSKU:  "SKU-" + id,
		ProductName: types.LocalizedString{TR: "Ürün " + id, EN: "Product " + id},
	}
}

func TestAddItemMergesDuplicates(t *testing.T) {
	store := NewStore(newMemoryStorage())

	store.AddItem(snapshotFor("p1"))
	store.AddItem(snapshotFor("p1"))

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddItemPreservesNotesOnMerge(t *testing.T) {
	store := NewStore(newMemoryStorage())

	store.AddItem(snapshotFor("p1"))
	store.UpdateNotes("p1", "rooftop install")
	store.AddItem(snapshotFor("p1"))

	items := store.Items()
	if items[0].Notes != "rooftop install" {
		t.Fatalf("notes should survive a merge, got %q", items[0].Notes)
	}
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	store := NewStore(newMemoryStorage())
	store.AddItem(snapshotFor("p1"))

	for _, q := range []int{0, -1, -9999} {
		store.UpdateQuantity("p1", q)
		if got := store.Items()[0].Quantity; got != 1 {
			t.Fatalf("quantity %d should clamp to 1, got %d", q, got)
		}
	}

	store.UpdateQuantity("p1", 42)
	if got := store.Items()[0].Quantity; got != 42 {
		t.Fatalf("expected quantity 42, got %d", got)
	}
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	store := NewStore(newMemoryStorage())
	store.AddItem(snapshotFor("p1"))
	store.UpdateQuantity("ghost", 5)
	if len(store.Items()) != 1 || store.Items()[0].Quantity != 1 {
		t.Fatal("unknown product must not change the cart")
	}
}

func TestItemCountIsQuantityWeighted(t *testing.T) {
	store := NewStore(newMemoryStorage())
	store.AddItem(snapshotFor("p1"))
	store.UpdateQuantity("p1", 3)
	store.AddItem(snapshotFor("p2"))
	store.UpdateQuantity("p2", 5)

	if got := store.ItemCount(); got != 8 {
		t.Fatalf("expected weighted count 8, got %d", got)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	store := NewStore(newMemoryStorage())
	store.AddItem(snapshotFor("p1"))

	store.RemoveItem("ghost")
	if len(store.Items()) != 1 {
		t.Fatal("removing an absent product must leave the cart unchanged")
	}

	store.RemoveItem("p1")
	if len(store.Items()) != 0 {
		t.Fatal("expected empty cart after removal")
	}
}

func TestUpdateNotesReplacesVerbatim(t *testing.T) {
	store := NewStore(newMemoryStorage())
	store.AddItem(snapshotFor("p1"))

	store.UpdateNotes("p1", "with DIN rail")
	if got := store.Items()[0].Notes; got != "with DIN rail" {
		t.Fatalf("unexpected notes %q", got)
	}

	store.UpdateNotes("p1", "")
	if got := store.Items()[0].Notes; got != "" {
		t.Fatalf("empty notes should be stored verbatim, got %q", got)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	store := NewStore(newMemoryStorage())
	store.AddItem(snapshotFor("p1"))
	store.AddItem(snapshotFor("p2"))

	store.Clear()
	if len(store.Items()) != 0 {
		t.Fatal("expected empty cart after clear")
	}
	if store.ItemCount() != 0 {
		t.Fatal("expected zero count after clear")
	}
}

func TestInsertionOrderIsStable(t *testing.T) {
	store := NewStore(newMemoryStorage())
	store.AddItem(snapshotFor("p1"))
	store.AddItem(snapshotFor("p2"))
	store.AddItem(snapshotFor("p3"))
	store.AddItem(snapshotFor("p1"))

	items := store.Items()
	want := []string{"p1", "p2", "p3"}
	for i, id := range want {
		if items[i].ProductID != id {
			t.Fatalf("position %d: expected %s got %s", i, id, items[i].ProductID)
		}
	}

	store.RemoveItem("p1")
	store.AddItem(snapshotFor("p1"))
	items = store.Items()
	if items[len(items)-1].ProductID != "p1" {
		t.Fatal("re-added product should move to the end")
	}
}

func TestPersistenceSurvivesRestart(t *testing.T) {
	storage := newMemoryStorage()

	store := NewStore(storage)
	price := &types.Price{Amount: 100, Currency: enums.CurrencyUSD}
	snap := snapshotFor("p1")
	snap.UnitPrice = price
	store.AddItem(snap)
	store.UpdateQuantity("p1", 4)
	store.UpdateNotes("p1", "ship to Ankara")

	if storage.saves == 0 {
		t.Fatal("expected every mutation to persist")
	}

	reloaded := NewStore(storage)
	items := reloaded.Items()
	if len(items) != 1 {
		t.Fatalf("expected one item after reload, got %d", len(items))
	}
	item := items[0]
	if item.Quantity != 4 || item.Notes != "ship to Ankara" {
		t.Fatalf("reload lost state: %+v", item)
	}
	if item.UnitPrice == nil || item.UnitPrice.Amount != 100 || item.UnitPrice.Currency != enums.CurrencyUSD {
		t.Fatalf("reload lost price snapshot: %+v", item.UnitPrice)
	}
}

func TestCorruptBlobYieldsEmptyCart(t *testing.T) {
	storage := newMemoryStorage()
	storage.blobs[DefaultStoreName] = []byte("{not json")

	store := NewStore(storage)
	if len(store.Items()) != 0 {
		t.Fatal("corrupt blob should load as an empty cart")
	}
}

func TestCustomStoreName(t *testing.T) {
	storage := newMemoryStorage()
	store := NewStore(storage, WithStoreName("other-cart"))
	store.AddItem(snapshotFor("p1"))

	if _, ok := storage.blobs["other-cart"]; !ok {
		t.Fatal("expected blob under the custom store name")
	}

	var persisted []types.CartItem
	if err := json.Unmarshal(storage.blobs["other-cart"], &persisted); err != nil {
		t.Fatalf("persisted blob is not valid JSON: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ProductID != "p1" {
		t.Fatalf("unexpected persisted payload: %+v", persisted)
	}
}
