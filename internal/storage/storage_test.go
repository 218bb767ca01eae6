package storage

import (
	"testing"
	"time"

	"github.com/despensa-hq/despensa/internal/domain"
)

func TestBoltStoreCachesAndExpiresLists(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		ListTTL:         1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(dir+"/cache.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	if _, ok, err := store.GetList("k1"); err != nil || ok {
		t.Fatalf("expected cache miss, ok=%v err=%v", ok, err)
	}

	if err := store.PutList("k1", "2 tortillas\n1 queso"); err != nil {
		t.Fatalf("PutList: %v", err)
	}

	text, ok, err := store.GetList("k1")
	if err != nil || !ok {
		t.Fatalf("expected cache hit, ok=%v err=%v", ok, err)
	}
	if text != "2 tortillas\n1 queso" {
		t.Fatalf("unexpected cached text %q", text)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	_, ok, err = store.GetList("k1")
	if err != nil {
		t.Fatalf("GetList after expiry: %v", err)
	}
	if ok {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.PutList("x", "y"); err != nil {
		t.Fatalf("noop store PutList: %v", err)
	}
	if _, ok, err := store.GetList("x"); err != nil || ok {
		t.Fatalf("noop store should never hit, ok=%v err=%v", ok, err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("noop store Close: %v", err)
	}
}

func TestBoltStoreCloseIsIdempotentEnough(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore("bbolt", dir+"/cache.db", Options{})
	if err != nil {
		t.Fatalf("NewStore bbolt: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
}

func TestCacheKeyIsOrderSensitiveAndStable(t *testing.T) {
	a := domain.ShoppingListRequest{RecipeNames: []string{"Tacos"}, AvailableIngredients: []string{"Queso"}}
	b := domain.ShoppingListRequest{RecipeNames: []string{"Tacos"}, AvailableIngredients: []string{"Queso"}}
	c := domain.ShoppingListRequest{RecipeNames: []string{"Queso"}, AvailableIngredients: []string{"Tacos"}}

	if CacheKey(a) != CacheKey(b) {
		t.Fatalf("identical payloads must share a key")
	}
	if CacheKey(a) == CacheKey(c) {
		t.Fatalf("swapping fields must change the key")
	}
}
