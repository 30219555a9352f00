package options

import "testing"

func TestStoreDefaults(t *testing.T) {
	store := NewStore()

	if store.ApplyOverlay() {
		t.Fatalf("apply overlay should default to false")
	}
	if store.RestorationUnload() {
		t.Fatalf("restoration unload should default to false")
	}
}

func TestStoreSaveRestorePair(t *testing.T) {
	store := NewStore()

	orig := store.ApplyOverlay()
	store.SetApplyOverlay(true)
	if !store.ApplyOverlay() {
		t.Fatalf("overlay flag not set")
	}

	store.SetApplyOverlay(orig)
	if store.ApplyOverlay() != orig {
		t.Fatalf("overlay flag not restored")
	}
}
