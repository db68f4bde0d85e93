package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()

	if _, found, err := c.Get(ctx, "missing"); err != nil || found {
		t.Errorf("Get(missing) = found=%v err=%v, want miss", found, err)
	}

	if err := c.Set(ctx, "key", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, found, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || string(data) != "payload" {
		t.Errorf("Get = %q found=%v, want payload", data, found)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found, _ := c.Get(ctx, "key"); found {
		t.Error("key survived Delete")
	}

	// Deleting again is not an error.
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "brief", []byte("x"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	if _, found, err := c.Get(ctx, "brief"); err != nil || found {
		t.Errorf("expired entry: found=%v err=%v, want miss", found, err)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found, err := c.Get(ctx, "k"); err != nil || found {
		t.Errorf("NullCache.Get = found=%v err=%v, want miss", found, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestLayoutKeys(t *testing.T) {
	k := NewDefaultKeyer()
	base := LayoutKeyOpts{Direction: "top-to-bottom", NodeWidth: 200, NodeHeight: 80}

	tests := []struct {
		name string
		a    LayoutKeyOpts
		b    LayoutKeyOpts
		same bool
	}{
		{name: "Identical", a: base, b: base, same: true},
		{
			name: "DifferentDirection",
			a:    base,
			b:    LayoutKeyOpts{Direction: "left-to-right", NodeWidth: 200, NodeHeight: 80},
		},
		{
			name: "DifferentGeometry",
			a:    base,
			b:    LayoutKeyOpts{Direction: "top-to-bottom", NodeWidth: 100, NodeHeight: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka := k.LayoutKey("hash", tt.a)
			kb := k.LayoutKey("hash", tt.b)
			if (ka == kb) != tt.same {
				t.Errorf("keys %q vs %q, same=%v want %v", ka, kb, ka == kb, tt.same)
			}
		})
	}

	if k.LayoutKey("h1", base) == k.LayoutKey("h2", base) {
		t.Error("different graph hashes produced the same key")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "staging:")

	key := scoped.LayoutKey("hash", LayoutKeyOpts{})
	if key == inner.LayoutKey("hash", LayoutKeyOpts{}) {
		t.Error("scoped key equals unscoped key")
	}
	if key[:8] != "staging:" {
		t.Errorf("key = %q, want staging: prefix", key)
	}
}
