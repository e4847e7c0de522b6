package driver

import (
	"os"
	"path/filepath"
	"testing"

	"mica/internal/layout"
)

func TestCacheKeyDistinguishes(t *testing.T) {
	content := []byte("class A { }")
	base := cacheKey(content, layout.Default())

	if got := cacheKey(content, layout.Default()); got != base {
		t.Error("same content and target must produce the same key")
	}
	if got := cacheKey([]byte("class B { }"), layout.Default()); got == base {
		t.Error("different content must change the key")
	}
	wide := layout.Target{IntSize: 8, BoolSize: 1, PtrSize: 8}
	if got := cacheKey(content, wide); got == base {
		t.Error("different target sizes must change the key")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := cacheKey([]byte("class A { }"), layout.Default())
	in := &DiskPayload{
		Schema: cacheSchemaVersion,
		Source: hashBytes([]byte("class A { }")),
		Target: layout.Default(),
		IR:     "fn main()\n  ret\n",
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("stored entry not found")
	}
	if out.Schema != in.Schema || out.Source != in.Source || out.Target != in.Target || out.IR != in.IR {
		t.Errorf("payload mismatch: got %+v, want %+v", out, *in)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	var out DiskPayload
	ok, err := cache.Get(cacheKey([]byte("absent"), layout.Default()), &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("missing entry reported as found")
	}
}

func TestDiskCacheNil(t *testing.T) {
	var cache *DiskCache
	if err := cache.Put(Digest{}, &DiskPayload{}); err != nil {
		t.Errorf("nil cache Put: %v", err)
	}
	ok, err := cache.Get(Digest{}, &DiskPayload{})
	if err != nil || ok {
		t.Errorf("nil cache Get = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestDiskCacheCorruptEntry(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	key := cacheKey([]byte("class A { }"), layout.Default())
	p := cache.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte{0xc1}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out DiskPayload
	if _, err := cache.Get(key, &out); err == nil {
		t.Error("corrupt entry must surface a decode error")
	}
}

func TestOpenDiskCacheHonorsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)

	cache, err := OpenDiskCache("mica-test")
	if err != nil {
		t.Fatalf("OpenDiskCache: %v", err)
	}
	if cache.dir != filepath.Join(base, "mica-test") {
		t.Errorf("cache dir = %s, want under %s", cache.dir, base)
	}
	if _, err := os.Stat(cache.dir); err != nil {
		t.Errorf("cache dir not created: %v", err)
	}
}
