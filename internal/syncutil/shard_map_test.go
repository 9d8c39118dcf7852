package syncutil_test

import (
	"sync"
	"testing"

	"github.com/telvora/ucc/internal/syncutil"
)

func TestShardMap_SetGetDel(t *testing.T) {
	t.Parallel()

	m := syncutil.NewShardMap[string, int](4)

	m.Set("a", 1)
	m.Set("b", 2)

	if got, ok := m.Get("a"); !ok || got != 1 {
		t.Fatalf("m.Get(a) = (%d, %v), want (1, true)", got, ok)
	}
	if got := m.Size(); got != 2 {
		t.Fatalf("m.Size() = %d, want 2", got)
	}

	if _, ok := m.Del("a"); !ok {
		t.Fatalf("m.Del(a) returned ok=false, want true")
	}
	if m.Has("a") {
		t.Fatalf("m.Has(a) after Del = true, want false")
	}
	if _, ok := m.Del("a"); ok {
		t.Fatalf("m.Del(a) on missing key returned ok=true, want false")
	}
}

func TestShardMap_Items(t *testing.T) {
	t.Parallel()

	m := syncutil.NewShardMap[int, int](0)
	for i := range 10 {
		m.Set(i, i*i)
	}

	seen := make(map[int]int)
	for k, v := range m.Items() {
		seen[k] = v
	}
	if len(seen) != 10 {
		t.Fatalf("iterated %d items, want 10", len(seen))
	}
	if seen[7] != 49 {
		t.Fatalf("seen[7] = %d, want 49", seen[7])
	}
}

func TestShardMap_Concurrent(t *testing.T) {
	t.Parallel()

	m := syncutil.NewShardMap[int, int](8)

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				m.Set(i*100+j, j)
			}
		}()
	}
	wg.Wait()

	if got := m.Size(); got != 3200 {
		t.Fatalf("m.Size() = %d, want 3200", got)
	}
}
