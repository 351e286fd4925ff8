package cache

import (
	"fmt"
	"reflect"
	"testing"
)

func TestNewMemory_DefaultCapacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{name: "zero", capacity: 0, want: DefaultCapacity},
		{name: "negative", capacity: -3, want: DefaultCapacity},
		{name: "explicit", capacity: 4, want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMemory[int](tt.capacity)
			if got := m.Capacity(); got != tt.want {
				t.Errorf("Capacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMemory_PutGet(t *testing.T) {
	m := NewMemory[string](3)

	m.Put("a", "alpha")
	got, ok := m.Get("a")
	if !ok {
		t.Fatal("Get(a) missed after Put")
	}
	if got != "alpha" {
		t.Errorf("Get(a) = %q, want %q", got, "alpha")
	}

	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}
	if !m.Contains("a") {
		t.Error("Contains(a) = false, want true")
	}
	if m.Contains("missing") {
		t.Error("Contains(missing) = true, want false")
	}
}

func TestMemory_Bound(t *testing.T) {
	const capacity = 10
	m := NewMemory[int](capacity)

	for i := 0; i < 100; i++ {
		m.Put(fmt.Sprintf("k%d", i), i)
		if m.Len() > capacity {
			t.Fatalf("Len() = %d after %d puts, want <= %d", m.Len(), i+1, capacity)
		}
	}
}

func TestMemory_EvictsExactlyOneOldest(t *testing.T) {
	m := NewMemory[int](3)
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("c", 3)

	// Reads must not change eviction order
	m.Get("a")

	m.Put("d", 4)

	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
	if m.Contains("a") {
		t.Error("oldest entry a should have been evicted")
	}
	for _, k := range []string{"b", "c", "d"} {
		if !m.Contains(k) {
			t.Errorf("entry %s should still be resident", k)
		}
	}
	if got, want := m.Keys(), []string{"b", "c", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestMemory_OverwriteDoesNotEvict(t *testing.T) {
	m := NewMemory[int](2)
	m.Put("a", 1)
	m.Put("b", 2)
	m.Put("a", 10)

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if got, _ := m.Get("a"); got != 10 {
		t.Errorf("Get(a) = %d, want 10", got)
	}
	if !m.Contains("b") {
		t.Error("overwrite evicted b")
	}
	if got, want := m.Keys(), []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v (overwrite keeps position)", got, want)
	}
}

func TestMemory_CopyIsolation(t *testing.T) {
	copySlice := func(in []string) []string {
		out := make([]string, len(in))
		copy(out, in)
		return out
	}
	m := NewMemory[[]string](2, WithCopy(copySlice), WithName[[]string]("test"))

	value := []string{"rock"}
	m.Put("k", value)
	value[0] = "mutated after put"

	got, _ := m.Get("k")
	if got[0] != "rock" {
		t.Fatalf("Get(k)[0] = %q, want %q", got[0], "rock")
	}

	got[0] = "mutated after get"
	again, _ := m.Get("k")
	if again[0] != "rock" {
		t.Errorf("cache storage aliased by Get: %q", again[0])
	}
}

func TestMemory_Delete(t *testing.T) {
	m := NewMemory[int](2)
	m.Put("a", 1)
	m.Delete("a")
	m.Delete("never-there")

	if m.Contains("a") {
		t.Error("Delete(a) left entry resident")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}
