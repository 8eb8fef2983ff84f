package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	if pool.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", pool.Workers())
	}
	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateZeroWorkers(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	expected := runtime.GOMAXPROCS(0)
	if pool.Workers() != expected {
		t.Errorf("Workers() = %d, want %d (GOMAXPROCS)", pool.Workers(), expected)
	}
}

func TestWorkerPool_Nil(t *testing.T) {
	var pool *WorkerPool

	if pool.Workers() != 1 {
		t.Errorf("nil Workers() = %d, want 1", pool.Workers())
	}
	if pool.IsRunning() {
		t.Error("nil pool should not report running")
	}

	calls := 0
	pool.ForBands(10, 1, func(lo, hi int) {
		calls++
		if lo != 0 || hi != 10 {
			t.Errorf("band = [%d,%d), want [0,10)", lo, hi)
		}
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	pool.Close()
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_AfterClose(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()

	var counter atomic.Int64
	work := []func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	}
	pool.ExecuteAll(work)

	if counter.Load() != 2 {
		t.Errorf("closed pool ran %d items, want 2 (inline)", counter.Load())
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("pool should not be running after Close")
	}
}

// =============================================================================
// ForBands / Split Tests
// =============================================================================

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		n, k int
		want [][2]int
	}{
		{"even", 8, 4, [][2]int{{0, 2}, {2, 4}, {4, 6}, {6, 8}}},
		{"uneven", 10, 3, [][2]int{{0, 4}, {4, 7}, {7, 10}}},
		{"k larger than n", 2, 5, [][2]int{{0, 1}, {1, 2}}},
		{"k zero", 5, 0, [][2]int{{0, 5}}},
		{"n zero", 0, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.n, tt.k)
			if len(got) != len(tt.want) {
				t.Fatalf("Split(%d, %d) = %v, want %v", tt.n, tt.k, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Split(%d, %d)[%d] = %v, want %v", tt.n, tt.k, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestWorkerPool_ForBandsCoversRangeOnce(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	const n = 1000
	hits := make([]int32, n)

	pool.ForBands(n, 16, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times, want 1", i, h)
		}
	}
}

func TestWorkerPool_ForBandsSmallRangeInline(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var mu sync.Mutex
	var bands [][2]int
	pool.ForBands(10, 64, func(lo, hi int) {
		mu.Lock()
		bands = append(bands, [2]int{lo, hi})
		mu.Unlock()
	})

	if len(bands) != 1 || bands[0] != [2]int{0, 10} {
		t.Errorf("bands = %v, want [[0 10]]", bands)
	}
}

func TestWorkerPool_ForBandsEmpty(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	pool.ForBands(0, 1, func(lo, hi int) {
		t.Errorf("fn called for empty range [%d,%d)", lo, hi)
	})
}

func TestWorkerPool_ForBandsLimitedByWorkers(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var count atomic.Int32
	pool.ForBands(300, 1, func(lo, hi int) {
		count.Add(1)
	})

	if count.Load() != 3 {
		t.Errorf("bands = %d, want 3 (one per worker)", count.Load())
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ForBands(b *testing.B) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	buf := make([]byte, 1024*768*4)
	b.ResetTimer()
	for range b.N {
		pool.ForBands(768, 32, func(lo, hi int) {
			for i := lo * 4096; i < hi*4096; i++ {
				buf[i] = 0xFF
			}
		})
	}
}
