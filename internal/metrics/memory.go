package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading of the process.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by the mantissas and everything else
	Sys         uint64 // total bytes obtained from the OS
	NumGC       uint32 // completed GC cycles
	HeapObjects uint64 // allocated heap objects
	MaxRSS      uint64 // peak resident set size in bytes, 0 when unknown
}

// MemoryCollector reads runtime and OS memory statistics.
type MemoryCollector struct {
	maxRSS func() uint64
}

// NewMemoryCollector creates a collector reading the peak RSS from the
// platform's resource usage call.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{maxRSS: peakRSS}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
		MaxRSS:      mc.maxRSS(),
	}
}

// Delta returns the heap growth and GC cycles between two snapshots.
// A shrinking heap reports zero growth.
func (s MemorySnapshot) Delta(before MemorySnapshot) (heapGrowth uint64, gcCycles uint32) {
	if s.HeapAlloc > before.HeapAlloc {
		heapGrowth = s.HeapAlloc - before.HeapAlloc
	}
	return heapGrowth, s.NumGC - before.NumGC
}
