package utils

import (
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return fmt.Sprintf("Alloc = %v MiB TotalAlloc = %v MiB Sys = %v MiB NumGC = %v",
		bToMb(m.Alloc), bToMb(m.TotalAlloc), bToMb(m.Sys), m.NumGC)
}

// FirstNonFinite returns the index of the first vector holding a NaN or Inf component, -1 if none
func FirstNonFinite[T Number](vs []Vector3[T]) int {
	for k, v := range vs {
		for _, c := range v {
			var bad bool
			switch x := any(c).(type) {
			case float32:
				bad = math.IsNaN(float64(x)) || math.IsInf(float64(x), 0)
			case float64:
				bad = math.IsNaN(x) || math.IsInf(x, 0)
			case complex64:
				bad = cmplx.IsNaN(complex128(x)) || cmplx.IsInf(complex128(x))
			case complex128:
				bad = cmplx.IsNaN(x) || cmplx.IsInf(x)
			}
			if bad {
				return k
			}
		}
	}
	return -1
}
