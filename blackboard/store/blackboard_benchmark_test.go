package store

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
)

// BenchmarkBlackboard_GetVec3: measures the render-side read on a populated store.
// Runs with and without stats tracking to expose the counter overhead.
func BenchmarkBlackboard_GetVec3(b *testing.B) {
	for _, trackStats := range []bool{true, false} {
		b.Run(fmt.Sprintf("trackStats=%v", trackStats), func(b *testing.B) {
			b.ReportAllocs()

			const totalSeedKeys = 32

			bb := New(&Config{TrackStats: trackStats})
			keys := make([]string, totalSeedKeys)

			for i := range keys {
				keys[i] = fmt.Sprintf("light_v_%d", i)
				bb.SetVec3(keys[i], Vec3{0, 0, 1})
			}

			b.ResetTimer()

			for i := range b.N {
				_ = bb.GetVec3(keys[i%totalSeedKeys], Vec3{})
			}
		})
	}
}

// BenchmarkBlackboard_GetInt_Miss: measures a read that falls back to the default.
func BenchmarkBlackboard_GetInt_Miss(b *testing.B) {
	b.ReportAllocs()

	bb := New(nil)

	b.ResetTimer()

	for range b.N {
		_ = bb.GetInt("numLights", 0)
	}
}

// BenchmarkBlackboard_SetFloat: measures overwrites of an existing key.
func BenchmarkBlackboard_SetFloat(b *testing.B) {
	b.ReportAllocs()

	bb := New(nil)
	bb.SetFloat("ao_maxdist", 0)

	b.ResetTimer()

	for i := range b.N {
		bb.SetFloat("ao_maxdist", float32(i))
	}
}

// BenchmarkBlackboard_ReadersWithWriter: many parallel readers against one
// writer goroutine, the render/UI traffic shape.
func BenchmarkBlackboard_ReadersWithWriter(b *testing.B) {
	b.ReportAllocs()

	bb := New(nil)
	bb.SetVec3("light_intensity_0", Vec3{1, 1, 1})

	var stop atomic.Bool

	done := make(chan struct{})

	go func() {
		defer close(done)

		for i := 0; !stop.Load(); i++ {
			v := float32(i)
			bb.SetVec3("light_intensity_0", Vec3{v, v, v})
			runtime.Gosched()
		}
	}()

	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = bb.GetVec3("light_intensity_0", Vec3{})
		}
	})

	b.StopTimer()
	stop.Store(true)
	<-done
}
