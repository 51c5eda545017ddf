package concurrency

import (
	"context"
	"fmt"
	"testing"
)

func noop(context.Context) error { return nil }

func BenchmarkRoomQueue_SingleRoom(b *testing.B) {
	q := NewRoomQueue()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := q.Do(ctx, "room", noop); err != nil {
			b.Fatal(err)
		}
	}
	b.StopTimer()
	_ = q.Shutdown(ctx)
}

func BenchmarkRoomQueue_ParallelRooms(b *testing.B) {
	q := NewRoomQueue()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		n := 0
		for pb.Next() {
			if err := q.Do(ctx, fmt.Sprintf("room-%d", n%16), noop); err != nil {
				b.Error(err)
				return
			}
			n++
		}
	})
	b.StopTimer()
	_ = q.Shutdown(ctx)
}
