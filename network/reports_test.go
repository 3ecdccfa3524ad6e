package network

import (
	"testing"

	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/messages"
)

func TestReportBuffer(t *testing.T) {
	var rb ReportBuffer
	for seq := uint32(1); seq <= 5; seq++ {
		rb.Store(messages.PositionUpdate{Sequence: seq, Position: gamemath.Vec2{X: float64(seq) * 10}})
	}
	if rb.NextSeq() != 6 {
		t.Fatalf("next = %d", rb.NextSeq())
	}
	if got := len(rb.Pending(3)); got != 2 {
		t.Fatalf("pending after 3 = %d, want 2", got)
	}
	if d := rb.Drift(4, 37, 0); d != 3 {
		t.Fatalf("drift = %v, want 3", d)
	}
	if _, ok := rb.Get(0); ok {
		t.Fatal("sequence 0 found in an empty slot")
	}

	rb.Store(messages.PositionUpdate{Sequence: 4 + reportBufferSize})
	if _, ok := rb.Get(4); ok {
		t.Fatal("overwritten slot still returned")
	}
	if d := rb.Drift(4, 37, 0); d != 0 {
		t.Fatalf("drift for lost report = %v", d)
	}
}

func TestOfferDropsWhenFull(t *testing.T) {
	ch := make(chan messages.DashStopped, 1)
	offer(ch, messages.DashStopped{ActorID: 1})
	offer(ch, messages.DashStopped{ActorID: 2})
	got := drainChan(ch)
	if len(got) != 1 || got[0].ActorID != 1 {
		t.Fatalf("drained %v", got)
	}
}
