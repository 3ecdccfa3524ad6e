package network

import (
	"github.com/automoto/leapdash/shared/gamemath"
	"github.com/automoto/leapdash/shared/messages"
)

const reportBufferSize = 64

// ReportBuffer is a ring buffer of position reports sent to the relay. When
// a snapshot echoes the last applied sequence back, the client can measure
// how far the relay's copy of its position lags behind.
type ReportBuffer struct {
	history [reportBufferSize]messages.PositionUpdate
	nextSeq uint32
}

// Store saves a sent report.
func (rb *ReportBuffer) Store(u messages.PositionUpdate) {
	rb.history[u.Sequence%reportBufferSize] = u
	rb.nextSeq = u.Sequence + 1
}

// Get retrieves a report by sequence. It returns false if the slot has been
// overwritten or was never filled.
func (rb *ReportBuffer) Get(seq uint32) (messages.PositionUpdate, bool) {
	u := rb.history[seq%reportBufferSize]
	if u.Sequence != seq || seq == 0 {
		return messages.PositionUpdate{}, false
	}
	return u, true
}

// NextSeq returns the sequence the next report should carry.
func (rb *ReportBuffer) NextSeq() uint32 {
	return rb.nextSeq
}

// Pending returns the reports sent after acked that the relay has not
// applied yet.
func (rb *ReportBuffer) Pending(acked uint32) []messages.PositionUpdate {
	var out []messages.PositionUpdate
	for seq := acked + 1; seq < rb.nextSeq; seq++ {
		if u, ok := rb.Get(seq); ok {
			out = append(out, u)
		}
	}
	return out
}

// Drift returns the distance between the report with sequence seq and the
// position the relay holds for it, or 0 when the report is unknown.
func (rb *ReportBuffer) Drift(seq uint32, relayX, relayY float64) float64 {
	u, ok := rb.Get(seq)
	if !ok {
		return 0
	}
	return u.Position.Sub(gamemath.Vec2{X: relayX, Y: relayY}).Len()
}
