// Package capture implements the live capture pipeline: device
// selection, the capture handle abstraction, and the producer/consumer
// hand-off between frame arrival and frame processing.
package capture

import (
	"errors"
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/netgrab/framecap/internal/core"
)

// Handle is an open capture handle on one device. Implementations wrap
// the engine-specific handle types; exactly one implementation is
// compiled in, selected by build tags.
type Handle interface {
	gopacket.PacketDataSource
	SetBPFFilter(expr string) error
	LinkType() layers.LinkType
	Stats() (HandleStats, error)
	Close()
}

// HandleStats is the engine's view of a finished capture.
type HandleStats struct {
	Received int
	Dropped  int
}

// Decoder extracts header fields from a raw frame. Implementations
// never fail: layers that are absent simply leave the matching fields
// empty. Decoders are not safe for concurrent use; the pipeline calls
// Decode only from its single worker.
type Decoder interface {
	Decode(raw core.RawFrame) core.DecodedFrame
}

// isReadTimeout reports whether err is a poll-timeout read. Depending
// on the handle implementation a timeout surfaces either as a net.Error
// or as an engine-specific sentinel.
func isReadTimeout(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return isEngineTimeout(err)
}
