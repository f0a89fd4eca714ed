// Package core defines core frame types with zero external dependencies.
package core

import (
	"net"
	"net/netip"
	"time"
)

// RawFrame is a single link-layer frame as delivered by the capture
// handle. Ownership transfers to the pipeline queue on arrival; the
// frame is consumed exactly once by the processing worker.
type RawFrame struct {
	Data       []byte    // Raw frame bytes
	Timestamp  time.Time // Arrival timestamp from the capture engine
	CaptureLen int       // Bytes actually captured (snaplen-bounded)
	Length     int       // Declared frame length on the wire
}

// DecodedFrame carries the header fields extracted from a RawFrame.
// Fields stay zero values when the corresponding protocol layer is
// absent; absence is not an error.
type DecodedFrame struct {
	SrcMAC net.HardwareAddr
	DstMAC net.HardwareAddr

	SrcIP netip.Addr
	DstIP netip.Addr

	SrcPort  uint16
	DstPort  uint16
	HasPorts bool // True only when a TCP/UDP layer was present

	Data   []byte // Full raw frame bytes, for the hex dump
	Length int    // Declared frame length on the wire
}
