// Package record renders decoded frames into their canonical text form.
package record

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/netgrab/framecap/internal/core"
)

// timeLayout is the fixed timestamp profile: millisecond precision with
// a timezone offset, rendered in the local timezone of the process.
const timeLayout = "2006-01-02T15:04:05.000-07:00"

const bytesPerLine = 16

// Format renders one frame record. Every field line is printed even
// when the field is absent, so records stay column-stable for tooling
// that consumes the stream. The record ends with the hex dump and a
// trailing blank line separating it from the next record.
func Format(f core.DecodedFrame, ts time.Time, length int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "timestamp: %s\n", ts.Local().Format(timeLayout))
	fmt.Fprintf(&b, "src MAC: %s\n", macString(f.SrcMAC))
	fmt.Fprintf(&b, "dst MAC: %s\n", macString(f.DstMAC))
	fmt.Fprintf(&b, "frame length: %d bytes\n", length)
	fmt.Fprintf(&b, "src IP: %s\n", addrString(f.SrcIP))
	fmt.Fprintf(&b, "dst IP: %s\n", addrString(f.DstIP))
	fmt.Fprintf(&b, "src port: %s\n", portString(f.SrcPort, f.HasPorts))
	fmt.Fprintf(&b, "dst port: %s\n", portString(f.DstPort, f.HasPorts))
	b.WriteByte('\n')
	b.WriteString(Hexdump(f.Data))
	b.WriteByte('\n')

	return b.String()
}

// Hexdump renders data 16 bytes per line: a 4-hex-digit cumulative
// offset, the bytes as uppercase hex pairs, then their printable-ASCII
// rendering. The hex column is padded to a fixed 48 characters plus one
// separating space so short final lines keep the ASCII column aligned.
// Empty input yields zero lines.
func Hexdump(data []byte) string {
	var b strings.Builder
	for off := 0; off < len(data); off += bytesPerLine {
		end := off + bytesPerLine
		if end > len(data) {
			end = len(data)
		}
		line := data[off:end]

		fmt.Fprintf(&b, "0x%04x: ", off)
		for _, c := range line {
			fmt.Fprintf(&b, "%02X ", c)
		}
		b.WriteString(strings.Repeat("   ", bytesPerLine-len(line)))
		b.WriteByte(' ')
		for _, c := range line {
			if c < 32 || c > 126 {
				b.WriteByte('.')
			} else {
				b.WriteByte(c)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatMAC inserts a colon after every pair of hex characters except
// the final pair, turning the library-default no-separator form into
// the usual colon-separated octets.
func FormatMAC(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i += 2 {
		if i > 0 {
			b.WriteByte(':')
		}
		end := i + 2
		if end > len(s) {
			end = len(s)
		}
		b.WriteString(s[i:end])
	}
	return b.String()
}

func macString(mac []byte) string {
	if len(mac) == 0 {
		return ""
	}
	return FormatMAC(hex.EncodeToString(mac))
}

func addrString(addr netip.Addr) string {
	if !addr.IsValid() {
		return ""
	}
	return addr.String()
}

func portString(port uint16, present bool) string {
	if !present {
		return ""
	}
	return strconv.Itoa(int(port))
}
