package capture

import (
	"net"
	"net/netip"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/netgrab/framecap/internal/core"
)

// LayerDecoder extracts L2-L4 header fields with a reusable
// DecodingLayerParser. A truncated or unsupported frame keeps whatever
// layers decoded before the parser gave up; decode never fails.
type LayerDecoder struct {
	eth   layers.Ethernet
	ip4   layers.IPv4
	ip6   layers.IPv6
	tcp   layers.TCP
	udp   layers.UDP
	icmp4 layers.ICMPv4
	icmp6 layers.ICMPv6

	parser  *gopacket.DecodingLayerParser
	decoded []gopacket.LayerType
}

func NewLayerDecoder() *LayerDecoder {
	d := &LayerDecoder{
		decoded: make([]gopacket.LayerType, 0, 8),
	}
	d.parser = gopacket.NewDecodingLayerParser(layers.LayerTypeEthernet,
		&d.eth, &d.ip4, &d.ip6, &d.tcp, &d.udp, &d.icmp4, &d.icmp6)
	d.parser.IgnoreUnsupported = true
	return d
}

func (d *LayerDecoder) Decode(raw core.RawFrame) core.DecodedFrame {
	out := core.DecodedFrame{
		Data:   raw.Data,
		Length: raw.Length,
	}

	// Decode errors are deliberately dropped: a malformed frame renders
	// with whatever fields were extracted before the failure.
	_ = d.parser.DecodeLayers(raw.Data, &d.decoded)

	for _, t := range d.decoded {
		switch t {
		case layers.LayerTypeEthernet:
			out.SrcMAC = append(net.HardwareAddr(nil), d.eth.SrcMAC...)
			out.DstMAC = append(net.HardwareAddr(nil), d.eth.DstMAC...)
		case layers.LayerTypeIPv4:
			out.SrcIP = toAddr(d.ip4.SrcIP)
			out.DstIP = toAddr(d.ip4.DstIP)
		case layers.LayerTypeIPv6:
			out.SrcIP = toAddr(d.ip6.SrcIP)
			out.DstIP = toAddr(d.ip6.DstIP)
		case layers.LayerTypeTCP:
			out.SrcPort = uint16(d.tcp.SrcPort)
			out.DstPort = uint16(d.tcp.DstPort)
			out.HasPorts = true
		case layers.LayerTypeUDP:
			out.SrcPort = uint16(d.udp.SrcPort)
			out.DstPort = uint16(d.udp.DstPort)
			out.HasPorts = true
		}
	}
	return out
}

func toAddr(ip net.IP) netip.Addr {
	if v4 := ip.To4(); v4 != nil {
		addr, _ := netip.AddrFromSlice(v4)
		return addr
	}
	addr, _ := netip.AddrFromSlice(ip)
	return addr
}
