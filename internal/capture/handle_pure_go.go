//go:build linux && !cgo

package capture

import (
	"net"

	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	pcapfilter "github.com/packetcap/go-pcap/filter"
	"github.com/pkg/errors"
	"golang.org/x/net/bpf"
)

var _ Handle = (*pureGoHandle)(nil)

type pureGoHandle struct {
	*pcapgo.EthernetHandle
}

// openLive opens device as an AF_PACKET socket; no libpcap involved.
// Snaplen and promiscuous mode are fixed by the socket defaults here.
func openLive(device string, cfg Config) (Handle, error) {
	h, err := pcapgo.NewEthernetHandle(device)
	if err != nil {
		return nil, err
	}
	return &pureGoHandle{EthernetHandle: h}, nil
}

func (h *pureGoHandle) LinkType() layers.LinkType {
	return layers.LinkTypeEthernet
}

// SetBPFFilter compiles the expression with the pure-Go pcap filter
// compiler and installs the assembled program on the socket.
func (h *pureGoHandle) SetBPFFilter(expr string) error {
	e := pcapfilter.NewExpression(expr)
	insts, err := e.Compile().Compile()
	if err != nil {
		return errors.Wrap(err, "compiling filter expression")
	}
	raw, err := bpf.Assemble(insts)
	if err != nil {
		return errors.Wrap(err, "assembling filter instructions")
	}
	return h.EthernetHandle.SetBPF(raw)
}

func (h *pureGoHandle) Stats() (HandleStats, error) {
	s, err := h.EthernetHandle.Stats()
	if err != nil {
		return HandleStats{}, err
	}
	return HandleStats{Received: int(s.Packets), Dropped: int(s.Drops)}, nil
}

// AF_PACKET read timeouts already surface as net.Error; there is no
// extra engine sentinel on this path.
func isEngineTimeout(err error) bool {
	return false
}

func listDevices() ([]Device, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	devs := make([]Device, 0, len(ifaces))
	for _, iface := range ifaces {
		var addrs []string
		if ifAddrs, err := iface.Addrs(); err == nil {
			for _, a := range ifAddrs {
				addrs = append(addrs, a.String())
			}
		}
		devs = append(devs, Device{Name: iface.Name, Addresses: addrs})
	}
	return devs, nil
}
