//go:build cgo

package capture

import (
	"github.com/google/gopacket/pcap"
)

var _ Handle = (*cgoHandle)(nil)

type cgoHandle struct {
	*pcap.Handle
}

// openLive opens device through libpcap. The poll timeout bounds how
// long a read blocks so the pump can observe cancellation.
func openLive(device string, cfg Config) (Handle, error) {
	timeout := cfg.PollTimeout
	if timeout <= 0 {
		timeout = pcap.BlockForever
	}
	h, err := pcap.OpenLive(device, cfg.Snaplen, cfg.Promiscuous, timeout)
	if err != nil {
		return nil, err
	}
	return &cgoHandle{Handle: h}, nil
}

func (h *cgoHandle) Stats() (HandleStats, error) {
	s, err := h.Handle.Stats()
	if err != nil {
		return HandleStats{}, err
	}
	return HandleStats{Received: s.PacketsReceived, Dropped: s.PacketsDropped}, nil
}

func isEngineTimeout(err error) bool {
	return err == pcap.NextErrorTimeoutExpired
}

func listDevices() ([]Device, error) {
	devices, err := pcap.FindAllDevs()
	if err != nil {
		return nil, err
	}

	devs := make([]Device, 0, len(devices))
	for _, d := range devices {
		addrs := make([]string, 0, len(d.Addresses))
		for _, a := range d.Addresses {
			if a.IP != nil {
				addrs = append(addrs, a.IP.String())
			}
		}
		devs = append(devs, Device{
			Name:        d.Name,
			Description: d.Description,
			Addresses:   addrs,
		})
	}
	return devs, nil
}
