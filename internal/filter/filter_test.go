package filter

import (
	"testing"
)

func TestBuildSingleProtocol(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want string
	}{
		{
			name: "empty selection matches all traffic",
			sel:  Selection{},
			want: "",
		},
		{
			name: "tcp without port",
			sel:  Selection{TCP: true},
			want: "( tcp )",
		},
		{
			name: "udp without port",
			sel:  Selection{UDP: true},
			want: "( udp )",
		},
		{
			name: "tcp with port",
			sel:  Selection{TCP: true, Port: 80},
			want: "( tcp port 80 )",
		},
		{
			name: "udp with port",
			sel:  Selection{UDP: true, Port: 5060},
			want: "( udp port 5060 )",
		},
		{
			name: "icmp4",
			sel:  Selection{ICMP4: true},
			want: "( icmp )",
		},
		{
			name: "icmp6",
			sel:  Selection{ICMP6: true},
			want: "( icmp6 )",
		},
		{
			name: "arp",
			sel:  Selection{ARP: true},
			want: "( arp )",
		},
		{
			name: "igmp",
			sel:  Selection{IGMP: true},
			want: "( igmp )",
		},
		{
			name: "ndp expands to named icmp6 types",
			sel:  Selection{NDP: true},
			want: "( icmp6 and (icmp6[icmp6type] = icmp6-neighborsolicit" +
				" or icmp6[icmp6type] = icmp6-routersolicit" +
				" or icmp6[icmp6type] = icmp6-routeradvert" +
				" or icmp6[icmp6type] = icmp6-neighboradvert" +
				" or icmp6[icmp6type] = icmp6-redirect) )",
		},
		{
			name: "mld expands to named icmp6 types",
			sel:  Selection{MLD: true},
			want: "( icmp6 and (icmp6[icmp6type] = icmp6-multicastlistenerquery" +
				" or icmp6[icmp6type] = icmp6-multicastlistenerreportv1" +
				" or icmp6[icmp6type] = icmp6-multicastlistenerreportv2" +
				" or icmp6[icmp6type] = icmp6-multicastlistenerdone) )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.sel); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildCombinations(t *testing.T) {
	tests := []struct {
		name string
		sel  Selection
		want string
	}{
		{
			name: "tcp and udp share the port",
			sel:  Selection{TCP: true, UDP: true, Port: 80},
			want: "( tcp port 80 ) or ( udp port 80 )",
		},
		{
			name: "port is ignored for non-transport protocols",
			sel:  Selection{ICMP4: true, ARP: true, Port: 443},
			want: "( icmp ) or ( arp )",
		},
		{
			name: "emission order is fixed regardless of flag meaning",
			sel:  Selection{MLD: true, ARP: true, TCP: true},
			want: "( tcp ) or ( arp ) or " +
				"( icmp6 and (icmp6[icmp6type] = icmp6-multicastlistenerquery" +
				" or icmp6[icmp6type] = icmp6-multicastlistenerreportv1" +
				" or icmp6[icmp6type] = icmp6-multicastlistenerreportv2" +
				" or icmp6[icmp6type] = icmp6-multicastlistenerdone) )",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Build(tt.sel); got != tt.want {
				t.Errorf("Build() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSelectionHelpers(t *testing.T) {
	if (Selection{}).Any() {
		t.Error("empty selection reported Any() = true")
	}
	if !(Selection{IGMP: true}).Any() {
		t.Error("igmp selection reported Any() = false")
	}
	if (Selection{ICMP4: true}).PortAllowed() {
		t.Error("icmp4-only selection reported PortAllowed() = true")
	}
	if !(Selection{UDP: true}).PortAllowed() {
		t.Error("udp selection reported PortAllowed() = false")
	}
}
