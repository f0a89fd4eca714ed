// Package filter builds BPF filter expressions from a protocol selection.
package filter

import (
	"fmt"
	"strings"
)

// Selection is the set of protocols a capture run is restricted to.
// All flags false means no filtering. Port restricts tcp/udp clauses
// to one port (either side); a value <= 0 means no port restriction.
type Selection struct {
	TCP   bool `mapstructure:"tcp"`
	UDP   bool `mapstructure:"udp"`
	ICMP4 bool `mapstructure:"icmp4"`
	ICMP6 bool `mapstructure:"icmp6"`
	ARP   bool `mapstructure:"arp"`
	NDP   bool `mapstructure:"ndp"`
	IGMP  bool `mapstructure:"igmp"`
	MLD   bool `mapstructure:"mld"`
	Port  int  `mapstructure:"port"`
}

// Any reports whether at least one protocol flag is enabled.
func (s Selection) Any() bool {
	return s.TCP || s.UDP || s.ICMP4 || s.ICMP6 || s.ARP || s.NDP || s.IGMP || s.MLD
}

// PortAllowed reports whether a port restriction is meaningful for the
// selection. A port only ever applies to tcp/udp clauses.
func (s Selection) PortAllowed() bool {
	return s.TCP || s.UDP
}

// NDP and MLD have no single protocol keyword in the pcap-filter
// grammar; they expand to the named ICMPv6 type constants libpcap
// defines. The literals must match the engine grammar exactly.
const (
	ndpClause = "( icmp6 and (icmp6[icmp6type] = icmp6-neighborsolicit" +
		" or icmp6[icmp6type] = icmp6-routersolicit" +
		" or icmp6[icmp6type] = icmp6-routeradvert" +
		" or icmp6[icmp6type] = icmp6-neighboradvert" +
		" or icmp6[icmp6type] = icmp6-redirect) )"

	mldClause = "( icmp6 and (icmp6[icmp6type] = icmp6-multicastlistenerquery" +
		" or icmp6[icmp6type] = icmp6-multicastlistenerreportv1" +
		" or icmp6[icmp6type] = icmp6-multicastlistenerreportv2" +
		" or icmp6[icmp6type] = icmp6-multicastlistenerdone) )"
)

// Build maps a selection to a single pcap-filter expression. One clause
// is emitted per enabled flag, in the fixed order tcp, udp, icmp4,
// icmp6, arp, ndp, igmp, mld, joined with " or ". An empty selection
// yields the empty string, which the engine treats as capture-all.
func Build(sel Selection) string {
	var clauses []string
	if sel.TCP {
		clauses = append(clauses, transportClause("tcp", sel.Port))
	}
	if sel.UDP {
		clauses = append(clauses, transportClause("udp", sel.Port))
	}
	if sel.ICMP4 {
		clauses = append(clauses, "( icmp )")
	}
	if sel.ICMP6 {
		clauses = append(clauses, "( icmp6 )")
	}
	if sel.ARP {
		clauses = append(clauses, "( arp )")
	}
	if sel.NDP {
		clauses = append(clauses, ndpClause)
	}
	if sel.IGMP {
		clauses = append(clauses, "( igmp )")
	}
	if sel.MLD {
		clauses = append(clauses, mldClause)
	}
	return strings.Join(clauses, " or ")
}

// transportClause emits the tcp/udp clause. "port N" matches either
// source or destination, which is libpcap's native semantics.
func transportClause(proto string, port int) string {
	if port > 0 {
		return fmt.Sprintf("( %s port %d )", proto, port)
	}
	return fmt.Sprintf("( %s )", proto)
}
