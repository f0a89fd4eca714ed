// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/netgrab/framecap/internal/capture"
	"github.com/netgrab/framecap/internal/config"
	"github.com/netgrab/framecap/internal/filter"
	"github.com/netgrab/framecap/internal/log"
)

var (
	configFile string
	opts       captureOptions
)

// captureOptions mirrors the root command flags before they are merged
// into the run configuration.
type captureOptions struct {
	Interface string
	Num       int
	Port      int
	Snaplen   int
	Promisc   bool
	LogLevel  string

	TCP, UDP, ICMP4, ICMP6, ARP, NDP, IGMP, MLD bool
}

var rootCmd = &cobra.Command{
	Use:   "framecap",
	Short: "framecap - capture live frames and print them as hex+ASCII records",
	Long: `framecap captures live network frames from a chosen interface,
restricts capture to a selected set of protocols and an optional port,
and prints each frame as a deterministic text record: timestamp,
addressing, and a hex+ASCII byte dump. The run stops after the
requested number of frames.

Examples:
  framecap                              # list available capture devices
  framecap -i eth0 -t -n 10             # 10 TCP frames from eth0
  framecap -i eth0 -t -u -p 443 -n 20   # 20 frames of tcp/udp port 443
  framecap -i eth0 --icmp6 --ndp        # ICMPv6 and neighbor discovery`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runCapture,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opts.Interface, "interface", "i", "", "capture interface name (empty lists available devices)")
	f.IntVarP(&opts.Num, "num", "n", 1, "number of frames to capture")
	f.IntVarP(&opts.Port, "port", "p", 0, "restrict tcp/udp capture to this port (either side)")
	f.BoolVarP(&opts.TCP, "tcp", "t", false, "capture TCP segments")
	f.BoolVarP(&opts.UDP, "udp", "u", false, "capture UDP datagrams")
	f.BoolVar(&opts.ICMP4, "icmp4", false, "capture ICMPv4 messages")
	f.BoolVar(&opts.ICMP6, "icmp6", false, "capture ICMPv6 messages")
	f.BoolVar(&opts.ARP, "arp", false, "capture ARP frames")
	f.BoolVar(&opts.NDP, "ndp", false, "capture NDP messages")
	f.BoolVar(&opts.IGMP, "igmp", false, "capture IGMP messages")
	f.BoolVar(&opts.MLD, "mld", false, "capture MLD messages")
	f.IntVar(&opts.Snaplen, "snaplen", 65535, "capture snapshot length in bytes")
	f.BoolVar(&opts.Promisc, "promisc", true, "put the interface into promiscuous mode")
	f.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")

	rootCmd.AddCommand(devicesCmd)
}

func runCapture(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := validate(cfg); err != nil {
		return err
	}

	if err := log.Init(cfg.Logger); err != nil {
		return err
	}

	// No interface selected: show what could be captured from instead.
	if cfg.Interface == "" {
		return printDevices(cmd.OutOrStdout())
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p := capture.New(capture.Config{
		Device:      cfg.Interface,
		Filter:      filter.Build(cfg.Protocols),
		FrameLimit:  cfg.Limit,
		Snaplen:     int32(cfg.Snaplen),
		Promiscuous: cfg.Promiscuous,
		PollTimeout: cfg.PollTimeout,
		QueueDepth:  cfg.QueueDepth,
	}, os.Stdout)

	return p.Run(ctx)
}

// loadConfig builds the run configuration: file (when given) first,
// then explicit flags override file values.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	} else {
		cfg = config.Default()
	}

	f := cmd.Flags()
	if f.Changed("interface") {
		cfg.Interface = opts.Interface
	}
	if f.Changed("num") {
		cfg.Limit = opts.Num
	}
	if f.Changed("snaplen") {
		cfg.Snaplen = opts.Snaplen
	}
	if f.Changed("promisc") {
		cfg.Promiscuous = opts.Promisc
	}
	if f.Changed("port") {
		cfg.Protocols.Port = opts.Port
	}
	if f.Changed("tcp") {
		cfg.Protocols.TCP = opts.TCP
	}
	if f.Changed("udp") {
		cfg.Protocols.UDP = opts.UDP
	}
	if f.Changed("icmp4") {
		cfg.Protocols.ICMP4 = opts.ICMP4
	}
	if f.Changed("icmp6") {
		cfg.Protocols.ICMP6 = opts.ICMP6
	}
	if f.Changed("arp") {
		cfg.Protocols.ARP = opts.ARP
	}
	if f.Changed("ndp") {
		cfg.Protocols.NDP = opts.NDP
	}
	if f.Changed("igmp") {
		cfg.Protocols.IGMP = opts.IGMP
	}
	if f.Changed("mld") {
		cfg.Protocols.MLD = opts.MLD
	}
	if f.Changed("log-level") && cfg.Logger != nil {
		cfg.Logger.Level = opts.LogLevel
	}

	return cfg, nil
}

// validate enforces the CLI-layer invariants; the capture core tolerates
// any selection it is handed.
func validate(cfg *config.Config) error {
	if cfg.Limit < 1 {
		return fmt.Errorf("frame limit must be at least 1, got %d", cfg.Limit)
	}
	if port := cfg.Protocols.Port; port != 0 {
		if port < 1 || port > 65535 {
			return fmt.Errorf("port %d out of range [1, 65535]", port)
		}
		if !cfg.Protocols.PortAllowed() {
			return fmt.Errorf("a port restriction requires --tcp and/or --udp")
		}
	}
	return nil
}
