package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/netgrab/framecap/internal/capture"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available capture devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printDevices(cmd.OutOrStdout())
	},
}

func printDevices(w io.Writer) error {
	devs, err := capture.NewDirectory().List()
	if err != nil {
		return err
	}
	for _, d := range devs {
		fmt.Fprintln(w, d.Name)
		if d.Description != "" {
			fmt.Fprintf(w, "    %s\n", d.Description)
		}
		for _, a := range d.Addresses {
			fmt.Fprintf(w, "    %s\n", a)
		}
	}
	return nil
}
