package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chabad360/oscbridge/osc"
)

var (
	sendHost string
	sendPort int
)

var sendCmd = &cobra.Command{
	Use:   "send ADDRESS [ARG...]",
	Short: "Send one OSC message",
	Long: `Send one OSC message as a single datagram.

Arguments take an optional type prefix: i:1 h:1 f:2.5 d:2.5 s:text b:cafe
t:now. T, F and N send true, false and nil. Unprefixed integers are sent as
int32, other numbers as float32 and anything else as a string.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !strings.HasPrefix(args[0], "/") {
			return fmt.Errorf("address %q must start with /", args[0])
		}
		values, err := parseArgs(args[1:])
		if err != nil {
			return err
		}

		s := newSender(cmd)
		msg := osc.NewMessage(args[0], values...)
		if err := s.SendPacket(msg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s\n", msg, s.Addr())
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{sendCmd, consoleCmd} {
		c.Flags().StringVar(&sendHost, "host", "", "destination host (default from config)")
		c.Flags().IntVar(&sendPort, "port", 0, "destination port (default from config)")
	}
}

// newSender resolves the destination from flags, falling back to config.
func newSender(cmd *cobra.Command) *osc.Sender {
	host, port := cfg.Sender.Host, cfg.Sender.Port
	if cmd.Flags().Changed("host") {
		host = sendHost
	}
	if cmd.Flags().Changed("port") {
		port = sendPort
	}
	return osc.NewSender(host, port)
}
