package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chabad360/oscbridge/osc"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactively send OSC messages and bundles",
	Long: `Read commands from stdin and send them to the configured destination:

	m                 send a sample message
	b                 send a sample bundle of two messages
	/addr [ARG...]    send a message, arguments as for send
	q                 quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSender(cmd)
		client, err := osc.Dial(s.Addr())
		if err != nil {
			return err
		}
		defer client.Close()

		return runConsole(cmd.InOrStdin(), cmd.OutOrStdout(), client, s.Addr())
	},
}

// packetSender is satisfied by *osc.Client.
type packetSender interface {
	Send(osc.Packet) error
}

func runConsole(in io.Reader, out io.Writer, client packetSender, addr string) error {
	fmt.Fprintf(out, "Sending to %s\n", addr)
	fmt.Fprintln(out, "\tm: message")
	fmt.Fprintln(out, "\tb: bundle")
	fmt.Fprintln(out, "\t/addr [ARG...]: custom message")
	fmt.Fprintln(out, "\tq: exit")
	fmt.Fprint(out, "# ")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		var p osc.Packet
		switch {
		case line == "q":
			return nil
		case line == "m":
			p = osc.NewMessage("/message/address", int32(12345), "teststring", true, false)
		case line == "b":
			p = osc.NewBundle(
				osc.NewMessage("/bundle/message/1", int32(12345), "teststring", true, false),
				osc.NewMessage("/bundle/message/2", int32(3344), float32(101.9), "string1", "string2", true),
			)
		case strings.HasPrefix(line, "/"):
			fields := strings.Fields(line)
			args, err := parseArgs(fields[1:])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				break
			}
			p = osc.NewMessage(fields[0], args...)
		case line == "":
		default:
			fmt.Fprintf(out, "unknown command %q\n", line)
		}

		if p != nil {
			if err := client.Send(p); err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				fmt.Fprintln(out, "sent")
			}
		}
		fmt.Fprint(out, "# ")
	}
	return scanner.Err()
}
