// controlnode is a thin cobra-based CLI wiring a server.Server from
// flag-provided values, a stand-in for the out-of-scope configuration
// backend purely so the daemon has something to run.
package main

import (
	"context"
	"fmt"
	"net/netip"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/config"
	"github.com/contrail/controlnode/server"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		logrus.WithError(err).Fatal("controlnode exiting")
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "controlnode",
		Short: "BGP-4 control-plane engine",
	}
	root.AddCommand(newRunCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the controlnode version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

type runFlags struct {
	listen       string
	localAS      uint32
	localID      string
	instanceName string
	peerAddr     string
	peerAS       uint32
	peerPort     uint16
	passive      bool
}

func newRunCmd() *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the control-plane engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), f)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.listen, "listen", "0.0.0.0:179", "address to accept inbound BGP sessions on")
	flags.Uint32Var(&f.localAS, "local-as", 64512, "this speaker's AS number")
	flags.StringVar(&f.localID, "local-id", "10.0.0.1", "this speaker's BGP identifier, as an IPv4 address")
	flags.StringVar(&f.instanceName, "instance", bgp.MasterInstance, "routing instance the single configured neighbor belongs to")
	flags.StringVar(&f.peerAddr, "peer-addr", "", "configure one neighbor at this address on startup")
	flags.Uint32Var(&f.peerAS, "peer-as", 0, "the configured neighbor's AS number")
	flags.Uint16Var(&f.peerPort, "peer-port", 179, "the configured neighbor's TCP port")
	flags.BoolVar(&f.passive, "peer-passive", false, "don't dial the configured neighbor, only accept its inbound session")
	return cmd
}

func runServer(ctx context.Context, f runFlags) error {
	localID, err := parseIdentifier(f.localID)
	if err != nil {
		return fmt.Errorf("controlnode: --local-id: %w", err)
	}

	srv := server.New(server.Config{
		LocalAS:         bgp.ASN(f.localAS),
		LocalIdentifier: localID,
	})

	if err := srv.ConfigureInstance(ctx, config.InstanceConfig{
		Name:            f.instanceName,
		AddressFamilies: []bgp.Family{bgp.FamilyInet, bgp.FamilyInet6, bgp.FamilyInetVPN},
	}); err != nil {
		return fmt.Errorf("controlnode: configuring instance %q: %w", f.instanceName, err)
	}

	if f.peerAddr != "" {
		addr, err := netip.ParseAddr(f.peerAddr)
		if err != nil {
			return fmt.Errorf("controlnode: --peer-addr: %w", err)
		}
		if err := srv.AddNeighbor(ctx, config.NeighborConfig{
			Instance:    f.instanceName,
			PeerAddress: addr,
			PeerAS:      bgp.ASN(f.peerAS),
			Port:        f.peerPort,
			Passive:     f.passive,
		}); err != nil {
			return fmt.Errorf("controlnode: adding neighbor %s: %w", addr, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"listen":   f.listen,
		"local-as": f.localAS,
		"local-id": f.localID,
	}).Info("controlnode starting")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe(f.listen) }()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sig:
		logrus.Info("controlnode shutting down")
		return srv.Close()
	}
}

func parseIdentifier(s string) (bgp.Identifier, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return 0, err
	}
	if !addr.Is4() {
		return 0, fmt.Errorf("identifier must be an IPv4 address, got %s", s)
	}
	b := addr.As4()
	return bgp.Identifier(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])), nil
}
