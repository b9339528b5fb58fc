package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tomb-engine/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve [level]",
	Short: "Start the viewer SSH server",
	Long: `Start an SSH server that runs one level and lets users connect to
watch it. Every connection sees the same world and can steer Lara.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tomb/host_key

Examples:
  tomb serve                           # Listen on :23235 with auto-generated key
  tomb serve --ssh :2222               # Listen on port 2222
  tomb serve levels/hall.yaml          # Serve a specific level

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, args []string) error {
	e, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	lvl, err := e.loadLevel(args)
	if err != nil {
		return err
	}
	w, err := lvl.NewWorld(e.options())
	if err != nil {
		return fmt.Errorf("building level %s: %w", lvl.ID, err)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	server, err := tui.NewSSHServer(cfg, tui.NewSession(w, e.logger), e.logger)
	if err != nil {
		return err
	}

	fmt.Printf("Serving %s on %s\n", lvl.Name, server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	fmt.Printf("%016x\n", w.Hash())
	return nil
}
