package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/encoding"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/keydrill/internal/config"
	"github.com/verte-zerg/keydrill/internal/keysource"
)

func newRelayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Publish key presses to NATS for a plain-frontend session",
		Args:  cobra.NoArgs,
		RunE:  runRelayCmd,
	}
	cmd.Flags().StringVar(&relayURL, "nats-url", nats.DefaultURL, "NATS server")
	cmd.Flags().StringVar(&relaySubject, "nats-subject", defaultSubject, "NATS subject")
	return cmd
}

func runRelayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "nats-url", &relayURL, fileCfg.Practice.NatsURL)
	applyStringConfig(cmd, "nats-subject", &relaySubject, fileCfg.Practice.NatsSubject)
	if relayURL == "" || relaySubject == "" {
		return fmt.Errorf("--nats-url and --nats-subject must not be empty")
	}

	conn, err := nats.Connect(relayURL)
	if err != nil {
		return fmt.Errorf("failed to connect to nats: %w", err)
	}
	defer conn.Close()

	encoding.Register()
	scr, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	defer scr.Fini()

	sent := 0
	drawRelay(scr, relaySubject, sent)
	for {
		switch ev := scr.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			scr.Sync()
			drawRelay(scr, relaySubject, sent)
		case *tcell.EventKey:
			if err := keysource.Publish(conn, relaySubject, ev); err != nil {
				return err
			}
			sent++
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return conn.Flush()
			}
			drawRelay(scr, relaySubject, sent)
		}
	}
}

func drawRelay(scr tcell.Screen, subject string, sent int) {
	scr.Clear()
	w, h := scr.Size()
	lines := []string{
		fmt.Sprintf("Relaying keys to %q", subject),
		fmt.Sprintf("%d sent. Press <Esc> to finish the session and exit.", sent),
	}
	for i, line := range lines {
		x := max(0, (w-len(line))/2)
		for _, c := range line {
			scr.SetContent(x, h/2+i, c, nil, tcell.StyleDefault)
			x++
		}
	}
	scr.Show()
}
