// Command momentctl seals, updates and deletes a moment from the terminal,
// keeping a local copy that survives when the API is down.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"momentzero/internal/client"
	"momentzero/internal/countdown"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func usage() error {
	return fmt.Errorf("usage: momentctl <status|seal|update|delete|show> [flags]")
}

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return usage()
	}
	cmd := strings.ToLower(args[0])

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	username := fs.String("username", "", "Username to act on")
	wish := fs.String("wish", "", "Message to seal")
	theme := fs.String("theme", "", "Theme")
	atmosphere := fs.String("atmosphere", "", "Atmosphere")
	typography := fs.String("typography", "", "Typography")
	layout := fs.String("layout", "", "Layout preference (stored locally)")
	volume := fs.Float64("volume", -1, "Ambient volume 0..1 (stored locally)")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	cfg, err := client.LoadConfig()
	if err != nil {
		return err
	}

	state := client.NewAppState()
	syncer := client.NewSyncer(
		client.NewAPIClient(cfg.APIURL, cfg.Timeout),
		client.NewFileStore(cfg.StateFile),
		state,
		cfg.ResolvedLocale(),
	).OnNotice(func(n client.Notice) {
		if n.Kind == client.NoticeLoading {
			_, _ = fmt.Fprintln(out, n.Message)
		}
	})

	onboarded, err := syncer.Load(nil)
	if err != nil {
		return err
	}

	override := func(v string, dst *string) {
		if v != "" {
			*dst = v
		}
	}
	override(*username, &state.Username)
	override(*wish, &state.Wish)
	override(*theme, &state.Theme)
	override(*atmosphere, &state.Atmosphere)
	override(*typography, &state.Typography)
	override(*layout, &state.Layout)
	if *volume >= 0 && *volume <= 1 {
		state.Volume = *volume
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	var notice client.Notice
	switch cmd {
	case "status":
		return printStatus(out, state, onboarded)
	case "show":
		if state.Username == "" {
			return client.ErrNoUsername
		}
		m, err := client.NewAPIClient(cfg.APIURL, cfg.Timeout).GetMoment(ctx, state.Username)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "%s (%d): %q [%s/%s/%s] public=%t\n",
			m.Username, m.TargetYear, m.Message, m.Theme, m.Atmosphere, m.Typography, m.IsPublic)
		return nil
	case "seal":
		notice, err = syncer.Seal(ctx)
	case "update":
		notice, err = syncer.Update(ctx)
	case "delete":
		notice, err = syncer.Delete(ctx)
	default:
		return usage()
	}

	if notice.Message != "" {
		_, _ = fmt.Fprintln(out, notice.Message)
	}
	if err != nil {
		return err
	}
	return syncer.SavePreferences()
}

func printStatus(out io.Writer, state *client.AppState, onboarded bool) error {
	remaining := countdown.Until(time.Now(), countdown.NextYear(time.Now()))
	_, err := fmt.Fprintf(out,
		"onboarded=%t username=%q wish=%q theme=%s atmosphere=%s typography=%s layout=%s volume=%.2f\n%dd %02dh %02dm %02ds until New Year\n",
		onboarded, state.Username, state.Wish, state.Theme, state.Atmosphere, state.Typography, state.Layout, state.Volume,
		remaining.Days, remaining.Hours, remaining.Minutes, remaining.Seconds)
	return err
}
