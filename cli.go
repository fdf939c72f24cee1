package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"codeberg.org/miketth/ism/pkg/config"
	"codeberg.org/miketth/ism/pkg/inputsource"
)

type commandKind int

const (
	cmdGet commandKind = iota
	cmdSet
	cmdCycle
	cmdList
	cmdHistory
	cmdVersion
)

type command struct {
	kind     commandKind
	id       inputsource.ID
	ids      inputsource.List
	category inputsource.Category
}

type options struct {
	configPath string
	backend    string
	debug      bool
	cmd        command
}

var errUsage = errors.New("usage")

const usageText = `usage: ism [flags] [get | set <id> | <id> | cycle [id...] | history]

With no command, prints the current input source.

flags:
`

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var (
		opts                   options
		list, palette, version bool
	)

	fs := flag.NewFlagSet("ism", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}

	fs.BoolVar(&list, "l", false, "list keyboard input sources")
	fs.BoolVar(&list, "list", false, "list keyboard input sources")
	fs.BoolVar(&palette, "p", false, "list palette input sources (with -l: all sources)")
	fs.BoolVar(&palette, "palette", false, "list palette input sources (with -l: all sources)")
	fs.BoolVar(&version, "v", false, "print version")
	fs.BoolVar(&version, "version", false, "print version")
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (.toml or .yaml)")
	fs.StringVar(&opts.backend, "backend", "", "input source backend: auto, tis, hyprland or fcitx")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	rest := fs.Args()

	switch {
	case version:
		opts.cmd = command{kind: cmdVersion}
	case list || palette:
		opts.cmd = command{kind: cmdList, category: listCategory(list, palette)}
	}
	if version || list || palette {
		if len(rest) > 0 {
			return options{}, fmt.Errorf("%w: unexpected arguments %q", errUsage, rest)
		}
		return opts, nil
	}

	cmd, err := parseCommand(rest)
	if err != nil {
		return options{}, err
	}
	opts.cmd = cmd

	return opts, nil
}

func listCategory(list, palette bool) inputsource.Category {
	switch {
	case list && palette:
		return inputsource.CategoryAll
	case palette:
		return inputsource.CategoryPalette
	}
	return inputsource.CategoryKeyboard
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{kind: cmdGet}, nil
	}

	switch args[0] {
	case "get":
		if len(args) != 1 {
			return command{}, fmt.Errorf("%w: get takes no arguments", errUsage)
		}
		return command{kind: cmdGet}, nil

	case "set":
		if len(args) != 2 || args[1] == "" {
			return command{}, fmt.Errorf("%w: set takes exactly one source id", errUsage)
		}
		return command{kind: cmdSet, id: inputsource.ID(args[1])}, nil

	case "cycle":
		ids := make(inputsource.List, 0, len(args)-1)
		for _, arg := range args[1:] {
			ids = append(ids, inputsource.ID(arg))
		}
		return command{kind: cmdCycle, ids: ids}, nil

	case "history":
		if len(args) != 1 {
			return command{}, fmt.Errorf("%w: history takes no arguments", errUsage)
		}
		return command{kind: cmdHistory}, nil
	}

	if len(args) != 1 || args[0] == "" {
		return command{}, fmt.Errorf("%w: unexpected arguments %q", errUsage, args)
	}

	return command{kind: cmdSet, id: inputsource.ID(args[0])}, nil
}

type app struct {
	cfg      config.Config
	service  inputsource.Service
	switcher *inputsource.Switcher
	store    inputsource.SwitchStore
	out      io.Writer
	log      *zap.SugaredLogger
	now      func() time.Time
}

func (a *app) execute(ctx context.Context, cmd command) error {
	switch cmd.kind {
	case cmdGet:
		id, err := a.switcher.Current()
		if err != nil {
			return err
		}
		return a.println(id)

	case cmdSet:
		return a.set(ctx, cmd.id)

	case cmdCycle:
		return a.cycle(ctx, cmd.ids)

	case cmdList:
		ids, err := inputsource.ListSources(a.service, cmd.category)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := a.println(id); err != nil {
				return err
			}
		}
		return nil

	case cmdHistory:
		return a.history(ctx)
	}

	return fmt.Errorf("unknown command %d", cmd.kind)
}

func (a *app) set(ctx context.Context, id inputsource.ID) error {
	from, recordable := a.previous()

	newID, err := a.switcher.Set(id)
	if err != nil {
		return err
	}

	if recordable && from != newID {
		a.record(ctx, "set", from, newID)
	}

	return a.println(newID)
}

func (a *app) cycle(ctx context.Context, ids inputsource.List) error {
	if len(ids) == 0 {
		for _, id := range a.cfg.Cycle {
			ids = append(ids, inputsource.ID(id))
		}
	}
	if len(ids) == 0 {
		a.log.Debug("no cycle list given, cycling keyboard sources")

		var err error
		ids, err = inputsource.ListSources(a.service, inputsource.CategoryKeyboard)
		if err != nil {
			return err
		}
	}

	from, recordable := a.previous()

	out, err := a.switcher.Cycle(ids)
	if err != nil {
		return err
	}

	switch {
	case !out.Switched:
		a.log.Debugw("source unchanged", "current", out.ID)
	case recordable:
		a.record(ctx, "cycle", from, out.ID)
	}

	return a.println(out.ID)
}

// previous reads the active source for the history entry and reports
// whether the switch should be recorded. With history off no service call is
// made. A failed read only costs the history entry, the switch still runs.
func (a *app) previous() (inputsource.ID, bool) {
	if !a.cfg.History.Enabled {
		return "", false
	}

	from, err := a.switcher.Current()
	if err != nil {
		a.log.Warnw("could not read source before switching, not recording history", "error", err)
		return "", false
	}

	return from, true
}

// record stores a switch. The switch already happened, so a failure here is
// only logged.
func (a *app) record(ctx context.Context, command string, from, to inputsource.ID) {
	err := a.store.RecordSwitch(ctx, inputsource.SwitchRecord{
		From:    from,
		To:      to,
		Command: command,
		At:      a.now(),
	})
	if err != nil {
		a.log.Warnw("could not record switch", "error", err)
	}
}

func (a *app) history(ctx context.Context) error {
	if !a.cfg.History.Enabled {
		a.log.Warn("switch history is disabled, set history.enabled in the config file")
	}

	records, err := a.store.RecentSwitches(ctx, a.cfg.History.Limit)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}

	for _, r := range records {
		_, err := fmt.Fprintf(a.out, "%s\t%s\t%s -> %s\n", r.At.Format(time.RFC3339), r.Command, r.From, r.To)
		if err != nil {
			return err
		}
	}

	return nil
}

func (a *app) println(id inputsource.ID) error {
	_, err := fmt.Fprintln(a.out, id)
	return err
}
