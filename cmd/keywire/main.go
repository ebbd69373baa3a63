// Package main is an interactive shortcut playground. It binds a demo
// shortcut set (or one loaded from a config file), then echoes every
// keystroke, the dispatch outcome, and the active contexts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/keywire/internal/config"
	"github.com/dshills/keywire/internal/hotkey"
	"github.com/dshills/keywire/internal/hotkey/key"
	"github.com/dshills/keywire/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to a TOML or JSON shortcut config")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("keywire %s (%s)\n", version, commit)
		return 0
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	app := &playground{screen: screen, quit: cancel}
	// Terminals have no meta key, so system resolves to ctrl here.
	app.dispatcher = hotkey.New(hotkey.Config{SystemModifier: key.ModCtrl})

	if err := app.bind(*configPath); err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	app.draw()
	err = term.NewSource(screen, app.dispatcher).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// playground owns the screen and the demo dispatcher state.
type playground struct {
	screen     tcell.Screen
	dispatcher *hotkey.Dispatcher
	quit       context.CancelFunc

	mu        sync.Mutex
	lastEvent string
	lastFired bool
}

// bind registers the shortcut set: from the config file when given,
// otherwise the built-in demo set.
func (p *playground) bind(configPath string) error {
	reg := config.NewActionRegistry()
	reg.MustRegister("quit", func(key.Event) { p.quit() })
	reg.MustRegister("enter-pane-mode", func(key.Event) {
		_ = p.dispatcher.Activate("pane-mode")
	})
	reg.MustRegister("leave-pane-mode", func(key.Event) {
		_ = p.dispatcher.Deactivate("pane-mode")
	})
	reg.MustRegister("split", func(key.Event) {
		_ = p.dispatcher.Deactivate("pane-mode")
	})

	p.dispatcher.AddPostHook(hotkey.PostDispatchFunc(func(ev key.Event, fired bool) {
		p.mu.Lock()
		p.lastEvent = describe(ev)
		p.lastFired = fired
		p.mu.Unlock()
		p.draw()
	}))

	f := defaultBindings()
	if configPath != "" {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		f = loaded
	}
	_, err := config.Apply(p.dispatcher, reg, f)
	return err
}

// defaultBindings is the built-in demo shortcut set.
func defaultBindings() *config.File {
	return &config.File{Bindings: []config.BindingDef{
		{Key: "q", Modifiers: []string{"ctrl"}, Action: "quit", Description: "quit"},
		{Key: "b", Modifiers: []string{"system"}, Action: "enter-pane-mode", Description: "enter pane mode"},
		{Key: "Escape", When: "pane-mode", Action: "leave-pane-mode", Description: "leave pane mode"},
		{Key: "v", When: "pane-mode", Action: "split", Description: "split vertically"},
	}}
}

// loadConfig picks the parser from the file extension.
func loadConfig(path string) (*config.File, error) {
	switch filepath.Ext(path) {
	case ".json":
		return config.LoadJSON(path)
	default:
		return config.LoadTOML(path)
	}
}

// draw renders the binding list, the active contexts, and the last
// dispatch outcome.
func (p *playground) draw() {
	p.mu.Lock()
	lastEvent, lastFired := p.lastEvent, p.lastFired
	p.mu.Unlock()

	p.screen.Clear()
	style := tcell.StyleDefault

	row := 0
	puts(p.screen, 0, row, style.Bold(true), "keywire playground (ctrl+q quits)")
	row += 2

	// Align descriptions past the widest shortcut label.
	infos := p.dispatcher.Bindings()
	width := 0
	for _, info := range infos {
		if w := runewidth.StringWidth(shortcutLabel(info)); w > width {
			width = w
		}
	}
	for _, info := range infos {
		label := runewidth.FillRight(shortcutLabel(info), width+2)
		puts(p.screen, 2, row, style, label+info.Description)
		row++
	}
	row++

	contexts := strings.Join(p.dispatcher.Contexts(), ", ")
	if contexts == "" {
		contexts = "(none)"
	}
	puts(p.screen, 0, row, style, "contexts: "+contexts)
	row++

	if lastEvent != "" {
		outcome := "no match"
		if lastFired {
			outcome = "fired"
		}
		puts(p.screen, 0, row, style, fmt.Sprintf("last: %s  [%s]", lastEvent, outcome))
	}

	p.screen.Show()
}

// shortcutLabel formats a binding like "Ctrl+K" or "pane-mode: V".
func shortcutLabel(info hotkey.Info) string {
	label := info.Key
	if !info.Modifiers.IsEmpty() {
		label = info.Modifiers.String() + "+" + label
	}
	if !info.When.IsAlways() {
		label = info.When.String() + ": " + label
	}
	return label
}

// describe formats an event for the status line.
func describe(ev key.Event) string {
	s := ev.Key()
	if mods := ev.Modifiers(); !mods.IsEmpty() {
		s = mods.String() + "+" + s
	}
	if code := ev.Code(); code != "" {
		s += " (" + code + ")"
	}
	return s
}

// puts writes a string to the screen cell by cell.
func puts(s tcell.Screen, x, y int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		s.SetContent(col, y, r, nil, style)
		col += runewidth.RuneWidth(r)
	}
}
