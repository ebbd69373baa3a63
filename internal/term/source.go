package term

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keywire/internal/hotkey"
)

// Source pumps a tcell screen's key events into a dispatcher.
type Source struct {
	screen     tcell.Screen
	dispatcher *hotkey.Dispatcher
}

// NewSource creates a source feeding the dispatcher from the screen.
// The screen must already be initialized.
func NewSource(screen tcell.Screen, d *hotkey.Dispatcher) *Source {
	return &Source{screen: screen, dispatcher: d}
}

// Run polls the screen and dispatches key events until the context is
// canceled or the screen is finalized. Resize events trigger a sync;
// all other event types are ignored.
func (s *Source) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go s.screen.ChannelEvents(events, quit)
	defer close(quit)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch e := ev.(type) {
			case *tcell.EventKey:
				s.dispatcher.Handle(Translate(e))
			case *tcell.EventResize:
				s.screen.Sync()
			}
		}
	}
}
