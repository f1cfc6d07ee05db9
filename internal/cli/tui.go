package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"photogrip/internal/eventbus"
	"photogrip/internal/ui"
	"photogrip/internal/ui/commands"
	"photogrip/internal/ui/services/actions"
)

// uiEvents are the bus events the terminal gallery reacts to
var uiEvents = []eventbus.EventType{
	eventbus.EventPhotosLoaded,
	eventbus.EventPersonsLoaded,
	eventbus.EventGuestCountUpdated,
	eventbus.EventBulkProgress,
	eventbus.EventBulkCompleted,
	eventbus.EventUploadCompleted,
	eventbus.EventSessionChanged,
	eventbus.EventError,
}

// runTUI runs the terminal gallery until the user quits or ctx ends
var runTUI = func(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ctrl := app.Controller(func(st actions.BusyState) {
		app.Bus.Publish(eventbus.BulkProgressEvent{Busy: st.Busy, Text: st.StatusText})
	})

	model := ui.NewModel(app.Bus, app.Config, ui.Deps{
		Services: commands.Services{
			Ctx:      ctx,
			Photos:   app.Source,
			Actions:  ctrl,
			Uploader: app.Client,
			Identity: app.Identity,
			Sessions: app.Store,
		},
		Actions:   ctrl,
		Policy:    app.Source,
		Clipboard: clipboard,
		Session:   app.Store.Session(),
		Logger:    app.Log,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			app.Log.Warn("Event channel full, dropping event", "type", e.Type())
		}
	}
	for _, t := range uiEvents {
		defer app.Bus.Subscribe(t, forward)()
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			}
		}
	}()

	defer app.Source.Listen(ctx)()
	defer app.Guests.Subscribe(ctx, func(n int) {
		app.Bus.Publish(eventbus.GuestCountUpdatedEvent{Count: n})
	})()

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run gallery: %w", err)
	}
	return nil
}
