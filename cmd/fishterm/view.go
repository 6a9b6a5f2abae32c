package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/render"
	"github.com/lao-tseu-is-alive/go-flock-simulation/internal/simulation"
)

var (
	fishStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	leaderStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// View draws the flock on a terminal, one cell per visible fish.
type View struct {
	ctx       context.Context
	screen    tcell.Screen
	engine    *simulation.Engine
	tickRate  int
	lastState *simulation.Snapshot
	paused    bool
	step      bool
}

func NewView(ctx context.Context, cfg *simulation.Config, engine *simulation.Engine) (*View, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	return &View{
		ctx:      ctx,
		screen:   screen,
		engine:   engine,
		tickRate: cfg.TickRate,
	}, nil
}

func (v *View) run() error {
	ticker := time.NewTicker(time.Second / time.Duration(v.tickRate))
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				// screen finalized
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				return nil
			}

		case snap := <-v.engine.Snapshots():
			v.lastState = snap
			v.draw()

		case <-ticker.C:
			if v.paused && !v.step {
				continue
			}
			v.step = false
			if err := v.engine.Tick(v.ctx, 1); err != nil {
				return err
			}
		}
	}
}

// handleInput returns false when the user asks to quit.
func (v *View) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
				v.draw()
			case '.':
				v.step = true
			}
		}

	case *tcell.EventResize:
		v.screen.Sync()
		v.draw()
	}
	return true
}

func (v *View) draw() {
	v.screen.Clear()
	width, height := v.screen.Size()
	rows := height - 1 // status line

	if v.lastState != nil {
		// Leader last so it stays visible when sharing a cell.
		agents := v.lastState.Agents
		for i := len(agents) - 1; i >= 0; i-- {
			a := agents[i]
			col, row, ok := render.Project(a.Position, v.lastState.Domain, width, rows)
			if !ok {
				continue
			}
			style := fishStyle
			if i == 0 {
				style = leaderStyle
			}
			v.screen.SetContent(col, row, render.HeadingGlyph(a.Heading), nil, style)
		}
	}

	v.drawStatus(width, height-1)
	v.screen.Show()
}

func (v *View) drawStatus(width, row int) {
	var tick uint64
	var fish int
	if v.lastState != nil {
		tick, fish = v.lastState.Tick, len(v.lastState.Agents)
	}
	state := "running"
	if v.paused {
		state = "paused"
	}
	msg := fmt.Sprintf(" Fishes | tick %d | %d fish | %s | space pause  . step  q quit ", tick, fish, state)
	for x, r := range []rune(msg) {
		if x >= width {
			break
		}
		v.screen.SetContent(x, row, r, nil, statusStyle)
	}
}

func (v *View) cleanup() {
	v.screen.Fini()
}
