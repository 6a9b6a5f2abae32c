package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	golog "github.com/tochemey/goakt/v3/log"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const askTimeout = 5 * time.Second

// Engine runs the flock actor inside its own actor system and gives hosts a
// plain Go API over its mailbox.
type Engine struct {
	System    actor.ActorSystem
	flockPID  *actor.PID
	snapshots chan *Snapshot
}

// NewEngine starts an actor system named after the app and spawns the flock built from cfg.
func NewEngine(ctx context.Context, cfg *Config, logger golog.Logger) (*Engine, error) {
	// 1. Create Channels for communication
	snapshots := make(chan *Snapshot, 10) // Buffer to avoid blocking

	flockActor, err := NewFlockActor(cfg, snapshots)
	if err != nil {
		return nil, err
	}

	// 2. Start the actor system
	system, err := actor.NewActorSystem("FishFlock",
		actor.WithLogger(logger),
		actor.WithActorInitMaxRetries(3))
	if err != nil {
		return nil, fmt.Errorf("failed to create actor system: %w", err)
	}
	if err := system.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start actor system: %w", err)
	}

	// 3. Spawn the flock
	pid, err := system.Spawn(ctx, "flock", flockActor)
	if err != nil {
		_ = system.Stop(ctx)
		return nil, fmt.Errorf("failed to spawn flock: %w", err)
	}

	return &Engine{
		System:    system,
		flockPID:  pid,
		snapshots: snapshots,
	}, nil
}

// Tick asks the flock to advance n ticks. It does not wait for them to run.
func (e *Engine) Tick(ctx context.Context, n uint32) error {
	return actor.Tell(ctx, e.flockPID, NewTick(n))
}

// UpdateParams sends new flocking parameters, applied before the next tick.
// Invalid parameters are rejected here and never reach the flock.
func (e *Engine) UpdateParams(ctx context.Context, p flock.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	msg, err := ParamsMessage(p)
	if err != nil {
		return err
	}
	return actor.Tell(ctx, e.flockPID, msg)
}

// Ticks returns the number of ticks the flock has run. Because the mailbox is
// ordered, every Tick sent before the call has completed when it returns.
func (e *Engine) Ticks(ctx context.Context) (uint64, error) {
	reply, err := actor.Ask(ctx, e.flockPID, &emptypb.Empty{}, askTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to query flock: %w", err)
	}
	n, ok := reply.(*wrapperspb.UInt64Value)
	if !ok {
		return 0, fmt.Errorf("unexpected reply %T from flock", reply)
	}
	return n.GetValue(), nil
}

// Snapshots delivers the flock state after each tick batch. Frames are
// dropped while the buffer is full.
func (e *Engine) Snapshots() <-chan *Snapshot {
	return e.snapshots
}

func (e *Engine) Stop(ctx context.Context) error {
	return e.System.Stop(ctx)
}
