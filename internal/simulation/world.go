package simulation

import (
	"context"
	"time"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/flock"
	"github.com/tochemey/goakt/v3/actor"
	"github.com/tochemey/goakt/v3/goaktpb"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Snapshot is the read-only view of the flock pushed to hosts after each tick batch.
type Snapshot struct {
	Tick   uint64
	Domain flock.Domain
	Agents []flock.Agent // index 0 is the leader
}

// FlockActor owns the authoritative flock. All ticks go through its mailbox,
// so the store is only ever touched by one goroutine at a time.
type FlockActor struct {
	store   *flock.Store
	params  flock.Params
	src     flock.Source
	workers int
	ticks   uint64
	// Communication with UI
	snapshotCh chan<- *Snapshot
	// --- Benchmark Stats ---
	ticksSinceLog int
	lastLogTime   time.Time
}

var _ actor.Actor = (*FlockActor)(nil)

// NewFlockActor validates cfg and creates the flock it describes.
// snapshotCh may be nil when nobody renders the flock.
func NewFlockActor(cfg *Config, snapshotCh chan<- *Snapshot) (*FlockActor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	src := cfg.Source()
	store, err := flock.New(cfg.Population, cfg.Domain(), cfg.InitialSpeed, src)
	if err != nil {
		return nil, err
	}
	return &FlockActor{
		store:       store,
		params:      cfg.Params(),
		src:         src,
		workers:     cfg.Workers,
		snapshotCh:  snapshotCh,
		lastLogTime: time.Now(),
	}, nil
}

func (f *FlockActor) PreStart(ctx *actor.Context) error {
	d := f.store.Domain()
	ctx.ActorSystem().Logger().Infof("Flock of %d fish ready in a %.0fx%.0f world", f.store.Len(), 2*d.Width, 2*d.Height)
	return nil
}

func (f *FlockActor) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {

	case *goaktpb.PostStart:
		ctx.Logger().Info("Flock started")
		f.pushSnapshot()

	// 1. The Main Simulation Step (Driven by the host loop)
	case *wrapperspb.UInt32Value:
		f.logBenchmarks(ctx)
		if err := f.advance(ctx.Context(), msg.GetValue()); err != nil {
			ctx.Logger().Errorf("tick %d failed: %v", f.ticks+1, err)
			return
		}
		f.pushSnapshot()

	// 2. Parameter updates
	case *structpb.Struct:
		p, err := applyParamsMessage(f.params, msg)
		if err != nil {
			ctx.Logger().Warnf("rejected parameter update: %v", err)
			return
		}
		f.params = p
		ctx.Logger().Debugf("parameters updated: %+v", p)

	// 3. State query
	case *emptypb.Empty:
		ctx.Response(wrapperspb.UInt64(f.ticks))

	default:
		ctx.Unhandled()
	}
}

// advance runs n ticks. Draws are taken here, in agent order, so the
// outcome for a given seed does not depend on the number of workers.
func (f *FlockActor) advance(ctx context.Context, n uint32) error {
	for range n {
		draws := flock.DrawTick(f.src, f.params, f.store.Len())
		if err := f.store.AdvanceParallel(ctx, f.params, draws, f.workers); err != nil {
			return err
		}
		f.ticks++
		f.ticksSinceLog++
	}
	return nil
}

func (f *FlockActor) logBenchmarks(ctx *actor.ReceiveContext) {
	if time.Since(f.lastLogTime) >= time.Second {
		ctx.Logger().Infof("📊 TICK RATE: %d/sec | Tick: %d | Fish: %d | Leader: %s",
			f.ticksSinceLog, f.ticks, f.store.Len(), f.store.At(0).Position)
		f.ticksSinceLog = 0
		f.lastLogTime = time.Now()
	}
}

func (f *FlockActor) pushSnapshot() {
	if f.snapshotCh == nil {
		return
	}
	select {
	case f.snapshotCh <- f.buildSnapshot():
	default:
		// UI busy, skip frame
	}
}

func (f *FlockActor) buildSnapshot() *Snapshot {
	return &Snapshot{
		Tick:   f.ticks,
		Domain: f.store.Domain(),
		Agents: f.store.Agents(),
	}
}

func (f *FlockActor) PostStop(ctx *actor.Context) error {
	ctx.ActorSystem().Logger().Infof("Flock stopped after %d ticks", f.ticks)
	return nil
}
