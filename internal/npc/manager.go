package npc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/poorcraft/npc-engine/internal/services"
	"github.com/poorcraft/npc-engine/pkg/dialogue"
	"github.com/poorcraft/npc-engine/pkg/player"
)

var (
	// ErrUnknownNPC means the id does not match a spawned agent.
	ErrUnknownNPC = errors.New("unknown npc")

	// ErrBusy means a generation for this agent is already in flight.
	// The accompanying Result still carries displayable fallback text.
	ErrBusy = errors.New("generation already in flight for npc")
)

// idleActions is the rotation applied to agents idle past the threshold.
var idleActions = []string{"idle", "wandering", "working", "resting"}

const (
	idleThreshold  = 30 * time.Second
	idleActionStep = 10 * time.Second
)

// Result is the outcome of one asynchronous generation. Text is always
// displayable; Err is observability only (ErrBusy, context errors).
type Result struct {
	NPCID uuid.UUID
	Text  string
	Err   error
}

// Manager owns all spawned agents and runs dialogue generation off the
// frame-critical path. At most one generation per agent is in flight at
// a time: a second Talk for the same agent is rejected with an immediate
// busy fallback rather than queued, so the frame loop never accumulates
// pending work per NPC. Requests for different agents run in parallel.
type Manager struct {
	mu       sync.Mutex
	agents   map[uuid.UUID]*Agent
	inflight map[uuid.UUID]context.CancelFunc
	idleAcc  time.Duration
	idleIdx  int

	gateway services.DialogueSender
	store   SnapshotStore // nil when persistence is not wired
	logger  *slog.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager creates an agent manager. store may be nil.
func NewManager(gateway services.DialogueSender, store SnapshotStore, logger *slog.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		agents:   make(map[uuid.UUID]*Agent),
		inflight: make(map[uuid.UUID]context.CancelFunc),
		gateway:  gateway,
		store:    store,
		logger:   logger,
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Spawn creates an agent. When id is non-nil and a snapshot exists in
// the store, the agent's mutable state is restored from it.
func (m *Manager) Spawn(ctx context.Context, id uuid.UUID, name string, p dialogue.Personality) (*Agent, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid personality %q", p)
	}
	if id == uuid.Nil {
		id = uuid.New()
	}

	agent := NewAgent(id, name, p, m.gateway, m.logger)

	if m.store != nil {
		snap, err := m.store.LoadSnapshot(ctx, id)
		if err != nil {
			m.logger.Warn("Failed to load agent snapshot, spawning fresh",
				"npc_id", id, "error", err)
		} else if snap != nil {
			agent.restore(snap)
			m.logger.Info("Restored NPC from snapshot", "npc_id", id, "name", name)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.agents[id]; exists {
		return nil, fmt.Errorf("npc %s already spawned", id)
	}
	m.agents[id] = agent
	return agent, nil
}

// Despawn removes an agent, cancelling any in-flight generation and
// persisting a snapshot when a store is wired.
func (m *Manager) Despawn(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	agent, ok := m.agents[id]
	if !ok {
		m.mu.Unlock()
		return ErrUnknownNPC
	}
	delete(m.agents, id)
	if cancel, busy := m.inflight[id]; busy {
		cancel()
		delete(m.inflight, id)
	}
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.SaveSnapshot(ctx, agent.Snapshot()); err != nil {
			m.logger.Error("Failed to save agent snapshot", "npc_id", id, "error", err)
		}
	}
	m.logger.Info("Despawned NPC", "npc_id", id, "name", agent.Name())
	return nil
}

// Agent returns a spawned agent by id.
func (m *Manager) Agent(id uuid.UUID) (*Agent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	agent, ok := m.agents[id]
	if !ok {
		return nil, ErrUnknownNPC
	}
	return agent, nil
}

// List returns all spawned agents sorted by name.
func (m *Manager) List() []*Agent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Agent, 0, len(m.agents))
	for _, a := range m.agents {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// SetAIEnabled toggles remote generation for one agent.
func (m *Manager) SetAIEnabled(id uuid.UUID, enabled bool) error {
	agent, err := m.Agent(id)
	if err != nil {
		return err
	}
	agent.SetAIEnabled(enabled)
	return nil
}

// Talk starts an asynchronous generation for an agent and returns a
// channel that delivers exactly one Result. The channel is buffered, so
// an abandoned result never leaks the worker goroutine.
//
// If a generation for this agent is already in flight, the returned
// channel immediately carries a keyword-fallback reply and ErrBusy.
func (m *Manager) Talk(id uuid.UUID, input string, snap player.Snapshot) (<-chan Result, error) {
	m.mu.Lock()
	agent, ok := m.agents[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrUnknownNPC
	}

	ch := make(chan Result, 1)

	if _, busy := m.inflight[id]; busy {
		m.mu.Unlock()
		ch <- Result{
			NPCID: id,
			Text:  dialogue.KeywordReply(agent.Name(), input),
			Err:   ErrBusy,
		}
		return ch, nil
	}

	genCtx, cancel := context.WithCancel(m.baseCtx)
	m.inflight[id] = cancel
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()

		text := agent.GenerateResponse(genCtx, input, snap)

		m.mu.Lock()
		delete(m.inflight, id)
		m.mu.Unlock()

		ch <- Result{NPCID: id, Text: text, Err: genCtx.Err()}
	}()

	return ch, nil
}

// Busy reports whether a generation is in flight for the agent.
func (m *Manager) Busy(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, busy := m.inflight[id]
	return busy
}

// Update is the per-frame hook called from the simulation loop. Agents
// idle past the threshold rotate through background actions so their
// prompt context stays alive.
func (m *Manager) Update(dt time.Duration) {
	m.mu.Lock()
	m.idleAcc += dt
	if m.idleAcc < idleActionStep {
		m.mu.Unlock()
		return
	}
	m.idleAcc -= idleActionStep
	m.idleIdx = (m.idleIdx + 1) % len(idleActions)
	action := idleActions[m.idleIdx]

	agents := make([]*Agent, 0, len(m.agents))
	for _, a := range m.agents {
		agents = append(agents, a)
	}
	m.mu.Unlock()

	for _, a := range agents {
		if time.Since(a.LastInteraction()) > idleThreshold {
			a.SetCurrentAction(action)
		}
	}
}

// Name identifies the manager to the game loop.
func (m *Manager) Name() string { return "npc" }

// Shutdown cancels all in-flight generations and waits for workers to
// drain, bounded by ctx. Snapshots are saved when a store is wired.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.cancel()

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("shutdown wait interrupted: %w", ctx.Err())
	}

	if m.store != nil {
		for _, a := range m.List() {
			if err := m.store.SaveSnapshot(ctx, a.Snapshot()); err != nil {
				m.logger.Error("Failed to save agent snapshot on shutdown",
					"npc_id", a.ID(), "error", err)
			}
		}
	}
	return nil
}
