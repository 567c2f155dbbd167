package binding_test

import (
	"context"
	"sync"

	"github.com/jhortiz/bodega-scan-api/internal/application/binding"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
	"github.com/jhortiz/bodega-scan-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura en memoria para los tests del motor de vinculación.
//
// memTxRunner serializa las "transacciones" con un mutex y toma un snapshot
// del estado antes de ejecutar fn: si fn falla, restaura el snapshot. Eso
// reproduce la semántica commit/rollback de la implementación PostgreSQL sin
// base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	mu         sync.Mutex
	slots      map[string]*entity.Slot      // por ID
	containers map[int64]*entity.Container  // por ID
	items      map[string]*entity.Item      // por código
	movements  []*entity.MovementRecord
}

func newMemState() *memState {
	return &memState{
		slots:      map[string]*entity.Slot{},
		containers: map[int64]*entity.Container{},
		items:      map[string]*entity.Item{},
	}
}

func copySlot(s *entity.Slot) *entity.Slot {
	c := *s
	if s.Capacity != nil {
		cap := *s.Capacity
		c.Capacity = &cap
	}
	return &c
}

func copyContainer(c *entity.Container) *entity.Container {
	cp := *c
	if c.SlotID != nil {
		id := *c.SlotID
		cp.SlotID = &id
	}
	if c.Expiry != nil {
		e := *c.Expiry
		cp.Expiry = &e
	}
	return &cp
}

// snapshot copia profunda de slots, cajas y bitácora (items son de solo lectura).
func (st *memState) snapshot() (map[string]*entity.Slot, map[int64]*entity.Container, []*entity.MovementRecord) {
	slots := make(map[string]*entity.Slot, len(st.slots))
	for id, s := range st.slots {
		slots[id] = copySlot(s)
	}
	containers := make(map[int64]*entity.Container, len(st.containers))
	for id, c := range st.containers {
		containers[id] = copyContainer(c)
	}
	movements := make([]*entity.MovementRecord, len(st.movements))
	copy(movements, st.movements)
	return slots, containers, movements
}

type memTxRunner struct {
	txMu sync.Mutex
	st   *memState
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	slotRepo repository.SlotRepository,
	containerRepo repository.ContainerRepository,
	movementRepo repository.MovementRepository,
) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.st.mu.Lock()
	slots, containers, movements := r.st.snapshot()
	r.st.mu.Unlock()

	err := fn(&memSlotRepo{st: r.st}, &memContainerRepo{st: r.st}, &memMovementRepo{st: r.st})
	if err != nil {
		// rollback: restaurar el snapshot previo
		r.st.mu.Lock()
		r.st.slots = slots
		r.st.containers = containers
		r.st.movements = movements
		r.st.mu.Unlock()
		return err
	}
	return nil
}

// ── SlotRepository en memoria ────────────────────────────────────────────────

type memSlotRepo struct{ st *memState }

func (r *memSlotRepo) findByCode(code string) *entity.Slot {
	for _, s := range r.st.slots {
		if s.Code == code {
			return s
		}
	}
	return nil
}

func (r *memSlotRepo) GetByCode(code string) (*entity.Slot, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if s := r.findByCode(code); s != nil {
		return copySlot(s), nil
	}
	return nil, nil
}

func (r *memSlotRepo) GetByCodeForUpdate(code string) (*entity.Slot, error) {
	return r.GetByCode(code)
}

func (r *memSlotRepo) GetByIDForUpdate(id string) (*entity.Slot, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if s, ok := r.st.slots[id]; ok {
		return copySlot(s), nil
	}
	return nil, nil
}

func (r *memSlotRepo) AdjustOccupancy(slotID string, delta int) (int, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s, ok := r.st.slots[slotID]
	if !ok {
		return 0, domain.ErrSlotNotFound
	}
	if delta > 0 && s.Capacity != nil && s.Occupancy+delta > *s.Capacity {
		return 0, domain.ErrCapacityExceeded
	}
	s.Occupancy += delta
	if s.Occupancy < 0 {
		s.Occupancy = 0
	}
	return s.Occupancy, nil
}

func (r *memSlotRepo) Create(slot *entity.Slot) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.slots[slot.ID] = copySlot(slot)
	return nil
}

func (r *memSlotRepo) List(limit, offset int) ([]*entity.Slot, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	out := make([]*entity.Slot, 0, len(r.st.slots))
	for _, s := range r.st.slots {
		out = append(out, copySlot(s))
	}
	return out, nil
}

func (r *memSlotRepo) Delete(id string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	s, ok := r.st.slots[id]
	if !ok {
		return domain.ErrSlotNotFound
	}
	if s.Occupancy > 0 {
		return domain.ErrSlotNotEmpty
	}
	delete(r.st.slots, id)
	return nil
}

// ── ContainerRepository en memoria ───────────────────────────────────────────

type memContainerRepo struct{ st *memState }

func (r *memContainerRepo) GetByCode(code string) (*entity.Container, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var matches []*entity.Container
	for _, c := range r.st.containers {
		if c.Code == code || c.BoxNumber == code {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return copyContainer(matches[0]), nil
	default:
		return nil, domain.ErrAmbiguousContainerCode
	}
}

func (r *memContainerRepo) GetByCodeForUpdate(code string) (*entity.Container, error) {
	return r.GetByCode(code)
}

func (r *memContainerRepo) UpdateBinding(containerID int64, state string, slotID *string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	c, ok := r.st.containers[containerID]
	if !ok {
		return domain.ErrContainerNotFound
	}
	c.BindingState = state
	if slotID != nil {
		id := *slotID
		c.SlotID = &id
	} else {
		c.SlotID = nil
	}
	return nil
}

func (r *memContainerRepo) UpdateLabelStatus(ids []int64, status string) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	for _, id := range ids {
		if c, ok := r.st.containers[id]; ok {
			c.LabelStatus = status
		}
	}
	return nil
}

func (r *memContainerRepo) Create(container *entity.Container) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if container.ID == 0 {
		container.ID = int64(len(r.st.containers) + 1)
	}
	r.st.containers[container.ID] = copyContainer(container)
	return nil
}

func (r *memContainerRepo) GetByIDs(ids []int64) ([]*entity.Container, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var out []*entity.Container
	for _, id := range ids {
		if c, ok := r.st.containers[id]; ok {
			out = append(out, copyContainer(c))
		}
	}
	return out, nil
}

func (r *memContainerRepo) NextBoxNumber(itemCode string) (int, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	n := 0
	for _, c := range r.st.containers {
		if c.ItemCode == itemCode {
			n++
		}
	}
	return n + 1, nil
}

// ── MovementRepository en memoria ────────────────────────────────────────────

type memMovementRepo struct{ st *memState }

func (r *memMovementRepo) Append(record *entity.MovementRecord) error {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	r.st.movements = append(r.st.movements, record)
	return nil
}

func (r *memMovementRepo) ListByContainer(containerID int64, limit, offset int) ([]*entity.MovementRecord, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	var all []*entity.MovementRecord
	for i := len(r.st.movements) - 1; i >= 0; i-- { // más reciente primero
		if r.st.movements[i].ContainerID == containerID {
			all = append(all, r.st.movements[i])
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// ── ItemRepository en memoria ────────────────────────────────────────────────

type memItemRepo struct{ st *memState }

func (r *memItemRepo) GetByCode(code string) (*entity.Item, error) {
	r.st.mu.Lock()
	defer r.st.mu.Unlock()
	if it, ok := r.st.items[code]; ok {
		cp := *it
		return &cp, nil
	}
	return nil, nil
}

// ── Notifier que registra los eventos recibidos ──────────────────────────────

type recordingNotifier struct {
	mu       sync.Mutex
	bound    []binding.Event
	outbound []binding.Event
	returned []binding.Event
}

func (n *recordingNotifier) OnBound(ev binding.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.bound = append(n.bound, ev)
}

func (n *recordingNotifier) OnOutbound(ev binding.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.outbound = append(n.outbound, ev)
}

func (n *recordingNotifier) OnReturned(ev binding.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.returned = append(n.returned, ev)
}

func (n *recordingNotifier) counts() (bound, outbound, returned int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.bound), len(n.outbound), len(n.returned)
}
