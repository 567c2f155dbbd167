package binding_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhortiz/bodega-scan-api/internal/application/binding"
	"github.com/jhortiz/bodega-scan-api/internal/domain"
	"github.com/jhortiz/bodega-scan-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del motor de vinculación sobre la infraestructura en memoria de
// fakes_test.go. Cada operación debe dejar el estado coherente tanto en éxito
// (commit) como en fallo (rollback): ocupación de cada ubicación igual al
// número de cajas bound_in_stock vinculadas a ella, y una entrada de bitácora
// por cada transición aplicada.
// ──────────────────────────────────────────────────────────────────────────────

const (
	testOperator = "op-001"
	testItemCode = "ART-01"
	testItemName = "Tornillos 3/8"
)

type testEnv struct {
	st       *memState
	engine   *binding.Engine
	notifier *recordingNotifier
}

func newTestEnv() *testEnv {
	st := newMemState()
	st.items[testItemCode] = &entity.Item{Code: testItemCode, Name: testItemName, Unit: "und"}
	notifier := &recordingNotifier{}
	engine := binding.NewEngine(
		&memTxRunner{st: st},
		&memContainerRepo{st: st},
		&memItemRepo{st: st},
		notifier,
	)
	return &testEnv{st: st, engine: engine, notifier: notifier}
}

func (e *testEnv) addSlot(id, code string, capacity *int, occupancy int) {
	e.st.slots[id] = &entity.Slot{
		ID: id, Code: code, Name: "Ubicación " + code,
		Capacity: capacity, Occupancy: occupancy, Active: true,
	}
}

func (e *testEnv) addContainer(id int64, code, boxNumber, state string, slotID *string) {
	e.st.containers[id] = &entity.Container{
		ID: id, Code: code, BoxNumber: boxNumber, ItemCode: testItemCode,
		Batch: "L-2026-01", BindingState: state, SlotID: slotID,
		LabelStatus: entity.LabelPrinted,
	}
}

func intPtr(n int) *int { return &n }

// assertCoherente verifica el invariante de ocupación: para cada ubicación,
// occupancy == cajas bound_in_stock vinculadas a ella.
func assertCoherente(t *testing.T, st *memState) {
	t.Helper()
	st.mu.Lock()
	defer st.mu.Unlock()
	for _, slot := range st.slots {
		count := 0
		for _, c := range st.containers {
			if c.BindingState == entity.BindingInStock && c.SlotID != nil && *c.SlotID == slot.ID {
				count++
			}
		}
		assert.Equal(t, count, slot.Occupancy,
			"la ocupación de %s debe coincidir con sus cajas bound_in_stock", slot.Code)
		// SlotID no-nulo si y solo si bound_pending o bound_in_stock
		for _, c := range st.containers {
			bound := c.BindingState == entity.BindingPending || c.BindingState == entity.BindingInStock
			assert.Equal(t, bound, c.SlotID != nil,
				"caja %s: slot_id debe ser no-nulo exactamente en estados vinculados", c.Code)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// FirstBind
// ──────────────────────────────────────────────────────────────────────────────

func TestFirstBind_BindAndStock_Exitoso(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(10), 0)
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	res, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	})
	require.NoError(t, err)

	assert.True(t, res.Applied, "la primera vinculación debe aplicarse")
	assert.Equal(t, 1, res.Occupancy, "la ocupación debe quedar en 1")
	assert.Equal(t, "UB-A1", res.SlotCode)

	ctr := env.st.containers[1]
	assert.Equal(t, entity.BindingInStock, ctr.BindingState)
	require.NotNil(t, ctr.SlotID)
	assert.Equal(t, "s1", *ctr.SlotID)
	assert.Equal(t, entity.LabelUsed, ctr.LabelStatus, "la etiqueta debe marcarse usada")

	require.Len(t, env.st.movements, 1, "debe registrarse exactamente un movimiento")
	rec := env.st.movements[0]
	assert.Equal(t, entity.MovementKindAssign, rec.Kind)
	assert.True(t, rec.From.IsEmpty(), "el origen de la primera vinculación es vacío")
	require.NotNil(t, rec.To.SlotID)
	assert.Equal(t, "s1", *rec.To.SlotID)
	assert.Equal(t, testOperator, rec.OperatorID)
	assert.Equal(t, testItemName, rec.ItemName, "el nombre del artículo se denormaliza en la bitácora")

	bound, _, _ := env.notifier.counts()
	assert.Equal(t, 1, bound, "debe emitirse un evento OnBound tras el commit")
	assertCoherente(t, env.st)
}

func TestFirstBind_BindOnly_NoCuentaOcupacion(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(10), 0)
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	res, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindOnly, OperatorID: testOperator,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied)

	assert.Equal(t, 0, env.st.slots["s1"].Occupancy,
		"bind-only no debe incrementar la ocupación")
	assert.Equal(t, entity.BindingPending, env.st.containers[1].BindingState)
	require.Len(t, env.st.movements, 1)
	assertCoherente(t, env.st)
}

func TestFirstBind_ReintentoIdempotente(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(10), 0)
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	in := binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	}
	first, err := env.engine.FirstBind(context.Background(), in)
	require.NoError(t, err)
	require.True(t, first.Applied)

	// Segundo escaneo idéntico (doble lectura del QR): éxito sin efectos.
	second, err := env.engine.FirstBind(context.Background(), in)
	require.NoError(t, err, "el reintento idempotente no debe fallar")
	assert.False(t, second.Applied, "el reintento no debe reaplicarse")
	assert.Equal(t, 1, second.Occupancy)

	assert.Equal(t, 1, env.st.slots["s1"].Occupancy, "sin doble incremento")
	assert.Len(t, env.st.movements, 1, "sin entrada duplicada en la bitácora")

	bound, _, _ := env.notifier.counts()
	assert.Equal(t, 1, bound, "el reintento no debe emitir un segundo evento")
	assertCoherente(t, env.st)
}

// Escenario bind-only seguido de bind-and-stock sobre la misma ubicación: la
// segunda llamada es el paso de "contar en stock", no un reintento.
func TestFirstBind_PendienteLuegoStock(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(10), 0)
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	_, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindOnly, OperatorID: testOperator,
	})
	require.NoError(t, err)

	res, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	})
	require.NoError(t, err)
	assert.True(t, res.Applied, "pasar de pendiente a stock sí aplica cambios")
	assert.Equal(t, 1, res.Occupancy)
	assert.Equal(t, entity.BindingInStock, env.st.containers[1].BindingState)
	assertCoherente(t, env.st)
}

func TestFirstBind_VinculadaAOtraUbicacion_Falla(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(10), 1)
	env.addSlot("s2", "UB-B2", intPtr(10), 0)
	s1 := "s1"
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingInStock, &s1)

	_, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-B2", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyBoundElsewhere)

	// Nada cambió: sigue en s1, ocupaciones intactas, bitácora vacía.
	assert.Equal(t, "s1", *env.st.containers[1].SlotID)
	assert.Equal(t, 1, env.st.slots["s1"].Occupancy)
	assert.Equal(t, 0, env.st.slots["s2"].Occupancy)
	assert.Empty(t, env.st.movements)
	assertCoherente(t, env.st)
}

func TestFirstBind_CapacidadExcedida_Rollback(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(1), 1) // llena
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	_, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	assert.Equal(t, 1, env.st.slots["s1"].Occupancy, "la ocupación no debe cambiar")
	assert.Equal(t, entity.BindingUnbound, env.st.containers[1].BindingState,
		"el rollback debe dejar la caja sin vincular")
	assert.Nil(t, env.st.containers[1].SlotID)
	assert.Empty(t, env.st.movements, "el rollback no debe dejar rastro en la bitácora")

	bound, outbound, returned := env.notifier.counts()
	assert.Zero(t, bound+outbound+returned, "sin commit no hay eventos")
}

func TestFirstBind_UbicacionInactiva_Falla(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", nil, 0)
	env.st.slots["s1"].Active = false
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	_, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrSlotNotFound,
		"una ubicación inactiva se trata como inexistente")
}

func TestFirstBind_EntradaInvalida(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	cases := []binding.FirstBindInput{
		{ContainerCode: "CJ-1", Mode: binding.ModeBindOnly, OperatorID: testOperator}, // sin ubicación
		{SlotCode: "UB-A1", Mode: binding.ModeBindOnly, OperatorID: testOperator},     // sin caja
		{SlotCode: "UB-A1", ContainerCode: "CJ-1", Mode: binding.ModeBindOnly},        // sin operario
		{SlotCode: "UB-A1", ContainerCode: "CJ-1", Mode: "otro", OperatorID: testOperator},
	}
	for _, in := range cases {
		_, err := env.engine.FirstBind(ctx, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// Un número de caja que coincide con el código primario de otra caja debe
// fallar cerrado, nunca elegir una de las dos.
func TestFirstBind_CodigoAmbiguo_Falla(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", nil, 0)
	env.addContainer(1, "000002", "000001", entity.BindingUnbound, nil)
	env.addContainer(2, "CJ-ART-01-000002", "000002", entity.BindingUnbound, nil)

	_, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "000002",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrAmbiguousContainerCode)
	assert.Empty(t, env.st.movements)
}

// Escaneos concurrentes de la misma caja contra ubicaciones distintas: debe
// ganar exactamente uno; el resto ve ErrAlreadyBoundElsewhere o termina como
// reintento idempotente, y la ocupación total queda en 1.
func TestFirstBind_Concurrente_SoloUnaGana(t *testing.T) {
	env := newTestEnv()
	const n = 8
	codes := make([]string, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		codes[i] = "UB-" + id
		env.addSlot("s-"+id, codes[i], intPtr(5), 0)
	}
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied, rejected := 0, 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(slotCode string) {
			defer wg.Done()
			res, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
				SlotCode: slotCode, ContainerCode: "CJ-ART-01-000001",
				Mode: binding.ModeBindAndStock, OperatorID: testOperator,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && res.Applied:
				applied++
			case err != nil:
				assert.ErrorIs(t, err, domain.ErrAlreadyBoundElsewhere)
				rejected++
			}
		}(codes[i])
	}
	wg.Wait()

	assert.Equal(t, 1, applied, "exactamente un escaneo debe aplicar la vinculación")
	assert.Equal(t, n-1, rejected)
	assert.Len(t, env.st.movements, 1)

	total := 0
	for _, s := range env.st.slots {
		total += s.Occupancy
	}
	assert.Equal(t, 1, total, "la ocupación total del almacén debe ser 1")
	assertCoherente(t, env.st)
}

// ──────────────────────────────────────────────────────────────────────────────
// SendOut
// ──────────────────────────────────────────────────────────────────────────────

func TestSendOut_AProceso_Exitoso(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(10), 1)
	s1 := "s1"
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingInStock, &s1)

	res, err := env.engine.SendOut(context.Background(), binding.SendOutInput{
		ContainerCode: "CJ-ART-01-000001",
		OutboundType:  binding.OutboundProcessing,
		OperatorID:    testOperator,
	})
	require.NoError(t, err)
	assert.Equal(t, "s1", res.FromSlotID)
	assert.Equal(t, "UB-A1", res.FromSlotCode)
	assert.Equal(t, entity.AreaProcessing, res.ToArea)

	assert.Equal(t, 0, env.st.slots["s1"].Occupancy, "la salida libera el cupo")
	ctr := env.st.containers[1]
	assert.Equal(t, entity.BindingProcessing, ctr.BindingState)
	assert.Nil(t, ctr.SlotID, "en área simbólica la caja no tiene ubicación")

	require.Len(t, env.st.movements, 1)
	rec := env.st.movements[0]
	assert.Equal(t, entity.MovementKindMove, rec.Kind)
	require.NotNil(t, rec.From.SlotID)
	assert.Equal(t, "s1", *rec.From.SlotID)
	assert.Equal(t, entity.AreaProcessing, rec.To.Area)

	_, outbound, _ := env.notifier.counts()
	assert.Equal(t, 1, outbound)
	assertCoherente(t, env.st)
}

func TestSendOut_ADespacho_EstadoShipped(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", nil, 1)
	s1 := "s1"
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingInStock, &s1)

	res, err := env.engine.SendOut(context.Background(), binding.SendOutInput{
		ContainerCode: "CJ-ART-01-000001",
		OutboundType:  binding.OutboundShipping,
		OperatorID:    testOperator,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AreaShipped, res.ToArea)
	assert.Equal(t, entity.BindingShipped, env.st.containers[1].BindingState)
	assertCoherente(t, env.st)
}

func TestSendOut_CajaSinVincular_Falla(t *testing.T) {
	env := newTestEnv()
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	_, err := env.engine.SendOut(context.Background(), binding.SendOutInput{
		ContainerCode: "CJ-ART-01-000001",
		OutboundType:  binding.OutboundProcessing,
		OperatorID:    testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrNotBound)
	assert.Empty(t, env.st.movements)
}

func TestSendOut_CajaPendiente_NoEstaEnStock(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", nil, 0)
	s1 := "s1"
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingPending, &s1)

	_, err := env.engine.SendOut(context.Background(), binding.SendOutInput{
		ContainerCode: "CJ-ART-01-000001",
		OutboundType:  binding.OutboundProcessing,
		OperatorID:    testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrNotInStock,
		"una caja vinculada pero no contada en stock no puede salir")

	// Sin cambios: sigue pendiente y vinculada.
	assert.Equal(t, entity.BindingPending, env.st.containers[1].BindingState)
	require.NotNil(t, env.st.containers[1].SlotID)
	assert.Empty(t, env.st.movements)
}

func TestSendOut_TipoInvalido(t *testing.T) {
	env := newTestEnv()
	_, err := env.engine.SendOut(context.Background(), binding.SendOutInput{
		ContainerCode: "CJ-1", OutboundType: "descarte", OperatorID: testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReturnToStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReturnToStock_DesdeProceso_Exitoso(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s2", "UB-B2", intPtr(5), 0)
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingProcessing, nil)

	res, err := env.engine.ReturnToStock(context.Background(), binding.ReturnInput{
		SlotCode: "UB-B2", ContainerCode: "CJ-ART-01-000001", OperatorID: testOperator,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AreaProcessing, res.FromArea)
	assert.Equal(t, "UB-B2", res.ToSlotCode)
	assert.Equal(t, 1, res.Occupancy)

	ctr := env.st.containers[1]
	assert.Equal(t, entity.BindingInStock, ctr.BindingState,
		"el retorno siempre deja la caja contada en stock")
	require.NotNil(t, ctr.SlotID)
	assert.Equal(t, "s2", *ctr.SlotID)

	require.Len(t, env.st.movements, 1)
	rec := env.st.movements[0]
	assert.Equal(t, entity.MovementKindReturn, rec.Kind)
	assert.Equal(t, entity.AreaProcessing, rec.From.Area)
	require.NotNil(t, rec.To.SlotID)
	assert.Equal(t, "s2", *rec.To.SlotID)

	_, _, returned := env.notifier.counts()
	assert.Equal(t, 1, returned)
	assertCoherente(t, env.st)
}

// Una caja nunca vinculada también puede "retornar": la precondición real es
// no estar vinculada a una ubicación, y el origen queda vacío en la bitácora.
func TestReturnToStock_CajaNuncaVinculada(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", nil, 0)
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	res, err := env.engine.ReturnToStock(context.Background(), binding.ReturnInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001", OperatorID: testOperator,
	})
	require.NoError(t, err)
	assert.Empty(t, res.FromArea, "sin área simbólica previa el origen queda vacío")
	require.Len(t, env.st.movements, 1)
	assert.True(t, env.st.movements[0].From.IsEmpty())
	assertCoherente(t, env.st)
}

func TestReturnToStock_CajaTodaviaVinculada_Falla(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", nil, 1)
	env.addSlot("s2", "UB-B2", nil, 0)
	s1 := "s1"
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingInStock, &s1)

	_, err := env.engine.ReturnToStock(context.Background(), binding.ReturnInput{
		SlotCode: "UB-B2", ContainerCode: "CJ-ART-01-000001", OperatorID: testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrNotInProcessingArea,
		"una caja vinculada a una ubicación real no puede retornar")
	assert.Equal(t, 1, env.st.slots["s1"].Occupancy)
	assert.Equal(t, 0, env.st.slots["s2"].Occupancy)
	assert.Empty(t, env.st.movements)
}

func TestReturnToStock_CapacidadExcedida_Rollback(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(1), 1) // llena
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingShipped, nil)

	_, err := env.engine.ReturnToStock(context.Background(), binding.ReturnInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001", OperatorID: testOperator,
	})
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded,
		"el retorno también respeta la capacidad de la ubicación")

	assert.Equal(t, entity.BindingShipped, env.st.containers[1].BindingState)
	assert.Equal(t, 1, env.st.slots["s1"].Occupancy)
	assert.Empty(t, env.st.movements)

	_, _, returned := env.notifier.counts()
	assert.Zero(t, returned)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo
// ──────────────────────────────────────────────────────────────────────────────

// Vincular, sacar a proceso y retornar a otra ubicación: tres entradas de
// bitácora en orden y el invariante de ocupación intacto en cada paso.
func TestCicloCompleto_VincularSalirRetornar(t *testing.T) {
	env := newTestEnv()
	env.addSlot("s1", "UB-A1", intPtr(5), 0)
	env.addSlot("s2", "UB-B2", intPtr(5), 0)
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)
	ctx := context.Background()

	_, err := env.engine.FirstBind(ctx, binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	})
	require.NoError(t, err)
	assertCoherente(t, env.st)

	_, err = env.engine.SendOut(ctx, binding.SendOutInput{
		ContainerCode: "CJ-ART-01-000001",
		OutboundType:  binding.OutboundProcessing,
		OperatorID:    testOperator,
	})
	require.NoError(t, err)
	assertCoherente(t, env.st)

	res, err := env.engine.ReturnToStock(ctx, binding.ReturnInput{
		SlotCode: "UB-B2", ContainerCode: "CJ-ART-01-000001", OperatorID: testOperator,
	})
	require.NoError(t, err)
	assertCoherente(t, env.st)

	assert.Equal(t, "UB-B2", res.ToSlotCode)
	assert.Equal(t, 0, env.st.slots["s1"].Occupancy)
	assert.Equal(t, 1, env.st.slots["s2"].Occupancy)

	require.Len(t, env.st.movements, 3)
	kinds := []string{
		env.st.movements[0].Kind,
		env.st.movements[1].Kind,
		env.st.movements[2].Kind,
	}
	assert.Equal(t, []string{
		entity.MovementKindAssign,
		entity.MovementKindMove,
		entity.MovementKindReturn,
	}, kinds, "la bitácora debe contar la historia completa en orden")

	bound, outbound, returned := env.notifier.counts()
	assert.Equal(t, 1, bound)
	assert.Equal(t, 1, outbound)
	assert.Equal(t, 1, returned)
}

// El nombre de artículo es best-effort: sin catálogo la operación igual
// procede, con el campo denormalizado vacío.
func TestFirstBind_SinArticuloEnCatalogo_NombreVacio(t *testing.T) {
	env := newTestEnv()
	delete(env.st.items, testItemCode)
	env.addSlot("s1", "UB-A1", nil, 0)
	env.addContainer(1, "CJ-ART-01-000001", "000001", entity.BindingUnbound, nil)

	_, err := env.engine.FirstBind(context.Background(), binding.FirstBindInput{
		SlotCode: "UB-A1", ContainerCode: "CJ-ART-01-000001",
		Mode: binding.ModeBindAndStock, OperatorID: testOperator,
	})
	require.NoError(t, err)
	require.Len(t, env.st.movements, 1)
	assert.Empty(t, env.st.movements[0].ItemName)
}
