package stock_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appstock "github.com/essaghir/stock-ledger-api/internal/application/stock"
	"github.com/essaghir/stock-ledger-api/internal/domain"
	"github.com/essaghir/stock-ledger-api/internal/domain/entity"
	"github.com/essaghir/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: emulan el comportamiento transaccional de postgres.TxRunner
// (mutex = bloqueo de fila, snapshot/restore = rollback).
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu     sync.Mutex // serializa transacciones (equivale al bloqueo de fila)
	dataMu sync.Mutex // protege los mapas frente a lecturas fuera de tx
	ups    map[string]*entity.UserProduct
	lines  map[string]*entity.ProductLine
	movs   []*entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{
		ups:   map[string]*entity.UserProduct{},
		lines: map[string]*entity.ProductLine{},
	}
}

type memUserProductRepo struct{ s *memStore }

func (r *memUserProductRepo) Create(up *entity.UserProduct) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	r.s.ups[up.ID] = up
	return nil
}
func (r *memUserProductRepo) GetByID(id string) (*entity.UserProduct, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	return r.s.ups[id], nil
}
func (r *memUserProductRepo) ListByUser(string, int, int) ([]*entity.UserProduct, error) {
	return nil, nil
}
func (r *memUserProductRepo) Delete(id string) error { delete(r.s.ups, id); return nil }

type memLineRepo struct{ s *memStore }

func (r *memLineRepo) Create(line *entity.ProductLine) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	r.s.lines[line.ID] = line
	return nil
}
func (r *memLineRepo) GetByID(id string) (*entity.ProductLine, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	line, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *line
	return &cp, nil
}
func (r *memLineRepo) GetForUpdate(id string) (*entity.ProductLine, error) { return r.GetByID(id) }
func (r *memLineRepo) UpdateCurrentStock(id string, newStock decimal.Decimal) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	line, ok := r.s.lines[id]
	if !ok {
		return domain.ErrNotFound
	}
	line.CurrentStock = newStock
	return nil
}
func (r *memLineRepo) Update(line *entity.ProductLine) error { r.s.lines[line.ID] = line; return nil }
func (r *memLineRepo) ListByUserProduct(string) ([]*entity.ProductLine, error) { return nil, nil }
func (r *memLineRepo) ListByUser(string) ([]*entity.ProductLine, error)        { return nil, nil }
func (r *memLineRepo) Delete(id string) error                                  { delete(r.s.lines, id); return nil }
func (r *memLineRepo) DeleteByUserProduct(string) error                        { return nil }

type memMovementRepo struct {
	s       *memStore
	failing bool // inyecta fallo de persistencia para probar rollback
}

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	if r.failing {
		return errors.New("fallo de persistencia simulado")
	}
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	r.s.movs = append(r.s.movs, m)
	return nil
}
func (r *memMovementRepo) GetByID(string) (*entity.StockMovement, error) { return nil, nil }
func (r *memMovementRepo) ListByUserInRange(string, time.Time, time.Time) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *memMovementRepo) ListByProductLine(string, int, int) ([]*entity.StockMovement, error) {
	return nil, nil
}
func (r *memMovementRepo) DeleteByProductLine(string) error { return nil }
func (r *memMovementRepo) DeleteByUserProduct(string) error { return nil }

// memTxRunner serializa transacciones con un mutex y deshace los cambios si la
// función devuelve error, igual que haría un ROLLBACK.
type memTxRunner struct {
	s           *memStore
	failWrites  bool
	commitCount int
}

func (t *memTxRunner) snapshot() (map[string]entity.ProductLine, int) {
	t.s.dataMu.Lock()
	defer t.s.dataMu.Unlock()
	lines := make(map[string]entity.ProductLine, len(t.s.lines))
	for id, l := range t.s.lines {
		lines[id] = *l
	}
	return lines, len(t.s.movs)
}

func (t *memTxRunner) restore(lines map[string]entity.ProductLine, movLen int) {
	t.s.dataMu.Lock()
	defer t.s.dataMu.Unlock()
	for id := range t.s.lines {
		if cp, ok := lines[id]; ok {
			v := cp
			t.s.lines[id] = &v
		}
	}
	t.s.movs = t.s.movs[:movLen]
}

func (t *memTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lineRepo repository.ProductLineRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	lines, movLen := t.snapshot()
	err := fn(&memMovementRepo{s: t.s, failing: t.failWrites}, &memLineRepo{s: t.s})
	if err != nil {
		t.restore(lines, movLen)
		return err
	}
	t.commitCount++
	return nil
}

func (t *memTxRunner) RunLifecycle(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	lineRepo repository.ProductLineRepository,
	upRepo repository.UserProductRepository,
) error) error {
	return t.Run(ctx, func(movRepo repository.StockMovementRepository, lineRepo repository.ProductLineRepository) error {
		return fn(movRepo, lineRepo, &memUserProductRepo{s: t.s})
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID = "user-1"
	testLotID  = "lot-1"
	testLineID = "line-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newFixture(initial string) (*appstock.ReconcileUseCase, *memStore, *memTxRunner) {
	s := newMemStore()
	s.ups[testLotID] = &entity.UserProduct{ID: testLotID, UserID: testUserID, Name: "Ramadan 2024"}
	s.lines[testLineID] = &entity.ProductLine{
		ID:            testLineID,
		UserProductID: testLotID,
		Name:          "Riz",
		CategoryKey:   "cereales",
		CategoryLabel: "Céréales (حبوب)",
		UnitPrice:     d("12.50"),
		Unite:         "kg",
		InitialStock:  d(initial),
		CurrentStock:  d(initial),
		MinStock:      d("20"),
	}
	runner := &memTxRunner{s: s}
	uc := appstock.NewReconcileUseCase(runner, &memLineRepo{s: s}, &memUserProductRepo{s: s})
	return uc, s, runner
}

func outInput(qty, reason string) appstock.MovementInput {
	return appstock.MovementInput{
		UserID:        testUserID,
		ProductLineID: testLineID,
		UserProductID: testLotID,
		Type:          entity.MovementTypeOUT,
		Quantity:      d(qty),
		Reason:        reason,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario del enunciado: 100 → OUT 30 → OUT 60 → OUT 15 (rechazado)
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EscenarioSalidas(t *testing.T) {
	uc, s, _ := newFixture("100")
	ctx := context.Background()

	mov, err := uc.ApplyMovement(ctx, outInput("30", "Préparation-des-repas"))
	require.NoError(t, err)
	assert.True(t, d("100").Equal(mov.PreviousStock))
	assert.True(t, d("70").Equal(mov.NewStock))
	assert.True(t, d("70").Equal(s.lines[testLineID].CurrentStock))

	mov, err = uc.ApplyMovement(ctx, outInput("60", "Préparation-des-repas"))
	require.NoError(t, err)
	assert.True(t, d("10").Equal(mov.NewStock))
	assert.True(t, s.lines[testLineID].IsLowStock(), "10 < minStock=20 debe marcar stock bajo")

	// Tercera salida dejaría -5: se rechaza y el stock no cambia.
	_, err = uc.ApplyMovement(ctx, outInput("15", "Préparation-des-repas"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, d("10").Equal(s.lines[testLineID].CurrentStock))
	assert.Len(t, s.movs, 2, "la salida rechazada no debe dejar movimiento")
}

func TestApplyMovement_Validaciones(t *testing.T) {
	uc, _, _ := newFixture("100")
	ctx := context.Background()

	_, err := uc.ApplyMovement(ctx, appstock.MovementInput{
		UserID: testUserID, ProductLineID: testLineID, UserProductID: testLotID,
		Type: "TRANSFER", Quantity: d("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	in := outInput("0", "")
	_, err = uc.ApplyMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	in = outInput("5", "")
	in.UserProductID = "lot-otro"
	_, err = uc.ApplyMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "lote inexistente")

	in = outInput("5", "")
	in.ProductLineID = "line-otra"
	_, err = uc.ApplyMovement(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNotFound, "línea inexistente")
}

func TestApplyMovement_LoteAjeno(t *testing.T) {
	uc, s, _ := newFixture("100")
	s.ups["lot-2"] = &entity.UserProduct{ID: "lot-2", UserID: testUserID, Name: "Autre lot"}

	in := outInput("5", "")
	in.UserProductID = "lot-2" // lote válido pero la línea pertenece a lot-1
	_, err := uc.ApplyMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrConsistency)
}

func TestApplyMovement_ActorSinPermiso(t *testing.T) {
	uc, _, _ := newFixture("100")
	in := outInput("5", "")
	in.UserID = "intruso"
	_, err := uc.ApplyMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Si falla la escritura del movimiento, el stock actualizado también se revierte.
func TestApplyMovement_RollbackAnteFalloDePersistencia(t *testing.T) {
	uc, s, runner := newFixture("100")
	runner.failWrites = true

	_, err := uc.ApplyMovement(context.Background(), outInput("30", ""))
	require.Error(t, err)
	assert.True(t, d("100").Equal(s.lines[testLineID].CurrentStock),
		"sin movimiento persistido el stock no puede cambiar")
	assert.Empty(t, s.movs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedad: currentStock = initial + Σ(IN) − Σ(OUT) tras cada paso
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_InvarianteDelLedger(t *testing.T) {
	uc, s, _ := newFixture("500")
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	expected := d("500")
	for i := 0; i < 200; i++ {
		qty := decimal.NewFromInt(int64(rng.Intn(40) + 1))
		movType := entity.MovementTypeIN
		if rng.Intn(2) == 0 {
			movType = entity.MovementTypeOUT
		}
		in := appstock.MovementInput{
			UserID: testUserID, ProductLineID: testLineID, UserProductID: testLotID,
			Type: movType, Quantity: qty, Reason: "aléatoire",
		}
		_, err := uc.ApplyMovement(ctx, in)
		if movType == entity.MovementTypeOUT && qty.GreaterThan(expected) {
			require.ErrorIs(t, err, domain.ErrInsufficientStock, "paso %d", i)
		} else {
			require.NoError(t, err, "paso %d", i)
			if movType == entity.MovementTypeIN {
				expected = expected.Add(qty)
			} else {
				expected = expected.Sub(qty)
			}
		}

		// Reconstruir desde el ledger y comparar con la proyección cacheada.
		fromLedger := d("500")
		for _, m := range s.movs {
			if m.Type == entity.MovementTypeIN {
				fromLedger = fromLedger.Add(m.Quantity)
			} else {
				fromLedger = fromLedger.Sub(m.Quantity)
			}
		}
		require.True(t, expected.Equal(s.lines[testLineID].CurrentStock), "paso %d", i)
		require.True(t, fromLedger.Equal(s.lines[testLineID].CurrentStock), "paso %d", i)
		require.False(t, s.lines[testLineID].CurrentStock.IsNegative(), "paso %d", i)
	}
}

// Dos salidas concurrentes válidas por separado pero no juntas: exactamente una
// debe ganar (sin doble gasto de stock).
func TestApplyMovement_SalidasConcurrentes(t *testing.T) {
	uc, s, _ := newFixture("100")
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.ApplyMovement(ctx, outInput("60", "concurrent"))
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una salida debe aplicarse")
	assert.True(t, d("40").Equal(s.lines[testLineID].CurrentStock))
}

// ──────────────────────────────────────────────────────────────────────────────
// SetAbsoluteStock
// ──────────────────────────────────────────────────────────────────────────────

func TestSetAbsoluteStock_DeltaComoMovimiento(t *testing.T) {
	uc, s, _ := newFixture("100")
	ctx := context.Background()

	mov, err := uc.SetAbsoluteStock(ctx, testLineID, d("130"), testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIN, mov.Type)
	assert.True(t, d("30").Equal(mov.Quantity))
	assert.Equal(t, entity.ReasonStockAdjustment, mov.Reason)
	assert.True(t, d("130").Equal(s.lines[testLineID].CurrentStock))

	mov, err = uc.SetAbsoluteStock(ctx, testLineID, d("90"), testUserID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, mov.Type)
	assert.True(t, d("40").Equal(mov.Quantity))
	assert.True(t, d("90").Equal(s.lines[testLineID].CurrentStock))
}

func TestSetAbsoluteStock_SinDelta_NoEscribe(t *testing.T) {
	uc, s, _ := newFixture("100")

	mov, err := uc.SetAbsoluteStock(context.Background(), testLineID, d("100"), testUserID)
	require.NoError(t, err)
	assert.Nil(t, mov)
	assert.Empty(t, s.movs)
}

func TestSetAbsoluteStock_ObjetivoNegativo(t *testing.T) {
	uc, _, _ := newFixture("100")
	_, err := uc.SetAbsoluteStock(context.Background(), testLineID, d("-10"), testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
