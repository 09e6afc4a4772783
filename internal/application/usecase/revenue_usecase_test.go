package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supplychain-pro/internal/application/dto"
	"github.com/tu-usuario/supplychain-pro/internal/application/usecase"
	"github.com/tu-usuario/supplychain-pro/internal/domain"
	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

func d(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func dp(v float64) *decimal.Decimal {
	x := decimal.NewFromFloat(v)
	return &x
}

func sp(s string) *string { return &s }

type revenueFixture struct {
	uc        *usecase.RevenueUseCase
	ruleRepo  *fakeRuleRepo
	txRepo    *fakeTxRepo
	auditRepo *fakeAuditRepo
	siteRepo  *fakeSiteRepo
}

func newRevenueFixture() *revenueFixture {
	productRepo := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {
			ID:            "prod-1",
			Name:          "Kit diagnóstico",
			CostQty:       d(1),
			CostUnitPrice: d(1000),
			SupplyPrice:   d(1800),
			SalePrice:     d(2500),
			Deposit:       decimal.Zero,
		},
	}}
	siteRepo := &fakeSiteRepo{
		sites: map[string]*entity.Site{
			"site-1": {ID: "site-1", Name: "Clínica Central", Type: "clinic"},
		},
		overrides: map[string]*entity.SiteProductOverride{
			"site-1/prod-1": {SiteID: "site-1", ProductID: "prod-1", SalePriceOverride: dp(3000)},
		},
	}
	ruleRepo := newFakeRuleRepo()
	txRepo := &fakeTxRepo{}
	auditRepo := &fakeAuditRepo{}
	runner := &fakeTxRunner{ruleRepo: ruleRepo, txRepo: txRepo, auditRepo: auditRepo}

	return &revenueFixture{
		uc:        usecase.NewRevenueUseCase(productRepo, siteRepo, ruleRepo, txRepo, runner, testLogger()),
		ruleRepo:  ruleRepo,
		txRepo:    txRepo,
		auditRepo: auditRepo,
		siteRepo:  siteRepo,
	}
}

func activeRule(id string, productID, siteType *string, dist entity.DistributionMap) *entity.DistributionRule {
	return &entity.DistributionRule{
		ID:           id,
		RuleName:     "regla " + id,
		ProductID:    productID,
		SiteType:     siteType,
		RegionType:   entity.RegionTypeAll,
		Distribution: dist,
		AppliesFrom:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

// TestSimulate_SinRegla cálculo puro sin reglas persistidas: desglose
// correcto y distribución vacía.
func TestSimulate_SinRegla(t *testing.T) {
	f := newRevenueFixture()

	out, err := f.uc.Simulate(context.Background(), dto.SimulateRevenueRequest{
		ProductID: "prod-1",
		Quantity:  d(10),
	})
	require.NoError(t, err)

	assert.True(t, d(25000).Equal(out.Calculation.TotalRevenue))
	assert.True(t, d(10000).Equal(out.Calculation.TotalCost))
	assert.True(t, d(15000).Equal(out.Calculation.GrossProfit))
	assert.True(t, d(60).Equal(out.Calculation.ProfitMarginPercent))
	assert.Nil(t, out.Distribution.Rule)
	assert.Empty(t, out.Distribution.Breakdown)
	assert.Empty(t, f.txRepo.transactions, "simular no debe persistir nada")
}

// TestSimulate_ConSedeYRegla el override de la sede aplica al precio y la
// regla se resuelve con el tipo de sede; porcentajes en escala 0–100.
func TestSimulate_ConSedeYRegla(t *testing.T) {
	f := newRevenueFixture()
	dist := entity.DistributionMap{"hq": d(0.6), "site": d(0.4)}
	require.NoError(t, f.ruleRepo.Create(context.Background(), activeRule("r-clinic", sp("prod-1"), sp("clinic"), dist)))

	out, err := f.uc.Simulate(context.Background(), dto.SimulateRevenueRequest{
		ProductID: "prod-1",
		Quantity:  d(10),
		SiteID:    sp("site-1"),
	})
	require.NoError(t, err)

	// Override de sede: 3000 × 10 = 30000; margen 30000 − 10000 = 20000.
	assert.True(t, d(30000).Equal(out.Calculation.TotalRevenue))
	assert.True(t, d(20000).Equal(out.Calculation.GrossProfit))

	require.NotNil(t, out.Distribution.Rule)
	assert.Equal(t, "r-clinic", out.Distribution.Rule.ID)
	require.Contains(t, out.Distribution.Breakdown, "hq")
	assert.True(t, d(60).Equal(out.Distribution.Breakdown["hq"].Percentage), "porcentaje en escala 0–100")
	assert.True(t, d(12000).Equal(out.Distribution.Breakdown["hq"].Amount))
	assert.True(t, d(8000).Equal(out.Distribution.Breakdown["site"].Amount))
}

// TestSimulate_OverrideExplicitoGanaAlDeSede el override de la petición
// prevalece sobre el de la sede.
func TestSimulate_OverrideExplicitoGanaAlDeSede(t *testing.T) {
	f := newRevenueFixture()

	out, err := f.uc.Simulate(context.Background(), dto.SimulateRevenueRequest{
		ProductID: "prod-1",
		Quantity:  d(10),
		SiteID:    sp("site-1"),
		Overrides: &dto.PriceOverridesRequest{SalePriceOverride: dp(3200)},
	})
	require.NoError(t, err)
	assert.True(t, d(32000).Equal(out.Calculation.TotalRevenue))
}

// TestSimulate_ProductoInexistente 404 sin efecto parcial.
func TestSimulate_ProductoInexistente(t *testing.T) {
	f := newRevenueFixture()
	_, err := f.uc.Simulate(context.Background(), dto.SimulateRevenueRequest{ProductID: "nope", Quantity: d(1)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// TestSimulate_SedeInexistente 404 cuando la sede indicada no existe.
func TestSimulate_SedeInexistente(t *testing.T) {
	f := newRevenueFixture()
	_, err := f.uc.Simulate(context.Background(), dto.SimulateRevenueRequest{
		ProductID: "prod-1", Quantity: d(1), SiteID: sp("nope"),
	})
	assert.ErrorIs(t, err, domain.ErrSiteNotFound)
}

// TestSimulate_CantidadInvalida cantidad cero o negativa es error de entrada.
func TestSimulate_CantidadInvalida(t *testing.T) {
	f := newRevenueFixture()
	_, err := f.uc.Simulate(context.Background(), dto.SimulateRevenueRequest{ProductID: "prod-1", Quantity: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Simulate(context.Background(), dto.SimulateRevenueRequest{ProductID: "prod-1", Quantity: d(-3)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// TestSimulate_ResolucionIdempotente dos llamadas idénticas sin escrituras
// intermedias resuelven la misma regla.
func TestSimulate_ResolucionIdempotente(t *testing.T) {
	f := newRevenueFixture()
	dist := entity.DistributionMap{"hq": d(1)}
	require.NoError(t, f.ruleRepo.Create(context.Background(), activeRule("r-gen", nil, nil, dist)))

	req := dto.SimulateRevenueRequest{ProductID: "prod-1", Quantity: d(2)}
	first, err := f.uc.Simulate(context.Background(), req)
	require.NoError(t, err)
	second, err := f.uc.Simulate(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, first.Distribution.Rule)
	require.NotNil(t, second.Distribution.Rule)
	assert.Equal(t, first.Distribution.Rule.ID, second.Distribution.Rule.ID)
}

// TestRecord_ConRegla el asiento recalcula totales, serializa el desglose y
// deja una entrada de auditoría en la misma transacción.
func TestRecord_ConRegla(t *testing.T) {
	f := newRevenueFixture()
	dist := entity.DistributionMap{"hq": d(0.5), "site": d(0.5)}
	rule := activeRule("r-1", nil, nil, dist)
	require.NoError(t, f.ruleRepo.Create(context.Background(), rule))

	out, err := f.uc.Record(context.Background(), "user-9", dto.RecordTransactionRequest{
		ProductID:          "prod-1",
		Quantity:           d(10),
		UnitSalePrice:      d(2500),
		UnitCost:           d(1000),
		DistributionRuleID: sp("r-1"),
		Notes:              "venta de prueba",
	})
	require.NoError(t, err)

	assert.True(t, d(25000).Equal(out.TotalRevenue))
	assert.True(t, d(10000).Equal(out.TotalCost))
	assert.True(t, d(15000).Equal(out.GrossProfit))
	require.Contains(t, out.DistributionDetails, "hq")
	assert.True(t, d(7500).Equal(out.DistributionDetails["hq"].Amount))

	require.Len(t, f.txRepo.transactions, 1)
	stored := f.txRepo.transactions[0]
	assert.Equal(t, out.TransactionID, stored.ID)
	assert.Equal(t, entity.TransactionTypeSale, stored.TransactionType, "tipo por defecto: sale")
	assert.Equal(t, "user-9", stored.CreatedBy)
	require.Contains(t, stored.DistributionDetails, "site")
	assert.True(t, d(0.5).Equal(stored.DistributionDetails["site"].Percentage), "en el libro se guardan fracciones 0–1")

	require.Len(t, f.auditRepo.entries, 1)
	assert.Equal(t, entity.AuditActionTransactionRecorded, f.auditRepo.entries[0].Action)
	assert.Equal(t, "user-9", f.auditRepo.entries[0].ActorID)
	assert.Equal(t, stored.ID, f.auditRepo.entries[0].EntityID)
}

// TestRecord_ReglaInexistente 404 y ningún asiento escrito.
func TestRecord_ReglaInexistente(t *testing.T) {
	f := newRevenueFixture()
	_, err := f.uc.Record(context.Background(), "user-9", dto.RecordTransactionRequest{
		ProductID:          "prod-1",
		Quantity:           d(1),
		UnitSalePrice:      d(100),
		UnitCost:           d(50),
		DistributionRuleID: sp("nope"),
	})
	assert.ErrorIs(t, err, domain.ErrRuleNotFound)
	assert.Empty(t, f.txRepo.transactions)
	assert.Empty(t, f.auditRepo.entries)
}

// TestRecord_DuplicadosPermitidos el registro no es idempotente: dos
// llamadas iguales producen dos asientos.
func TestRecord_DuplicadosPermitidos(t *testing.T) {
	f := newRevenueFixture()
	req := dto.RecordTransactionRequest{
		ProductID: "prod-1", Quantity: d(1), UnitSalePrice: d(100), UnitCost: d(40),
	}
	first, err := f.uc.Record(context.Background(), "user-9", req)
	require.NoError(t, err)
	second, err := f.uc.Record(context.Background(), "user-9", req)
	require.NoError(t, err)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
	assert.Len(t, f.txRepo.transactions, 2)
}

// TestList_FiltraPorProducto listado filtrado por producto.
func TestList_FiltraPorProducto(t *testing.T) {
	f := newRevenueFixture()
	_, err := f.uc.Record(context.Background(), "user-9", dto.RecordTransactionRequest{
		ProductID: "prod-1", Quantity: d(1), UnitSalePrice: d(100), UnitCost: d(40),
	})
	require.NoError(t, err)

	out, err := f.uc.List(context.Background(), dto.TransactionListRequest{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Len(t, out.Transactions, 1)

	out, err = f.uc.List(context.Background(), dto.TransactionListRequest{ProductID: "otro"})
	require.NoError(t, err)
	assert.Empty(t, out.Transactions)
}

// TestSummary_BucketInvalido bucket fuera de day|week|month se rechaza.
func TestSummary_BucketInvalido(t *testing.T) {
	f := newRevenueFixture()
	_, err := f.uc.Summary(context.Background(), dto.SummaryRequest{Bucket: "year"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
