package indicators_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diarco-data/compras-monitor/internal/application/indicators"
	"github.com/diarco-data/compras-monitor/internal/domain"
	"github.com/diarco-data/compras-monitor/internal/domain/adoption"
	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
	"github.com/diarco-data/compras-monitor/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios falsos
// ──────────────────────────────────────────────────────────────────────────────

type fakeSourceRepo struct {
	rows []entity.SourceOrder
	err  error
}

func (f *fakeSourceRepo) ListOrders(ctx context.Context, _ repository.OrderFilter) ([]entity.SourceOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.rows, f.err
}

type fakeERPRepo struct {
	rows []entity.ERPOrder
	err  error
}

func (f *fakeERPRepo) ListOrders(ctx context.Context, _ repository.OrderFilter) ([]entity.ERPOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.rows, f.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error", Service: "test"})
}

func testRange(t *testing.T) repository.DateRange {
	t.Helper()
	return repository.DateRange{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func srcOrder(id string, prefix, suffix string, day int) entity.SourceOrder {
	return entity.SourceOrder{
		OrderID:      id,
		BuyerCode:    7,
		SupplierCode: 40,
		Quantity:     decimal.NewFromInt(10),
		CreatedAt:    time.Date(2025, 3, day, 12, 0, 0, 0, time.UTC),
		LinkPrefix:   prefix,
		LinkSuffix:   suffix,
	}
}

func erpOrder(id string, prefix, suffix string, day int) entity.ERPOrder {
	return entity.ERPOrder{
		OrderID:      id,
		Prefix:       prefix,
		Suffix:       suffix,
		BuyerCode:    7,
		SupplierCode: 40,
		Quantity:     decimal.NewFromInt(10),
		CreatedAt:    time.Date(2025, 3, day, 15, 0, 0, 0, time.UTC),
	}
}

func newReportUC(src *fakeSourceRepo, dst *fakeERPRepo) *indicators.ReportUseCase {
	return indicators.NewReportUseCase(src, dst, time.UTC, time.Second, testLogger())
}

// ──────────────────────────────────────────────────────────────────────────────
// AdoptionReport
// ──────────────────────────────────────────────────────────────────────────────

func TestAdoptionReport_CruceCompleto(t *testing.T) {
	src := &fakeSourceRepo{rows: []entity.SourceOrder{
		srcOrder("CI-1", "100", "5", 10), // con par en SGM
		srcOrder("CI-2", "200", "9", 11), // huérfana de origen
		srcOrder("CI-3", "0", "0", 12),   // sin vincular todavía
		srcOrder("CI-4", "abc", "1", 13), // malformada
	}}
	dst := &fakeERPRepo{rows: []entity.ERPOrder{
		erpOrder("OC-900", "100", "5", 12), // par de CI-1
		erpOrder("OC-901", "777", "3", 14), // huérfana de destino
		erpOrder("OC-902", "0", "4", 15),   // no originada por CI
	}}

	rep, err := newReportUC(src, dst).AdoptionReport(context.Background(), indicators.AdoptionQuery{
		Filter:      repository.OrderFilter{Range: testRange(t)},
		Denominator: adoption.DestinationActivity,
	})
	require.NoError(t, err)

	assert.True(t, rep.Reconciled)
	assert.True(t, rep.Source.Available)
	assert.True(t, rep.Destination.Available)
	assert.Equal(t, 4, rep.Source.RawCount)
	assert.Equal(t, 3, rep.Destination.RawCount)

	assert.Equal(t, 1, rep.MatchedCount, "100-5 debe cruzar")
	assert.Equal(t, 1, rep.SourceOnlyCount, "200-9 solo existe en Connexa")
	assert.Equal(t, 1, rep.DestinationOnlyCount, "777-3 solo existe en SGM")
	assert.Equal(t, 1, rep.UnlinkedSource, "el centinela cero no es huérfano")
	assert.Equal(t, 1, rep.SkippedMalformedSource)
	assert.Equal(t, 0, rep.SkippedMalformedDestination)

	assert.NotEmpty(t, rep.ReportID)
	assert.Equal(t, "2025-03-01", rep.From)
	assert.Equal(t, "2025-03-31", rep.To)

	require.Len(t, rep.TimeSeries, 1)
	bucket := rep.TimeSeries[0]
	assert.Equal(t, "2025-03", bucket.Bucket)
	assert.Equal(t, "2025-03-01", bucket.BucketStart)
	require.True(t, bucket.Ratio.Valid)
	// matched / (matched + solo destino) = 1/2
	assert.True(t, bucket.Ratio.Decimal.Equal(decimal.RequireFromString("0.5")),
		"ratio esperado 0.5, vino %s", bucket.Ratio.Decimal)
}

func TestAdoptionReport_LadoCaidoDegradaSinInventarHuerfanos(t *testing.T) {
	src := &fakeSourceRepo{rows: []entity.SourceOrder{srcOrder("CI-1", "100", "5", 10)}}
	dst := &fakeERPRepo{err: errors.New("login error: mssql caído")}

	rep, err := newReportUC(src, dst).AdoptionReport(context.Background(), indicators.AdoptionQuery{
		Filter: repository.OrderFilter{Range: testRange(t)},
	})
	require.NoError(t, err, "un lado caído no es error del reporte")

	assert.False(t, rep.Reconciled)
	assert.True(t, rep.Source.Available)
	assert.Equal(t, 1, rep.Source.RawCount)
	assert.False(t, rep.Destination.Available)
	assert.Contains(t, rep.Destination.Reason, domain.ErrDestinationUnavailable.Error())

	// Nada de conteos fabricados con el lado ausente.
	assert.Zero(t, rep.MatchedCount)
	assert.Zero(t, rep.SourceOnlyCount)
	assert.Zero(t, rep.DestinationOnlyCount)
	assert.Empty(t, rep.TimeSeries)
}

func TestAdoptionReport_DuplicadoDeIdentificadorNativoAborta(t *testing.T) {
	src := &fakeSourceRepo{rows: []entity.SourceOrder{
		srcOrder("CI-1", "100", "5", 10),
		srcOrder("CI-1", "200", "9", 11), // mismo NIP dos veces: contrato roto
	}}
	dst := &fakeERPRepo{}

	_, err := newReportUC(src, dst).AdoptionReport(context.Background(), indicators.AdoptionQuery{
		Filter: repository.OrderFilter{Range: testRange(t)},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateOrderID)
}

func TestAdoptionReport_DuplicadosDeClaveSeInforman(t *testing.T) {
	src := &fakeSourceRepo{rows: []entity.SourceOrder{
		srcOrder("CI-1", "100", "5", 10),
	}}
	dst := &fakeERPRepo{rows: []entity.ERPOrder{
		erpOrder("OC-900", "100", "5", 12),
		erpOrder("OC-901", "100", "5", 14), // misma clave, otra OC
	}}

	rep, err := newReportUC(src, dst).AdoptionReport(context.Background(), indicators.AdoptionQuery{
		Filter: repository.OrderFilter{Range: testRange(t)},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.MatchedCount, "la clave duplicada cruza una sola vez")
	require.Len(t, rep.DestinationDuplicates, 1)
	assert.Equal(t, "100-5", rep.DestinationDuplicates[0].Key)
	assert.Equal(t, []string{"OC-900", "OC-901"}, rep.DestinationDuplicates[0].OrderIDs)
}

func TestAdoptionReport_RangoInvalido(t *testing.T) {
	uc := newReportUC(&fakeSourceRepo{}, &fakeERPRepo{})
	r := repository.DateRange{
		From: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := uc.AdoptionReport(context.Background(), indicators.AdoptionQuery{
		Filter: repository.OrderFilter{Range: r},
	})
	require.ErrorIs(t, err, domain.ErrInvalidRange)
}

// ──────────────────────────────────────────────────────────────────────────────
// MonthlyFunnel
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthlyFunnel_ConteosPorLado(t *testing.T) {
	src := &fakeSourceRepo{rows: []entity.SourceOrder{
		srcOrder("CI-1", "100", "5", 10),
		srcOrder("CI-2", "0", "0", 11),
	}}
	dst := &fakeERPRepo{rows: []entity.ERPOrder{
		erpOrder("OC-900", "100", "5", 12),
		erpOrder("OC-901", "100", "5", 14), // clave repetida: cuenta como OC, no como clave nueva
		erpOrder("OC-902", "0", "7", 15),   // no vinculada: OC sí, clave no
	}}

	rep, err := newReportUC(src, dst).MonthlyFunnel(context.Background(),
		repository.OrderFilter{Range: testRange(t)})
	require.NoError(t, err)

	require.Len(t, rep.Months, 1)
	m := rep.Months[0]
	assert.Equal(t, "2025-03", m.Month)
	assert.Equal(t, 2, m.SourceOrders)
	assert.True(t, m.SourceQuantity.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 3, m.DestinationOrders)
	assert.Equal(t, 1, m.DestinationLinkedKeys, "solo 100-5 es clave vinculada distinta")
	assert.True(t, m.DestinationQuantity.Equal(decimal.NewFromInt(30)))

	// Las tres cabeceras comparten proveedor y una parte llegó vía Connexa.
	assert.Equal(t, 1, m.DestinationSuppliers)
	assert.Equal(t, 1, m.DestinationLinkedSuppliers)
	require.True(t, m.SupplierShare.Valid)
	assert.True(t, m.SupplierShare.Decimal.Equal(decimal.NewFromInt(1)))
}

func TestOrphans_DetalleDeAmbosLados(t *testing.T) {
	src := &fakeSourceRepo{rows: []entity.SourceOrder{
		srcOrder("CI-1", "100", "5", 10),
		srcOrder("CI-2", "200", "9", 11),
	}}
	dst := &fakeERPRepo{rows: []entity.ERPOrder{
		erpOrder("OC-900", "100", "5", 12),
		erpOrder("OC-901", "777", "3", 14),
	}}

	rep, err := newReportUC(src, dst).Orphans(context.Background(),
		repository.OrderFilter{Range: testRange(t)})
	require.NoError(t, err)

	require.Len(t, rep.SourceOnly, 1)
	assert.Equal(t, "CI-2", rep.SourceOnly[0].OrderID)
	assert.Equal(t, "200-9", rep.SourceOnly[0].Key)

	require.Len(t, rep.DestinationOnly, 1)
	assert.Equal(t, "OC-901", rep.DestinationOnly[0].OrderID)
	assert.Equal(t, "777-3", rep.DestinationOnly[0].Key)
}

func TestOrphans_LadoCaidoEsError(t *testing.T) {
	src := &fakeSourceRepo{err: errors.New("pg down")}
	dst := &fakeERPRepo{}

	_, err := newReportUC(src, dst).Orphans(context.Background(),
		repository.OrderFilter{Range: testRange(t)})
	require.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

func TestMonthlyFunnel_UnLadoCaidoIgualReporta(t *testing.T) {
	src := &fakeSourceRepo{err: errors.New("pg down")}
	dst := &fakeERPRepo{rows: []entity.ERPOrder{erpOrder("OC-900", "100", "5", 12)}}

	rep, err := newReportUC(src, dst).MonthlyFunnel(context.Background(),
		repository.OrderFilter{Range: testRange(t)})
	require.NoError(t, err)

	assert.False(t, rep.Source.Available)
	assert.True(t, rep.Destination.Available)
	require.Len(t, rep.Months, 1)
	assert.Zero(t, rep.Months[0].SourceOrders)
	assert.Equal(t, 1, rep.Months[0].DestinationOrders)
}

func TestMonthlyFunnel_AmbosLadosCaidosEsError(t *testing.T) {
	src := &fakeSourceRepo{err: errors.New("pg down")}
	dst := &fakeERPRepo{err: errors.New("mssql down")}

	_, err := newReportUC(src, dst).MonthlyFunnel(context.Background(),
		repository.OrderFilter{Range: testRange(t)})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	assert.ErrorIs(t, err, domain.ErrDestinationUnavailable)
}
