// Package indicators contiene los casos de uso del tablero de adopción
// Connexa → SGM: cruce de órdenes, embudo mensual, uso semanal y rankings.
package indicators

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/diarco-data/compras-monitor/internal/application/dto"
	"github.com/diarco-data/compras-monitor/internal/domain"
	"github.com/diarco-data/compras-monitor/internal/domain/adoption"
	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/reconcile"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
	"github.com/diarco-data/compras-monitor/internal/domain/timebucket"
	"github.com/diarco-data/compras-monitor/pkg/logger"
)

// AdoptionQuery parámetros de un reporte de adopción.
type AdoptionQuery struct {
	Filter      repository.OrderFilter
	Dimension   adoption.Dimension
	Denominator adoption.Denominator
}

// ReportUseCase orquesta el pipeline de conciliación: extracción en paralelo
// de ambos lados, derivación de claves, cruce y agregación. Sin estado entre
// invocaciones: cada llamada trabaja sobre sus propios snapshots.
type ReportUseCase struct {
	sourceRepo repository.SourceOrderRepository
	erpRepo    repository.ERPOrderRepository
	loc        *time.Location
	timeout    time.Duration
	log        *logger.Logger
}

// NewReportUseCase construye el caso de uso. timeout aplica por extractor, de
// forma independiente para cada lado.
func NewReportUseCase(
	sourceRepo repository.SourceOrderRepository,
	erpRepo repository.ERPOrderRepository,
	loc *time.Location,
	timeout time.Duration,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		sourceRepo: sourceRepo,
		erpRepo:    erpRepo,
		loc:        loc,
		timeout:    timeout,
		log:        log,
	}
}

// fetchBoth extrae los dos lados en paralelo, cada uno con su propio timeout.
// Un lado caído no bloquea ni anula al otro: devuelve el error de ese lado y
// el resultado del que sí respondió.
func (uc *ReportUseCase) fetchBoth(
	ctx context.Context,
	filter repository.OrderFilter,
) (src []entity.SourceOrder, srcErr error, dst []entity.ERPOrder, dstErr error) {

	type sourceResult struct {
		rows []entity.SourceOrder
		err  error
	}
	type erpResult struct {
		rows []entity.ERPOrder
		err  error
	}

	srcCh := make(chan sourceResult, 1)
	dstCh := make(chan erpResult, 1)

	go func() {
		cctx, cancel := context.WithTimeout(ctx, uc.timeout)
		defer cancel()
		rows, err := uc.sourceRepo.ListOrders(cctx, filter)
		srcCh <- sourceResult{rows, err}
	}()
	go func() {
		cctx, cancel := context.WithTimeout(ctx, uc.timeout)
		defer cancel()
		rows, err := uc.erpRepo.ListOrders(cctx, filter)
		dstCh <- erpResult{rows, err}
	}()

	s := <-srcCh
	d := <-dstCh

	if s.err != nil {
		uc.log.Warn().Err(s.err).Msg("extractor Connexa no disponible")
		s.err = fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, s.err)
	}
	if d.err != nil {
		uc.log.Warn().Err(d.err).Msg("extractor SGM no disponible")
		d.err = fmt.Errorf("%w: %v", domain.ErrDestinationUnavailable, d.err)
	}
	return s.rows, s.err, d.rows, d.err
}

// AdoptionReport genera el reporte de conciliación del rango pedido.
//
// Si un lado no está disponible, no se fabrican huérfanos del otro lado: el
// reporte vuelve con Reconciled=false y el estado de cada lado, con los
// conteos crudos del lado que sí respondió. Un duplicado de identificador
// nativo (violación de contrato del extractor) sí aborta con error.
func (uc *ReportUseCase) AdoptionReport(
	ctx context.Context,
	q AdoptionQuery,
) (*dto.AdoptionReportDTO, error) {
	if err := q.Filter.Range.Validate(); err != nil {
		return nil, err
	}

	srcRows, srcErr, dstRows, dstErr := uc.fetchBoth(ctx, q.Filter)

	report := &dto.AdoptionReportDTO{
		ReportID:              uuid.NewString(),
		GeneratedAt:           time.Now().UTC(),
		From:                  q.Filter.Range.From.Format("2006-01-02"),
		To:                    q.Filter.Range.To.Format("2006-01-02"),
		Source:                sideStatus(len(srcRows), srcErr),
		Destination:           sideStatus(len(dstRows), dstErr),
		SourceDuplicates:      []dto.SourceDuplicateDTO{},
		DestinationDuplicates: []dto.DestinationDuplicateDTO{},
		TimeSeries:            []dto.AdoptionBucketDTO{},
	}

	if srcErr != nil || dstErr != nil {
		// Resultado degradado: se informa qué lado faltó, sin inventar
		// "solo destino" u "solo origen" con el lado ausente.
		return report, nil
	}

	keyedSrc, srcStats, err := reconcile.KeySourceOrders(srcRows)
	if err != nil {
		return nil, err
	}
	keyedDst, dstStats, err := reconcile.KeyERPOrders(dstRows)
	if err != nil {
		return nil, err
	}

	res := reconcile.Reconcile(keyedSrc, keyedDst)

	report.Reconciled = true
	report.MatchedCount = len(res.Matched)
	report.SourceOnlyCount = len(res.SourceOnly)
	report.DestinationOnlyCount = len(res.DestinationOnly)
	report.UnlinkedSource = srcStats.Unlinked
	report.SkippedMalformedSource = srcStats.Malformed
	report.SkippedMalformedDestination = dstStats.Malformed

	for _, d := range res.SourceDuplicates {
		report.SourceDuplicates = append(report.SourceDuplicates, dto.SourceDuplicateDTO{
			SourceOrderID: d.SourceOrderID,
			Keys:          keysToStrings(d.Keys),
		})
	}
	for _, d := range res.DestinationDuplicates {
		report.DestinationDuplicates = append(report.DestinationDuplicates, dto.DestinationDuplicateDTO{
			Key:      string(d.Key),
			OrderIDs: d.OrderIDs,
		})
	}

	for _, row := range adoption.Series(res, q.Dimension, q.Denominator, uc.loc) {
		report.TimeSeries = append(report.TimeSeries, dto.AdoptionBucketDTO{
			Bucket:               row.Bucket.String(),
			BucketStart:          row.Bucket.Start(uc.loc).Format("2006-01-02"),
			Dimension:            row.Dimension,
			MatchedCount:         row.MatchedCount,
			SourceOnlyCount:      row.SourceOnlyCount,
			DestinationOnlyCount: row.DestinationOnlyCount,
			Ratio:                row.Ratio,
		})
	}

	uc.log.Info().
		Str("report_id", report.ReportID).
		Int("matched", report.MatchedCount).
		Int("source_only", report.SourceOnlyCount).
		Int("destination_only", report.DestinationOnlyCount).
		Msg("reporte de adopción generado")

	return report, nil
}

// MonthlyFunnel calcula los conteos mensuales crudos por lado. A diferencia
// del cruce, cada lado se agrega por separado: con un extractor caído el otro
// igual se reporta, marcado como degradado.
func (uc *ReportUseCase) MonthlyFunnel(
	ctx context.Context,
	filter repository.OrderFilter,
) (*dto.FunnelReportDTO, error) {
	if err := filter.Range.Validate(); err != nil {
		return nil, err
	}

	srcRows, srcErr, dstRows, dstErr := uc.fetchBoth(ctx, filter)
	if srcErr != nil && dstErr != nil {
		return nil, errors.Join(srcErr, dstErr)
	}

	type monthCell struct {
		sourceOrders        map[string]struct{}
		sourceQty           decimal.Decimal
		destOrders          map[string]struct{}
		destLinkedKeys      map[reconcile.MatchKey]struct{}
		destQty             decimal.Decimal
		destSuppliers       map[int64]struct{}
		destLinkedSuppliers map[int64]struct{}
	}
	cells := make(map[timebucket.Month]*monthCell)
	at := func(m timebucket.Month) *monthCell {
		c, ok := cells[m]
		if !ok {
			c = &monthCell{
				sourceOrders:        map[string]struct{}{},
				destOrders:          map[string]struct{}{},
				destLinkedKeys:      map[reconcile.MatchKey]struct{}{},
				destSuppliers:       map[int64]struct{}{},
				destLinkedSuppliers: map[int64]struct{}{},
			}
			cells[m] = c
		}
		return c
	}

	if srcErr == nil {
		for _, o := range srcRows {
			c := at(timebucket.MonthOf(o.CreatedAt, uc.loc))
			if _, seen := c.sourceOrders[o.OrderID]; !seen {
				c.sourceOrders[o.OrderID] = struct{}{}
				c.sourceQty = c.sourceQty.Add(o.Quantity)
			}
		}
	}
	if dstErr == nil {
		for _, o := range dstRows {
			c := at(timebucket.MonthOf(o.CreatedAt, uc.loc))
			if _, seen := c.destOrders[o.OrderID]; !seen {
				c.destOrders[o.OrderID] = struct{}{}
				c.destQty = c.destQty.Add(o.Quantity)
			}
			c.destSuppliers[o.SupplierCode] = struct{}{}
			if key, ok, err := reconcile.BuildKey(o.Prefix, o.Suffix); err == nil && ok {
				c.destLinkedKeys[key] = struct{}{}
				c.destLinkedSuppliers[o.SupplierCode] = struct{}{}
			}
		}
	}

	months := make([]timebucket.Month, 0, len(cells))
	for m := range cells {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	out := &dto.FunnelReportDTO{
		Source:      sideStatus(len(srcRows), srcErr),
		Destination: sideStatus(len(dstRows), dstErr),
		Months:      make([]dto.FunnelMonthDTO, 0, len(months)),
	}
	for _, m := range months {
		c := cells[m]
		out.Months = append(out.Months, dto.FunnelMonthDTO{
			Month:                      m.String(),
			SourceOrders:               len(c.sourceOrders),
			SourceQuantity:             c.sourceQty,
			DestinationOrders:          len(c.destOrders),
			DestinationLinkedKeys:      len(c.destLinkedKeys),
			DestinationQuantity:        c.destQty,
			DestinationSuppliers:       len(c.destSuppliers),
			DestinationLinkedSuppliers: len(c.destLinkedSuppliers),
			SupplierShare:              supplierShare(len(c.destLinkedSuppliers), len(c.destSuppliers)),
		})
	}
	return out, nil
}

// Orphans devuelve el detalle de los huérfanos del rango: lo generado en
// Connexa sin cabecera SGM y las OC SGM directas cuya clave no tiene par. A
// diferencia del reporte agregado, acá un lado caído sí es error: el detalle
// no tiene lectura degradada.
func (uc *ReportUseCase) Orphans(
	ctx context.Context,
	filter repository.OrderFilter,
) (*dto.OrphanReportDTO, error) {
	if err := filter.Range.Validate(); err != nil {
		return nil, err
	}

	srcRows, srcErr, dstRows, dstErr := uc.fetchBoth(ctx, filter)
	if srcErr != nil {
		return nil, srcErr
	}
	if dstErr != nil {
		return nil, dstErr
	}

	keyedSrc, _, err := reconcile.KeySourceOrders(srcRows)
	if err != nil {
		return nil, err
	}
	keyedDst, _, err := reconcile.KeyERPOrders(dstRows)
	if err != nil {
		return nil, err
	}

	res := reconcile.Reconcile(keyedSrc, keyedDst)

	out := &dto.OrphanReportDTO{
		From:            filter.Range.From.Format("2006-01-02"),
		To:              filter.Range.To.Format("2006-01-02"),
		SourceOnly:      make([]dto.OrphanSourceDTO, 0, len(res.SourceOnly)),
		DestinationOnly: make([]dto.OrphanDestinationDTO, 0, len(res.DestinationOnly)),
	}
	for _, s := range res.SourceOnly {
		out.SourceOnly = append(out.SourceOnly, dto.OrphanSourceDTO{
			OrderID:      s.Order.OrderID,
			Key:          string(s.Key),
			BuyerCode:    s.Order.BuyerCode,
			SupplierCode: s.Order.SupplierCode,
			BranchCode:   s.Order.BranchCode,
			Quantity:     s.Order.Quantity,
			CreatedAt:    s.Order.CreatedAt,
		})
	}
	for _, d := range res.DestinationOnly {
		out.DestinationOnly = append(out.DestinationOnly, dto.OrphanDestinationDTO{
			OrderID:      d.Order.OrderID,
			Key:          string(d.Key),
			BuyerCode:    d.Order.BuyerCode,
			SupplierCode: d.Order.SupplierCode,
			Quantity:     d.Order.Quantity,
			CreatedAt:    d.Order.CreatedAt,
		})
	}
	return out, nil
}

func supplierShare(linked, total int) decimal.NullDecimal {
	if total == 0 {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: decimal.NewFromInt(int64(linked)).
			Div(decimal.NewFromInt(int64(total))).
			Round(6),
		Valid: true,
	}
}

func sideStatus(rawCount int, err error) dto.SideStatusDTO {
	if err != nil {
		return dto.SideStatusDTO{Available: false, Reason: err.Error()}
	}
	return dto.SideStatusDTO{Available: true, RawCount: rawCount}
}

func keysToStrings(keys []reconcile.MatchKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
