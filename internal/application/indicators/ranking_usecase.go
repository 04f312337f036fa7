package indicators

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diarco-data/compras-monitor/internal/application/dto"
	"github.com/diarco-data/compras-monitor/internal/domain/entity"
	"github.com/diarco-data/compras-monitor/internal/domain/repository"
	"github.com/diarco-data/compras-monitor/pkg/logger"
)

// RankingUseCase rankea compradores y proveedores por volumen de órdenes
// generadas en Connexa dentro del rango pedido.
type RankingUseCase struct {
	sourceRepo  repository.SourceOrderRepository
	catalogRepo repository.CatalogRepository
	timeout     time.Duration
	log         *logger.Logger
}

func NewRankingUseCase(
	sourceRepo repository.SourceOrderRepository,
	catalogRepo repository.CatalogRepository,
	timeout time.Duration,
	log *logger.Logger,
) *RankingUseCase {
	return &RankingUseCase{
		sourceRepo:  sourceRepo,
		catalogRepo: catalogRepo,
		timeout:     timeout,
		log:         log,
	}
}

// TopBuyers ranking de compradores por cantidad de órdenes, desempatado por
// bultos. limit <= 0 devuelve el ranking completo.
func (uc *RankingUseCase) TopBuyers(
	ctx context.Context,
	r repository.DateRange,
	limit int,
) ([]dto.RankingRowDTO, error) {
	names := func(ctx context.Context) (map[int64]string, error) {
		buyers, err := uc.catalogRepo.ListBuyers(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[int64]string, len(buyers))
		for _, b := range buyers {
			m[b.Code] = b.Name
		}
		return m, nil
	}
	code := func(o entity.SourceOrder) int64 { return o.BuyerCode }
	return uc.rank(ctx, r, limit, code, names)
}

// TopSuppliers ranking de proveedores, misma regla que TopBuyers.
func (uc *RankingUseCase) TopSuppliers(
	ctx context.Context,
	r repository.DateRange,
	limit int,
) ([]dto.RankingRowDTO, error) {
	names := func(ctx context.Context) (map[int64]string, error) {
		suppliers, err := uc.catalogRepo.ListSuppliers(ctx)
		if err != nil {
			return nil, err
		}
		m := make(map[int64]string, len(suppliers))
		for _, s := range suppliers {
			m[s.Code] = s.Name
		}
		return m, nil
	}
	code := func(o entity.SourceOrder) int64 { return o.SupplierCode }
	return uc.rank(ctx, r, limit, code, names)
}

func (uc *RankingUseCase) rank(
	ctx context.Context,
	r repository.DateRange,
	limit int,
	codeOf func(entity.SourceOrder) int64,
	loadNames func(context.Context) (map[int64]string, error),
) ([]dto.RankingRowDTO, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	cctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	orders, err := uc.sourceRepo.ListOrders(cctx, repository.OrderFilter{Range: r})
	if err != nil {
		return nil, err
	}

	names, err := loadNames(cctx)
	if err != nil {
		// El maestro es decorativo: si falta, se rankea igual con códigos.
		uc.log.Warn().Err(err).Msg("maestro no disponible, ranking sin nombres")
		names = map[int64]string{}
	}

	type acc struct {
		orders int
		qty    decimal.Decimal
	}
	byCode := make(map[int64]*acc)
	for _, o := range orders {
		c := codeOf(o)
		a, ok := byCode[c]
		if !ok {
			a = &acc{}
			byCode[c] = a
		}
		a.orders++
		a.qty = a.qty.Add(o.Quantity)
	}

	rows := make([]dto.RankingRowDTO, 0, len(byCode))
	for c, a := range byCode {
		name := strings.TrimSpace(names[c])
		if name == "" {
			name = strconv.FormatInt(c, 10)
		}
		rows = append(rows, dto.RankingRowDTO{
			Code:     c,
			Name:     name,
			Orders:   a.orders,
			Quantity: a.qty,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Orders != rows[j].Orders {
			return rows[i].Orders > rows[j].Orders
		}
		if !rows[i].Quantity.Equal(rows[j].Quantity) {
			return rows[i].Quantity.GreaterThan(rows[j].Quantity)
		}
		return rows[i].Code < rows[j].Code
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
