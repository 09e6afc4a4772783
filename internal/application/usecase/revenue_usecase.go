package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/supplychain-pro/internal/application/dto"
	"github.com/tu-usuario/supplychain-pro/internal/domain"
	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/repository"
	"github.com/tu-usuario/supplychain-pro/internal/domain/revenue"
	"github.com/tu-usuario/supplychain-pro/pkg/logger"
)

// RevenueUseCase orquesta el motor de ingresos: simulación (cálculo puro +
// resolución de regla + reparto, sin persistir) y registro de asientos
// inmutables en el libro con su entrada de auditoría.
type RevenueUseCase struct {
	productRepo repository.ProductRepository
	siteRepo    repository.SiteRepository
	ruleRepo    repository.DistributionRuleRepository
	txRepo      repository.RevenueTransactionRepository
	txRunner    TxRunner
	log         *logger.Logger
}

// NewRevenueUseCase construye el caso de uso.
func NewRevenueUseCase(
	productRepo repository.ProductRepository,
	siteRepo repository.SiteRepository,
	ruleRepo repository.DistributionRuleRepository,
	txRepo repository.RevenueTransactionRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *RevenueUseCase {
	return &RevenueUseCase{
		productRepo: productRepo,
		siteRepo:    siteRepo,
		ruleRepo:    ruleRepo,
		txRepo:      txRepo,
		txRunner:    txRunner,
		log:         log,
	}
}

// Simulate calcula el desglose de ingresos y el reparto aplicable sin
// persistir nada. Flujo: producto → sede/override → cálculo → resolución de
// regla por especificidad → reparto.
//
// Precedencia de precios: override explícito de la petición > override por
// sede > precio base del producto.
func (uc *RevenueUseCase) Simulate(ctx context.Context, in dto.SimulateRevenueRequest) (*dto.SimulateRevenueResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("quantity debe ser positiva: %w", domain.ErrInvalidInput)
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("consultar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	var (
		site          *entity.Site
		siteOverrides revenue.PriceOverrides
	)
	if in.SiteID != nil && *in.SiteID != "" {
		site, err = uc.siteRepo.GetByID(ctx, *in.SiteID)
		if err != nil {
			return nil, fmt.Errorf("consultar sede: %w", err)
		}
		if site == nil {
			return nil, domain.ErrSiteNotFound
		}
		override, err := uc.siteRepo.GetOverride(ctx, site.ID, product.ID)
		if err != nil {
			return nil, fmt.Errorf("consultar override de sede: %w", err)
		}
		if override != nil {
			siteOverrides = revenue.PriceOverrides{
				SalePrice:   override.SalePriceOverride,
				SupplyPrice: override.SupplyPriceOverride,
			}
		}
	}

	overrides := siteOverrides
	if in.Overrides != nil {
		overrides = revenue.PriceOverrides{
			SalePrice:   in.Overrides.SalePriceOverride,
			SupplyPrice: in.Overrides.SupplyPriceOverride,
		}.Merge(siteOverrides)
	}

	breakdown := revenue.Calculate(product, in.Quantity, overrides)

	var siteType *string
	if site != nil {
		siteType = &site.Type
	}
	candidates, err := uc.ruleRepo.ListCandidates(ctx, &in.ProductID, siteType, today())
	if err != nil {
		return nil, fmt.Errorf("resolver regla: %w", err)
	}
	rule := revenue.MostSpecific(candidates)

	resp := &dto.SimulateRevenueResponse{
		Product: dto.ProductDTO{
			ID:            product.ID,
			Name:          product.Name,
			CostUnitPrice: product.CostUnitPrice,
			SupplyPrice:   product.SupplyPrice,
			SalePrice:     product.SalePrice,
			Deposit:       product.Deposit,
			OneTimeFee:    product.OneTimeFee,
		},
		Calculation: breakdownToDTO(breakdown),
	}
	if site != nil {
		resp.Site = &dto.SiteDTO{ID: site.ID, Name: site.Name, Type: site.Type}
	}
	if rule != nil {
		split, err := revenue.Distribute(breakdown.GrossProfit, rule.Distribution)
		if err != nil {
			// La regla persistida tiene un mapa corrupto: mejor fallar que
			// devolver un reparto verosímil pero incorrecto.
			return nil, fmt.Errorf("regla %s: %w", rule.ID, err)
		}
		resp.Distribution = dto.DistributionResultDTO{
			Rule:      ruleToDTO(rule),
			Breakdown: splitToDTO(split),
		}
	}
	return resp, nil
}

// Record recalcula los totales desde las cifras unitarias enviadas, computa
// el reparto si se indicó regla, y escribe asiento + auditoría en una sola
// transacción de BD. Llamadas duplicadas producen asientos duplicados: la
// de-duplicación es responsabilidad del llamador.
func (uc *RevenueUseCase) Record(ctx context.Context, actorID string, in dto.RecordTransactionRequest) (*dto.RecordTransactionResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, fmt.Errorf("%s: %w", err, domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("quantity debe ser positiva: %w", domain.ErrInvalidInput)
	}
	if in.UnitSalePrice.IsNegative() || in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("precios unitarios negativos: %w", domain.ErrInvalidInput)
	}

	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("consultar producto: %w", err)
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.SiteID != nil && *in.SiteID != "" {
		site, err := uc.siteRepo.GetByID(ctx, *in.SiteID)
		if err != nil {
			return nil, fmt.Errorf("consultar sede: %w", err)
		}
		if site == nil {
			return nil, domain.ErrSiteNotFound
		}
	}

	totalRevenue := in.UnitSalePrice.Mul(in.Quantity)
	totalCost := in.UnitCost.Mul(in.Quantity)
	grossProfit := totalRevenue.Sub(totalCost)

	var (
		split  *revenue.Split
		shares map[string]entity.DistributionShare
	)
	if in.DistributionRuleID != nil && *in.DistributionRuleID != "" {
		rule, err := uc.ruleRepo.GetByID(ctx, *in.DistributionRuleID)
		if err != nil {
			return nil, fmt.Errorf("consultar regla: %w", err)
		}
		if rule == nil {
			return nil, domain.ErrRuleNotFound
		}
		if split, err = revenue.Distribute(grossProfit, rule.Distribution); err != nil {
			return nil, fmt.Errorf("regla %s: %w", rule.ID, err)
		}
		shares = split.Shares
	}

	txType := in.TransactionType
	if txType == "" {
		txType = entity.TransactionTypeSale
	}
	now := time.Now().UTC()
	tx := &entity.RevenueTransaction{
		ID:                  uuid.NewString(),
		TransactionType:     txType,
		SiteID:              in.SiteID,
		ProductID:           in.ProductID,
		Quantity:            in.Quantity,
		UnitSalePrice:       in.UnitSalePrice,
		UnitSupplyPrice:     in.UnitSupplyPrice,
		UnitCost:            in.UnitCost,
		TotalRevenue:        totalRevenue,
		TotalCost:           totalCost,
		GrossProfit:         grossProfit,
		DistributionRuleID:  in.DistributionRuleID,
		DistributionDetails: shares,
		TransactionDate:     now,
		CreatedBy:           actorID,
		Notes:               in.Notes,
		CreatedAt:           now,
	}

	err = uc.txRunner.RunLedger(ctx, func(
		txRepo repository.RevenueTransactionRepository,
		auditRepo repository.AuditLogRepository,
	) error {
		if err := txRepo.Create(ctx, tx); err != nil {
			return err
		}
		detail, _ := json.Marshal(map[string]any{
			"transaction_type": tx.TransactionType,
			"product_id":       tx.ProductID,
			"gross_profit":     tx.GrossProfit,
			"rule_id":          tx.DistributionRuleID,
		})
		return auditRepo.Append(ctx, &entity.AuditLog{
			ID:         uuid.NewString(),
			ActorID:    actorID,
			Action:     entity.AuditActionTransactionRecorded,
			EntityType: "revenue_transaction",
			EntityID:   tx.ID,
			Detail:     detail,
			CreatedAt:  now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("registrar transacción: %w", err)
	}

	uc.log.Info().
		Str("transaction_id", tx.ID).
		Str("product_id", tx.ProductID).
		Str("gross_profit", grossProfit.String()).
		Msg("asiento registrado en el libro de ingresos")

	resp := &dto.RecordTransactionResponse{
		TransactionID: tx.ID,
		TotalRevenue:  totalRevenue,
		TotalCost:     totalCost,
		GrossProfit:   grossProfit,
	}
	if split != nil {
		resp.DistributionDetails = splitToDTO(split)
	}
	return resp, nil
}

// List devuelve el libro de ingresos filtrado y paginado, del más reciente
// al más antiguo.
func (uc *RevenueUseCase) List(ctx context.Context, in dto.TransactionListRequest) (*dto.TransactionListResponse, error) {
	in.DefaultPage()

	filter := repository.TransactionFilter{}
	if in.ProductID != "" {
		filter.ProductID = &in.ProductID
	}
	if in.SiteID != "" {
		filter.SiteID = &in.SiteID
	}
	if in.TransactionType != "" {
		filter.TransactionType = &in.TransactionType
	}
	if in.StartDate != "" {
		from, err := parseDate(in.StartDate)
		if err != nil {
			return nil, err
		}
		filter.From = &from
	}
	if in.EndDate != "" {
		to, err := parseDate(in.EndDate)
		if err != nil {
			return nil, err
		}
		filter.To = &to
	}

	txs, total, err := uc.txRepo.List(ctx, filter, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar transacciones: %w", err)
	}

	out := make([]dto.TransactionDTO, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionToDTO(tx))
	}
	return &dto.TransactionListResponse{
		Transactions: out,
		Page:         dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Summary agrega el libro por período (day|week|month) en el rango pedido.
func (uc *RevenueUseCase) Summary(ctx context.Context, in dto.SummaryRequest) (*dto.SummaryResponse, error) {
	bucket := in.Bucket
	if bucket == "" {
		bucket = "day"
	}
	switch bucket {
	case "day", "week", "month":
	default:
		return nil, fmt.Errorf("bucket %q no soportado (day|week|month): %w", bucket, domain.ErrInvalidInput)
	}

	start, end, err := parsePeriod(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	rows, err := uc.txRepo.Summary(ctx, bucket, start, end)
	if err != nil {
		return nil, fmt.Errorf("resumen de ingresos: %w", err)
	}

	buckets := make([]dto.SummaryBucketDTO, 0, len(rows))
	for _, row := range rows {
		buckets = append(buckets, dto.SummaryBucketDTO{
			Period:           row.Period.Format(dateLayout),
			TransactionCount: row.TransactionCount,
			TotalRevenue:     row.TotalRevenue,
			TotalCost:        row.TotalCost,
			GrossProfit:      row.GrossProfit,
		})
	}
	return &dto.SummaryResponse{
		Bucket:    bucket,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
		Buckets:   buckets,
	}, nil
}

// today fecha actual truncada a día (UTC), usada para la resolución de reglas.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
