package usecase

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supplychain-pro/internal/application/dto"
	"github.com/tu-usuario/supplychain-pro/internal/domain"
	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
	"github.com/tu-usuario/supplychain-pro/internal/domain/revenue"
)

const dateLayout = "2006-01-02"

var displayScale = decimal.NewFromInt(100)

// parseDate "YYYY-MM-DD" → time.Time en UTC.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q (formato YYYY-MM-DD): %w", s, domain.ErrInvalidInput)
	}
	return t, nil
}

// parsePeriod resuelve el rango [start, end] con defaults: primer día del mes
// actual y hoy.
func parsePeriod(startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if startStr != "" {
		if start, err = parseDate(startStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endStr != "" {
		if end, err = parseDate(endStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end_date anterior a start_date: %w", domain.ErrInvalidInput)
	}
	return start, end, nil
}

// toDisplayMap convierte fracciones 0–1 a escala de presentación 0–100.
func toDisplayMap(m entity.DistributionMap) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(m))
	for role, frac := range m {
		out[role] = frac.Mul(displayScale)
	}
	return out
}

// ruleToDTO mapea la entidad a su representación HTTP (porcentajes 0–100).
func ruleToDTO(r *entity.DistributionRule) *dto.RuleDTO {
	out := &dto.RuleDTO{
		ID:              r.ID,
		RuleName:        r.RuleName,
		ProductID:       r.ProductID,
		SiteType:        r.SiteType,
		RegionType:      r.RegionType,
		DistributionMap: toDisplayMap(r.Distribution),
		AppliesFrom:     r.AppliesFrom.Format(dateLayout),
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
	if r.AppliesTo != nil {
		s := r.AppliesTo.Format(dateLayout)
		out.AppliesTo = &s
	}
	return out
}

// splitToDTO mapea el reparto calculado (porcentajes 0–100 en la salida).
func splitToDTO(s *revenue.Split) dto.DistributionBreakdownDTO {
	out := make(dto.DistributionBreakdownDTO, len(s.Shares))
	for role, share := range s.Shares {
		out[role] = dto.ShareDTO{
			Percentage: share.Percentage.Mul(displayScale),
			Amount:     share.Amount,
		}
	}
	return out
}

// sharesToDTO mapea el desglose persistido de un asiento del libro.
func sharesToDTO(shares map[string]entity.DistributionShare) dto.DistributionBreakdownDTO {
	if len(shares) == 0 {
		return nil
	}
	out := make(dto.DistributionBreakdownDTO, len(shares))
	for role, share := range shares {
		out[role] = dto.ShareDTO{
			Percentage: share.Percentage.Mul(displayScale),
			Amount:     share.Amount,
		}
	}
	return out
}

// breakdownToDTO mapea el desglose de ingresos calculado.
func breakdownToDTO(b revenue.Breakdown) dto.RevenueBreakdownDTO {
	return dto.RevenueBreakdownDTO{
		Quantity:            b.Quantity,
		UnitSalePrice:       b.UnitSalePrice,
		UnitSupplyPrice:     b.UnitSupplyPrice,
		UnitCost:            b.UnitCost,
		TotalRevenue:        b.TotalRevenue,
		TotalCost:           b.TotalCost,
		DepositAmount:       b.DepositAmount,
		GrossProfit:         b.GrossProfit,
		ProfitMarginPercent: b.ProfitMarginPercent,
	}
}

// transactionToDTO mapea un asiento del libro a su representación HTTP.
func transactionToDTO(tx *entity.RevenueTransaction) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:                  tx.ID,
		TransactionType:     tx.TransactionType,
		SiteID:              tx.SiteID,
		ProductID:           tx.ProductID,
		Quantity:            tx.Quantity,
		UnitSalePrice:       tx.UnitSalePrice,
		UnitSupplyPrice:     tx.UnitSupplyPrice,
		UnitCost:            tx.UnitCost,
		TotalRevenue:        tx.TotalRevenue,
		TotalCost:           tx.TotalCost,
		GrossProfit:         tx.GrossProfit,
		DistributionRuleID:  tx.DistributionRuleID,
		DistributionDetails: sharesToDTO(tx.DistributionDetails),
		TransactionDate:     tx.TransactionDate.Format(dateLayout),
		CreatedBy:           tx.CreatedBy,
		Notes:               tx.Notes,
	}
}
