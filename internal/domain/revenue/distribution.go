package revenue

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/supplychain-pro/internal/domain/entity"
)

// AdjustmentRole nombre de la entrada sintética que absorbe el residuo de
// redondeo para que los montos del desglose concilien exactamente con el
// margen bruto de entrada.
const AdjustmentRole = "adjustment"

// centThreshold umbral de un centavo para emitir la entrada de ajuste.
var centThreshold = decimal.NewFromFloat(0.01)

// Split desglose del reparto del margen bruto entre roles. Shares usa el
// nombre de rol como clave (incluida la entrada de ajuste, si existe);
// sumar todos los Amount reproduce GrossProfit al centavo.
type Split struct {
	GrossProfit       decimal.Decimal
	Shares            map[string]entity.DistributionShare
	DistributedAmount decimal.Decimal
	HasAdjustment     bool
}

// Distribute computa el monto por rol aplicando el mapa de fracciones al
// margen bruto. Cada monto se redondea a 2 decimales; el acumulado usa los
// montos redondeados y el residuo que supere un centavo se absorbe en una
// entrada sintética "adjustment" (fracción 0), de modo que el libro siempre
// concilia con el margen registrado. Funciona igual con margen negativo.
//
// Si el mapa no suma ~1.0 retorna error en lugar de producir un reparto
// verosímil pero incorrecto: la invariante se valida al crear la regla, pero
// el motor no confía en que eso haya ocurrido.
func Distribute(grossProfit decimal.Decimal, dist entity.DistributionMap) (*Split, error) {
	if err := dist.Validate(); err != nil {
		return nil, err
	}

	shares := make(map[string]entity.DistributionShare, len(dist)+1)
	distributed := decimal.Zero
	for _, role := range dist.Roles() {
		frac := dist[role]
		amount := grossProfit.Mul(frac).Round(2)
		shares[role] = entity.DistributionShare{Percentage: frac, Amount: amount}
		distributed = distributed.Add(amount)
	}

	split := &Split{
		GrossProfit:       grossProfit,
		Shares:            shares,
		DistributedAmount: distributed,
	}

	remaining := grossProfit.Sub(distributed)
	if remaining.Abs().GreaterThan(centThreshold) {
		shares[AdjustmentRole] = entity.DistributionShare{
			Percentage: decimal.Zero,
			Amount:     remaining.Round(2),
		}
		split.DistributedAmount = distributed.Add(remaining.Round(2))
		split.HasAdjustment = true
	}
	return split, nil
}
