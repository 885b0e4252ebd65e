package calculadora

import (
	"github.com/shopspring/decimal"

	"github.com/facil-uno/facil-api/internal/domain"
)

var cien = decimal.NewFromInt(100)

// EntradaBreakeven costos unitarios y comisiones (en %) de un producto.
// Los montos están en pesos; ValorDolar convierte los resultados a USD.
type EntradaBreakeven struct {
	ValorDolar         decimal.Decimal
	Producto           decimal.Decimal
	Envio              decimal.Decimal
	Fulfillment        decimal.Decimal
	CPAEstimado        decimal.Decimal
	PrecioVenta        decimal.Decimal
	TargetProfitPct    decimal.Decimal
	ComisionCuotasPct  decimal.Decimal
	ComisionRetirarPct decimal.Decimal
	ComisionTNPct      decimal.Decimal
	ComisionIBPct      decimal.Decimal
	GastosExtra        []decimal.Decimal
}

// MontoDual un monto expresado en pesos y su equivalente en dólares.
type MontoDual struct {
	Pesos decimal.Decimal
	USD   decimal.Decimal
}

// ResultadoBreakeven métricas de breakeven y ROAS del producto.
type ResultadoBreakeven struct {
	TotalComisiones   MontoDual
	GastosExtra       MontoDual
	CostosSinCPA      MontoDual
	TotalCostosConCPA MontoDual
	UtilidadNeta      MontoDual
	CPABreakeven      MontoDual
	CPAObjetivo       MontoDual
	TargetProfit      MontoDual
	ROASBreakeven     decimal.Decimal
	ROASObjetivo      decimal.Decimal
}

// BreakevenROAS calcula CPA breakeven, CPA objetivo y los ROAS asociados.
// Requiere valor del dólar, costo de producto y precio de venta positivos.
func BreakevenROAS(e EntradaBreakeven) (ResultadoBreakeven, error) {
	if !e.ValorDolar.IsPositive() {
		return ResultadoBreakeven{}, domain.ErrInvalidInput
	}
	if !e.Producto.IsPositive() || !e.PrecioVenta.IsPositive() {
		return ResultadoBreakeven{}, domain.ErrInvalidInput
	}

	dual := func(pesos decimal.Decimal) MontoDual {
		return MontoDual{Pesos: pesos, USD: pesos.Div(e.ValorDolar)}
	}

	comisionesPct := e.ComisionCuotasPct.
		Add(e.ComisionRetirarPct).
		Add(e.ComisionTNPct).
		Add(e.ComisionIBPct)
	comisiones := e.PrecioVenta.Mul(comisionesPct.Div(cien))

	gastosExtra := decimal.Zero
	for _, g := range e.GastosExtra {
		gastosExtra = gastosExtra.Add(g)
	}

	costosSinCPA := e.Producto.
		Add(e.Envio).
		Add(e.Fulfillment).
		Add(comisiones).
		Add(gastosExtra)
	totalConCPA := costosSinCPA.Add(e.CPAEstimado)
	utilidadNeta := e.PrecioVenta.Sub(totalConCPA)

	cpaBreakeven := e.PrecioVenta.Sub(costosSinCPA)
	targetProfit := e.PrecioVenta.Mul(e.TargetProfitPct.Div(cien))
	cpaObjetivo := targetProfit

	roasBreakeven := decimal.Zero
	if cpaBreakeven.IsPositive() {
		roasBreakeven = e.PrecioVenta.Div(cpaBreakeven)
	}
	roasObjetivo := decimal.Zero
	if divisor := e.PrecioVenta.Sub(costosSinCPA).Sub(cpaObjetivo); divisor.IsPositive() && cpaObjetivo.IsPositive() {
		roasObjetivo = e.PrecioVenta.Div(divisor)
	}

	return ResultadoBreakeven{
		TotalComisiones:   dual(comisiones),
		GastosExtra:       dual(gastosExtra),
		CostosSinCPA:      dual(costosSinCPA),
		TotalCostosConCPA: dual(totalConCPA),
		UtilidadNeta:      dual(utilidadNeta),
		CPABreakeven:      dual(cpaBreakeven),
		CPAObjetivo:       dual(cpaObjetivo),
		TargetProfit:      dual(targetProfit),
		ROASBreakeven:     roasBreakeven,
		ROASObjetivo:      roasObjetivo,
	}, nil
}
