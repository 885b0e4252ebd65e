// Package calculadora implementa los cálculos financieros de las calculadoras
// de rentabilidad diaria y de breakeven/ROAS. Toda la aritmética de dinero usa
// decimal para evitar errores de redondeo binario.
package calculadora

import (
	"github.com/shopspring/decimal"

	"github.com/facil-uno/facil-api/internal/domain"
)

// MonedaAds moneda en la que se cargó un gasto publicitario.
type MonedaAds string

const (
	MonedaARS MonedaAds = "ARS"
	MonedaUSD MonedaAds = "USD"
)

// GastoAds un gasto publicitario con su moneda.
type GastoAds struct {
	Monto  decimal.Decimal
	Moneda MonedaAds
}

// EntradaRentabilidad datos del día a evaluar. Los gastos en USD se convierten
// con CotizacionUSDT.
type EntradaRentabilidad struct {
	Facturacion    decimal.Decimal
	IngresoReal    decimal.Decimal
	GastosStock    decimal.Decimal
	GastosEnvio    decimal.Decimal
	GastosMeta     GastoAds
	GastosTiktok   GastoAds
	GastosGoogle   GastoAds
	CotizacionUSDT decimal.Decimal
}

// ResultadoRentabilidad resumen del día.
type ResultadoRentabilidad struct {
	TotalGastosAds         decimal.Decimal
	TotalGastos            decimal.Decimal
	TotalAlBolsillo        decimal.Decimal
	RentabilidadPorcentaje decimal.Decimal
}

func (e EntradaRentabilidad) convertirARS(g GastoAds) decimal.Decimal {
	if g.Moneda == MonedaUSD {
		return g.Monto.Mul(e.CotizacionUSDT)
	}
	return g.Monto
}

// Rentabilidad calcula el resultado del día. Requiere facturación e ingreso
// real positivos y al menos un gasto publicitario cargado.
func Rentabilidad(e EntradaRentabilidad) (ResultadoRentabilidad, error) {
	meta := e.convertirARS(e.GastosMeta)
	tiktok := e.convertirARS(e.GastosTiktok)
	google := e.convertirARS(e.GastosGoogle)

	if !meta.IsPositive() && !tiktok.IsPositive() && !google.IsPositive() {
		return ResultadoRentabilidad{}, domain.ErrInvalidInput
	}
	if !e.Facturacion.IsPositive() || !e.IngresoReal.IsPositive() {
		return ResultadoRentabilidad{}, domain.ErrInvalidInput
	}

	totalAds := meta.Add(tiktok).Add(google)
	totalGastos := e.GastosStock.Add(e.GastosEnvio).Add(totalAds)
	alBolsillo := e.IngresoReal.Sub(totalGastos)
	porcentaje := alBolsillo.Div(e.Facturacion).Mul(decimal.NewFromInt(100))

	return ResultadoRentabilidad{
		TotalGastosAds:         totalAds,
		TotalGastos:            totalGastos,
		TotalAlBolsillo:        alBolsillo,
		RentabilidadPorcentaje: porcentaje,
	}, nil
}
