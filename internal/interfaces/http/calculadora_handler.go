package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/calculadora"
)

// CalculadoraHandler maneja las calculadoras financieras. No tiene estado: los
// cálculos son puros y no se persisten.
type CalculadoraHandler struct{}

// NewCalculadoraHandler construye el handler de calculadoras.
func NewCalculadoraHandler() *CalculadoraHandler {
	return &CalculadoraHandler{}
}

// Rentabilidad godoc
// @Summary      Calculadora de rentabilidad diaria
// @Tags         calculadoras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.RentabilidadRequest  true  "movimientos del día"
// @Success      200   {object}  dto.RentabilidadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calculadoras/rentabilidad [post]
func (h *CalculadoraHandler) Rentabilidad(c *fiber.Ctx) error {
	var in dto.RentabilidadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p := nuevoParser()
	entrada := calculadora.EntradaRentabilidad{
		Facturacion:    p.monto(in.Facturacion),
		IngresoReal:    p.monto(in.IngresoReal),
		GastosStock:    p.monto(in.GastosStock),
		GastosEnvio:    p.monto(in.GastosEnvio),
		GastosMeta:     p.gastoAds(in.GastosMeta),
		GastosTiktok:   p.gastoAds(in.GastosTiktok),
		GastosGoogle:   p.gastoAds(in.GastosGoogle),
		CotizacionUSDT: p.monto(in.CotizacionUSDT),
	}
	if p.err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: p.err.Error()})
	}
	r, err := calculadora.Rentabilidad(entrada)
	if err != nil {
		return calculadoraError(c, err)
	}
	return c.JSON(dto.RentabilidadResponse{
		TotalGastosAds:         r.TotalGastosAds.StringFixed(2),
		TotalGastos:            r.TotalGastos.StringFixed(2),
		TotalAlBolsillo:        r.TotalAlBolsillo.StringFixed(2),
		RentabilidadPorcentaje: r.RentabilidadPorcentaje.StringFixed(2),
	})
}

// Breakeven godoc
// @Summary      Calculadora de breakeven y ROAS
// @Tags         calculadoras
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BreakevenRequest  true  "costos y comisiones del producto"
// @Success      200   {object}  dto.BreakevenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/calculadoras/breakeven-roas [post]
func (h *CalculadoraHandler) Breakeven(c *fiber.Ctx) error {
	var in dto.BreakevenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p := nuevoParser()
	entrada := calculadora.EntradaBreakeven{
		ValorDolar:         p.monto(in.ValorDolar),
		Producto:           p.monto(in.Producto),
		Envio:              p.monto(in.Envio),
		Fulfillment:        p.monto(in.Fulfillment),
		CPAEstimado:        p.monto(in.CPAEstimado),
		PrecioVenta:        p.monto(in.PrecioVenta),
		TargetProfitPct:    p.monto(in.TargetProfitPct),
		ComisionCuotasPct:  p.monto(in.ComisionCuotasPct),
		ComisionRetirarPct: p.monto(in.ComisionRetirarPct),
		ComisionTNPct:      p.monto(in.ComisionTNPct),
		ComisionIBPct:      p.monto(in.ComisionIBPct),
	}
	for _, g := range in.GastosExtra {
		entrada.GastosExtra = append(entrada.GastosExtra, p.monto(g))
	}
	if p.err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: p.err.Error()})
	}
	r, err := calculadora.BreakevenROAS(entrada)
	if err != nil {
		return calculadoraError(c, err)
	}
	return c.JSON(dto.BreakevenResponse{
		TotalComisiones:   montoDual(r.TotalComisiones),
		GastosExtra:       montoDual(r.GastosExtra),
		CostosSinCPA:      montoDual(r.CostosSinCPA),
		TotalCostosConCPA: montoDual(r.TotalCostosConCPA),
		UtilidadNeta:      montoDual(r.UtilidadNeta),
		CPABreakeven:      montoDual(r.CPABreakeven),
		CPAObjetivo:       montoDual(r.CPAObjetivo),
		TargetProfit:      montoDual(r.TargetProfit),
		ROASBreakeven:     r.ROASBreakeven.StringFixed(2),
		ROASObjetivo:      r.ROASObjetivo.StringFixed(2),
	})
}

func calculadoraError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func montoDual(m calculadora.MontoDual) dto.MontoDualResponse {
	return dto.MontoDualResponse{
		Pesos: m.Pesos.StringFixed(2),
		USD:   m.USD.StringFixed(2),
	}
}

// parser acumula el primer error de parseo de montos; los campos vacíos valen
// cero (inputs opcionales del front).
type parser struct {
	err error
}

func nuevoParser() *parser { return &parser{} }

func (p *parser) monto(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil && p.err == nil {
		p.err = errors.New("monto inválido: " + s)
	}
	return d
}

func (p *parser) gastoAds(g dto.GastoAdsRequest) calculadora.GastoAds {
	moneda := calculadora.MonedaARS
	if g.Moneda == string(calculadora.MonedaUSD) {
		moneda = calculadora.MonedaUSD
	}
	return calculadora.GastoAds{Monto: p.monto(g.Monto), Moneda: moneda}
}
