package dto

// Los montos de las calculadoras viajan como string y se parsean a decimal en
// el handler: el front ya manda los inputs como texto y así se evita el
// float64 intermedio de JSON.

// GastoAdsRequest un gasto publicitario con su moneda (ARS o USD).
type GastoAdsRequest struct {
	Monto  string `json:"monto"`
	Moneda string `json:"moneda" validate:"omitempty,oneof=ARS USD"`
}

// RentabilidadRequest entrada de la calculadora de rentabilidad diaria.
type RentabilidadRequest struct {
	Facturacion    string          `json:"facturacion" validate:"required"`
	IngresoReal    string          `json:"ingreso_real" validate:"required"`
	GastosStock    string          `json:"gastos_stock"`
	GastosEnvio    string          `json:"gastos_envio"`
	GastosMeta     GastoAdsRequest `json:"gastos_meta"`
	GastosTiktok   GastoAdsRequest `json:"gastos_tiktok"`
	GastosGoogle   GastoAdsRequest `json:"gastos_google"`
	CotizacionUSDT string          `json:"cotizacion_usdt"`
}

// RentabilidadResponse resultado del día.
type RentabilidadResponse struct {
	TotalGastosAds         string `json:"total_gastos_ads"`
	TotalGastos            string `json:"total_gastos"`
	TotalAlBolsillo        string `json:"total_al_bolsillo"`
	RentabilidadPorcentaje string `json:"rentabilidad_porcentaje"`
}

// BreakevenRequest entrada de la calculadora de breakeven/ROAS.
type BreakevenRequest struct {
	ValorDolar         string   `json:"valor_dolar" validate:"required"`
	Producto           string   `json:"producto" validate:"required"`
	Envio              string   `json:"envio"`
	Fulfillment        string   `json:"fulfillment"`
	CPAEstimado        string   `json:"cpa_estimado"`
	PrecioVenta        string   `json:"precio_venta" validate:"required"`
	TargetProfitPct    string   `json:"target_profit_pct"`
	ComisionCuotasPct  string   `json:"comision_cuotas_pct"`
	ComisionRetirarPct string   `json:"comision_retirar_pct"`
	ComisionTNPct      string   `json:"comision_tn_pct"`
	ComisionIBPct      string   `json:"comision_ib_pct"`
	GastosExtra        []string `json:"gastos_extra"`
}

// MontoDualResponse un monto en pesos y dólares.
type MontoDualResponse struct {
	Pesos string `json:"pesos"`
	USD   string `json:"usd"`
}

// BreakevenResponse métricas de breakeven y ROAS.
type BreakevenResponse struct {
	TotalComisiones   MontoDualResponse `json:"total_comisiones"`
	GastosExtra       MontoDualResponse `json:"gastos_extra"`
	CostosSinCPA      MontoDualResponse `json:"costos_sin_cpa"`
	TotalCostosConCPA MontoDualResponse `json:"total_costos_con_cpa"`
	UtilidadNeta      MontoDualResponse `json:"utilidad_neta"`
	CPABreakeven      MontoDualResponse `json:"cpa_breakeven"`
	CPAObjetivo       MontoDualResponse `json:"cpa_objetivo"`
	TargetProfit      MontoDualResponse `json:"target_profit"`
	ROASBreakeven     string            `json:"roas_breakeven"`
	ROASObjetivo      string            `json:"roas_objetivo"`
}
