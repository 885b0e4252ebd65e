package http

import (
	"errors"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/facil-uno/facil-api/internal/application/dto"
	approtulos "github.com/facil-uno/facil-api/internal/application/rotulos"
	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/rotulos"
)

// maxArchivo límite de tamaño por archivo subido (PDF o planilla).
const maxArchivo = 20 << 20 // 20 MB

// RotulosHandler maneja el flujo de rótulos: análisis y generación.
type RotulosHandler struct {
	uc *approtulos.UseCase
}

// NewRotulosHandler construye el handler de rótulos.
func NewRotulosHandler(uc *approtulos.UseCase) *RotulosHandler {
	return &RotulosHandler{uc: uc}
}

// AnalizarPDF godoc
// @Summary      Analizar un PDF de rótulos: número de orden por página
// @Tags         rotulos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        pdf  formData  file  true  "PDF de rótulos"
// @Success      200  {object}  dto.AnalisisPDFResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/rotulos/analizar-pdf [post]
func (h *RotulosHandler) AnalizarPDF(c *fiber.Ctx) error {
	data, err := leerArchivo(c, "pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	out, err := h.uc.AnalizarPDF(c.Context(), data)
	if err != nil {
		return rotulosError(c, err)
	}
	return c.JSON(out)
}

// AnalizarCSV godoc
// @Summary      Analizar la planilla de pedidos: encabezados y columnas detectadas
// @Tags         rotulos
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        csv  formData  file  true  "planilla de pedidos"
// @Success      200  {object}  dto.AnalisisCSVResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/rotulos/analizar-csv [post]
func (h *RotulosHandler) AnalizarCSV(c *fiber.Ctx) error {
	data, err := leerArchivo(c, "csv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	out, err := h.uc.AnalizarCSV(c.Context(), data)
	if err != nil {
		return rotulosError(c, err)
	}
	return c.JSON(out)
}

// Generar godoc
// @Summary      Generar el PDF de rótulos anotado con los SKUs de cada orden
// @Description  Cruza el PDF y la planilla por número interno de orden, estampa
// @Description  los SKUs en cada rótulo y anexa la hoja resumen. Devuelve el
// @Description  PDF; los metadatos quedan en el historial.
// @Tags         rotulos
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        pdf        formData  file    true   "PDF de rótulos"
// @Param        csv        formData  file    true   "planilla de pedidos"
// @Param        col_sku    formData  int     false  "índice de columna SKU (auto si falta)"
// @Param        col_orden  formData  int     false  "índice de columna orden"
// @Param        col_cant   formData  int     false  "índice de columna cantidad"
// @Param        font_size  formData  number  false  "tamaño de fuente base"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/rotulos/generar [post]
func (h *RotulosHandler) Generar(c *fiber.Ctx) error {
	pdfData, err := leerArchivo(c, "pdf")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	csvData, err := leerArchivo(c, "csv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	nombre := "rotulos.pdf"
	if f, err := c.FormFile("pdf"); err == nil && f.Filename != "" {
		nombre = f.Filename
	}

	op := approtulos.OpcionesAuto()
	op.Columnas = rotulos.Columnas{
		SKU:      formInt(c, "col_sku"),
		Orden:    formInt(c, "col_orden"),
		Cantidad: formInt(c, "col_cant"),
	}
	if v, err := strconv.ParseFloat(c.FormValue("font_size"), 64); err == nil && v > 0 {
		op.FontSize = v
	}

	salida, meta, err := h.uc.Generar(c.Context(), GetUserID(c), GetUsername(c), nombre, pdfData, csvData, op)
	if err != nil {
		return rotulosError(c, err)
	}
	c.Set("X-Paginas-Anotadas", strconv.Itoa(meta.PaginasAnotadas))
	c.Set("X-Despachos", strconv.Itoa(meta.Despachos))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(salida)
}

func rotulosError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrPDFInvalido) || errors.Is(err, domain.ErrCSVInvalido) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// leerArchivo lee un archivo del form multipart con tope de tamaño.
func leerArchivo(c *fiber.Ctx, campo string) ([]byte, error) {
	fh, err := c.FormFile(campo)
	if err != nil {
		return nil, errors.New("falta el archivo '" + campo + "'")
	}
	if fh.Size > maxArchivo {
		return nil, errors.New("el archivo '" + campo + "' supera el límite de 20 MB")
	}
	return leerMultipart(fh)
}

func leerMultipart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// formInt devuelve el valor entero de un campo del form, o -1 si falta o no
// parsea (para los índices de columna, -1 pide autodetección).
func formInt(c *fiber.Ctx, campo string) int {
	v, err := strconv.Atoi(c.FormValue(campo))
	if err != nil {
		return -1
	}
	return v
}
