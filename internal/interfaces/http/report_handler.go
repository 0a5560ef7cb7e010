package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
)

// ReportHandler expone el informe general en JSON y PDF (protegido).
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// General godoc
// @Summary      Informe general
// @Description  Stock por categoría y artículo con total de movimientos, consistencia y valorización.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Response{data=dto.GeneralReportDTO}
// @Router       /api/reports/general [get]
func (h *ReportHandler) General(c *fiber.Ctx) error {
	out, err := h.uc.General(c.UserContext())
	if err != nil {
		return writeError(c, "reports.general", err)
	}
	return c.JSON(dto.OK("", out))
}

// GeneralPDF godoc
// @Summary      Informe general en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/general/pdf [get]
func (h *ReportHandler) GeneralPDF(c *fiber.Ctx) error {
	body, err := h.uc.GeneralPDF(c.UserContext())
	if err != nil {
		return writeError(c, "reports.general_pdf", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="informe-general.pdf"`)
	return c.Send(body)
}
