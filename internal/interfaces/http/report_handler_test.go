package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	apphttp "github.com/jhoicas/kardex-api/internal/interfaces/http"
)

type stubReportRepo struct{}

func (stubReportRepo) GeneralReport(context.Context) ([]entity.ReportRow, error) {
	return []entity.ReportRow{{CategoryID: "c1", CategoryName: "Aseo"}}, nil
}

func (stubReportRepo) MovementsChronological(context.Context) ([]entity.Movement, error) {
	return nil, nil
}

type stubPDF struct{}

func (stubPDF) Generate(*dto.GeneralReportDTO) ([]byte, error) { return []byte("%PDF-1.7 informe"), nil }

func newReportApp() *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ReportUC:  usecase.NewReportUseCase(stubReportRepo{}, stubPDF{}),
		JWTSecret: testJWTSecret,
	})
	return app
}

func TestReports_GeneralJSON(t *testing.T) {
	status, env := call(t, newReportApp(), http.MethodGet, "/api/reports/general", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"nombre_categoria":"Aseo"`)
}

func TestReports_GeneralPDF(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/reports/general/pdf", nil)
	req.Header.Set("Authorization", bearer(t))
	resp, err := newReportApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.7 informe", string(body))
}
