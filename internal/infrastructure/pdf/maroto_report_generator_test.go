package pdf

import (
	"bytes"
	"testing"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999":        "999",
		"25000":      "25.000",
		"1234567.8":  "1.234.568",
		"-1500":      "-1.500",
		"1000000.49": "1.000.000",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerate_DevuelvePDF(t *testing.T) {
	report := &dto.GeneralReportDTO{
		Categories: []dto.ReportCategoryDTO{
			{ID: "c1", Name: "Aseo", Articles: []dto.ReportArticleDTO{}},
			{ID: "c2", Name: "Papelería", Valuation: decimal.NewFromInt(30), Articles: []dto.ReportArticleDTO{
				{ID: "a1", Code: "A-1", Name: "Lápiz", Unit: "UND", Stock: decimal.NewFromInt(10), Consistent: true,
					TotalMovements: 3, AverageCost: decimal.NewFromInt(3), Valuation: decimal.NewFromInt(30)},
				{ID: "a2", Code: "A-2", Name: "Borrador", Unit: "UND", Stock: decimal.NewFromInt(7)},
			}},
		},
		TotalArticles:  2,
		Inconsistent:   1,
		TotalValuation: decimal.NewFromInt(30),
	}

	b, err := NewMarotoReportGenerator("").Generate(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}
