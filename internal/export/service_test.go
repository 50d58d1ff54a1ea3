package export

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/claimlens/estimate-ledger/constants"
	"github.com/claimlens/estimate-ledger/internal/ledger"
	"github.com/claimlens/estimate-ledger/internal/moneyline"
	"github.com/claimlens/estimate-ledger/internal/pipeline"
)

func sampleResult() *pipeline.DocumentResult {
	lines := []moneyline.MoneyLine{
		{ID: 0, RawLineNo: 3, Text: "1. Remove carpet & pad 375.00", Amount: decimal.RequireFromString("375.00")},
		{ID: 1, RawLineNo: 4, Text: "2. Paint walls 352.00", Amount: decimal.RequireFromString("352.00")},
	}
	bucketMap := map[int]constants.Bucket{
		0: constants.FlooringCarpet,
		1: constants.PaintingInterior,
	}
	led := ledger.SumByBucket(lines, bucketMap)
	return &pipeline.DocumentResult{
		Role:       constants.RoleInsurance,
		Filename:   "estimate.pdf",
		MoneyLines: lines,
		BucketMap:  bucketMap,
		Ledger:     led,
		Ordered:    led.OrderedTotals(),
	}
}

func TestExportLedgerXLSX(t *testing.T) {
	svc := NewService(nil)

	data, err := svc.ExportLedgerXLSX([]*pipeline.DocumentResult{sampleResult()})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ledger")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per non-zero bucket")
	assert.Equal(t, []string{"Document", "Role", "Bucket", "Total"}, rows[0])

	// taxonomy order: painting before flooring
	assert.Equal(t, "painting_interior", rows[1][2])
	assert.Equal(t, "$352.00", rows[1][3])
	assert.Equal(t, "flooring_carpet", rows[2][2])
	assert.Equal(t, "$375.00", rows[2][3])

	lineRows, err := f.GetRows("Lines")
	require.NoError(t, err)
	require.Len(t, lineRows, 3)
	assert.Equal(t, "estimate.pdf", lineRows[1][0])
	assert.Equal(t, "375.00", lineRows[1][4])
}

func TestExportLedgerXLSXEmpty(t *testing.T) {
	svc := NewService(nil)

	data, err := svc.ExportLedgerXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Ledger")
	require.NoError(t, err)
	assert.Len(t, rows, 1, "header only")
}
