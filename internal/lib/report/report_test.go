package report_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/linemk/storefront/internal/lib/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func testRows() []models.SalesRow {
	createdAt := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	return []models.SalesRow{
		{OrderID: 1, OrderDate: createdAt, UserID: 7, ProductID: 11, Quantity: 2, Price: decimal.RequireFromString("5.99")},
		{OrderID: 1, OrderDate: createdAt, UserID: 7, ProductID: 12, Quantity: 1, Price: decimal.RequireFromString("10.99")},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, testRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"order_id", "order_date", "user_id", "product_id", "quantity", "price", "line_total"}, records[0])
	assert.Equal(t, []string{"1", "2024-05-01 12:30:00", "7", "11", "2", "5.99", "11.98"}, records[1])
	assert.Equal(t, "10.99", records[2][6])
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, nil))
	assert.Equal(t, "order_id,order_date,user_id,product_id,quantity,price,line_total\n", buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, report.FormatXLSX, testRows()))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Sales", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "order_id", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "11", sheet.Rows[1].Cells[3].Value)
	assert.Equal(t, "11.98", sheet.Rows[1].Cells[6].Value)
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, report.Write(&buf, "pdf", testRows()))

	_, _, ok := report.ContentType("pdf")
	assert.False(t, ok)

	contentType, filename, ok := report.ContentType(report.FormatCSV)
	assert.True(t, ok)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "orders.csv", filename)
}
