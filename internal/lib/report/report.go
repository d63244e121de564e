// Package report выгружает отчёт о продажах в CSV и XLSX.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/linemk/storefront/internal/domain/models"
	"github.com/tealeg/xlsx"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	dateLayout = "2006-01-02 15:04:05"
	sheetName  = "Sales"
)

var header = []string{"order_id", "order_date", "user_id", "product_id", "quantity", "price", "line_total"}

// ContentType возвращает MIME-тип и имя файла для формата, ok=false для неизвестного формата
func ContentType(format string) (contentType, filename string, ok bool) {
	switch format {
	case FormatCSV:
		return "text/csv", "orders.csv", true
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "orders.xlsx", true
	}
	return "", "", false
}

// Write пишет отчёт в указанном формате
func Write(w io.Writer, format string, rows []models.SalesRow) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, rows)
	case FormatXLSX:
		return WriteXLSX(w, rows)
	}
	return fmt.Errorf("unsupported report format %q", format)
}

// WriteCSV пишет заголовок и по строке на каждую позицию заказа
func WriteCSV(w io.Writer, rows []models.SalesRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.OrderID, 10),
			r.OrderDate.UTC().Format(dateLayout),
			strconv.FormatInt(r.UserID, 10),
			strconv.FormatInt(r.ProductID, 10),
			strconv.Itoa(r.Quantity),
			r.Price.StringFixed(2),
			r.LineTotal().StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX пишет отчёт одним листом
func WriteXLSX(w io.Writer, rows []models.SalesRow) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		headerRow.AddCell().SetString(h)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().SetInt64(r.OrderID)
		row.AddCell().SetString(r.OrderDate.UTC().Format(dateLayout))
		row.AddCell().SetInt64(r.UserID)
		row.AddCell().SetInt64(r.ProductID)
		row.AddCell().SetInt(r.Quantity)
		row.AddCell().SetFloatWithFormat(r.Price.InexactFloat64(), "0.00")
		row.AddCell().SetFloatWithFormat(r.LineTotal().InexactFloat64(), "0.00")
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}
