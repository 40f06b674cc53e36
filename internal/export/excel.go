package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderExcel renders the invoice as a single-sheet xlsx workbook.
func RenderExcel(doc InvoiceDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Invoice"
	f.SetSheetName(f.GetSheetName(0), sheet)

	setCells := func(cells map[string]any) error {
		for cell, value := range cells {
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
		return nil
	}

	header := map[string]any{
		"A1": "Invoice",
		"B1": doc.Invoice.InvoiceNumber,
		"A2": "Client",
		"B2": doc.Client.Name,
		"A3": "Issued",
		"B3": doc.Invoice.DateIssued.Format("2006-01-02"),
		"A4": "Due",
		"B4": doc.Invoice.DueDate.Format("2006-01-02"),
		"A5": "Status",
		"B5": string(doc.Invoice.Status),

		"A7": "Description",
		"B7": "Quantity",
		"C7": "Unit Price",
		"D7": "Total",
	}
	if err := setCells(header); err != nil {
		return nil, fmt.Errorf("failed to write invoice header: %w", err)
	}

	row := 8
	for _, it := range doc.Items {
		qty, _ := it.Quantity.Float64()
		unit, _ := it.UnitPrice.Float64()
		total, _ := it.Total.Float64()
		cells := map[string]any{
			fmt.Sprintf("A%d", row): it.Description,
			fmt.Sprintf("B%d", row): qty,
			fmt.Sprintf("C%d", row): unit,
			fmt.Sprintf("D%d", row): total,
		}
		if err := setCells(cells); err != nil {
			return nil, fmt.Errorf("failed to write invoice item row: %w", err)
		}
		row++
	}

	row++
	subtotal, _ := doc.Invoice.Subtotal.Float64()
	tax, _ := doc.Invoice.Tax.Float64()
	grand, _ := doc.Invoice.Total.Float64()
	totals := map[string]any{
		fmt.Sprintf("C%d", row):   "Subtotal",
		fmt.Sprintf("D%d", row):   subtotal,
		fmt.Sprintf("C%d", row+1): "Tax",
		fmt.Sprintf("D%d", row+1): tax,
		fmt.Sprintf("C%d", row+2): "Total",
		fmt.Sprintf("D%d", row+2): grand,
	}
	if err := setCells(totals); err != nil {
		return nil, fmt.Errorf("failed to write invoice totals: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "D", 14); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice workbook: %w", err)
	}
	return buf.Bytes(), nil
}
