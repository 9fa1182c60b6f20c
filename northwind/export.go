package northwind

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/datatable"

	"github.com/gin-gonic/gin"
)

// ExportOrdersHandler writes the order list as an xlsx attachment. The
// searchValue query parameter applies the same filter as the order grid, so
// exporting a filtered grid and exporting with the same term yield the same
// rows.
func ExportOrdersHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()
		db := config.GetDB().WithContext(c.Request.Context())
		desc := orderDescriptor()

		var rows []OrderRow
		query := datatable.ApplySearch(desc.Base(db), desc, c.Query("searchValue"))
		if err := query.Select(orderRowSelect).Order("orders.id DESC").Scan(&rows).Error; err != nil {
			config.LogError(logger, "northwind", "ExportOrdersHandler", "query order list", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "export failed"})
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"OrderID", "Customer", "Employee", "OrderDate", "Freight", "TotalAmount"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		for i, row := range rows {
			rowNo := fmt.Sprint(i + 2)
			orderDate := ""
			if row.OrderDate != nil {
				orderDate = row.OrderDate.Format("2006-01-02")
			}
			f.SetCellValue(sheet, "A"+rowNo, row.OrderID)
			f.SetCellValue(sheet, "B"+rowNo, row.CustomerName)
			f.SetCellValue(sheet, "C"+rowNo, row.EmployeeName)
			f.SetCellValue(sheet, "D"+rowNo, orderDate)
			f.SetCellValue(sheet, "E"+rowNo, row.Freight.String())
			f.SetCellValue(sheet, "F"+rowNo, row.TotalAmount.String())
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="orders.xlsx"`)
		if err := f.Write(c.Writer); err != nil {
			config.LogError(logger, "northwind", "ExportOrdersHandler", "write workbook", nil, err)
		}
	}
}
