package northwind

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/datatable"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/aiotlab/webserver_backend/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var validate = validator.New()

// OrderGridHandler is the DataTables server-side source for the order list.
func OrderGridHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := datatable.BindRequest(c)
		resp, err := datatable.Execute(c.Request.Context(), config.GetDB(), req, orderDescriptor())
		if err != nil {
			config.LogError(config.GetLogger(), "northwind", "OrderGridHandler", "datatable.Execute", req, err)
		}
		datatable.Respond(c, resp, err)
	}
}

func CustomerLookupHandler() gin.HandlerFunc {
	return lookupHandler(customerLookupDescriptor)
}

func EmployeeLookupHandler() gin.HandlerFunc {
	return lookupHandler(employeeLookupDescriptor)
}

func ProductLookupHandler() gin.HandlerFunc {
	return lookupHandler(productLookupDescriptor)
}

func lookupHandler(desc func() datatable.LookupDescriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		term := c.Query("term")
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(config.SearchLimit)))

		resp, err := datatable.Lookup(c.Request.Context(), config.GetDB(), term, page, pageSize, desc())
		if err != nil {
			config.LogError(config.GetLogger(), "northwind", "lookupHandler", "datatable.Lookup", term, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// CreateOrderHandler writes the order master and its details in one
// transaction; either everything lands or nothing does.
func CreateOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := validate.Struct(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "validation failed",
				"errors":  utils.ProcessValidationErrors(err),
			})
			return
		}

		db := config.GetDB().WithContext(c.Request.Context())
		if err := validateOrderReferences(db, &input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		order := models.Order{
			CustomerID:   input.CustomerID,
			EmployeeID:   input.EmployeeID,
			OrderDate:    input.OrderDate,
			RequiredDate: input.RequiredDate,
			Freight:      input.Freight,
			ShipName:     input.ShipName,
			ShipAddress:  input.ShipAddress,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			return createOrderDetails(tx, order.ID, input.Details)
		})
		if err != nil {
			config.LogError(config.GetLogger(), "northwind", "CreateOrderHandler", "db.Transaction", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order created", "id": order.ID})
	}
}

// EditOrderHandler replaces the order's details wholesale: delete old rows,
// insert the submitted set, all inside the same transaction as the master
// update.
func EditOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
			return
		}

		var input models.NewOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := validate.Struct(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "validation failed",
				"errors":  utils.ProcessValidationErrors(err),
			})
			return
		}

		db := config.GetDB().WithContext(c.Request.Context())
		if err := validateOrderReferences(db, &input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, id).Error; err != nil {
				return err
			}

			order.CustomerID = input.CustomerID
			order.EmployeeID = input.EmployeeID
			order.OrderDate = input.OrderDate
			order.RequiredDate = input.RequiredDate
			order.Freight = input.Freight
			order.ShipName = input.ShipName
			order.ShipAddress = input.ShipAddress
			if err := tx.Save(&order).Error; err != nil {
				return err
			}

			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderDetail{}).Error; err != nil {
				return err
			}
			return createOrderDetails(tx, order.ID, input.Details)
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
			return
		}
		if err != nil {
			config.LogError(config.GetLogger(), "northwind", "EditOrderHandler", "db.Transaction", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order updated"})
	}
}

func DeleteOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
			return
		}

		db := config.GetDB().WithContext(c.Request.Context())
		err = db.Transaction(func(tx *gorm.DB) error {
			var order models.Order
			if err := tx.First(&order, id).Error; err != nil {
				return err
			}
			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderDetail{}).Error; err != nil {
				return err
			}
			return tx.Delete(&order).Error
		})
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
			return
		}
		if err != nil {
			config.LogError(config.GetLogger(), "northwind", "DeleteOrderHandler", "db.Transaction", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete order"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "order deleted"})
	}
}

// OrderDetailHandler loads one order with every association resolved up
// front. No lazy fetches: one Preload pass per association.
func OrderDetailHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
			return
		}

		db := config.GetDB().WithContext(c.Request.Context())
		var order models.Order
		err = db.
			Preload("Customer").
			Preload("Employee").
			Preload("Details").
			Preload("Details.Product").
			First(&order, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "order not found"})
			return
		}
		if err != nil {
			config.LogError(config.GetLogger(), "northwind", "OrderDetailHandler", "First", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func createOrderDetails(tx *gorm.DB, orderID int, details []models.NewOrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	rows := make([]models.OrderDetail, 0, len(details))
	for _, d := range details {
		rows = append(rows, models.OrderDetail{
			OrderID:   orderID,
			ProductID: d.ProductID,
			UnitPrice: d.UnitPrice,
			Quantity:  d.Quantity,
			Discount:  d.Discount,
		})
	}
	return tx.Create(&rows).Error
}

// validateOrderReferences checks foreign targets in bulk before any write.
func validateOrderReferences(db *gorm.DB, input *models.NewOrder) error {
	if input.CustomerID != nil {
		var count int64
		if err := db.Model(&models.Customer{}).Where("id = ?", *input.CustomerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("customer not found")
		}
	}
	if input.EmployeeID != nil {
		var count int64
		if err := db.Model(&models.Employee{}).Where("id = ?", *input.EmployeeID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("employee not found")
		}
	}
	if len(input.Details) > 0 {
		ids := make([]int, 0, len(input.Details))
		seen := make(map[int]bool, len(input.Details))
		for _, d := range input.Details {
			if seen[d.ProductID] {
				return errors.New("duplicate product in order details")
			}
			seen[d.ProductID] = true
			ids = append(ids, d.ProductID)
		}
		var count int64
		if err := db.Model(&models.Product{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return err
		}
		if count != int64(len(ids)) {
			return errors.New("product not found")
		}
	}
	return nil
}
