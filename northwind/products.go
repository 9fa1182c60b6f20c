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
	"gorm.io/gorm"
)

func ProductGridHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := datatable.BindRequest(c)
		resp, err := datatable.Execute(c.Request.Context(), config.GetDB(), req, productDescriptor())
		if err != nil {
			config.LogError(config.GetLogger(), "northwind", "ProductGridHandler", "datatable.Execute", req, err)
		}
		datatable.Respond(c, resp, err)
	}
}

func CreateProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProduct
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
		if err := validateProductReferences(db, &input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		discontinued := input.Discontinued
		product := models.Product{
			ProductName:     input.ProductName,
			SupplierID:      input.SupplierID,
			CategoryID:      input.CategoryID,
			QuantityPerUnit: input.QuantityPerUnit,
			UnitPrice:       input.UnitPrice,
			UnitsInStock:    input.UnitsInStock,
			Discontinued:    &discontinued,
		}
		if err := db.Create(&product).Error; err != nil {
			config.LogError(config.GetLogger(), "northwind", "CreateProductHandler", "Create", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "product created", "id": product.ID})
	}
}

func UpdateProductHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "product not found"})
			return
		}

		var input models.NewProduct
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
		if err := validateProductReferences(db, &input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "product not found"})
				return
			}
			config.LogError(config.GetLogger(), "northwind", "UpdateProductHandler", "First", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		discontinued := input.Discontinued
		product.ProductName = input.ProductName
		product.SupplierID = input.SupplierID
		product.CategoryID = input.CategoryID
		product.QuantityPerUnit = input.QuantityPerUnit
		product.UnitPrice = input.UnitPrice
		product.UnitsInStock = input.UnitsInStock
		product.Discontinued = &discontinued

		if err := db.Save(&product).Error; err != nil {
			config.LogError(config.GetLogger(), "northwind", "UpdateProductHandler", "Save", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update product"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "product updated"})
	}
}

func validateProductReferences(db *gorm.DB, input *models.NewProduct) error {
	if input.CategoryID != nil {
		var count int64
		if err := db.Model(&models.Category{}).Where("id = ?", *input.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("category not found")
		}
	}
	if input.SupplierID != nil {
		var count int64
		if err := db.Model(&models.Supplier{}).Where("id = ?", *input.SupplierID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errors.New("supplier not found")
		}
	}
	return nil
}
