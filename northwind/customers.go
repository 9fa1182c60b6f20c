package northwind

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/datatable"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/aiotlab/webserver_backend/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NewCustomer struct {
	ID           string `json:"id" validate:"required,len=5,alphanum"`
	CompanyName  string `json:"company_name" validate:"required,max=40"`
	ContactName  string `json:"contact_name" validate:"max=30"`
	ContactTitle string `json:"contact_title" validate:"max=30"`
	Address      string `json:"address" validate:"max=60"`
	City         string `json:"city" validate:"max=15"`
	Country      string `json:"country" validate:"max=15"`
	Phone        string `json:"phone" validate:"max=24"`
}

func customerDescriptor() datatable.Descriptor {
	return datatable.Descriptor{
		Base: func(db *gorm.DB) *gorm.DB {
			return db.Model(&models.Customer{})
		},
		SearchExprs: []string{
			"customers.id",
			"customers.company_name",
			"customers.contact_name",
			"customers.city",
			"customers.country",
		},
		SortMap: map[string]string{
			"customerID":  "customers.id",
			"companyName": "customers.company_name",
			"contactName": "customers.contact_name",
			"city":        "customers.city",
			"country":     "customers.country",
		},
		DefaultSort: "customers.id",
		TieBreak:    "customers.id",
		Scan: func(page *gorm.DB) (interface{}, error) {
			var rows []models.Customer
			err := page.Scan(&rows).Error
			return rows, err
		},
	}
}

func CustomerGridHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		req := datatable.BindRequest(c)
		resp, err := datatable.Execute(c.Request.Context(), config.GetDB(), req, customerDescriptor())
		if err != nil {
			config.LogError(config.GetLogger(), "northwind", "CustomerGridHandler", "datatable.Execute", req, err)
		}
		datatable.Respond(c, resp, err)
	}
}

func CreateCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input NewCustomer
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		input.ID = strings.ToUpper(strings.TrimSpace(input.ID))
		if err := validate.Struct(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "validation failed",
				"errors":  utils.ProcessValidationErrors(err),
			})
			return
		}
		if input.Phone != "" {
			if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "validation failed",
					"errors":  map[string]string{"Phone": "invalid"},
				})
				return
			}
		}

		db := config.GetDB().WithContext(c.Request.Context())

		var count int64
		if err := db.Model(&models.Customer{}).Where("id = ?", input.ID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "customer id already exists"})
			return
		}

		customer := models.Customer{
			ID:           input.ID,
			CompanyName:  input.CompanyName,
			ContactName:  input.ContactName,
			ContactTitle: input.ContactTitle,
			Address:      input.Address,
			City:         input.City,
			Country:      input.Country,
			Phone:        input.Phone,
		}
		if err := db.Create(&customer).Error; err != nil {
			if utils.IsDuplicateKeyErr(err) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "customer id already exists"})
				return
			}
			config.LogError(config.GetLogger(), "northwind", "CreateCustomerHandler", "Create", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to save customer"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "customer created", "id": customer.ID})
	}
}

func UpdateCustomerHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.ToUpper(strings.TrimSpace(c.Param("id")))
		if id == "" {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "customer not found"})
			return
		}

		var input NewCustomer
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		input.ID = id
		if err := validate.Struct(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "validation failed",
				"errors":  utils.ProcessValidationErrors(err),
			})
			return
		}
		if input.Phone != "" {
			if err := utils.ValidatePhoneNumber(input.Phone, utils.CountryCode); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"success": false,
					"message": "validation failed",
					"errors":  map[string]string{"Phone": "invalid"},
				})
				return
			}
		}

		db := config.GetDB().WithContext(c.Request.Context())
		var customer models.Customer
		if err := db.Where("id = ?", id).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "customer not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		customer.CompanyName = input.CompanyName
		customer.ContactName = input.ContactName
		customer.ContactTitle = input.ContactTitle
		customer.Address = input.Address
		customer.City = input.City
		customer.Country = input.Country
		customer.Phone = input.Phone

		if err := db.Save(&customer).Error; err != nil {
			config.LogError(config.GetLogger(), "northwind", "UpdateCustomerHandler", "Save", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update customer"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "customer updated"})
	}
}
