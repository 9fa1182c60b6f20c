package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aiotlab/webserver_backend/config"
	"github.com/aiotlab/webserver_backend/models"
	"github.com/aiotlab/webserver_backend/utils"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

const moduleName = "auth"

var validate = validator.New()

// normalizeAccount folds the account key the same way on signup and signin
// so lookups never miss on case or stray whitespace.
func normalizeAccount(account string) string {
	return strings.ToUpper(strings.TrimSpace(account))
}

// SignupHandler registers a new user.
func SignupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var input models.NewUser
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}
		if err := validate.Struct(input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "validation failed",
				"errors":  utils.ProcessValidationErrors(err),
			})
			return
		}

		account := normalizeAccount(input.Account)
		db := config.GetDB().WithContext(c.Request.Context())

		var count int64
		if err := db.Model(&models.User{}).Where("account = ?", account).Count(&count).Error; err != nil {
			config.LogError(logger, moduleName, "SignupHandler", "check account uniqueness", account, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "signup failed"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "account already exists"})
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			config.LogError(logger, moduleName, "SignupHandler", "hash password", account, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "signup failed"})
			return
		}

		user := models.User{
			Account:  account,
			Password: string(hashed),
			Name:     strings.TrimSpace(input.Name),
			Email:    strings.TrimSpace(input.Email),
		}
		if input.Birthday != "" {
			if birthday, err := time.Parse("2006-01-02", input.Birthday); err == nil {
				user.Birthday = &birthday
			}
		}

		if err := db.Create(&user).Error; err != nil {
			if utils.IsDuplicateKeyErr(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "account already exists"})
				return
			}
			config.LogError(logger, moduleName, "SignupHandler", "insert user", account, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "signup failed"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "id": user.ID})
	}
}

type signinInput struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SigninHandler authenticates and issues a bearer token. Unknown account and
// wrong password answer identically.
func SigninHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var input signinInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
			return
		}

		account := normalizeAccount(input.Account)
		db := config.GetDB().WithContext(c.Request.Context())

		var user models.User
		err := db.Where("account = ?", account).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid account or password"})
			return
		} else if err != nil {
			config.LogError(logger, moduleName, "SigninHandler", "lookup user", account, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "signin failed"})
			return
		}

		if err := utils.ComparePassword(user.Password, input.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid account or password"})
			return
		}

		token, err := utils.JwtGenerate(user.ID, user.Account)
		if err != nil {
			config.LogError(logger, moduleName, "SigninHandler", "issue token", account, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "signin failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   token,
			"user":    gin.H{"id": user.ID, "account": user.Account, "name": user.Name},
		})
	}
}
