package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"smelab/backend/config"
	"smelab/backend/database"
	"smelab/backend/models"
	"smelab/backend/utils"
)

func hash(pw string) string {
	h := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(h[:])
}

func Register(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.Password == "" || req.Password != req.Confirm {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password mismatch"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
			return
		}
		role := "user"
		if req.IsConsultant {
			if cfg.ConsultantCode == "" || req.ConsultantCode != cfg.ConsultantCode {
				c.JSON(http.StatusForbidden, gin.H{"error": "consultant registration requires a valid signup code"})
				return
			}
			role = "consultant"
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var id string
		err := database.Pool.QueryRow(ctx, `INSERT INTO profiles(email,password_hash,first_name,last_name,phone_number,role)
VALUES($1,$2,$3,$4,$5,$6) RETURNING id`, email, hash(req.Password), req.FirstName, req.LastName, req.PhoneNumber, role).Scan(&id)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
			return
		}
		token, _ := utils.GenerateJWT(cfg.JWTSecret, id, role, 24*time.Hour)
		c.JSON(http.StatusOK, gin.H{"token": token, "role": role})
	}
}

func Login(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var id, pw, role string
		err := database.Pool.QueryRow(ctx, `SELECT id, password_hash, role FROM profiles WHERE email=$1`,
			strings.ToLower(strings.TrimSpace(req.Email))).Scan(&id, &pw, &role)
		if err != nil || pw != hash(req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		token, _ := utils.GenerateJWT(cfg.JWTSecret, id, role, 24*time.Hour)
		c.JSON(http.StatusOK, gin.H{"token": token, "role": role})
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		p, err := profileByID(ctx, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}
