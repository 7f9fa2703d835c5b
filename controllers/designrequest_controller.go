package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smelab/backend/database"
	"smelab/backend/models"
	"smelab/backend/realtime"
)

// CreateDesignRequest files a custom design brief for the consultant team.
func CreateDesignRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.DesignRequestInput
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.RequestType != "logo" && req.RequestType != "flyer" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request_type must be 'logo' or 'flyer'"})
			return
		}
		if strings.TrimSpace(req.Description) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description required"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var businessID *string
		if b, err := ActiveBusiness(ctx, uid); err == nil {
			businessID = &b.ID
		}
		var id string
		err := database.Pool.QueryRow(ctx, `INSERT INTO design_requests(user_id, business_id, request_type, description, status)
            VALUES($1,$2,$3,$4,'pending') RETURNING id`, uid, businessID, req.RequestType, req.Description).Scan(&id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not file request"})
			return
		}
		realtime.Publish(ctx, realtime.Event{Table: "design_requests", Action: "insert", RowID: id, Audience: "consultants"})
		c.JSON(http.StatusOK, gin.H{"id": id, "status": "pending"})
	}
}

func ListDesignRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, user_id, business_id, request_type, COALESCE(description,''), status, created_at
            FROM design_requests WHERE user_id=$1 ORDER BY created_at DESC`, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.DesignRequest{}
		for rows.Next() {
			var d models.DesignRequest
			if err := rows.Scan(&d.ID, &d.UserID, &d.BusinessID, &d.RequestType, &d.Description, &d.Status, &d.CreatedAt); err == nil {
				out = append(out, d)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}
