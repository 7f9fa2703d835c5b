package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smelab/backend/database"
	"smelab/backend/models"
	"smelab/backend/realtime"
)

// CompleteComplianceSetup records the initial compliance submission and
// completes the journey's compliance step. Idempotent per business.
func CompleteComplianceSetup() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req struct {
			DocumentURL string `json:"document_url"`
			Remarks     string `json:"remarks"`
		}
		_ = c.ShouldBindJSON(&req)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b, err := ActiveBusiness(ctx, uid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "create a business first"})
			return
		}

		var exists bool
		if err := database.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM compliance_records
            WHERE business_id=$1 AND compliance_type='initial_setup')`, b.ID).Scan(&exists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if !exists {
			var docURL *string
			if req.DocumentURL != "" {
				docURL = &req.DocumentURL
			}
			var id string
			err := database.Pool.QueryRow(ctx, `INSERT INTO compliance_records(business_id, compliance_type, status, remarks, document_url)
                VALUES($1,'initial_setup','pending',$2,$3) RETURNING id`, b.ID, req.Remarks, docURL).Scan(&id)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record compliance"})
				return
			}
			realtime.Publish(ctx, realtime.Event{Table: "compliance_records", Action: "insert", RowID: id, Audience: "consultants"})
		}
		if err := CompleteStepByKey(ctx, uid, &b.ID, "compliance"); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update checklist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "pending"})
	}
}

func ListCompliance() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT cr.id, cr.business_id, cr.compliance_type, cr.status,
            cr.due_date, COALESCE(cr.remarks,''), cr.document_url, cr.created_at
            FROM compliance_records cr JOIN businesses b ON b.id = cr.business_id
            WHERE b.user_id=$1 ORDER BY cr.created_at DESC`, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.ComplianceRecord{}
		for rows.Next() {
			var r models.ComplianceRecord
			if err := rows.Scan(&r.ID, &r.BusinessID, &r.ComplianceType, &r.Status,
				&r.DueDate, &r.Remarks, &r.DocumentURL, &r.CreatedAt); err == nil {
				out = append(out, r)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}
