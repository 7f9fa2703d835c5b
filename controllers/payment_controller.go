package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smelab/backend/config"
	"smelab/backend/database"
	"smelab/backend/models"
	"smelab/backend/realtime"
	"smelab/backend/workflow"
)

// PayRegistrationFee runs the simulated gateway and, on success, moves the
// business into CAC processing and completes the registration step. The
// consultant review desk gets its own event so new submissions show up live.
func PayRegistrationFee(cfg config.Config) gin.HandlerFunc {
	gate := workflow.PaymentGate{Delay: cfg.PaymentDelay}
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		businessID := c.Param("id")
		var req models.PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.Amount == 0 {
			req.Amount = cfg.RegistrationFee
		}

		ctx, cancel := context.WithTimeout(context.Background(), cfg.PaymentDelay+10*time.Second)
		defer cancel()
		b, err := ownedBusiness(ctx, businessID, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		if b.RegistrationStatus == models.RegStatusProcessingCAC || b.RegistrationStatus == models.RegStatusRegistered {
			c.JSON(http.StatusConflict, gin.H{"error": "registration already submitted"})
			return
		}

		receipt, err := gate.Pay(ctx, req.Amount, req.Method)
		if err != nil {
			if errors.Is(err, workflow.ErrNoPaymentMethod) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment failed"})
			return
		}

		_, err = database.Pool.Exec(ctx, `UPDATE businesses SET registration_status='processing_cac',
            updated_at=now() WHERE id=$1 AND user_id=$2`, businessID, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update business"})
			return
		}
		if err := CompleteStepByKey(ctx, uid, &businessID, "registration"); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update checklist"})
			return
		}
		realtime.Publish(ctx, realtime.Event{Table: "businesses", Action: "update", UserID: uid, RowID: businessID, Status: models.RegStatusProcessingCAC})
		realtime.Publish(ctx, realtime.Event{Table: "businesses", Action: "update", RowID: businessID, Status: models.RegStatusProcessingCAC, Audience: "consultants"})

		c.JSON(http.StatusOK, gin.H{
			"receipt":             receipt,
			"registration_status": models.RegStatusProcessingCAC,
		})
	}
}
