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

// BookConsultation schedules a growth session and completes the journey's
// growth step for formalization-track businesses.
func BookConsultation() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.ConsultationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		scheduledAt, err := time.Parse("2006-01-02 15:04", req.Date+" "+req.Time)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD and time HH:MM"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var id int64
		err = database.Pool.QueryRow(ctx, `INSERT INTO consultations(user_id, expert_name, topic, scheduled_at, status)
            VALUES($1,'Business Consultant','Growth Strategy',$2,'scheduled') RETURNING id`, uid, scheduledAt).Scan(&id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not book consultation"})
			return
		}

		if b, err := ActiveBusiness(ctx, uid); err == nil {
			_ = CompleteStepByKey(ctx, uid, &b.ID, "growth")
		}
		realtime.Publish(ctx, realtime.Event{Table: "consultations", Action: "insert", UserID: uid, Audience: "consultants"})
		c.JSON(http.StatusOK, gin.H{"id": id, "scheduled_at": scheduledAt, "status": "scheduled"})
	}
}

func ListConsultations() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, user_id, COALESCE(expert_name,''), COALESCE(topic,''), scheduled_at, status, created_at
            FROM consultations WHERE user_id=$1 ORDER BY scheduled_at DESC`, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.Consultation{}
		for rows.Next() {
			var k models.Consultation
			if err := rows.Scan(&k.ID, &k.UserID, &k.ExpertName, &k.Topic, &k.ScheduledAt, &k.Status, &k.CreatedAt); err == nil {
				out = append(out, k)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}
