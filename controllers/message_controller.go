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

// GetConversation returns the two-party thread in chronological order.
func GetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		peer := c.Param("peerID")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, sender_id, receiver_id, content, created_at FROM messages
            WHERE (sender_id=$1 AND receiver_id=$2) OR (sender_id=$2 AND receiver_id=$1)
            ORDER BY created_at ASC`, uid, peer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.Message{}
		for rows.Next() {
			var m models.Message
			if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt); err == nil {
				out = append(out, m)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func SendMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if strings.TrimSpace(req.Content) == "" || req.ReceiverID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receiver and content required"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var m models.Message
		err := database.Pool.QueryRow(ctx, `INSERT INTO messages(sender_id, receiver_id, content)
            VALUES($1,$2,$3) RETURNING id, sender_id, receiver_id, content, created_at`,
			uid, req.ReceiverID, req.Content).
			Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
			return
		}
		realtime.Publish(ctx, realtime.Event{Table: "messages", Action: "insert", UserID: req.ReceiverID})
		c.JSON(http.StatusOK, m)
	}
}
