package controllers

import (
	"io"

	"github.com/gin-gonic/gin"

	"smelab/backend/realtime"
)

// Events streams change notifications for the caller over SSE. Consultants
// additionally receive the review-desk feed.
func Events() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		consultant := c.GetString("role") == "consultant"

		ch, cancel := realtime.Default().Subscribe(uid, consultant)
		defer cancel()

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case ev, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent("change", ev)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
