package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smelab/backend/database"
	"smelab/backend/models"
)

func GetProfile() gin.HandlerFunc {
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

func UpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.ProfileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := database.Pool.Exec(ctx, `UPDATE profiles SET first_name=$1, last_name=$2,
            phone_number=$3, display_name=$4 WHERE id=$5`,
			req.FirstName, req.LastName, req.PhoneNumber, req.DisplayName, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}
		p, err := profileByID(ctx, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// SetBusinessType records the new/old choice. The choice is permanent: the
// launch journey is seeded from it, so switching later would orphan the
// checklist.
func SetBusinessType() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.BusinessTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.Choice != "new" && req.Choice != "old" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "choice must be 'new' or 'old'"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		p, err := profileByID(ctx, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		if p.BusinessType != nil && *p.BusinessType != req.Choice {
			c.JSON(http.StatusConflict, gin.H{"error": "business type already chosen"})
			return
		}
		if p.BusinessType == nil {
			if _, err := database.Pool.Exec(ctx, `UPDATE profiles SET business_type=$1 WHERE id=$2`, req.Choice, uid); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save choice"})
				return
			}
		}
		if err := EnsureChecklist(ctx, database.Pool, uid, req.Choice, nil); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not initialize checklist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"business_type": req.Choice})
	}
}
