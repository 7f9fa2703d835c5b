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

// ListAssets returns the user's design library. CAC certificates live on the
// business row, so they are surfaced as synthesized document entries that the
// delete endpoint refuses to touch.
func ListAssets() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		filter := c.Query("type")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rows, err := database.Pool.Query(ctx, `SELECT id, user_id, business_id, type, asset_url, COALESCE(title,''), created_at
            FROM assets WHERE user_id=$1 ORDER BY created_at DESC`, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()

		out := []models.Asset{}
		for rows.Next() {
			var a models.Asset
			if err := rows.Scan(&a.ID, &a.UserID, &a.BusinessID, &a.Type, &a.AssetURL, &a.Title, &a.CreatedAt); err == nil {
				a.Deletable = true
				out = append(out, a)
			}
		}

		certRows, err := database.Pool.Query(ctx, `SELECT id, name, cac_certificate_url, updated_at FROM businesses
            WHERE user_id=$1 AND cac_certificate_url IS NOT NULL`, uid)
		if err == nil {
			defer certRows.Close()
			for certRows.Next() {
				var bid, name, url string
				var ts time.Time
				if err := certRows.Scan(&bid, &name, &url, &ts); err == nil {
					out = append(out, models.Asset{
						ID:         "cac-" + bid,
						UserID:     uid,
						BusinessID: &bid,
						Type:       "document",
						AssetURL:   url,
						Title:      name + " CAC Certificate",
						CreatedAt:  ts,
						Deletable:  false,
					})
				}
			}
		}

		if filter != "" {
			filtered := out[:0]
			for _, a := range out {
				if a.Type == filter {
					filtered = append(filtered, a)
				}
			}
			out = filtered
		}
		c.JSON(http.StatusOK, out)
	}
}

func DeleteAsset() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		id := c.Param("id")
		if len(id) > 4 && id[:4] == "cac-" {
			c.JSON(http.StatusForbidden, gin.H{"error": "certificates cannot be deleted"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tag, err := database.Pool.Exec(ctx, `DELETE FROM assets WHERE id=$1 AND user_id=$2`, id, uid)
		if err != nil || tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "asset not found"})
			return
		}
		realtime.Publish(ctx, realtime.Event{Table: "assets", Action: "delete", UserID: uid, RowID: id})
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
