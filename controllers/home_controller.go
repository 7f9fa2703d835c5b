package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smelab/backend/database"
	"smelab/backend/models"
	"smelab/backend/workflow"
)

type journeyStage struct {
	Label     string `json:"label"`
	Completed bool   `json:"completed"`
	Current   bool   `json:"current"`
}

// Home assembles the dashboard landing payload: profile, active business,
// checklist with progress, journey stages and recent assets.
func Home() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		p, err := profileByID(ctx, uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		businessType := ""
		if p.BusinessType != nil {
			businessType = *p.BusinessType
		}

		var business *models.Business
		var businessID *string
		if b, err := ActiveBusiness(ctx, uid); err == nil {
			business = &b
			businessID = &b.ID
		}

		items, err := fetchChecklist(ctx, uid, businessID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if len(items) == 0 && businessType != "" {
			// First visit after picking a type: seed the journey inline.
			if err := EnsureChecklist(ctx, database.Pool, uid, businessType, businessID); err == nil {
				items, _ = fetchChecklist(ctx, uid, businessID)
			}
		}

		completed := 0
		for _, it := range items {
			if it.Status == models.StepStatusCompleted {
				completed++
			}
		}
		progress := workflow.Progress(len(items), completed)
		if business != nil && progress < 10 {
			// Having a business at all counts for something on the meter.
			progress = 10
		}

		c.JSON(http.StatusOK, gin.H{
			"profile":       p,
			"business":      business,
			"checklist":     items,
			"progress":      progress,
			"journey":       journeyStages(businessType, items),
			"recent_assets": recentAssets(ctx, uid, 3),
		})
	}
}

// journeyStages renders the horizontal tracker. New ventures get a
// pre-completed Idea stage ahead of the checklist steps.
func journeyStages(businessType string, items []models.ChecklistItem) []journeyStage {
	stages := []journeyStage{}
	if businessType != "old" {
		stages = append(stages, journeyStage{Label: "Idea", Completed: true})
	}
	for _, it := range items {
		stages = append(stages, journeyStage{Label: it.Title, Completed: it.Status == models.StepStatusCompleted})
	}
	for i := range stages {
		if !stages[i].Completed {
			stages[i].Current = true
			break
		}
	}
	return stages
}

func recentAssets(ctx context.Context, userID string, limit int) []models.Asset {
	out := []models.Asset{}
	rows, err := database.Pool.Query(ctx, `SELECT id, user_id, business_id, type, asset_url, COALESCE(title,''), created_at
        FROM assets WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return out
	}
	defer rows.Close()
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(&a.ID, &a.UserID, &a.BusinessID, &a.Type, &a.AssetURL, &a.Title, &a.CreatedAt); err == nil {
			a.Deletable = true
			out = append(out, a)
		}
	}
	return out
}
