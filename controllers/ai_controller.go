package controllers

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"

	"smelab/backend/config"
	"smelab/backend/database"
	"smelab/backend/realtime"
	"smelab/backend/utils"
	"smelab/backend/workflow"
)

type generateRequest struct {
	AssetType   string `json:"asset_type"` // 'logo' | 'flyer'
	Description string `json:"description"`
}

// GenerateDesigns produces the three style variants for the active business.
// Results stay client-side; nothing persists until an explicit save.
func GenerateDesigns(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req generateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if req.AssetType != "logo" && req.AssetType != "flyer" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asset_type must be 'logo' or 'flyer'"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		b, err := ActiveBusiness(ctx, uid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "create a business first"})
			return
		}
		p, err := profileByID(ctx, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "profile not found"})
			return
		}
		businessType := "new"
		if p.BusinessType != nil {
			businessType = *p.BusinessType
		}

		client, err := utils.NewAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ai client unavailable"})
			return
		}
		defer client.Close()

		res := utils.GenerateDesigns(ctx, client, cfg.GeminiImageModel, req.AssetType, b.Name, businessType, req.Description)
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

type saveDesignRequest struct {
	AssetType string `json:"asset_type"` // 'logo' | 'flyer'
	Kind      string `json:"kind"`       // 'raster' | 'vector'
	Data      string `json:"data"`       // base64 when raster
	Mime      string `json:"mime"`
	SVG       string `json:"svg"`
	Title     string `json:"title"`
}

// SaveDesign uploads a chosen variant to storage, records the asset and, for
// logos, promotes it to the business identity. Completes the branding step
// keyed by business type.
func SaveDesign(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req saveDesignRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		var data []byte
		contentType := req.Mime
		filename := req.AssetType + ".png"
		switch req.Kind {
		case "vector":
			if !strings.HasPrefix(strings.TrimSpace(req.SVG), "<svg") {
				c.JSON(http.StatusBadRequest, gin.H{"error": "svg payload required"})
				return
			}
			data = []byte(req.SVG)
			contentType = "image/svg+xml"
			filename = req.AssetType + ".svg"
		case "raster":
			decoded, err := base64.StdEncoding.DecodeString(req.Data)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid base64 data"})
				return
			}
			data = decoded
			if contentType == "" {
				contentType = "image/png"
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be 'raster' or 'vector'"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		b, err := ActiveBusiness(ctx, uid)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "create a business first"})
			return
		}

		key := utils.ObjectPath("designs", uid, filename)
		url, err := utils.UploadBlob(ctx, cfg, key, contentType, data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}

		title := req.Title
		if title == "" {
			title = b.Name + " " + req.AssetType
		}
		var assetID string
		err = database.Pool.QueryRow(ctx, `INSERT INTO assets(user_id, business_id, type, asset_url, title)
            VALUES($1,$2,$3,$4,$5) RETURNING id`, uid, b.ID, req.AssetType, url, title).Scan(&assetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record asset"})
			return
		}

		if req.AssetType == "logo" {
			_, _ = database.Pool.Exec(ctx, `UPDATE businesses SET logo_url=$1, has_logo=true, updated_at=now() WHERE id=$2`, url, b.ID)
		}

		p, err := profileByID(ctx, uid)
		businessType := "new"
		if err == nil && p.BusinessType != nil {
			businessType = *p.BusinessType
		}
		_ = CompleteStepByKey(ctx, uid, &b.ID, workflow.BrandingStepKey(businessType))
		realtime.Publish(ctx, realtime.Event{Table: "assets", Action: "insert", UserID: uid, RowID: assetID})

		c.JSON(http.StatusOK, gin.H{"asset_id": assetID, "asset_url": url})
	}
}

// AnalyzeIdea scores a free-form business idea. Parse failure surfaces as a
// gateway error instead of a half-filled result.
func AnalyzeIdea(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Idea string `json:"idea"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Idea) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "idea required"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, err := utils.NewAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ai client unavailable"})
			return
		}
		defer client.Close()

		text, err := utils.GenerateText(ctx, client, cfg.GeminiModel, genai.Text(utils.AnalysisPrompt(req.Idea)))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "analysis service failed"})
			return
		}
		analysis, err := utils.ParseAnalysis(text)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not parse analysis"})
			return
		}
		c.JSON(http.StatusOK, analysis)
	}
}
