package controllers

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"github.com/jackc/pgx/v5"

	"smelab/backend/config"
	"smelab/backend/database"
	"smelab/backend/realtime"
	"smelab/backend/utils"
	"smelab/backend/workflow"
)

// sessions holds per-user wizard state. The wizard is a short-lived flow, so
// losing it on restart only sends the owner back to step one.
var sessions = struct {
	sync.Mutex
	m map[string]*workflow.OnboardingSession
}{m: map[string]*workflow.OnboardingSession{}}

func session(userID string) *workflow.OnboardingSession {
	sessions.Lock()
	defer sessions.Unlock()
	s, ok := sessions.m[userID]
	if !ok {
		s = workflow.NewOnboardingSession()
		sessions.m[userID] = s
	}
	return s
}

func GetOnboarding() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, session(c.GetString("user_id")))
	}
}

// SaveAnswers merges partial wizard answers into the session without
// advancing. Empty fields leave existing answers untouched.
func SaveAnswers() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session(c.GetString("user_id"))
		var in workflow.OnboardingAnswers
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		if in.BusinessType != "" {
			s.Answers.BusinessType = in.BusinessType
		}
		if in.Goal != "" {
			s.Answers.Goal = in.Goal
		}
		if in.Clients != "" {
			s.Answers.Clients = in.Clients
		}
		if in.Stage != "" {
			s.Answers.Stage = in.Stage
		}
		if in.NameChoice != "" {
			s.Answers.NameChoice = in.NameChoice
		}
		if in.OwnBusinessName != "" {
			s.Answers.OwnBusinessName = in.OwnBusinessName
		}
		c.JSON(http.StatusOK, s)
	}
}

func NextStep() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session(c.GetString("user_id"))
		if err := s.Next(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

func PrevStep() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session(c.GetString("user_id"))
		if err := s.Back(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, s)
	}
}

// SuggestNames asks the model for five candidate names based on the wizard
// answers so far.
func SuggestNames(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := session(c.GetString("user_id"))
		if s.Answers.Clients == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": workflow.ErrMissingAudience.Error()})
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

		prompt := utils.SuggestionPrompt(s.Answers.BusinessType, s.Answers.Goal, s.Answers.Clients, s.Answers.Stage)
		text, err := utils.GenerateText(ctx, client, cfg.GeminiModel, genai.Text(prompt))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "suggestion service failed"})
			return
		}
		names, err := utils.ParseSuggestions(text)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not parse suggestions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"suggestions": names})
	}
}

// SaveBusinessName resolves the chosen name and creates the business together
// with its scoped checklist in one transaction. Name uniqueness is global and
// case-insensitive.
func SaveBusinessName() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		s := session(uid)

		var req struct {
			Name   string `json:"name"`
			Choice string `json:"choice"` // "own" | "suggested"
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var takenBy string
		err := database.Pool.QueryRow(ctx, `SELECT user_id FROM businesses WHERE LOWER(name)=LOWER($1)`, name).Scan(&takenBy)
		if err == nil && takenBy != uid {
			c.JSON(http.StatusConflict, gin.H{"error": "business name already taken"})
			return
		}
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		if err == nil && takenBy == uid {
			// Re-submit of the same name by the same owner: reuse the row.
			var id string
			if err := database.Pool.QueryRow(ctx, `SELECT id FROM businesses WHERE LOWER(name)=LOWER($1) AND user_id=$2`, name, uid).Scan(&id); err == nil {
				s.Answers.NameChoice = req.Choice
				s.NameSaved(name, id)
				c.JSON(http.StatusOK, s)
				return
			}
		}

		tx, err := database.Pool.Begin(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer tx.Rollback(ctx)

		var businessID string
		err = tx.QueryRow(ctx, `INSERT INTO businesses(user_id, name, industry, target_clients, goal, stage, registration_status)
            VALUES($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
			uid, name, s.Answers.BusinessType, s.Answers.Clients, s.Answers.Goal, s.Answers.Stage,
			"not_registered").Scan(&businessID)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "business name already taken"})
			return
		}
		if err := EnsureChecklist(ctx, tx, uid, "new", &businessID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not initialize checklist"})
			return
		}
		if err := tx.Commit(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		s.Answers.NameChoice = req.Choice
		s.NameSaved(name, businessID)
		realtime.Publish(ctx, realtime.Event{Table: "businesses", Action: "insert", UserID: uid, RowID: businessID, Status: "not_registered"})
		c.JSON(http.StatusOK, s)
	}
}

// GenerateOnboardingLogo runs the style-variant generation during the wizard
// and keeps the first result in memory as the pending preview.
func GenerateOnboardingLogo(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		s := session(uid)
		if s.Answers.BusinessName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": workflow.ErrNameNotSaved.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		client, err := utils.NewAIClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ai client unavailable"})
			return
		}
		defer client.Close()

		res := utils.GenerateDesigns(ctx, client, cfg.GeminiImageModel, "logo",
			s.Answers.BusinessName, s.Answers.BusinessType, s.Answers.Goal)
		if !res.Success {
			c.JSON(http.StatusBadGateway, gin.H{"error": res.Error})
			return
		}
		first := res.Items[0]
		if first.Kind == "vector" {
			s.SetPreview(first.SVG, "image/svg+xml")
		} else {
			s.SetPreview(first.Data, first.Mime)
		}
		c.JSON(http.StatusOK, res)
	}
}

// FinishOnboarding persists the pending preview, marks the profile step done
// and moves the session to the congratulations state.
func FinishOnboarding(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		s := session(uid)
		if err := s.Finish(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if s.PreviewItem != "" {
			url, err := persistPreview(ctx, cfg, uid, s)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save logo"})
				return
			}
			_, _ = database.Pool.Exec(ctx, `INSERT INTO assets(user_id, business_id, type, asset_url, title)
                VALUES($1,$2,'logo',$3,$4)`, uid, s.BusinessID, url, s.Answers.BusinessName+" logo")
			_, _ = database.Pool.Exec(ctx, `UPDATE businesses SET logo_url=$1, has_logo=true, updated_at=now() WHERE id=$2`, url, s.BusinessID)
		}

		bid := s.BusinessID
		if err := CompleteStepByKey(ctx, uid, &bid, "profile"); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update checklist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"done": true, "business_id": s.BusinessID,
			"message": "Congratulations! Your business profile is ready."})
	}
}

func persistPreview(ctx context.Context, cfg config.Config, uid string, s *workflow.OnboardingSession) (string, error) {
	var data []byte
	filename := "logo.png"
	if s.PreviewMime == "image/svg+xml" {
		data = []byte(s.PreviewItem)
		filename = "logo.svg"
	} else {
		decoded, err := base64.StdEncoding.DecodeString(s.PreviewItem)
		if err != nil {
			return "", err
		}
		data = decoded
	}
	key := utils.ObjectPath("logos", uid, filename)
	return utils.UploadBlob(ctx, cfg, key, s.PreviewMime, data)
}
