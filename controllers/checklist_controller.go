package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"smelab/backend/database"
	"smelab/backend/models"
	"smelab/backend/realtime"
	"smelab/backend/workflow"
)

// EnsureChecklist initializes the launch journey for a user/business if it is
// not there yet. Idempotent: re-running converges on the same four rows
// instead of duplicating them.
func EnsureChecklist(ctx context.Context, q Querier, userID, businessType string, businessID *string) error {
	var exists bool
	if businessID != nil {
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM onboarding_checklist WHERE user_id=$1 AND business_id=$2)`,
			userID, *businessID).Scan(&exists); err != nil {
			return err
		}
	} else {
		if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM onboarding_checklist WHERE user_id=$1 AND business_id IS NULL)`,
			userID).Scan(&exists); err != nil {
			return err
		}
	}
	if exists {
		return nil
	}

	for _, step := range workflow.ChecklistTemplate(businessType) {
		var err error
		if businessID != nil {
			_, err = q.Exec(ctx, `INSERT INTO onboarding_checklist(user_id,business_id,step_key,title,description,action_url)
VALUES($1,$2,$3,$4,$5,$6)
ON CONFLICT (business_id, step_key) WHERE business_id IS NOT NULL DO NOTHING`,
				userID, *businessID, step.StepKey, step.Title, step.Description, step.ActionURL)
		} else {
			_, err = q.Exec(ctx, `INSERT INTO onboarding_checklist(user_id,step_key,title,description,action_url)
VALUES($1,$2,$3,$4,$5)`, userID, step.StepKey, step.Title, step.Description, step.ActionURL)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// CompleteStepByKey flips one step to completed. A no-op when already
// completed or when the step does not exist for that business.
func CompleteStepByKey(ctx context.Context, userID string, businessID *string, stepKey string) error {
	var err error
	if businessID != nil {
		_, err = database.Pool.Exec(ctx, `UPDATE onboarding_checklist SET status='completed'
            WHERE user_id=$1 AND business_id=$2 AND step_key=$3`, userID, *businessID, stepKey)
	} else {
		_, err = database.Pool.Exec(ctx, `UPDATE onboarding_checklist SET status='completed'
            WHERE user_id=$1 AND step_key=$2`, userID, stepKey)
	}
	if err == nil {
		realtime.Publish(ctx, realtime.Event{Table: "onboarding_checklist", Action: "update", UserID: userID, Status: "completed"})
	}
	return err
}

// MergeChecklist resolves the scoped/legacy overlap: business-scoped rows win
// over unscoped rows carrying the same step_key.
func MergeChecklist(items []models.ChecklistItem) []models.ChecklistItem {
	scoped := map[string]bool{}
	for _, it := range items {
		if it.BusinessID != nil {
			scoped[it.StepKey] = true
		}
	}
	out := make([]models.ChecklistItem, 0, len(items))
	for _, it := range items {
		if it.BusinessID == nil && scoped[it.StepKey] {
			continue
		}
		out = append(out, it)
	}
	return out
}

func fetchChecklist(ctx context.Context, userID string, businessID *string) ([]models.ChecklistItem, error) {
	var rows pgx.Rows
	var err error
	if businessID != nil {
		rows, err = database.Pool.Query(ctx, `SELECT `+checklistColumns+` FROM onboarding_checklist
            WHERE user_id=$1 AND (business_id=$2 OR business_id IS NULL) ORDER BY id ASC`, userID, *businessID)
	} else {
		rows, err = database.Pool.Query(ctx, `SELECT `+checklistColumns+` FROM onboarding_checklist
            WHERE user_id=$1 ORDER BY id ASC`, userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return MergeChecklist(scanChecklistRows(rows)), nil
}

func GetChecklist() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var businessID *string
		if b, err := ActiveBusiness(ctx, uid); err == nil {
			businessID = &b.ID
		}
		items, err := fetchChecklist(ctx, uid, businessID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		completed := 0
		for _, it := range items {
			if it.Status == models.StepStatusCompleted {
				completed++
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"items":    items,
			"progress": workflow.Progress(len(items), completed),
		})
	}
}

// ToggleChecklistItem is the general checklist view's flip control, the only
// path that can regress a step back to pending.
func ToggleChecklistItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		var newStatus string
		err = database.Pool.QueryRow(ctx, `UPDATE onboarding_checklist
            SET status = CASE WHEN status='completed' THEN 'pending' ELSE 'completed' END
            WHERE id=$1 AND user_id=$2 RETURNING status`, id, uid).Scan(&newStatus)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "checklist item not found"})
			return
		}
		realtime.Publish(ctx, realtime.Event{Table: "onboarding_checklist", Action: "update", UserID: uid, RowID: strconv.FormatInt(id, 10), Status: newStatus})
		c.JSON(http.StatusOK, gin.H{"status": newStatus})
	}
}
