package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"smelab/backend/config"
	"smelab/backend/database"
	"smelab/backend/models"
	"smelab/backend/realtime"
	"smelab/backend/utils"
)

// notify writes an in-app notification and emits its change event.
func notify(ctx context.Context, userID, title, message, kind string, actionURL *string) {
	var id int64
	err := database.Pool.QueryRow(ctx, `INSERT INTO notifications(user_id, title, message, type, action_url)
        VALUES($1,$2,$3,$4,$5) RETURNING id`, userID, title, message, kind, actionURL).Scan(&id)
	if err != nil {
		return
	}
	realtime.Publish(ctx, realtime.Event{Table: "notifications", Action: "insert", UserID: userID, RowID: fmt.Sprint(id)})
}

// ConsultantMetrics aggregates the review-desk counters. The four counts run
// concurrently against the pool.
func ConsultantMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		queries := map[string]string{
			"pending_cac":        `SELECT COUNT(*) FROM businesses WHERE registration_status='processing_cac'`,
			"pending_designs":    `SELECT COUNT(*) FROM design_requests WHERE status='pending'`,
			"pending_compliance": `SELECT COUNT(*) FROM compliance_records WHERE status='pending'`,
			"registered_total":   `SELECT COUNT(*) FROM businesses WHERE registration_status='registered'`,
		}

		var mu sync.Mutex
		counts := map[string]int64{}
		var wg sync.WaitGroup
		for name, q := range queries {
			wg.Add(1)
			go func(name, q string) {
				defer wg.Done()
				var n int64
				if err := database.Pool.QueryRow(ctx, q).Scan(&n); err == nil {
					mu.Lock()
					counts[name] = n
					mu.Unlock()
				}
			}(name, q)
		}
		wg.Wait()
		c.JSON(http.StatusOK, counts)
	}
}

type cacRequest struct {
	Business  models.Business `json:"business"`
	Owner     string          `json:"owner"`
	OwnerMail string          `json:"owner_email"`
}

func ListCACRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT b.id, b.user_id, b.name,
            COALESCE(b.industry,''), COALESCE(b.target_clients,''), COALESCE(b.goal,''), COALESCE(b.stage,''), COALESCE(b.description,''),
            b.registration_status, b.logo_url, b.has_logo, b.cac_certificate_url,
            COALESCE(b.company_address,''), COALESCE(b.residential_address,''), COALESCE(b.phone_number,''),
            COALESCE(b.proprietor_name,''), b.proprietor_dob, COALESCE(b.proprietor_id_type,''), COALESCE(b.proprietor_id_url,''), COALESCE(b.passport_url,''),
            COALESCE(b.business_activities,''), COALESCE(b.business_category,''), b.created_at, b.updated_at,
            COALESCE(p.first_name,'') || ' ' || COALESCE(p.last_name,''), p.email
            FROM businesses b JOIN profiles p ON p.id = b.user_id
            WHERE b.registration_status='processing_cac' ORDER BY b.updated_at ASC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []cacRequest{}
		for rows.Next() {
			var r cacRequest
			var b models.Business
			if err := rows.Scan(&b.ID, &b.UserID, &b.Name,
				&b.Industry, &b.TargetClients, &b.Goal, &b.Stage, &b.Description,
				&b.RegistrationStatus, &b.LogoURL, &b.HasLogo, &b.CACCertificateURL,
				&b.CompanyAddress, &b.ResidentialAddress, &b.PhoneNumber,
				&b.ProprietorName, &b.ProprietorDOB, &b.ProprietorIDType, &b.ProprietorIDURL, &b.PassportURL,
				&b.BusinessActivities, &b.BusinessCategory, &b.CreatedAt, &b.UpdatedAt,
				&r.Owner, &r.OwnerMail); err == nil {
				r.Business = b
				r.Owner = strings.TrimSpace(r.Owner)
				out = append(out, r)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

type cacReviewRequest struct {
	Decision string `json:"decision"` // 'approve' | 'reject'
	Reason   string `json:"reason"`
}

// ReviewCAC settles a pending registration. Approval marks the business
// registered; rejection records the reason for the owner.
func ReviewCAC() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID := c.Param("id")
		var req cacReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		b, err := businessByID(ctx, businessID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		if b.RegistrationStatus != models.RegStatusProcessingCAC {
			c.JSON(http.StatusConflict, gin.H{"error": "business is not awaiting review"})
			return
		}

		switch req.Decision {
		case "approve":
			if _, err := database.Pool.Exec(ctx, `UPDATE businesses SET registration_status='registered', updated_at=now() WHERE id=$1`, businessID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update business"})
				return
			}
			_ = CompleteStepByKey(ctx, b.UserID, &b.ID, "registration")
			notify(ctx, b.UserID, "Registration Approved",
				fmt.Sprintf("Congratulations! %s is now officially registered with CAC.", b.Name),
				"registration", nil)
			realtime.Publish(ctx, realtime.Event{Table: "businesses", Action: "update", UserID: b.UserID, RowID: b.ID, Status: models.RegStatusRegistered})
			c.JSON(http.StatusOK, gin.H{"registration_status": models.RegStatusRegistered})
		case "reject":
			if strings.TrimSpace(req.Reason) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "rejection reason required"})
				return
			}
			if _, err := database.Pool.Exec(ctx, `UPDATE businesses SET registration_status='rejected', updated_at=now() WHERE id=$1`, businessID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update business"})
				return
			}
			notify(ctx, b.UserID, "Registration Rejected",
				fmt.Sprintf("Your registration for %s was rejected: %s", b.Name, req.Reason),
				"registration", nil)
			realtime.Publish(ctx, realtime.Event{Table: "businesses", Action: "update", UserID: b.UserID, RowID: b.ID, Status: models.RegStatusRejected})
			c.JSON(http.StatusOK, gin.H{"registration_status": models.RegStatusRejected})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be 'approve' or 'reject'"})
		}
	}
}

func ListPendingDesignRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, user_id, business_id, request_type, COALESCE(description,''), status, created_at
            FROM design_requests WHERE status='pending' ORDER BY created_at ASC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.DesignRequest{}
		for rows.Next() {
			var d models.DesignRequest
			if err := rows.Scan(&d.ID, &d.UserID, &d.BusinessID, &d.RequestType, &d.Description, &d.Status, &d.CreatedAt); err == nil {
				out = append(out, d)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// CompleteDesignRequest uploads the delivered artwork, closes the request and
// points the owner at their asset library.
func CompleteDesignRequest(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.Param("id")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var d models.DesignRequest
		err := database.Pool.QueryRow(ctx, `SELECT id, user_id, business_id, request_type, COALESCE(description,''), status, created_at
            FROM design_requests WHERE id=$1`, requestID).
			Scan(&d.ID, &d.UserID, &d.BusinessID, &d.RequestType, &d.Description, &d.Status, &d.CreatedAt)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "design request not found"})
			return
		}
		if d.Status != "pending" {
			c.JSON(http.StatusConflict, gin.H{"error": "design request already settled"})
			return
		}

		file, header, err := c.Request.FormFile("design")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "design file required"})
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/png"
		}
		key := utils.ObjectPath("designs", d.UserID, header.Filename)
		url, err := utils.UploadStream(ctx, cfg, key, contentType, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}

		_, err = database.Pool.Exec(ctx, `INSERT INTO assets(user_id, business_id, type, asset_url, title)
            VALUES($1,$2,$3,$4,$5)`, d.UserID, d.BusinessID, d.RequestType, url, "Custom "+d.RequestType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record asset"})
			return
		}
		if _, err := database.Pool.Exec(ctx, `UPDATE design_requests SET status='completed' WHERE id=$1`, requestID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not close request"})
			return
		}
		actionURL := "/dashboard/assets"
		notify(ctx, d.UserID, "Design Ready",
			fmt.Sprintf("Your custom %s is ready. Find it in your asset library.", d.RequestType),
			"design", &actionURL)
		realtime.Publish(ctx, realtime.Event{Table: "design_requests", Action: "update", UserID: d.UserID, RowID: d.ID, Status: "completed"})
		c.JSON(http.StatusOK, gin.H{"status": "completed", "asset_url": url})
	}
}

func ListPendingCompliance() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT cr.id, cr.business_id, cr.compliance_type, cr.status,
            cr.due_date, COALESCE(cr.remarks,''), cr.document_url, cr.created_at
            FROM compliance_records cr WHERE cr.status='pending' ORDER BY cr.created_at ASC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.ComplianceRecord{}
		for rows.Next() {
			var r models.ComplianceRecord
			if err := rows.Scan(&r.ID, &r.BusinessID, &r.ComplianceType, &r.Status,
				&r.DueDate, &r.Remarks, &r.DocumentURL, &r.CreatedAt); err == nil {
				out = append(out, r)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

type complianceReviewRequest struct {
	Decision string `json:"decision"` // 'approve' | 'needs_changes'
	Remarks  string `json:"remarks"`
}

// ReviewCompliance settles a compliance record. A needs_changes outcome keeps
// the record pending and only attaches the reviewer's remarks.
func ReviewCompliance() gin.HandlerFunc {
	return func(c *gin.Context) {
		recordID := c.Param("id")
		var req complianceReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var businessID, ownerID, businessName string
		err := database.Pool.QueryRow(ctx, `SELECT cr.business_id, b.user_id, b.name
            FROM compliance_records cr JOIN businesses b ON b.id = cr.business_id
            WHERE cr.id=$1`, recordID).Scan(&businessID, &ownerID, &businessName)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "compliance record not found"})
			return
		}

		switch req.Decision {
		case "approve":
			if _, err := database.Pool.Exec(ctx, `UPDATE compliance_records SET status='approved', remarks=$1 WHERE id=$2`, req.Remarks, recordID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update record"})
				return
			}
			notify(ctx, ownerID, "Compliance Approved",
				fmt.Sprintf("Compliance review for %s passed.", businessName), "compliance", nil)
			realtime.Publish(ctx, realtime.Event{Table: "compliance_records", Action: "update", UserID: ownerID, RowID: recordID, Status: "approved"})
			c.JSON(http.StatusOK, gin.H{"status": "approved"})
		case "needs_changes":
			if strings.TrimSpace(req.Remarks) == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "remarks required"})
				return
			}
			if _, err := database.Pool.Exec(ctx, `UPDATE compliance_records SET remarks=$1 WHERE id=$2`, req.Remarks, recordID); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update record"})
				return
			}
			notify(ctx, ownerID, "Compliance Needs Changes",
				fmt.Sprintf("Compliance review for %s: %s", businessName, req.Remarks), "compliance", nil)
			realtime.Publish(ctx, realtime.Event{Table: "compliance_records", Action: "update", UserID: ownerID, RowID: recordID, Status: "pending"})
			c.JSON(http.StatusOK, gin.H{"status": "pending"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be 'approve' or 'needs_changes'"})
		}
	}
}

func ListTasks() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, consultant_id, title, COALESCE(description,''), status, created_at
            FROM task_assignments WHERE consultant_id=$1 ORDER BY created_at DESC`, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.TaskAssignment{}
		for rows.Next() {
			var t models.TaskAssignment
			if err := rows.Scan(&t.ID, &t.ConsultantID, &t.Title, &t.Description, &t.Status, &t.CreatedAt); err == nil {
				out = append(out, t)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// ListContacts returns every business owner, for the consultant messaging
// sidebar.
func ListContacts() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT id, email, COALESCE(first_name,''), COALESCE(last_name,''),
            COALESCE(display_name,''), COALESCE(phone_number,''), business_type, role, created_at
            FROM profiles WHERE role='user' ORDER BY created_at DESC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.Profile{}
		for rows.Next() {
			var p models.Profile
			if err := rows.Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.DisplayName,
				&p.PhoneNumber, &p.BusinessType, &p.Role, &p.CreatedAt); err == nil {
				out = append(out, p)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// ExportRegistrations streams an XLSX snapshot of every business and its
// registry status.
func ExportRegistrations() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT b.name, COALESCE(b.industry,''), b.registration_status,
            p.email, b.created_at FROM businesses b JOIN profiles p ON p.id = b.user_id ORDER BY b.created_at DESC`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()

		f := excelize.NewFile()
		defer f.Close()
		sheet := "Registrations"
		f.SetSheetName("Sheet1", sheet)
		headers := []string{"Business", "Industry", "Status", "Owner Email", "Created"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}
		rowIdx := 2
		for rows.Next() {
			var name, industry, status, email string
			var created time.Time
			if err := rows.Scan(&name, &industry, &status, &email, &created); err != nil {
				continue
			}
			values := []any{name, industry, status, email, created.Format("2006-01-02")}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, rowIdx)
				f.SetCellValue(sheet, cell, v)
			}
			rowIdx++
		}

		c.Header("Content-Disposition", `attachment; filename="registrations.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_ = f.Write(c.Writer)
	}
}
