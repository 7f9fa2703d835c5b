package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"smelab/backend/config"
	"smelab/backend/database"
	"smelab/backend/models"
	"smelab/backend/realtime"
	"smelab/backend/utils"
	"smelab/backend/workflow"
)

func ListBusinesses() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rows, err := database.Pool.Query(ctx, `SELECT `+businessColumns+` FROM businesses
            WHERE user_id=$1 ORDER BY created_at DESC`, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.Business{}
		for rows.Next() {
			if b, err := scanBusiness(rows); err == nil {
				out = append(out, b)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

func GetBusiness() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b, err := ownedBusiness(ctx, c.Param("id"), uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

const updatePersonalInfoSQL = `UPDATE businesses SET
    proprietor_name=$1, residential_address=$2, phone_number=$3, proprietor_dob=$4,
    proprietor_id_type=$5, proprietor_id_url=$6, passport_url=$7, updated_at=now()
    WHERE id=$8 AND user_id=$9`

// UpdatePersonalInfo saves the proprietor details entered on the first
// registration form step.
func UpdatePersonalInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.PersonalInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := ownedBusiness(ctx, c.Param("id"), uid); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}

		var dob *time.Time
		if req.DOB != "" {
			if t, err := time.Parse("2006-01-02", req.DOB); err == nil {
				dob = &t
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "dob must be YYYY-MM-DD"})
				return
			}
		}
		_, err := database.Pool.Exec(ctx, updatePersonalInfoSQL,
			req.FullName, req.ResidentialAddress, req.Phone, dob, req.IDType, req.IDURL, req.PassportURL,
			c.Param("id"), uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save personal info"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}

func UpdateBusinessInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.BusinessInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		tag, err := database.Pool.Exec(ctx, `UPDATE businesses SET
            company_address=$1, business_activities=$2, business_category=$3, updated_at=now()
            WHERE id=$4 AND user_id=$5`,
			req.CompanyAddress, req.BusinessActivities, req.BusinessCategory, c.Param("id"), uid)
		if err != nil || tag.RowsAffected() == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}

// ReplacePartners swaps the partner list wholesale. Sole proprietorships keep
// the table empty for the business.
func ReplacePartners() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.PartnersRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := ownedBusiness(ctx, c.Param("id"), uid); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}

		tx, err := database.Pool.Begin(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer tx.Rollback(ctx)

		if _, err := tx.Exec(ctx, `DELETE FROM business_partners WHERE business_id=$1`, c.Param("id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save partners"})
			return
		}
		if !req.SoleProprietor {
			for _, p := range req.Partners {
				if strings.TrimSpace(p.FullName) == "" {
					continue
				}
				_, err := tx.Exec(ctx, `INSERT INTO business_partners(business_id, full_name, email, phone, address, passport_url, id_url, ownership_percentage)
                    VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
					c.Param("id"), p.FullName, p.Email, p.Phone, p.Address, p.PassportURL, p.IDURL, p.OwnershipPercentage)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save partners"})
					return
				}
			}
		}
		if err := tx.Commit(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}

func ListPartners() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := ownedBusiness(ctx, c.Param("id"), uid); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		rows, err := database.Pool.Query(ctx, `SELECT id, business_id, full_name, COALESCE(email,''), COALESCE(phone,''),
            COALESCE(address,''), COALESCE(passport_url,''), COALESCE(id_url,''), ownership_percentage, created_at
            FROM business_partners WHERE business_id=$1 ORDER BY created_at ASC`, c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer rows.Close()
		out := []models.BusinessPartner{}
		for rows.Next() {
			var p models.BusinessPartner
			if err := rows.Scan(&p.ID, &p.BusinessID, &p.FullName, &p.Email, &p.Phone,
				&p.Address, &p.PassportURL, &p.IDURL, &p.OwnershipPercentage, &p.CreatedAt); err == nil {
				out = append(out, p)
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// RegistrationStateHandler derives the wizard position from the business row
// plus the caller-reported form step.
func RegistrationStateHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		b, err := ownedBusiness(ctx, c.Param("id"), uid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}
		formStep, _ := strconv.Atoi(c.Query("form_step"))
		state := workflow.DeriveRegistrationState(b.RegistrationStatus, formStep)
		c.JSON(http.StatusOK, gin.H{
			"state":            state,
			"registration_fee": cfg.RegistrationFee,
			"business":         b,
		})
	}
}

// CreateExistingBusiness onboards an already-operating business. Same
// uniqueness rule as the wizard; the checklist is the formalization journey.
func CreateExistingBusiness() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		var req models.ExistingBusinessRequest
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

		var exists bool
		if err := database.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM businesses WHERE LOWER(name)=LOWER($1))`, name).Scan(&exists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if exists {
			c.JSON(http.StatusConflict, gin.H{"error": "business name already taken"})
			return
		}

		tx, err := database.Pool.Begin(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer tx.Rollback(ctx)

		var businessID string
		err = tx.QueryRow(ctx, `INSERT INTO businesses(user_id, name, industry, registration_status)
            VALUES($1,$2,$3,'not_registered') RETURNING id`, uid, name, req.Industry).Scan(&businessID)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "business name already taken"})
			return
		}
		if err := EnsureChecklist(ctx, tx, uid, "old", &businessID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not initialize checklist"})
			return
		}
		if err := tx.Commit(ctx); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		realtime.Publish(ctx, realtime.Event{Table: "businesses", Action: "insert", UserID: uid, RowID: businessID, Status: "not_registered"})
		c.JSON(http.StatusOK, gin.H{"business_id": businessID})
	}
}

// UploadCACCertificate stores an existing business's certificate, marks the
// business registered and completes the verification step.
func UploadCACCertificate(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := c.GetString("user_id")
		businessID := c.Param("id")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if _, err := ownedBusiness(ctx, businessID, uid); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "business not found"})
			return
		}

		file, header, err := c.Request.FormFile("certificate")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "certificate file required"})
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/pdf"
		}
		key := utils.ObjectPath("cac", uid, businessID+"-"+header.Filename)
		url, err := utils.UploadStream(ctx, cfg, key, contentType, file)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}

		_, err = database.Pool.Exec(ctx, `UPDATE businesses SET cac_certificate_url=$1,
            registration_status='registered', updated_at=now() WHERE id=$2 AND user_id=$3`, url, businessID, uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update business"})
			return
		}
		_, _ = database.Pool.Exec(ctx, `INSERT INTO assets(user_id, business_id, type, asset_url, title)
            VALUES($1,$2,'document',$3,'CAC Certificate')`, uid, businessID, url)
		if err := CompleteStepByKey(ctx, uid, &businessID, "verification"); err == nil {
			realtime.Publish(ctx, realtime.Event{Table: "businesses", Action: "update", UserID: uid, RowID: businessID, Status: "registered"})
		}
		c.JSON(http.StatusOK, gin.H{"cac_certificate_url": url, "registration_status": "registered"})
	}
}
