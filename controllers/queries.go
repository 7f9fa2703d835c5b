package controllers

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"smelab/backend/database"
	"smelab/backend/models"
)

// validUUID screens path params before they reach a query; a malformed id is
// a 404-shaped problem, not a database error.
func validUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Querier is satisfied by both the pool and a transaction, so the checklist
// helpers can run inside the business-creation tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const businessColumns = `id, user_id, name,
    COALESCE(industry,''), COALESCE(target_clients,''), COALESCE(goal,''), COALESCE(stage,''), COALESCE(description,''),
    registration_status, logo_url, has_logo, cac_certificate_url,
    COALESCE(company_address,''), COALESCE(residential_address,''), COALESCE(phone_number,''),
    COALESCE(proprietor_name,''), proprietor_dob, COALESCE(proprietor_id_type,''), COALESCE(proprietor_id_url,''), COALESCE(passport_url,''),
    COALESCE(business_activities,''), COALESCE(business_category,''), created_at, updated_at`

func scanBusiness(row pgx.Row) (models.Business, error) {
	var b models.Business
	err := row.Scan(&b.ID, &b.UserID, &b.Name,
		&b.Industry, &b.TargetClients, &b.Goal, &b.Stage, &b.Description,
		&b.RegistrationStatus, &b.LogoURL, &b.HasLogo, &b.CACCertificateURL,
		&b.CompanyAddress, &b.ResidentialAddress, &b.PhoneNumber,
		&b.ProprietorName, &b.ProprietorDOB, &b.ProprietorIDType, &b.ProprietorIDURL, &b.PassportURL,
		&b.BusinessActivities, &b.BusinessCategory, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// ActiveBusiness resolves the business the dashboard operates on. The rule is
// explicit rather than implied by query ordering elsewhere: the most recently
// created business owned by the user. pgx.ErrNoRows when the user has none.
func ActiveBusiness(ctx context.Context, userID string) (models.Business, error) {
	row := database.Pool.QueryRow(ctx, `SELECT `+businessColumns+`
        FROM businesses WHERE user_id=$1 ORDER BY created_at DESC LIMIT 1`, userID)
	return scanBusiness(row)
}

func businessByID(ctx context.Context, id string) (models.Business, error) {
	if !validUUID(id) {
		return models.Business{}, pgx.ErrNoRows
	}
	row := database.Pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id=$1`, id)
	return scanBusiness(row)
}

// ownedBusiness loads a business and verifies ownership in one query.
func ownedBusiness(ctx context.Context, id, userID string) (models.Business, error) {
	if !validUUID(id) {
		return models.Business{}, pgx.ErrNoRows
	}
	row := database.Pool.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id=$1 AND user_id=$2`, id, userID)
	return scanBusiness(row)
}

func profileByID(ctx context.Context, id string) (models.Profile, error) {
	var p models.Profile
	err := database.Pool.QueryRow(ctx, `SELECT id, email, COALESCE(first_name,''), COALESCE(last_name,''),
        COALESCE(display_name,''), COALESCE(phone_number,''), business_type, role, created_at
        FROM profiles WHERE id=$1`, id).
		Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.DisplayName, &p.PhoneNumber, &p.BusinessType, &p.Role, &p.CreatedAt)
	return p, err
}

func scanChecklistRows(rows pgx.Rows) []models.ChecklistItem {
	items := []models.ChecklistItem{}
	for rows.Next() {
		var it models.ChecklistItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.BusinessID, &it.StepKey, &it.Title, &it.Description, &it.ActionURL, &it.Status, &it.CreatedAt); err == nil {
			items = append(items, it)
		}
	}
	return items
}

const checklistColumns = `id, user_id, business_id, step_key, title, COALESCE(description,''), COALESCE(action_url,''), status, created_at`
