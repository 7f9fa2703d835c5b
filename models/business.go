package models

import "time"

// Registration lifecycle of a business with the corporate registry.
const (
	RegStatusNotRegistered = "not_registered"
	RegStatusProcessingCAC = "processing_cac"
	RegStatusRegistered    = "registered"
	RegStatusRejected      = "rejected"
)

type Business struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Name               string     `json:"name"`
	Industry           string     `json:"industry"`
	TargetClients      string     `json:"target_clients"`
	Goal               string     `json:"goal"`
	Stage              string     `json:"stage"`
	Description        string     `json:"description"`
	RegistrationStatus string     `json:"registration_status"`
	LogoURL            *string    `json:"logo_url"`
	HasLogo            bool       `json:"has_logo"`
	CACCertificateURL  *string    `json:"cac_certificate_url"`
	CompanyAddress     string     `json:"company_address"`
	ResidentialAddress string     `json:"residential_address"`
	PhoneNumber        string     `json:"phone_number"`
	ProprietorName     string     `json:"proprietor_name"`
	ProprietorDOB      *time.Time `json:"proprietor_dob"`
	ProprietorIDType   string     `json:"proprietor_id_type"`
	ProprietorIDURL    string     `json:"proprietor_id_url"`
	PassportURL        string     `json:"passport_url"`
	BusinessActivities string     `json:"business_activities"`
	BusinessCategory   string     `json:"business_category"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BusinessPartner struct {
	ID                  string    `json:"id"`
	BusinessID          string    `json:"business_id"`
	FullName            string    `json:"full_name"`
	Email               string    `json:"email"`
	Phone               string    `json:"phone"`
	Address             string    `json:"address"`
	PassportURL         string    `json:"passport_url"`
	IDURL               string    `json:"id_url"`
	OwnershipPercentage float64   `json:"ownership_percentage"`
	CreatedAt           time.Time `json:"created_at"`
}

type ComplianceRecord struct {
	ID             string     `json:"id"`
	BusinessID     string     `json:"business_id"`
	ComplianceType string     `json:"compliance_type"`
	Status         string     `json:"status"`
	DueDate        *time.Time `json:"due_date"`
	Remarks        string     `json:"remarks"`
	DocumentURL    *string    `json:"document_url"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Consultation struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	ExpertName  string    `json:"expert_name"`
	Topic       string    `json:"topic"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
