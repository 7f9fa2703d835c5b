package models

type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Confirm      string `json:"confirm_password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	IsConsultant bool   `json:"is_consultant"`
	// required when is_consultant: must match CONSULTANT_SIGNUP_CODE
	ConsultantCode string `json:"consultant_code"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	DisplayName string `json:"display_name"`
}

type BusinessTypeRequest struct {
	Choice string `json:"choice"` // "new" | "old"
}

type PersonalInfoRequest struct {
	FullName           string `json:"full_name"`
	DOB                string `json:"dob"` // YYYY-MM-DD, optional
	Phone              string `json:"phone"`
	ResidentialAddress string `json:"home_address"`
	PassportURL        string `json:"passport_url"`
	IDURL              string `json:"id_url"`
	IDType             string `json:"id_type"`
}

type BusinessInfoRequest struct {
	CompanyAddress     string `json:"address"`
	BusinessActivities string `json:"activities"`
	BusinessCategory   string `json:"category"`
}

type PartnerInput struct {
	ID                  string  `json:"id"` // empty for new rows
	FullName            string  `json:"full_name"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	Address             string  `json:"address"`
	PassportURL         string  `json:"passport_url"`
	IDURL               string  `json:"id_url"`
	OwnershipPercentage float64 `json:"ownership_percentage"`
}

type PartnersRequest struct {
	SoleProprietor bool           `json:"sole_proprietor"`
	Partners       []PartnerInput `json:"partners"`
}

type PaymentRequest struct {
	Method string `json:"method"`
	Amount int64  `json:"amount"`
}

type ExistingBusinessRequest struct {
	Name     string `json:"name"`
	Industry string `json:"nature"`
}

type DesignRequestInput struct {
	RequestType string `json:"request_type"` // 'logo' | 'flyer'
	Description string `json:"description"`
}

type ConsultationRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}
