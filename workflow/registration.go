package workflow

// Registration wizard stages. The form stage has four sub-steps; Done splits
// on the business's registration_status, which a consultant can flip
// out-of-band.
const (
	RegStageForm    = 1
	RegStagePayment = 2
	RegStageDone    = 3
)

const (
	FormStepPersonal    = 0
	FormStepBusiness    = 1
	FormStepProprietors = 2
	FormStepReview      = 3
)

// RegistrationState is derived, not stored: the machine position follows from
// the business row.
type RegistrationState struct {
	Stage      int    `json:"stage"`
	FormStep   int    `json:"form_step"`
	Terminal   string `json:"terminal,omitempty"` // "processing" | "registered" when Stage == RegStageDone
	Registered bool   `json:"registered"`
}

// DeriveRegistrationState maps a registration_status onto the wizard.
func DeriveRegistrationState(registrationStatus string, formStep int) RegistrationState {
	switch registrationStatus {
	case "registered":
		return RegistrationState{Stage: RegStageDone, Terminal: "registered", Registered: true}
	case "processing_cac":
		return RegistrationState{Stage: RegStageDone, Terminal: "processing"}
	}
	if formStep > FormStepReview {
		formStep = FormStepReview
	}
	if formStep < FormStepPersonal {
		formStep = FormStepPersonal
	}
	if formStep == FormStepReview {
		return RegistrationState{Stage: RegStagePayment, FormStep: formStep}
	}
	return RegistrationState{Stage: RegStageForm, FormStep: formStep}
}
