package workflow

import "testing"

func TestDeriveRegistrationState(t *testing.T) {
	cases := []struct {
		status   string
		formStep int
		want     RegistrationState
	}{
		{"registered", 0, RegistrationState{Stage: RegStageDone, Terminal: "registered", Registered: true}},
		{"processing_cac", 2, RegistrationState{Stage: RegStageDone, Terminal: "processing"}},
		{"not_registered", FormStepPersonal, RegistrationState{Stage: RegStageForm, FormStep: FormStepPersonal}},
		{"not_registered", FormStepProprietors, RegistrationState{Stage: RegStageForm, FormStep: FormStepProprietors}},
		{"not_registered", FormStepReview, RegistrationState{Stage: RegStagePayment, FormStep: FormStepReview}},
		{"rejected", FormStepBusiness, RegistrationState{Stage: RegStageForm, FormStep: FormStepBusiness}},
		// out-of-range caller input is clamped
		{"not_registered", 9, RegistrationState{Stage: RegStagePayment, FormStep: FormStepReview}},
		{"not_registered", -2, RegistrationState{Stage: RegStageForm, FormStep: FormStepPersonal}},
	}
	for _, c := range cases {
		if got := DeriveRegistrationState(c.status, c.formStep); got != c.want {
			t.Errorf("DeriveRegistrationState(%q,%d) = %+v, want %+v", c.status, c.formStep, got, c.want)
		}
	}
}
