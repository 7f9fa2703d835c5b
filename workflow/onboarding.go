package workflow

import "errors"

// Onboarding wizard steps, in order.
const (
	StepBusinessType = 1
	StepAudience     = 2
	StepBusinessName = 3
	StepLogo         = 4
)

// Sub-state of the business-name step.
const (
	NameUnset     = ""
	NameOwn       = "own"
	NameSuggested = "suggested"
)

var (
	ErrMissingBusinessType = errors.New("pick a business type first")
	ErrMissingAudience     = errors.New("describe your target clients first")
	ErrNameNotSaved        = errors.New("select or enter a business name first")
	ErrNoBack              = errors.New("cannot go back from this step")
	ErrFinished            = errors.New("onboarding already finished")
)

// OnboardingAnswers accumulates what the owner typed across steps.
type OnboardingAnswers struct {
	BusinessType    string `json:"businessType"`
	Goal            string `json:"goal"`
	Clients         string `json:"clients"`
	Stage           string `json:"stage"`
	NameChoice      string `json:"nameChoice"` // NameOwn | NameSuggested
	OwnBusinessName string `json:"ownBusinessName"`
	BusinessName    string `json:"businessName"` // set once durably saved
}

// OnboardingSession is the per-user wizard state. It lives in memory for the
// duration of the flow; everything durable goes through the store.
type OnboardingSession struct {
	Step        int               `json:"step"`
	Answers     OnboardingAnswers `json:"answers"`
	BusinessID  string            `json:"business_id,omitempty"`
	PreviewItem string            `json:"-"` // last generated logo, pending upload
	PreviewMime string            `json:"-"`
	Done        bool              `json:"done"`
}

func NewOnboardingSession() *OnboardingSession {
	return &OnboardingSession{Step: StepBusinessType}
}

// Next validates the gate for the current step and advances.
func (s *OnboardingSession) Next() error {
	if s.Done {
		return ErrFinished
	}
	switch s.Step {
	case StepBusinessType:
		if s.Answers.BusinessType == "" {
			return ErrMissingBusinessType
		}
	case StepAudience:
		if s.Answers.Clients == "" {
			return ErrMissingAudience
		}
	case StepBusinessName:
		if s.Answers.BusinessName == "" {
			return ErrNameNotSaved
		}
	case StepLogo:
		return nil // terminal, advanced via Finish
	}
	if s.Step < StepLogo {
		s.Step++
	}
	return nil
}

// Back steps backwards. Once a business exists its identity is fixed for the
// session, so there is no way back past the name step from logo generation.
func (s *OnboardingSession) Back() error {
	if s.Done {
		return ErrFinished
	}
	switch {
	case s.Step <= StepBusinessType:
		return ErrNoBack
	case s.Step == StepLogo:
		return ErrNoBack
	}
	s.Step--
	return nil
}

// NameSaved records a durably persisted business and advances to logo
// generation. Called after name resolution succeeds.
func (s *OnboardingSession) NameSaved(name, businessID string) {
	s.Answers.BusinessName = name
	s.BusinessID = businessID
	if s.Step == StepBusinessName {
		s.Step = StepLogo
	}
}

// SetPreview replaces any prior in-memory logo preview.
func (s *OnboardingSession) SetPreview(data, mime string) {
	s.PreviewItem = data
	s.PreviewMime = mime
}

// Finish marks the terminal congratulations state. Only valid once a business
// exists.
func (s *OnboardingSession) Finish() error {
	if s.BusinessID == "" {
		return ErrNameNotSaved
	}
	s.Done = true
	return nil
}
