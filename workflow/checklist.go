package workflow

import "math"

// ChecklistStep is one template entry of a launch journey.
type ChecklistStep struct {
	StepKey     string
	Title       string
	Description string
	ActionURL   string
}

var newBusinessSteps = []ChecklistStep{
	{StepKey: "profile", Title: "Idea & Strategy", Description: "Define your business goals and target audience.", ActionURL: "/dashboard/onboarding"},
	{StepKey: "registration", Title: "Business Registration", Description: "Register your business with CAC.", ActionURL: "/dashboard/registration"},
	{StepKey: "branding", Title: "Brand Identity", Description: "Create your logo and marketing materials.", ActionURL: "/dashboard/ai-tools"},
	{StepKey: "compliance", Title: "Compliance Setup", Description: "Get your tax and regulatory requirements sorted.", ActionURL: "/dashboard/compliance"},
}

var existingBusinessSteps = []ChecklistStep{
	{StepKey: "verification", Title: "Business Verification", Description: "Verify your existing business details.", ActionURL: "/dashboard/existing-business"},
	{StepKey: "compliance", Title: "Compliance Audit", Description: "Check your current compliance status.", ActionURL: "/dashboard/compliance"},
	{StepKey: "digital", Title: "Digital Upgrade", Description: "Refresh your brand and digital presence.", ActionURL: "/dashboard/marketing"},
	{StepKey: "growth", Title: "Growth Consulting", Description: "Book a session with an expert.", ActionURL: "/dashboard/consulting"},
}

// ChecklistTemplate selects the fixed four-step blueprint for a business type.
// Anything other than "old" falls back to the new-business journey.
func ChecklistTemplate(businessType string) []ChecklistStep {
	if businessType == "old" {
		return existingBusinessSteps
	}
	return newBusinessSteps
}

// BrandingStepKey is the checklist step an AI asset save completes. New
// ventures track it under "branding", formalized ones under "digital".
func BrandingStepKey(businessType string) string {
	if businessType == "old" {
		return "digital"
	}
	return "branding"
}

// Progress computes the displayed journey percentage. An empty checklist is 0,
// never a division error.
func Progress(total, completed int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
