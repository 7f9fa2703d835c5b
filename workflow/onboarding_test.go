package workflow

import (
	"errors"
	"testing"
)

func TestNextRequiresAnswers(t *testing.T) {
	s := NewOnboardingSession()

	if err := s.Next(); !errors.Is(err, ErrMissingBusinessType) {
		t.Fatalf("expected ErrMissingBusinessType, got %v", err)
	}
	s.Answers.BusinessType = "new"
	if err := s.Next(); err != nil {
		t.Fatalf("next after type: %v", err)
	}
	if s.Step != StepAudience {
		t.Fatalf("expected step %d, got %d", StepAudience, s.Step)
	}

	if err := s.Next(); !errors.Is(err, ErrMissingAudience) {
		t.Fatalf("expected ErrMissingAudience, got %v", err)
	}
	s.Answers.Clients = "young professionals"
	if err := s.Next(); err != nil {
		t.Fatalf("next after audience: %v", err)
	}
	if s.Step != StepBusinessName {
		t.Fatalf("expected step %d, got %d", StepBusinessName, s.Step)
	}

	if err := s.Next(); !errors.Is(err, ErrNameNotSaved) {
		t.Fatalf("expected ErrNameNotSaved, got %v", err)
	}
}

func TestNameSavedAdvancesToLogo(t *testing.T) {
	s := NewOnboardingSession()
	s.Answers.BusinessType = "new"
	s.Answers.Clients = "smes"
	s.Step = StepBusinessName

	s.NameSaved("Acme Ventures", "b-1")
	if s.Step != StepLogo {
		t.Fatalf("expected step %d after save, got %d", StepLogo, s.Step)
	}
	if s.Answers.BusinessName != "Acme Ventures" || s.BusinessID != "b-1" {
		t.Fatalf("session not updated: %+v", s)
	}
}

func TestBackRules(t *testing.T) {
	s := NewOnboardingSession()
	if err := s.Back(); !errors.Is(err, ErrNoBack) {
		t.Fatalf("expected ErrNoBack at first step, got %v", err)
	}

	s.Step = StepAudience
	if err := s.Back(); err != nil {
		t.Fatalf("back from audience: %v", err)
	}
	if s.Step != StepBusinessType {
		t.Fatalf("expected step %d, got %d", StepBusinessType, s.Step)
	}

	s.Step = StepLogo
	if err := s.Back(); !errors.Is(err, ErrNoBack) {
		t.Fatalf("expected ErrNoBack from logo step, got %v", err)
	}
}

func TestFinishRequiresBusiness(t *testing.T) {
	s := NewOnboardingSession()
	if err := s.Finish(); !errors.Is(err, ErrNameNotSaved) {
		t.Fatalf("expected ErrNameNotSaved, got %v", err)
	}
	s.NameSaved("Acme", "b-2")
	if err := s.Finish(); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if err := s.Next(); !errors.Is(err, ErrFinished) {
		t.Fatalf("expected ErrFinished after finish, got %v", err)
	}
}
