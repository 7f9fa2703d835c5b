package controllers

import (
	"strings"
	"testing"
)

func TestPersonalInfoUpdatePersistsEveryField(t *testing.T) {
	// every field the form step collects must land in the row
	columns := []string{
		"proprietor_name",
		"residential_address",
		"phone_number",
		"proprietor_dob",
		"proprietor_id_type",
		"proprietor_id_url",
		"passport_url",
	}
	for _, col := range columns {
		if !strings.Contains(updatePersonalInfoSQL, col+"=") {
			t.Errorf("personal-info update does not write %s", col)
		}
	}
	if !strings.Contains(updatePersonalInfoSQL, "user_id=") {
		t.Error("personal-info update is not ownership-scoped")
	}
}
