package intent

import (
	"regexp"
	"strings"
)

// Editable applicant fields the detector recognizes
const (
	FieldDateOfBirth = "date_of_birth"
	FieldPhone       = "phone"
	FieldEmail       = "email"
	FieldName        = "name"
	FieldNationality = "nationality"
)

// FieldUpdate is the detector's output. Value is empty when the field was
// identified but no value could be extracted; the caller should start an
// edit session rather than apply anything.
type FieldUpdate struct {
	Field string `json:"field"`
	Value string `json:"value,omitempty"`
}

var (
	phonePattern = regexp.MustCompile(`[\d+][\d\s().\-]{8,}\d`)
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
)

// Field trigger words, tested in this fixed order. "date of birth" must come
// before "name" style triggers so "update date of birth" never resolves as a
// name edit.
var fieldTriggers = []struct {
	field    string
	triggers []string
}{
	{FieldDateOfBirth, []string{"date of birth", "birth date", "birthday", "dob"}},
	{FieldPhone, []string{"phone", "mobile", "telephone", "cell"}},
	{FieldEmail, []string{"email", "e-mail", "mail address"}},
	{FieldName, []string{"name"}},
	{FieldNationality, []string{"nationality", "citizenship"}},
}

// DetectFieldUpdate recognizes "change field X to Y" utterances for the fixed
// set of editable fields. Returns nil when no trigger word matches.
func DetectFieldUpdate(query string) *FieldUpdate {
	lower := strings.ToLower(query)

	for _, ft := range fieldTriggers {
		if !containsAny(lower, ft.triggers) {
			continue
		}

		update := &FieldUpdate{Field: ft.field}
		switch ft.field {
		case FieldDateOfBirth:
			if raw := extractDateCandidate(query); raw != "" {
				// On parse failure the matched substring comes back
				// unchanged; the caller treats it as unverified.
				update.Value = NormalizeDate(raw)
			}
		case FieldPhone:
			update.Value = phonePattern.FindString(query)
		case FieldEmail:
			update.Value = emailPattern.FindString(query)
		case FieldName, FieldNationality:
			// Field identified, no value extraction: signals "start an
			// edit session", not "apply this value".
		}
		return update
	}
	return nil
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
