package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var defaultRegions = []string{
	"US",
	"GB",
	"IL",
}

// NormalizePhone parses a guest phone number against the supported regions
// and returns it in E.164 form, or "" when it cannot be parsed at all.
// Numbers already carrying a +country prefix parse regardless of region.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	for _, region := range defaultRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(parsed) {
			continue
		}
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}
	return ""
}
