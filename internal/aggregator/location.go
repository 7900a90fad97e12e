package aggregator

import "strings"

var nigerianKeywords = []string{
	"nigeria", "lagos", "abuja", "kano", "ibadan", "calabar",
	"port harcourt", "benin city", "jos", "ilorin", "owerri",
	"enugu", "abeokuta", "onitsha", "warri", "sokoto",
}

// NigerianLocation reports whether the search targets Nigeria, which
// turns on the local board and the ng Indeed market.
func NigerianLocation(location string) bool {
	location = strings.ToLower(location)
	for _, keyword := range nigerianKeywords {
		if strings.Contains(location, keyword) {
			return true
		}
	}
	return false
}
