// Package mains infers the local electrical mains frequency so the hum
// detector knows which bins to inspect.
package mains

import (
	"strings"

	tz "github.com/medama-io/go-timezone-country"
	"github.com/thlib/go-timezone-local/tzlocal"
)

const defaultHz = 50

// Frequency returns the mains frequency in Hz for wherever this machine
// appears to be, derived from the system timezone. Detection failures
// fall back to 50Hz, the more common standard worldwide.
func Frequency() int {
	timezone, err := tzlocal.RuntimeTZ()
	if err != nil {
		return defaultHz
	}
	return FrequencyForTimezone(timezone)
}

// FrequencyForTimezone maps an IANA timezone to its country's mains
// frequency. Zones with no country association (UTC, GMT, Etc/*) return
// the 50Hz default.
func FrequencyForTimezone(timezone string) int {
	if timezone == "UTC" || timezone == "GMT" || strings.HasPrefix(timezone, "Etc/") {
		return defaultHz
	}

	tzMap, err := tz.NewTimezoneCountryMap()
	if err != nil {
		return defaultHz
	}
	country, err := tzMap.GetCountry(timezone)
	if err != nil {
		return defaultHz
	}

	// Japan is split 50/60Hz by region; the Tokyo side is 50Hz and the
	// most populous, so that wins.
	if country == "Japan" {
		return defaultHz
	}
	if hz60Countries[country] {
		return 60
	}
	return defaultHz
}

// hz60Countries lists the countries on 60Hz mains. Everything absent
// runs 50Hz. Source: https://en.wikipedia.org/wiki/Mains_electricity_by_country
var hz60Countries = map[string]bool{
	// North America
	"United States": true,
	"Canada":        true,
	"Mexico":        true,

	// Central America
	"Belize":      true,
	"Costa Rica":  true,
	"El Salvador": true,
	"Guatemala":   true,
	"Honduras":    true,
	"Nicaragua":   true,
	"Panama":      true,

	// Caribbean
	"Bahamas":             true,
	"Barbados":            true,
	"Cayman Islands":      true,
	"Cuba":                true,
	"Dominican Republic":  true,
	"Haiti":               true,
	"Jamaica":             true,
	"Puerto Rico":         true,
	"Trinidad and Tobago": true,
	"U.S. Virgin Islands": true,

	// South America. Brazil runs both standards with 60Hz predominant;
	// the rest of the continent is mostly 50Hz.
	"Brazil":    true,
	"Colombia":  true,
	"Ecuador":   true,
	"Guyana":    true,
	"Peru":      true,
	"Suriname":  true,
	"Venezuela": true,

	// Asia
	"South Korea":  true,
	"Taiwan":       true,
	"Philippines":  true,
	"Saudi Arabia": true,

	// Pacific
	"Guam":             true,
	"American Samoa":   true,
	"Marshall Islands": true,
	"Micronesia":       true,
	"Palau":            true,
}
