package feiertage

// ScopeNational is the nur_land value meaning "all of Germany" and the
// default scope for generated calendar UIDs.
const ScopeNational = "NATIONAL"

// validStates is the set of region codes feiertage-api.de understands:
// NATIONAL plus the 16 Bundesland abbreviations.
var validStates = map[string]struct{}{
	ScopeNational: {},
	"BW":          {},
	"BY":          {},
	"BE":          {},
	"BB":          {},
	"HB":          {},
	"HH":          {},
	"HE":          {},
	"MV":          {},
	"NI":          {},
	"NW":          {},
	"RP":          {},
	"SL":          {},
	"SN":          {},
	"ST":          {},
	"SH":          {},
	"TH":          {},
}

// ValidState reports whether code is a recognized nur_land value.
func ValidState(code string) bool {
	_, ok := validStates[code]
	return ok
}
