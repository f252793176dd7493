package inference

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-bias-checker/internal/types"
)

const (
	nameGenderConfidence = 0.85
	hispanicConfidence   = 0.80
	blackConfidence      = 0.70
	asianConfidence      = 0.85
	defaultRaceConf      = 0.60
	minFirstNameLength   = 2
)

type surnameTable struct {
	race       types.Race
	confidence float64
	names      wordSet
}

// surnameTables is checked in order; the first table containing the surname wins.
var surnameTables = []surnameTable{
	{race: types.RaceHispanic, confidence: hispanicConfidence, names: hispanicSurnames},
	{race: types.RaceBlack, confidence: blackConfidence, names: blackSurnames},
	{race: types.RaceAsian, confidence: asianConfidence, names: asianSurnames},
}

// ClassifyGenderByName infers gender from the first whitespace-delimited token of name.
// Names missing from both first-name tables, and tokens shorter than two
// characters, yield (Unknown, 0).
func ClassifyGenderByName(name string) (types.Gender, float64) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return types.GenderUnknown, 0.0
	}

	firstName := strings.ToLower(parts[0])
	if utf8.RuneCountInString(firstName) < minFirstNameLength {
		return types.GenderUnknown, 0.0
	}

	switch {
	case maleFirstNames.contains(firstName):
		return types.GenderMale, nameGenderConfidence
	case femaleFirstNames.contains(firstName):
		return types.GenderFemale, nameGenderConfidence
	default:
		return types.GenderUnknown, 0.0
	}
}

// ClassifyRaceBySurname infers race from the last single-space-delimited token of name.
// Surnames found in no table default to (White, 0.60). An empty name yields
// (Unknown, 0); callers are expected to check for a name first.
func ClassifyRaceBySurname(name string) (types.Race, float64) {
	if name == "" {
		return types.RaceUnknown, 0.0
	}

	parts := strings.Split(name, " ")
	lastName := strings.ToLower(parts[len(parts)-1])

	for _, table := range surnameTables {
		if table.names.contains(lastName) {
			return table.race, table.confidence
		}
	}

	return types.RaceWhite, defaultRaceConf
}
