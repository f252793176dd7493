package inference

import (
	"github.com/jonathan/resume-bias-checker/internal/types"
)

// strongConfidence is the level above which a single classifier decides alone
const strongConfidence = 0.5

// InferGender merges the name and text classifiers into one gender call.
// Without a name only the text is used. With a name, a confident name result
// wins, then a confident text result, then whichever is more confident with
// ties going to the name.
func InferGender(record types.ResumeRecord) (types.Gender, float64) {
	if !record.HasName() {
		return ClassifyGenderByText(record.Text)
	}

	nameGender, nameConf := ClassifyGenderByName(record.Name)
	textGender, textConf := ClassifyGenderByText(record.Text)

	switch {
	case nameConf > strongConfidence:
		return nameGender, nameConf
	case textConf > strongConfidence:
		return textGender, textConf
	case nameConf >= textConf:
		return nameGender, nameConf
	default:
		return textGender, textConf
	}
}

// InferRace returns the surname-based race call, or (Unknown, 0) without a name
func InferRace(record types.ResumeRecord) (types.Race, float64) {
	if !record.HasName() {
		return types.RaceUnknown, 0.0
	}
	return ClassifyRaceBySurname(record.Name)
}

// Enrich attaches inferred labels and confidences to a copy of record
func Enrich(record types.ResumeRecord) types.EnrichedRecord {
	gender, genderConf := InferGender(record)
	race, raceConf := InferRace(record)

	return types.EnrichedRecord{
		ResumeRecord:     record,
		InferredGender:   gender,
		InferredRace:     race,
		GenderConfidence: genderConf,
		RaceConfidence:   raceConf,
	}
}

// EnrichAll enriches every record, preserving order
func EnrichAll(records []types.ResumeRecord) []types.EnrichedRecord {
	enriched := make([]types.EnrichedRecord, 0, len(records))
	for _, r := range records {
		enriched = append(enriched, Enrich(r))
	}
	return enriched
}
