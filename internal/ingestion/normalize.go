package ingestion

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/jonathan/resume-bias-checker/internal/types"
)

const (
	resumeField     = "Resume"
	scoreField      = "Score"
	minBodyLength   = 50
	placeholderText = "Resume content for candidate %d"
	idFormat        = "resume_%d"
)

var (
	nameFields  = []string{"name", "Name", "full_name", "fullName", "candidate_name", "applicant_name"}
	textFields  = []string{"text", "resume_text", "content", "description", "summary"}
	scoreFields = []string{"matchScore", "match_score", "score", "Score", "rating", "Rating"}

	namePattern          = regexp.MustCompile(`(?i)Name:\s*([^\n\r]+)`)
	trailingScorePattern = regexp.MustCompile(`(?m)(\d+(?:\.\d+)?)\s*$`)
	nonNumericPattern    = regexp.MustCompile(`[^\d.-]`)
	leadingFloatPattern  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// Normalizer converts parsed rows of unknown shape into ResumeRecords.
// Missing or malformed fields never fail a row; they fall back to defaults.
type Normalizer struct {
	random RandomSource
	logger *zap.Logger
}

// NewNormalizer creates a Normalizer. A nil random source uses DefaultRandom,
// a nil logger discards output.
func NewNormalizer(random RandomSource, logger *zap.Logger) *Normalizer {
	if random == nil {
		random = DefaultRandom()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{random: random, logger: logger}
}

// Normalize converts rows with the package defaults
func Normalize(rows []Row, random RandomSource) []types.ResumeRecord {
	return NewNormalizer(random, nil).Normalize(rows)
}

// Normalize converts every row, assigning sequential 1-based IDs
func (n *Normalizer) Normalize(rows []Row) []types.ResumeRecord {
	records := make([]types.ResumeRecord, 0, len(rows))
	for i, row := range rows {
		records = append(records, n.normalizeRow(i+1, row))
	}
	return records
}

func (n *Normalizer) normalizeRow(position int, row Row) types.ResumeRecord {
	var (
		name  string
		text  string
		score float64
	)

	resume := row.Value(resumeField)
	rawScore := row.Value(scoreField)

	switch body, hasBody := findBody(row); {
	case resume != "" && rawScore != "":
		text = resume
		score = parseFloatPrefix(rawScore)
		name = extractName(resume)

	case hasBody:
		text = body
		name = extractName(body)
		if m := trailingScorePattern.FindStringSubmatch(body); m != nil {
			score = parseFloatPrefix(m[1])
		} else {
			score = n.substituteScore(position, "no trailing score in resume body")
		}

	default:
		name, _ = row.firstNonEmpty(nameFields)
		if v, ok := row.firstNonEmpty(textFields); ok {
			text = v
		}
		if v, ok := row.firstNonEmpty(scoreFields); ok {
			score = parseFloatPrefix(nonNumericPattern.ReplaceAllString(v, ""))
		} else {
			score = n.substituteScore(position, "no score column")
		}
	}

	if text == "" {
		text = fmt.Sprintf(placeholderText, position)
		n.logger.Debug("substituted placeholder resume text", zap.Int("row", position))
	}
	if math.IsNaN(score) {
		score = n.substituteScore(position, "score is not a number")
	}

	return types.ResumeRecord{
		ID:         fmt.Sprintf(idFormat, position),
		Name:       name,
		Text:       text,
		MatchScore: score,
	}
}

func (n *Normalizer) substituteScore(position int, reason string) float64 {
	score := fallbackScore(n.random)
	n.logger.Debug("substituted random match score",
		zap.Int("row", position),
		zap.String("reason", reason),
		zap.Float64("score", score),
	)
	return score
}

// findBody returns the first value, in header order, longer than minBodyLength after trimming
func findBody(row Row) (string, bool) {
	for _, v := range row.Values() {
		if utf8.RuneCountInString(strings.TrimSpace(v)) > minBodyLength {
			return v, true
		}
	}
	return "", false
}

// extractName returns the text following the first "Name:" label, trimmed
func extractName(text string) string {
	m := namePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// parseFloatPrefix parses the longest leading decimal literal of s, ignoring
// leading whitespace and any trailing garbage. Inputs without a leading
// literal, and values that overflow to infinity, return NaN.
func parseFloatPrefix(s string) float64 {
	literal := leadingFloatPattern.FindString(strings.TrimSpace(s))
	if literal == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
