// Package applicant scores job applicants from five equally weighted
// sub-scores and maps the result to a letter grade.
package applicant

// Scores holds the five sub-scores of an applicant. The scale is defined by
// the caller; grading assumes 0-10.
type Scores struct {
	Experience float64 `json:"experience" yaml:"experience"`
	Education  float64 `json:"education" yaml:"education"`
	Interview  float64 `json:"interview" yaml:"interview"`
	Technical  float64 `json:"technical" yaml:"technical"`
	Cultural   float64 `json:"cultural" yaml:"cultural"`
}

// Applicant is a candidate under evaluation.
type Applicant struct {
	ID     int    `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Scores Scores `json:"scores" yaml:"scores"`
}

// ApplicantScore is derived from an Applicant on demand and never stored.
type ApplicantScore struct {
	Score float64 `json:"score" yaml:"score"`
	Grade string  `json:"grade" yaml:"grade"`
}

const componentCount = 5

type threshold struct {
	min   float64
	grade string
}

// Checked top-down; the first lower bound the score reaches wins.
var thresholds = []threshold{
	{9, "A+"},
	{8, "A"},
	{7, "B+"},
	{6, "B"},
	{5, "C+"},
	{4, "C"},
	{3, "D"},
}

// GradeFail is returned for any score below the lowest threshold, NaN included.
const GradeFail = "F"

// CalculateScore returns the arithmetic mean of the five sub-scores. The
// result is not rounded.
func CalculateScore(a Applicant) float64 {
	s := a.Scores
	return (s.Experience + s.Education + s.Interview + s.Technical + s.Cultural) / componentCount
}

// CalculateGrade maps a score to a letter grade.
func CalculateGrade(score float64) string {
	for _, t := range thresholds {
		if score >= t.min {
			return t.grade
		}
	}
	return GradeFail
}

// Evaluate computes both the score and the grade of an applicant.
func Evaluate(a Applicant) ApplicantScore {
	score := CalculateScore(a)
	return ApplicantScore{Score: score, Grade: CalculateGrade(score)}
}

// GradeRank orders grades from best (0 for "A+") to worst ("F"). Unknown
// grades rank below "F".
func GradeRank(grade string) int {
	for i, t := range thresholds {
		if t.grade == grade {
			return i
		}
	}
	if grade == GradeFail {
		return len(thresholds)
	}
	return len(thresholds) + 1
}
