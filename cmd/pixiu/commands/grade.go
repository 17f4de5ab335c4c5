package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"pixiu/internal/applicant"
)

// gradedApplicant is one row of `pixiu grade` output.
type gradedApplicant struct {
	ID    int     `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Score float64 `json:"score" yaml:"score"`
	Grade string  `json:"grade" yaml:"grade"`
}

// gradeApplicants evaluates every applicant and sorts best first. Ties keep
// input order.
func gradeApplicants(in []applicant.Applicant) []gradedApplicant {
	out := make([]gradedApplicant, 0, len(in))
	for _, a := range in {
		s := applicant.Evaluate(a)
		out = append(out, gradedApplicant{ID: a.ID, Name: a.Name, Score: s.Score, Grade: s.Grade})
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := applicant.GradeRank(out[i].Grade), applicant.GradeRank(out[j].Grade)
		if ri != rj {
			return ri < rj
		}
		return out[i].Score > out[j].Score
	})
	return out
}

func gradeCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "grade <applicants.json>",
		Short: "Score and grade applicants from a JSON array",
		Long: `Reads a JSON array of applicants, e.g.
  [{"id":1,"name":"Ana","scores":{"experience":8,"education":7,"interview":9,"technical":8,"cultural":9}}]
and prints each applicant's mean score and letter grade, best first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var in []applicant.Applicant
			if err := json.Unmarshal(raw, &in); err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			return e.render(cmd.OutOrStdout(), gradeApplicants(in))
		},
	}
}
