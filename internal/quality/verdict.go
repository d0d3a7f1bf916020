package quality

import (
	"github.com/rs/zerolog"
)

type Verdict string

const (
	VerdictPass   Verdict = "pass"
	VerdictReview Verdict = "review"
	VerdictFail   Verdict = "fail"
)

type Report struct {
	Verdict    Verdict  `json:"verdict"`
	Confidence float64  `json:"confidence"`
	Checks     []Result `json:"checks"`
}

// Accepted reports whether the rewrite may replace the original description.
func (r Report) Accepted() bool {
	return r.Verdict != VerdictFail
}

// Gate runs the checks and turns their scores into a verdict.
type Gate struct {
	runner *Runner
	logger *zerolog.Logger
}

func NewGate(runner *Runner, logger *zerolog.Logger) *Gate {
	return &Gate{
		runner: runner,
		logger: logger,
	}
}

// Review scores a rewrite. Confidence is the mean check score; any check
// scoring zero fails the rewrite regardless of the mean.
func (g *Gate) Review(subject Subject) Report {
	results := g.runner.Run(subject)
	report := Report{Checks: results}

	if len(results) == 0 {
		report.Verdict = VerdictPass
		report.Confidence = 1.0
		return report
	}

	total := 0.0
	hardFailure := false
	for _, result := range results {
		total += result.Score
		if result.Score == 0 {
			hardFailure = true
		}
	}
	report.Confidence = total / float64(len(results))

	switch {
	case hardFailure:
		report.Verdict = VerdictFail
	default:
		report.Verdict = calculateVerdict(report.Confidence)
	}

	g.logger.
		Debug().
		Float64("confidence", report.Confidence).
		Str("verdict", string(report.Verdict)).
		Str("neighborhood", subject.Listing.Neighborhood).
		Msg("quality review complete")
	return report
}

func calculateVerdict(confidence float64) Verdict {
	if confidence > 0.8 {
		return VerdictPass
	}
	if confidence > 0.5 {
		return VerdictReview
	}
	return VerdictFail
}
