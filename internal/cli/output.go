package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crewlab/baton/internal/constants"
	"github.com/crewlab/baton/internal/domain"
	"github.com/crewlab/baton/internal/session"
)

// titleCaser renders role and status names for human-readable output.
var titleCaser = cases.Title(language.English) //nolint:gochecknoglobals // Read-only caser

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderSession writes a human-readable session summary.
func renderSession(w io.Writer, s *domain.Session) {
	fmt.Fprintf(w, "Session %s [%s]\n", s.ID, s.Status)
	fmt.Fprintf(w, "  Mission: %s\n", s.Mission)
	fmt.Fprintf(w, "  Domain: %s  Quality: %s  Mode: %s\n",
		s.MissionDomain, s.QualityMode, s.Orchestration.Mode)
	fmt.Fprintf(w, "  Credits: %.3f used / %.0f cap (%.3f remaining, %.3f estimated)\n",
		s.Cost.UsedCredits, s.Cost.BudgetCap, s.Cost.RemainingCredits, s.Cost.EstimatedCredits)

	if len(s.Tasks) > 0 {
		fmt.Fprintln(w, "  Checkpoints:")
		for _, t := range s.Tasks {
			renderTask(w, &t)
		}
	}
	if len(s.FullAccessGrants) > 0 {
		fmt.Fprintf(w, "  Grants: %d total\n", len(s.FullAccessGrants))
	}
	fmt.Fprintf(w, "  Runs: %d  Messages: %d\n", len(s.AgentRuns), len(s.Messages))
}

// renderTask writes one checkpoint line, with verdict and result preview
// when present.
func renderTask(w io.Writer, t *domain.Task) {
	fmt.Fprintf(w, "    %s  %s (%s)  %.0f credits  [%s]",
		t.ID, t.Title, titleCaser.String(string(t.OwnerRole)), t.EstimateCredits, t.Status)
	if t.ValidationVerdict != "" && t.ValidationVerdict != constants.VerdictPending {
		fmt.Fprintf(w, "  verdict=%s", t.ValidationVerdict)
	}
	if t.ApplyToken != "" {
		fmt.Fprint(w, "  applied")
	}
	fmt.Fprintln(w)
	if t.Result != "" {
		fmt.Fprintf(w, "      %s\n", firstLine(t.Result))
	}
}

// renderSessionList writes one line per session.
func renderSessionList(w io.Writer, sessions []*domain.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found.")
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  [%s]  %s  (%.3f/%.0f credits)\n",
			s.ID, s.Status, firstLine(s.Mission), s.Cost.UsedCredits, s.Cost.BudgetCap)
	}
}

// renderWaveReport writes a human-readable wave outcome.
func renderWaveReport(w io.Writer, report *session.WaveReport) {
	fmt.Fprintf(w, "Wave (%s): %d/%d steps, %d executed, %d blocked\n",
		report.Strategy, report.EffectiveSteps, report.RequestedSteps,
		len(report.Executed), len(report.Blocked))
	for _, id := range report.Executed {
		fmt.Fprintf(w, "  executed  %s\n", id)
	}
	for _, id := range report.Blocked {
		fmt.Fprintf(w, "  blocked   %s\n", id)
	}
}

// firstLine truncates multi-line text to its first line.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
