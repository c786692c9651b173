// Package report renders stored run history.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"i18nguard/internal/data/history"
)

const trendTimeLayout = "2006-01-02T15:04:05Z07:00"

// RenderTrend renders report in the given output format. SARIF has no
// representation for run history.
func RenderTrend(format string, report history.TrendReport) ([]byte, error) {
	switch format {
	case "", "text":
		return RenderTrendText(report)
	case "json":
		return RenderTrendJSON(report)
	case "markdown":
		return RenderTrendMarkdown(report)
	default:
		return nil, fmt.Errorf("history cannot be rendered as %q", format)
	}
}

func RenderTrendText(report history.TrendReport) ([]byte, error) {
	var buf strings.Builder
	if report.RunCount == 0 {
		buf.WriteString("No recorded runs.\n")
		return []byte(buf.String()), nil
	}

	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tCHECK\tRESULT\tPROBLEMS\tDELTA\tCOMMIT\tDURATION")
	for _, point := range report.Points {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%+d\t%s\t%s\n",
			point.Timestamp.Format(trendTimeLayout),
			point.Check,
			passFail(point.Passed),
			point.Problems(),
			point.DeltaProblems,
			shortCommit(point.CommitHash),
			point.Duration.Round(time.Millisecond),
		)
	}
	if err := tw.Flush(); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, "\n%d run(s): %d passed, %d failed", report.RunCount, report.PassCount, report.FailCount)
	if report.LastFailed != nil {
		fmt.Fprintf(&buf, "; last failure %s", report.LastFailed.Format(trendTimeLayout))
	}
	buf.WriteString("\n")
	return []byte(buf.String()), nil
}

func RenderTrendMarkdown(report history.TrendReport) ([]byte, error) {
	var buf strings.Builder
	buf.WriteString("## Run History\n\n")
	buf.WriteString(fmt.Sprintf("%d run(s): %d passed, %d failed\n\n", report.RunCount, report.PassCount, report.FailCount))
	if report.RunCount == 0 {
		return []byte(buf.String()), nil
	}
	buf.WriteString("| Timestamp | Check | Result | Problems | Delta | Commit |\n")
	buf.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, point := range report.Points {
		buf.WriteString(fmt.Sprintf("| %s | %s | %s | %d | %+d | `%s` |\n",
			point.Timestamp.Format(trendTimeLayout),
			point.Check,
			passFail(point.Passed),
			point.Problems(),
			point.DeltaProblems,
			shortCommit(point.CommitHash),
		))
	}
	return []byte(buf.String()), nil
}

func RenderTrendJSON(report history.TrendReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}

func passFail(passed bool) string {
	if passed {
		return "pass"
	}
	return "fail"
}

func shortCommit(hash string) string {
	if hash == "" {
		return "-"
	}
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
