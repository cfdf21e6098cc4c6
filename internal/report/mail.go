package report

import (
	"bytes"
	"fmt"
	"time"

	"acl-research/internal/study"
	"acl-research/lib/mailer"
)

// Message renders a comparison report as an email with a plain text body
// and an html alternative.
func Message(to []string, r study.Report, normalized bool, now time.Time) mailer.Message {
	write := func(format Format) string {
		buf := &bytes.Buffer{}
		Results(buf, r.Results, ResultOptions{Mode: r.Mode, Normalized: normalized, Format: format})
		buf.WriteString("\n")
		Pairs(buf, r.Pairs, format)
		if len(r.Skips) > 0 {
			buf.WriteString("\n")
			Skips(buf, r.Skips, format)
		}
		return buf.String()
	}

	return mailer.Message{
		To: to,
		Subject: fmt.Sprintf(
			"ACL comparison (%s, %d pairs) %s",
			r.Mode, len(r.Pairs), now.Format("2006-01-02"),
		),
		Text: write(FormatTable),
		HTML: write(FormatHTML),
	}
}
