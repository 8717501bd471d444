package export

import (
	"bufio"
	"io"

	"github.com/sysreport/sysreport/internal/report"
)

// WriteText writes every section as a "=== label ===" line, its content
// and a blank line.
func WriteText(w io.Writer, sections []report.Section) error {
	bw := bufio.NewWriter(w)
	for _, s := range sections {
		bw.WriteString("=== " + s.Label() + " ===\n")
		bw.WriteString(s.Content + "\n\n")
	}
	return bw.Flush()
}
