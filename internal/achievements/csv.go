package achievements

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const (
	csvHeader     = "id,title,category,metric,amount,notes,created_at"
	csvTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// WriteCSV writes the export format: text columns always quoted, missing notes empty,
// timestamps in RFC 3339 UTC.
func WriteCSV(w io.Writer, items []Achievement) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvHeader); err != nil {
		return err
	}
	for _, a := range items {
		notes := ""
		if a.Notes != nil {
			notes = quoteCSV(*a.Notes)
		}
		line := strings.Join([]string{
			strconv.Itoa(a.ID),
			quoteCSV(a.Title),
			quoteCSV(a.Category),
			quoteCSV(a.Metric),
			strconv.FormatFloat(a.Amount, 'f', -1, 64),
			notes,
			a.CreatedAt.UTC().Format(csvTimeLayout),
		}, ",")
		if _, err := bw.WriteString("\n" + line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
