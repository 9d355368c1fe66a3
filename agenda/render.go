package agenda

import (
	"bufio"
	"io"
	"strings"
)

// DisplayColumns are the session columns printed for each record, in
// order.
var DisplayColumns = []string{
	"title",
	"date",
	"time_start",
	"time_end",
	"location",
	"description",
}

const (
	separatorWidth = 63
	noneText       = "None"
)

var separator = strings.Repeat("=", separatorWidth)

// Render writes records to w, one delimited block per record. Missing
// values and empty speaker lists print as "None".
func Render(w io.Writer, records []DisplayRecord) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		bw.WriteString(separator + "\n")
		for _, c := range DisplayColumns {
			bw.WriteString(c + ": " + r.Session.Get(c).String() + "\n\n")
		}
		bw.WriteString("speakers: " + FormatSpeakers(r.Speakers) + "\n")
		bw.WriteString(separator + "\n\n")
	}
	return bw.Flush()
}

// FormatSpeakers joins names with "; ", or returns "None" when there are
// none.
func FormatSpeakers(names []string) string {
	if len(names) == 0 {
		return noneText
	}
	return strings.Join(names, "; ")
}
