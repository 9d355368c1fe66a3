// Command speaker_count reads an agenda spreadsheet and prints how many
// sessions each speaker is listed on. It reads the workbook directly and
// does not touch the agenda store.
package main

import (
	"cmp"
	"fmt"
	"log"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/andrewkroh/go-agenda/agenda"
	"github.com/andrewkroh/go-agenda/agendareader"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <agenda.xls>\n", os.Args[0])
		os.Exit(1)
	}

	rows, err := agendareader.Read(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	counts := map[string]int{}
	for _, row := range rows {
		v := row.Get("speakers")
		if v.IsNull() {
			continue
		}
		for _, name := range agenda.SplitSpeakers(v.String()) {
			counts[name]++
		}
	}

	if len(counts) == 0 {
		fmt.Println("No speakers found.")
		return
	}

	// Sort by count descending, then by name.
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.name, b.name)
	})

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "SPEAKER\tSESSIONS\n")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\n", e.name, e.count)
	}
	fmt.Fprintf(tw, "\t\n")
	fmt.Fprintf(tw, "SPEAKERS\t%d\n", len(entries))
	tw.Flush()
}
