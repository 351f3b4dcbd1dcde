// README: File reader for the historical export; skips the header, counts bad rows instead of aborting.
package dataset

import (
	"bufio"
	"os"
	"strings"
)

type ReadStats struct {
	Parsed  int
	Skipped int
}

// ReadFile loads every parseable row of the export. Row-level parse
// failures are counted in stats and never abort the read; only I/O
// errors do.
func (p *Parser) ReadFile(path string) ([]*Record, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{}, err
	}
	defer f.Close()

	var (
		records []*Record
		stats   ReadStats
		first   = true
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := p.ParseLine(line)
		if err != nil {
			stats.Skipped++
			continue
		}
		records = append(records, rec)
		stats.Parsed++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, err
	}
	return records, stats, nil
}
