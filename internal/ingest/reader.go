package ingest

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"

	"yt-growth-tracker/internal/domain"
)

// Regex for plausible channel IDs (UC-prefixed 24 char tokens and the like)
var channelIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{10,64}$`)

// LoadTargets reads the channel list CSV (channel_id,label). Invalid lines
// are skipped, not fatal.
func LoadTargets(path string) ([]domain.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Wrap in BOM stripper
	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var targets []domain.Target
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		line++
		if line == 1 {
			continue // Skip header
		}
		if len(record) == 0 {
			continue
		}

		// Validation (Fail-Soft)
		id := strings.TrimSpace(record[0])
		if !channelIDRegex.MatchString(id) {
			continue
		}

		label := ""
		if len(record) > 1 {
			label = strings.TrimSpace(record[1])
		}

		targets = append(targets, domain.Target{
			ChannelID: id,
			Label:     label,
		})
	}
	return targets, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
