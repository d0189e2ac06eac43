package tabular

import (
	"regexp"
	"strings"
)

// Inventory export rows start with a hexadecimal unique id of at least
// eight characters followed by a comma.
var inventoryRowPrefix = regexp.MustCompile(`^[0-9a-fA-F]{8,},`)

// RepairInventoryText re-joins inventory rows broken by stray line
// breaks inside unquoted fields. Any line break whose following line
// does not start with the hex UID prefix is assumed spurious and is
// replaced with a single space. The pass is irreversible and must run
// exactly once, before parsing.
//
// Known fragility: a data field that happens to start with 8+ hex
// characters and a comma, or a genuine row with a corrupted leading
// UID, will be mis-merged. The normalizer counts rows whose cell count
// still mismatches the header so ingestion can surface a warning.
func RepairInventoryText(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}

	var b strings.Builder
	b.WriteString(lines[0])
	for _, line := range lines[1:] {
		if inventoryRowPrefix.MatchString(line) {
			b.WriteString("\n")
			b.WriteString(line)
			continue
		}
		// Spurious break: drop any CRLF remnant and splice the
		// fragment back onto the current row.
		joined := strings.TrimRight(b.String(), "\r")
		b.Reset()
		b.WriteString(joined)
		b.WriteString(" ")
		b.WriteString(line)
	}
	return b.String()
}
