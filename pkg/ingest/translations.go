package ingest

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/avodyanin-ux/turkish-cards/pkg/words"
)

// ParseTranslations reads a vocabulary file with one "term<TAB>translations"
// pair per line, translations comma-separated. Blank lines and lines
// starting with # are skipped. Parsed records start at stage 0, immediately
// eligible.
func ParseTranslations(path string) ([]words.WordRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []words.WordRecord
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("%s:%d: expected \"term<TAB>translations\"", path, lineNo)
		}

		term := strings.TrimSpace(parts[0])
		var translations []string
		for _, t := range strings.Split(parts[1], ",") {
			if t = strings.TrimSpace(t); t != "" {
				translations = append(translations, t)
			}
		}
		if term == "" || len(translations) == 0 {
			return nil, fmt.Errorf("%s:%d: empty term or translations", path, lineNo)
		}

		records = append(records, words.WordRecord{
			SourceText:   term,
			Translations: translations,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
