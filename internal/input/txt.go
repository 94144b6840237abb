package input

import (
	"bufio"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// LoadTXT reads one identifier per line, skipping blank lines.
func LoadTXT(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "input: open txt")
	}
	defer f.Close() //nolint:errcheck

	var values []string
	scanner := bufio.NewScanner(stripBOM(f))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		values = append(values, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrap(err, "input: read txt")
	}
	return values, nil
}
