package file

import (
	"bufio"
	"os"
	"strings"
)

// ReadList reads a text file line by line and returns its non-empty,
// non-comment lines in order. Lines that are empty or start with '#' after
// trimming are skipped.
//
// The fetch command uses this for endpoint list files, where each line names
// one entity type and its API resource (e.g. "railway odpt:Railway").
func ReadList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
