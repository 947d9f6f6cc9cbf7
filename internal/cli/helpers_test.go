package cli

import (
	"os"
	"strconv"
	"testing"
)

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
