package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsolatedLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.log")
	l := NewIsolatedLogger(path)

	l.Info("LEDGER", "Approved transaction", map[string]interface{}{"reference": "TXN-ABCDEF12"})
	l.Error("LEDGER", "Publish failed", map[string]interface{}{"error": errors.New("nats down")})
	l.Debug("LEDGER", "below file level", nil)
	require.NoError(t, l.Sync())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}

	require.Len(t, lines, 2)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "LEDGER", lines[0]["module"])
	assert.Equal(t, "Approved transaction", lines[0]["message"])
	assert.Equal(t, "nats down", lines[1]["error"])
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Warn("X", "ignored", nil)
	assert.NoError(t, l.Sync())
}
