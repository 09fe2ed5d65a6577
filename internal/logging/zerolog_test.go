package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "debug", "json")
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", "two")
	log.Warn(ctx, "wrn", "err", errors.New("boom"))
	log.Error(ctx, "fail", "dangling")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "dbg", lines[0]["message"])
	assert.EqualValues(t, 1, lines[0]["a"])

	assert.Equal(t, "two", lines[1]["b"])
	assert.Equal(t, "boom", lines[2]["err"])
	assert.Equal(t, "dangling", lines[3]["!BADKEY"])
}

func TestZerologLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "warn", "json")

	log.Info(context.Background(), "hidden")
	log.Warn(context.Background(), "shown")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestZerologLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "info", "json").With("component", "auth")
	log.Info(context.Background(), "hello")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "auth", lines[0]["component"])
}

func TestZerologLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, "info", "console")
	log.Info(context.Background(), "restored", "user", "alice")

	out := buf.String()
	assert.Contains(t, out, "restored")
	assert.Contains(t, out, "user=alice")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestNop_DoesNothing(t *testing.T) {
	var l Logger = Nop{}
	l.Info(context.Background(), "x")
	assert.Equal(t, Nop{}, l.With("a", 1))
}
