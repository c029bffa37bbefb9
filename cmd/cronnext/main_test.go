package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 8, 13, 9, 30, 0, 0, time.UTC)

func runCommand(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr, testNow)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		code   int
		stdout string
	}{
		{
			name:   "Next run from now",
			args:   []string{"--tz", "UTC", "@daily"},
			code:   exitOK,
			stdout: "@daily\t2025-08-14T00:00:00Z\n",
		},
		{
			name: "Several runs after an instant",
			args: []string{"--after", "2025-08-13T00:00:00Z", "--tz", "UTC", "-n", "2", "@weekly"},
			code: exitOK,
			stdout: "@weekly\t2025-08-17T00:00:00Z\n" +
				"@weekly\t2025-08-24T00:00:00Z\n",
		},
		{
			name:   "Time zone",
			args:   []string{"--tz", "Europe/Paris", "0 0 12 * * *"},
			code:   exitOK,
			stdout: "0 0 12 * * *\t2025-08-13T12:00:00+02:00\n",
		},
		{
			name:   "No run left",
			args:   []string{"--tz", "UTC", "0 0 0 1 1 * 2003"},
			code:   exitOK,
			stdout: "0 0 0 1 1 * 2003\tnever\n",
		},
		{
			name:   "Validate",
			args:   []string{"--validate", "0 0 23 ? * MON-fRi"},
			code:   exitOK,
			stdout: "0 0 23 ? * MON-fRi\tok\t0 0 23 ? * 1-5 *\n",
		},
		{
			name:   "Invalid expression",
			args:   []string{"--tz", "UTC", "1 2 3", "@hourly"},
			code:   exitInvalid,
			stdout: "@hourly\t2025-08-13T10:00:00Z\n",
		},
		{
			name: "No expression",
			args: []string{"--tz", "UTC"},
			code: exitUsage,
		},
		{
			name: "Unknown time zone",
			args: []string{"--tz", "Mars/Olympus", "@daily"},
			code: exitUsage,
		},
		{
			name: "Bad instant",
			args: []string{"--after", "yesterday", "@daily"},
			code: exitUsage,
		},
		{
			name: "Bad count",
			args: []string{"-n", "0", "@daily"},
			code: exitUsage,
		},
		{
			name: "Bad log level",
			args: []string{"--log-level", "loud", "@daily"},
			code: exitUsage,
		},
		{
			name: "Unknown flag",
			args: []string{"--frobnicate", "@daily"},
			code: exitUsage,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, stdout, _ := runCommand(t, c.args...)
			assert.Equal(t, c.code, code)
			assert.Equal(t, c.stdout, stdout)
		})
	}
}

func TestRunReportsInvalidExpression(t *testing.T) {
	code, _, stderr := runCommand(t, "1 ? * * * *")
	assert.Equal(t, exitInvalid, code)
	assert.Contains(t, stderr, "1 ? * * * *: cron: minute")
}

func TestRunHelp(t *testing.T) {
	code, stdout, stderr := runCommand(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "--count")
}

func TestRunDebugLog(t *testing.T) {
	code, _, stderr := runCommand(t, "--tz", "UTC", "--log-level", "debug", "@weekly")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr, "day of week rejected")
	assert.Contains(t, stderr, "computed runs")
}

func TestRunFile(t *testing.T) {
	path := writeFile(t, `timezone: Europe/Paris
schedules:
  - name: backup
    expression: "0 0 3 * * *"
  - expression: "@monthly"
`)

	code, stdout, _ := runCommand(t, "-f", path, "-n", "2")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "backup\t2025-08-14T03:00:00+02:00\n"+
		"backup\t2025-08-15T03:00:00+02:00\n"+
		"@monthly\t2025-09-01T00:00:00+02:00\n"+
		"@monthly\t2025-10-01T00:00:00+02:00\n", stdout)

	// --tz wins over the file's time zone.
	code, stdout, _ = runCommand(t, "-f", path, "--tz", "UTC", "--validate")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "backup\tok\t0 0 3 * * * *\n"+
		"@monthly\tok\t0 0 0 1 * * *\n", stdout)
}

func TestLoadScheduleFile(t *testing.T) {
	file, err := loadScheduleFile(writeFile(t, `schedules:
  - name: nightly
    expression: "@midnight"
  - expression: "0 */5 * * * *"
`))
	require.NoError(t, err)
	assert.Empty(t, file.Timezone)
	assert.Equal(t, []namedSchedule{
		{Name: "nightly", Expression: "@midnight"},
		{Name: "0 */5 * * * *", Expression: "0 */5 * * * *"},
	}, file.Schedules)

	_, err = loadScheduleFile(writeFile(t, "schedules:\n  - name: empty\n"))
	assert.ErrorContains(t, err, "has no expression")

	_, err = loadScheduleFile(writeFile(t, "schedules: [unterminated\n"))
	assert.Error(t, err)

	_, err = loadScheduleFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
