package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/crmbl/pkg/crmbl/scanner"
)

func TestPrettyFormatter_Format_BasicOutput(t *testing.T) {
	formatter := &PrettyFormatter{}
	var buf bytes.Buffer

	err := formatter.Format(&buf, sampleReport())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "/repo")
	assert.Contains(t, output, "New directories (2)")
	assert.Contains(t, output, "Missing directories (1)")
	assert.Contains(t, output, "/src/api")
	assert.Contains(t, output, "/old")
}

func TestPrettyFormatter_Format_NoDrift(t *testing.T) {
	formatter := &PrettyFormatter{}
	var buf bytes.Buffer

	report := sampleReport()
	report.Result.NewDirs = nil
	report.Result.MissingDirs = nil
	report.Result.Stats = scanner.Stats{Total: 1, Documented: 1}

	err := formatter.Format(&buf, report)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "No drift detected")
	assert.NotContains(t, output, "New directories")
	assert.NotContains(t, output, "Missing directories")
}

func TestPrettyFormatter_Format_Warnings(t *testing.T) {
	formatter := &PrettyFormatter{}
	var buf bytes.Buffer

	report := sampleReport()
	report.Result.Warnings = []string{"reading /repo/locked: permission denied"}

	err := formatter.Format(&buf, report)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "permission denied")
}
