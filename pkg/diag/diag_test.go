package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/simonhull/firebird-suite/heron/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestCollector_ReportAndErr(t *testing.T) {
	c := NewCollector(nil)
	assert.NoError(t, c.Err())

	c.Report("demo", errBoom)
	c.Report("demo", nil)
	c.ReportAll("other", []error{errors.New("a"), errors.New("b")})

	require.Equal(t, 3, c.Len())

	ds := c.Diagnostics()
	assert.Equal(t, "demo", ds[0].Package)
	assert.Equal(t, "demo: boom", ds[0].Error())
	assert.ErrorIs(t, ds[0], errBoom)

	err := c.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 3)
	assert.Contains(t, err.Error(), "3 diagnostics")
	assert.Contains(t, err.Error(), "other: b")
}

func TestCollector_SingleDiagnosticFormat(t *testing.T) {
	c := NewCollector(nil)
	c.Report("", errBoom)
	assert.Equal(t, "1 diagnostic: boom", c.Err().Error())
}

func TestCollector_LogsEachReport(t *testing.T) {
	buf := &bytes.Buffer{}
	c := NewCollector(logger.NewLogger(logger.LevelWarn, buf))

	c.Report("demo", errBoom)

	assert.Contains(t, buf.String(), "package=demo")
	assert.Contains(t, buf.String(), "reason=boom")
}

func TestCollector_DiagnosticsIsCopy(t *testing.T) {
	c := NewCollector(nil)
	c.Report("demo", errBoom)

	ds := c.Diagnostics()
	ds[0].Package = "changed"

	assert.Equal(t, "demo", c.Diagnostics()[0].Package)
}
