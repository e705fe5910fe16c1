package log

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

var (
	samplePoints   = 3
	sampleCurve    = "secp256k1"
	sampleList     = []int64{10, 0, -10}
	sampleDuration = time.Second
	sampleTime     = time.Unix(12345678, 0)

	errSample = errors.New("some error")
)

func doLogs() {
	Infof("encrypted %d points on curve %s", samplePoints, sampleCurve)
	Debugw("storing key", "name", "alice", "curve", sampleCurve)
	Errorf("cannot commit ciphertext: %v", errSample)
	Warnw("various types",
		"list", sampleList,
		"duration", sampleDuration,
		"time", sampleTime,
	)
	Error(errSample)
}

func TestLevelFiltering(t *testing.T) {
	c := qt.New(t)
	t.Cleanup(func() { Init(LogLevelError, "stderr", nil) })

	buf := new(bytes.Buffer)
	logTestWriter = buf
	Init(LogLevelWarn, logTestWriterName, nil)
	c.Assert(Level(), qt.Equals, LogLevelWarn)

	Debugf("hidden debug %d", 1)
	Infow("hidden info", "k", "v")
	Warnw("visible warning", "curve", sampleCurve)
	out := buf.String()
	c.Assert(strings.Contains(out, "hidden"), qt.IsFalse)
	c.Assert(strings.Contains(out, "visible warning"), qt.IsTrue)
	c.Assert(strings.Contains(out, sampleCurve), qt.IsTrue)
}

func TestErrorOutput(t *testing.T) {
	c := qt.New(t)
	t.Cleanup(func() { Init(LogLevelError, "stderr", nil) })

	logTestWriter = io.Discard
	errBuf := new(bytes.Buffer)
	Init(LogLevelDebug, logTestWriterName, errBuf)

	Infof("not an error")
	Errorw(errSample, "decrypt failed")
	c.Assert(strings.Contains(errBuf.String(), "not an error"), qt.IsFalse)
	c.Assert(strings.Contains(errBuf.String(), "decrypt failed"), qt.IsTrue)
}

func TestShort(t *testing.T) {
	c := qt.New(t)
	c.Assert(Short("abc"), qt.Equals, "abc")
	long := strings.Repeat("x", 100)
	c.Assert(Short(long), qt.Equals, strings.Repeat("x", 64)+"...")
}

func TestCheckInvalidChars(t *testing.T) {
	t.Cleanup(func() { panicOnInvalidChars = false })

	v := []byte{'h', 'e', 'l', 'l', 'o', 0xff, 'w', 'o', 'r', 'l', 'd'}
	panicOnInvalidChars = false
	Init("debug", "stderr", nil)
	Debugf("%s", v)
	// should not panic since env var is false. if it panics, test will fail

	// now enable panic and try again: should recover() and never reach t.Errorf()
	panicOnInvalidChars = true
	Init("debug", "stderr", nil)
	defer func() { recover() }()
	Debugf("%s", v)
	t.Errorf("Debugf(%s) should have panicked because of invalid char", v)
}

func BenchmarkLogger(b *testing.B) {
	logTestWriter = io.Discard // to not grow a buffer
	Init("debug", logTestWriterName, nil)

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		doLogs()
	}
}
