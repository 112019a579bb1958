package logutil

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)
	log.Infof("loaded %d sequences", 3)
	_ = log.Sync()
	if !strings.Contains(buf.String(), "loaded 3 sequences") {
		t.Fatalf("missing message: %q", buf.String())
	}
}

func TestQuietSuppressesInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)
	log.Infof("chatty")
	log.Warnf("important")
	_ = log.Sync()
	out := buf.String()
	if strings.Contains(out, "chatty") {
		t.Fatalf("quiet mode must drop info lines: %q", out)
	}
	if !strings.Contains(out, "important") {
		t.Fatalf("warnings must survive quiet mode: %q", out)
	}
}
