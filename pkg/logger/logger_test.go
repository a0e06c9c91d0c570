package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_TagsServiceName(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var buf bytes.Buffer
	log := Init(Options{Level: "info", Output: &buf})
	log.Info().Msg("boot")

	line := buf.String()
	if !strings.Contains(line, `"service":"company-api"`) {
		t.Fatalf("service field missing from log line: %s", line)
	}
	if !strings.Contains(line, `"message":"boot"`) {
		t.Fatalf("message missing from log line: %s", line)
	}
}

func TestInit_FirstCallWins(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "debug", Output: &first})
	log := Init(Options{Level: "error", Output: &second})

	log.Debug().Msg("still debug")
	if first.Len() == 0 {
		t.Fatalf("second Init must not replace the first logger")
	}
	if second.Len() != 0 {
		t.Fatalf("second Init options must be ignored")
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	defer func() {
		if recover() == nil {
			t.Fatalf("Get before Init must panic")
		}
	}()
	Get()
}

func TestParseLevel_FallsBackToInfo(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
