// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/goleak"
)

func TestNew_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level   string
		debug   bool
		wantErr bool
	}{
		{"debug", true, false},
		{"info", false, false},
		{"loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			logger, closeFn, err := newLogger(Config{Level: tt.level}, &out)
			if (err != nil) != tt.wantErr {
				t.Fatalf("newLogger() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			logger.Named("render").Debug("hidden unless debug")
			logger.Info("shown")
			if err := closeFn(); err != nil {
				t.Fatal(err)
			}

			s := out.String()
			if got := strings.Contains(s, "hidden unless debug"); got != tt.debug {
				t.Errorf("debug line logged = %v, want %v", got, tt.debug)
			}
			if !strings.Contains(s, `"msg":"shown"`) {
				t.Errorf("output %q lacks the info line", s)
			}
		})
	}
}

func TestNew_File(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	)

	path := filepath.Join(t.TempDir(), "logs", "podmix.log")
	cfg := DefaultConfig()
	cfg.File = path

	var out bytes.Buffer
	logger, closeFn, err := newLogger(cfg, &out)
	if err != nil {
		t.Fatal(err)
	}
	logger.Named("hydrate").Warn("decode failed")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"logger":"hydrate"`) {
		t.Errorf("log file %q lacks the named entry", data)
	}
}
