package command

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := newLogger(&buf, "warn", "json")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	logger.InfoContext(context.Background(), "hidden")
	logger.WarnContext(context.Background(), "visible")

	output := buf.String()

	if strings.Contains(output, "hidden") {
		t.Errorf("info record should be filtered out")
	}

	if !strings.Contains(output, `"msg":"visible"`) {
		t.Errorf("expected json warn record, got '%s'", output)
	}

	if _, err := newLogger(&buf, "verbose", "text"); err == nil {
		t.Errorf("expected invalid log level error")
	}

	if _, err := newLogger(&buf, "info", "xml"); err == nil {
		t.Errorf("expected invalid log format error")
	}
}
