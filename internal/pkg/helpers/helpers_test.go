package helpers

import (
	"bytes"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/quizapi/internal/pkg/apperrors"
)

func newContext(target string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	return c
}

func TestParseSampleWindow(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    SampleWindow
		wantErr bool
	}{
		{"defaults", "/x", SampleWindow{Offset: 10, Count: 15}, false},
		{"explicit", "/x?limit_start=0&limit_end=5", SampleWindow{Offset: 0, Count: 5}, false},
		{"negative offset", "/x?limit_start=-1", SampleWindow{}, true},
		{"zero count", "/x?limit_end=0", SampleWindow{}, true},
		{"too many", "/x?limit_end=101", SampleWindow{}, true},
		{"not a number", "/x?limit_start=abc", SampleWindow{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSampleWindow(newContext(tt.target), 100)
			if tt.wantErr {
				if !errors.Is(err, apperrors.ErrValidationFailed) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("got %+v, %v; want %+v", got, err, tt.want)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	c := newContext("/")
	c.Params = gin.Params{{Key: "topic_id", Value: "42"}}
	if id, err := ParseIDParam(c, "topic_id"); err != nil || id != 42 {
		t.Fatalf("got %d, %v", id, err)
	}

	c.Params = gin.Params{{Key: "topic_id", Value: "0"}}
	if _, err := ParseIDParam(c, "topic_id"); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfigDuration(t *testing.T) {
	var buf bytes.Buffer
	lgr := zerolog.New(&buf)

	tests := []struct {
		name  string
		value string
		want  time.Duration
		warns bool
	}{
		{"valid", "2h", 2 * time.Hour, false},
		{"empty", "", time.Minute, false},
		{"malformed", "nope", time.Minute, true},
		{"zero", "0s", time.Minute, true},
		{"negative", "-5m", time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			if got := ConfigDuration("rate_limit.window", tt.value, time.Minute, lgr); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			logged := strings.Contains(buf.String(), `"key":"rate_limit.window"`)
			if logged != tt.warns {
				t.Fatalf("warning logged = %v, want %v (%s)", logged, tt.warns, buf.String())
			}
		})
	}
}
