package internal

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/furious-luke/datetimeutils/datetime"
)

type Patterns struct {
	DateTime string
	Date     string
}

type Context struct {
	Debug    bool
	Log      *zap.Logger
	Out      io.Writer
	Patterns Patterns
}

// PrepareContext resolves indirect values, fills in default patterns, checks
// that the configured patterns compile and builds the logger.
func PrepareContext(ctx *Context) error {
	var err error
	if ctx.Patterns.DateTime, err = readValue(ctx.Patterns.DateTime); err != nil {
		return err
	}
	if ctx.Patterns.Date, err = readValue(ctx.Patterns.Date); err != nil {
		return err
	}
	if len(ctx.Patterns.DateTime) == 0 {
		ctx.Patterns.DateTime = datetime.DateTimePattern
	}
	if len(ctx.Patterns.Date) == 0 {
		ctx.Patterns.Date = datetime.DatePattern
	}
	if _, err := datetime.Compile(ctx.Patterns.DateTime); err != nil {
		return errors.Wrap(err, "invalid date-time pattern")
	}
	if _, err := datetime.Compile(ctx.Patterns.Date); err != nil {
		return errors.Wrap(err, "invalid date pattern")
	}

	if ctx.Log == nil {
		var logCfg zap.Config
		if ctx.Debug {
			logCfg = zap.NewDevelopmentConfig()
		} else {
			logCfg = zap.NewProductionConfig()
		}
		logCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
		if ctx.Log, err = logCfg.Build(); err != nil {
			return errors.Wrap(err, "failed to build logger")
		}
	}
	if ctx.Out == nil {
		ctx.Out = os.Stdout
	}
	return nil
}

func (ctx *Context) pattern(date bool) string {
	if date {
		return ctx.Patterns.Date
	}
	return ctx.Patterns.DateTime
}

func readValue(value string) (string, error) {
	v, err := derefValue(value)
	if err != nil {
		return "", err
	}
	return derefValue(v)
}

func derefValue(value string) (string, error) {
	if strings.HasPrefix(value, "file:") {
		path := value[5:]
		buf, err := os.ReadFile(path)
		if err != nil {
			return "", errors.Wrapf(err, "failed to open value file %s", path)
		}
		return strings.TrimSpace(string(buf)), nil
	} else if strings.HasPrefix(value, "env:") {
		env := value[4:]
		return os.Getenv(env), nil
	} else {
		return value, nil
	}
}
