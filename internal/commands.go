package internal

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/furious-luke/datetimeutils/datetime"
)

func Now(date bool, pattern string, ctx *Context) error {
	log := ctx.Log
	if len(pattern) == 0 {
		pattern = ctx.pattern(date)
	}
	log.Debug("starting now", zap.Bool("date", date), zap.String("pattern", pattern))
	startTime := time.Now()

	var result string
	var err error
	switch {
	case date && pattern == datetime.DatePattern:
		result = datetime.CurrentDateString()
	case !date && pattern == datetime.DateTimePattern:
		result = datetime.CurrentDateTimeString()
	case date:
		result, err = datetime.FormatDate(datetime.CurrentDate(), pattern)
	default:
		result, err = datetime.FormatDateTime(datetime.CurrentDateTime(), pattern)
	}
	if err != nil {
		return errors.Wrap(err, "failed to format current time")
	}
	fmt.Fprintln(ctx.Out, result)

	storeMetric(&Metric{
		Op:         "NO",
		Subject:    pattern,
		StartTime:  startTime,
		FinishTime: time.Now(),
	}, ctx)
	return nil
}

func Format(value string, pattern string, date bool, ctx *Context) error {
	log := ctx.Log
	if len(pattern) == 0 {
		pattern = ctx.pattern(date)
	}
	log.Debug("starting format", zap.String("value", value), zap.String("pattern", pattern))
	startTime := time.Now()

	var result string
	if date {
		d, err := ParseValueDate(value)
		if err != nil {
			return errors.Wrapf(err, "invalid date %q", value)
		}
		if result, err = datetime.FormatDate(d, pattern); err != nil {
			return errors.Wrap(err, "failed to format date")
		}
	} else {
		dt, err := ParseValueDateTime(value)
		if err != nil {
			return errors.Wrapf(err, "invalid date-time %q", value)
		}
		if result, err = datetime.FormatDateTime(dt, pattern); err != nil {
			return errors.Wrap(err, "failed to format date-time")
		}
	}
	fmt.Fprintln(ctx.Out, result)

	storeMetric(&Metric{
		Op:         "FO",
		Subject:    value,
		StartTime:  startTime,
		FinishTime: time.Now(),
	}, ctx)
	return nil
}

func Parse(text string, pattern string, date bool, ctx *Context) error {
	log := ctx.Log
	if len(pattern) == 0 {
		pattern = ctx.pattern(date)
	}
	log.Debug("starting parse", zap.String("text", text), zap.String("pattern", pattern))
	startTime := time.Now()

	if date {
		d, err := datetime.ParseDate(text, pattern)
		if err != nil {
			return errors.Wrap(err, "failed to parse date")
		}
		fmt.Fprintln(ctx.Out, d)
	} else {
		dt, err := datetime.ParseDateTime(text, pattern)
		if err != nil {
			return errors.Wrap(err, "failed to parse date-time")
		}
		fmt.Fprintln(ctx.Out, dt)
	}

	storeMetric(&Metric{
		Op:         "PA",
		Subject:    text,
		StartTime:  startTime,
		FinishTime: time.Now(),
	}, ctx)
	return nil
}

func Convert(text string, from string, to string, date bool, ctx *Context) error {
	log := ctx.Log
	log.Debug("starting convert", zap.String("text", text), zap.String("from", from), zap.String("to", to))
	startTime := time.Now()

	var result string
	if date {
		d, err := datetime.ParseDate(text, from)
		if err != nil {
			return errors.Wrap(err, "failed to parse date")
		}
		if result, err = datetime.FormatDate(d, to); err != nil {
			return errors.Wrap(err, "failed to format date")
		}
	} else {
		dt, err := datetime.ParseDateTime(text, from)
		if err != nil {
			return errors.Wrap(err, "failed to parse date-time")
		}
		if result, err = datetime.FormatDateTime(dt, to); err != nil {
			return errors.Wrap(err, "failed to format date-time")
		}
	}
	fmt.Fprintln(ctx.Out, result)

	storeMetric(&Metric{
		Op:         "CO",
		Subject:    text,
		StartTime:  startTime,
		FinishTime: time.Now(),
	}, ctx)
	return nil
}
