package logging

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// channel is a named Logger backed by a logrus entry
type channel struct {
	name  string
	entry *logrus.Entry
}

type contextFieldsKey struct{}

// ContextWithFields attaches log fields to ctx. Every *Context logging call
// made with the returned context carries them.
func ContextWithFields(ctx context.Context, fields map[string]interface{}) context.Context {
	merged := make(map[string]interface{})
	for k, v := range fieldsFromContext(ctx) {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, contextFieldsKey{}, merged)
}

func fieldsFromContext(ctx context.Context) map[string]interface{} {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(contextFieldsKey{}).(map[string]interface{})
	return fields
}

func newChannel(name string, logger *logrus.Logger) *channel {
	return &channel{
		name:  name,
		entry: logrus.NewEntry(logger).WithField("channel", name),
	}
}

func (c *channel) DebugContext(ctx context.Context, message string, args ...map[string]interface{}) {
	c.LogContext(ctx, DebugLevel, message, args...)
}

func (c *channel) InfoContext(ctx context.Context, message string, args ...map[string]interface{}) {
	c.LogContext(ctx, InfoLevel, message, args...)
}

func (c *channel) WarnContext(ctx context.Context, message string, args ...map[string]interface{}) {
	c.LogContext(ctx, WarnLevel, message, args...)
}

func (c *channel) ErrorContext(ctx context.Context, message string, args ...map[string]interface{}) {
	c.LogContext(ctx, ErrorLevel, message, args...)
}

// FatalContext logs at fatal level. It does not exit the process.
func (c *channel) FatalContext(ctx context.Context, message string, args ...map[string]interface{}) {
	c.LogContext(ctx, FatalLevel, message, args...)
}

func (c *channel) LogContext(ctx context.Context, level LogLevel, message string, args ...map[string]interface{}) {
	entry := c.entry
	if fields := fieldsFromContext(ctx); len(fields) > 0 {
		entry = entry.WithFields(fields)
	}
	for _, fields := range args {
		if len(fields) > 0 {
			entry = entry.WithFields(fields)
		}
	}
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	entry.Log(toLogrus(level), message)
}

func (c *channel) Debug(message string, context ...map[string]interface{}) {
	c.Log(DebugLevel, message, context...)
}

func (c *channel) Info(message string, context ...map[string]interface{}) {
	c.Log(InfoLevel, message, context...)
}

func (c *channel) Warn(message string, context ...map[string]interface{}) {
	c.Log(WarnLevel, message, context...)
}

func (c *channel) Error(message string, context ...map[string]interface{}) {
	c.Log(ErrorLevel, message, context...)
}

func (c *channel) Fatal(message string, context ...map[string]interface{}) {
	c.Log(FatalLevel, message, context...)
}

func (c *channel) Log(level LogLevel, message string, contextMaps ...map[string]interface{}) {
	c.LogContext(context.Background(), level, message, contextMaps...)
}

func (c *channel) WithContext(context map[string]interface{}) Logger {
	return &channel{
		name:  c.name,
		entry: c.entry.WithFields(context),
	}
}

func (c *channel) WithChannel(channelName string) Logger {
	return &channel{
		name:  channelName,
		entry: c.entry.WithField("channel", channelName),
	}
}

// writerHook sends entries at or above a level to a writer in its own format.
// It lets the console and the JSON file filter levels independently.
type writerHook struct {
	writer    io.Writer
	formatter logrus.Formatter
	levels    []logrus.Level
	mutex     sync.Mutex
}

func newWriterHook(writer io.Writer, formatter logrus.Formatter, lowest LogLevel) *writerHook {
	var levels []logrus.Level
	for l := logrus.PanicLevel; l <= toLogrus(lowest); l++ {
		levels = append(levels, l)
	}
	return &writerHook{writer: writer, formatter: formatter, levels: levels}
}

func (h *writerHook) Levels() []logrus.Level {
	return h.levels
}

func (h *writerHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	_, err = h.writer.Write(line)
	return err
}

// nullLogger discards all log entries
type nullLogger struct{}

// NewNullLogger returns a Logger that discards everything
func NewNullLogger() Logger {
	return &nullLogger{}
}

func (nl *nullLogger) DebugContext(ctx context.Context, message string, args ...map[string]interface{}) {}
func (nl *nullLogger) InfoContext(ctx context.Context, message string, args ...map[string]interface{})  {}
func (nl *nullLogger) WarnContext(ctx context.Context, message string, args ...map[string]interface{})  {}
func (nl *nullLogger) ErrorContext(ctx context.Context, message string, args ...map[string]interface{}) {}
func (nl *nullLogger) FatalContext(ctx context.Context, message string, args ...map[string]interface{}) {}
func (nl *nullLogger) LogContext(ctx context.Context, level LogLevel, message string, args ...map[string]interface{}) {
}
func (nl *nullLogger) Debug(message string, context ...map[string]interface{})                 {}
func (nl *nullLogger) Info(message string, context ...map[string]interface{})                  {}
func (nl *nullLogger) Warn(message string, context ...map[string]interface{})                  {}
func (nl *nullLogger) Error(message string, context ...map[string]interface{})                 {}
func (nl *nullLogger) Fatal(message string, context ...map[string]interface{})                 {}
func (nl *nullLogger) Log(level LogLevel, message string, context ...map[string]interface{})   {}
func (nl *nullLogger) WithContext(context map[string]interface{}) Logger                       { return nl }
func (nl *nullLogger) WithChannel(channel string) Logger                                       { return nl }
