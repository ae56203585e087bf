package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Logger writes tagged, leveled log lines to the console (colored) and to a
// plain-text log file. Subsystem helpers (LogAPI, LogDatabase, ...) exist so
// the rest of the codebase never has to format its own tags.
type Logger struct {
	mu   sync.Mutex
	file *os.File

	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
}

func NewLogger() *Logger {
	l := &Logger{
		debugColor: color.New(color.FgHiBlack),
		infoColor:  color.New(color.FgCyan),
		warnColor:  color.New(color.FgYellow),
		errorColor: color.New(color.FgRed, color.Bold),
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0o755); err == nil {
		path := filepath.Join(logDir, "ticksy.log")
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			l.file = f
		}
	}

	return l
}

func (l *Logger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func (l *Logger) write(level string, c *color.Color, category, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := time.Now().Format("2006-01-02 15:04:05.000")
	line := fmt.Sprintf("%s [%s] [%s] %s", ts, level, category, message)

	c.Fprintln(os.Stdout, line)
	if l.file != nil {
		fmt.Fprintln(l.file, line)
	}
}

func (l *Logger) Debug(category, message string) {
	if os.Getenv("LOG_LEVEL") == "debug" {
		l.write("DEBUG", l.debugColor, category, message)
	}
}

func (l *Logger) Info(category, message string) {
	l.write("INFO", l.infoColor, category, message)
}

func (l *Logger) Warn(category, message string) {
	l.write("WARN", l.warnColor, category, message)
}

func (l *Logger) Error(category, message string) {
	l.write("ERROR", l.errorColor, category, message)
}

func (l *Logger) Fatal(category, message string) {
	l.write("FATAL", l.errorColor, category, message)
	l.Close()
	os.Exit(1)
}

// LogProcess marks lifecycle milestones (startup, shutdown, component init).
func (l *Logger) LogProcess(stage, message string) {
	l.Info("PROCESS", fmt.Sprintf("[%s] %s", stage, message))
}

func (l *Logger) LogAPI(method, path, status, duration string) {
	l.Info("API", fmt.Sprintf("%s %s - %s (%s)", method, path, status, duration))
}

func (l *Logger) LogDatabase(operation, target, message string) {
	l.Info("DATABASE", fmt.Sprintf("[%s] [%s] %s", operation, target, message))
}

func (l *Logger) LogKafka(operation, topic, message string) {
	l.Info("KAFKA", fmt.Sprintf("[%s] [%s] %s", operation, topic, message))
}

func (l *Logger) LogPayment(operation, paymentID, message string) {
	l.Info("PAYMENT", fmt.Sprintf("[%s] [%s] %s", operation, paymentID, message))
}

func (l *Logger) LogAuth(operation, subject, message string) {
	l.Info("AUTH", fmt.Sprintf("[%s] [%s] %s", operation, subject, message))
}

func (l *Logger) LogSecurity(event, message string) {
	l.Warn("SECURITY", fmt.Sprintf("[%s] %s", event, message))
}
