// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package logger

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var _ LoggerInterface = (*Logger)(nil)

// Logger fans log lines out to an optional consumer channel and an optional
// file. Sends to Prints never block; lines are dropped when nobody reads.
type Logger struct {
	Prints chan string

	out io.WriteCloser
}

// FileConfig describes a rotating log file.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func Init() *Logger {
	return &Logger{Prints: make(chan string, 100)}
}

// InitFile is Init plus a rotating log file at cfg.Path.
func InitFile(cfg FileConfig) *Logger {
	l := Init()
	l.out = &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	return l
}

func (l *Logger) Print(s string) {
	if l.out != nil {
		fmt.Fprintf(l.out, "%s %s\n", time.Now().Format(time.RFC3339), s)
	}
	select {
	case l.Prints <- s:
	default:
	}
}

func (l *Logger) Printf(s string, as ...interface{}) {
	l.Print(fmt.Sprintf(s, as...))
}

func (l *Logger) PrintError(source string, err error) {
	l.Printf("Error(%s) -> %s", source, err.Error())
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.out == nil {
		return nil
	}
	return l.out.Close()
}
