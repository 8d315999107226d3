// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger returns a logger writing to stderr at the display level and,
// if [LogDir] is set, to a rotated file named after [name] at the log
// level.
func (c *Config) NewLogger(name string, stderr io.Writer) logging.Logger {
	if stderr == nil {
		stderr = os.Stderr
	}
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(c.GetLogDisplayLevel(), nopCloser{stderr}, logging.Colors.ConsoleEncoder()),
	}
	if c.LogDir != "" {
		rw := &lumberjack.Logger{
			Filename:   filepath.Join(c.LogDir, name+".log"),
			MaxSize:    c.LogMaxSize,
			MaxAge:     c.LogMaxAge,
			MaxBackups: c.LogMaxFiles,
			Compress:   c.LogCompress,
		}
		cores = append(cores, logging.NewWrappedCore(c.GetLogLevel(), rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger(logging.Plain.WrapPrefix(name), cores...)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
