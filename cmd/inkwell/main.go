// cmd/inkwell/main.go
package main

import (
	"fmt"
	"io"
	stlog "log"
	"os"

	"github.com/inkwell-editor/inkwell/internal/app"
	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/logger"
)

const version = "0.1.0"

func main() {
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if flags.Version != nil && *flags.Version {
		fmt.Printf("inkwell %s\n", version)
		return
	}

	configPath := ""
	if flags.ConfigFilePath != nil {
		configPath = *flags.ConfigFilePath
	}
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		stlog.Printf("Warning: config load: %v", err)
	}

	logOutput, closeLog, err := openLogOutput(cfg.Logger.LogFilePath)
	if err != nil {
		stlog.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	logger.InitWithConfig(cfg.Logger, logOutput)

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	logger.Infof("Starting inkwell %s", version)
	if filePath != "" {
		logger.Debugf("Opening file: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting with empty workspace")
	}

	inkwellApp, err := app.NewApp(filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		os.Exit(1)
	}

	if err := inkwellApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("inkwell finished")
}

// openLogOutput resolves the log destination: "-" or empty means
// stderr, anything else is an append-mode file.
func openLogOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
