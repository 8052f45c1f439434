package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/Versifine/chatnbt/internal/config"
	"github.com/Versifine/chatnbt/internal/logger"
	"github.com/Versifine/chatnbt/internal/protocol"
)

func main() {
	flags := pflag.NewFlagSet("chatnbt", pflag.ExitOnError)
	configPath := flags.String("config", "", "path to YAML config (default configs/config.yaml if present)")
	mode := flags.String("mode", modeDecode, "decode | normalize | packets | wrap")
	in := flags.String("in", "-", "input file, - for stdin")
	out := flags.String("out", "-", "output file, - for stdout")
	logLevel := flags.String("log-level", "", "debug | info | warn | error")
	maxDepth := flags.Int("max-depth", 0, "component nesting limit")
	threshold := flags.Int("threshold", protocol.NoCompression, "packet compression threshold, -1 for uncompressed framing")
	sender := flags.String("sender", "", "wrap: emit a player chat packet from this sender instead of system chat")
	actionBar := flags.Bool("action-bar", false, "wrap: mark the system chat packet as an action bar message")
	_ = flags.Parse(os.Args[1:])

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = *logLevel
	}
	if flags.Changed("max-depth") {
		cfg.Codec.MaxDepth = *maxDepth
	}
	if flags.Changed("threshold") {
		cfg.Input.CompressionThreshold = *threshold
	}

	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openInput(*in)
	if err != nil {
		logger.L().Error("Failed to open input", "path", *in, "error", err)
		os.Exit(1)
	}
	defer src.Close()

	dst, err := openOutput(*out)
	if err != nil {
		logger.L().Error("Failed to open output", "path", *out, "error", err)
		os.Exit(1)
	}
	defer dst.Close()

	r := newRunner(cfg)
	r.sender = *sender
	r.actionBar = *actionBar
	if err := r.run(ctx, *mode, src, dst); err != nil {
		logger.L().Error("Run failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

// loadConfig 显式指定的配置文件必须存在, 默认路径缺失时使用默认配置
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load("configs/config.yaml")
	if errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

func openInput(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func openOutput(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
