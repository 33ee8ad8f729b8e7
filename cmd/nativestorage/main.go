package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go.nhat.io/nativestorage"
)

var errUsage = errors.New("usage: nativestorage [flags] get <key> | set <key> <value>")

func initLogger(level zapcore.Level) *zap.Logger {
	conf := zap.NewProductionEncoderConfig()
	conf.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewConsoleEncoder(conf)
	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)

	return zap.New(core)
}

func main() {
	conf, args, err := ReadConf(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	level, err := zapcore.ParseLevel(conf.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	logger := initLogger(level)
	defer logger.Sync() //nolint: errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, logger, conf, args, os.Stdout); err != nil {
		logger.Error("command failed", zap.Error(err))
		stop()
		os.Exit(1) //nolint: gocritic
	}
}

func run(ctx context.Context, logger *zap.Logger, conf *Config, args []string, out io.Writer) (err error) {
	s, closeFn, err := openStorage(logger, conf)
	if err != nil {
		return err
	}

	defer func() {
		err = multierr.Append(err, closeFn())
	}()

	if len(args) == 0 {
		return errUsage
	}

	switch {
	case args[0] == "get" && len(args) == 2:
		entry, err := s.Get(args[1]).Wait(ctx)
		if err != nil {
			return err //nolint: wrapcheck
		}

		_, err = fmt.Fprintln(out, entry)

		return err //nolint: wrapcheck

	case args[0] == "set" && len(args) == 3:
		_, err := s.Set(args[1], args[2]).Wait(ctx)

		return err //nolint: wrapcheck
	}

	return errUsage
}

func openStorage(logger *zap.Logger, conf *Config) (nativestorage.Storage[string], func() error, error) {
	closeFn := func() error { return nil }

	var local nativestorage.LocalArea

	switch conf.Backend {
	case backendLevelDB:
		a, err := nativestorage.OpenLevelDBArea(conf.LevelDB.Path)
		if err != nil {
			return nil, nil, err //nolint: wrapcheck
		}

		local, closeFn = a, a.Close

	case backendKeyring:
		local = nativestorage.NewKeyringArea(conf.Keyring.Service)

	default:
		local = nativestorage.NewMemoryLocalArea()
	}

	if conf.Area == areaSync {
		var area nativestorage.SyncArea = nativestorage.NewEncodedSyncArea(local)

		if conf.Backend == backendMemory {
			area = nativestorage.NewMemorySyncArea(nativestorage.WithQuota(nativestorage.ChromeSyncQuota))
		}

		return nativestorage.NewSyncedStorage[string](area, nativestorage.WithLogger(logger)), closeFn, nil
	}

	return nativestorage.NewLocalStorage[string](local,
		nativestorage.WithLogger(logger),
		nativestorage.WithDelay(time.Duration(conf.DelayMs)*time.Millisecond),
	), closeFn, nil
}
