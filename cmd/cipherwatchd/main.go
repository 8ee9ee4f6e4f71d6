package main

import (
	"context"
	"encoding/hex"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cipherwatch/cipherwatch-go/internal/config"
	"github.com/cipherwatch/cipherwatch-go/internal/httpapi"
	"github.com/cipherwatch/cipherwatch-go/internal/sealing"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/assessment"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/mockoracle"
	"github.com/cipherwatch/cipherwatch-go/pkg/cipherwatch/oracle"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yml", "path to the YAML config file")
	flag.Parse()

	logger, err := buildLogger("info")
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	leveled, err := buildLogger(cfg.Log.Level)
	if err != nil {
		logger.Fatal("invalid log level", zap.String("level", cfg.Log.Level), zap.Error(err))
	}
	logger = leveled

	logger.Info("starting cipherwatchd", zap.String("version", cipherwatch.Version))

	key, err := sealing.GenerateKey()
	if err != nil {
		logger.Fatal("failed to generate sealing key", zap.Error(err))
	}
	codec, err := sealing.NewCodec(key)
	if err != nil {
		logger.Fatal("failed to build sealing codec", zap.Error(err))
	}

	orc, err := mockoracle.New(codec)
	if err != nil {
		logger.Fatal("failed to start mock oracle", zap.Error(err))
	}
	logger.Info("mock oracle ready",
		zap.String("pubkey", hex.EncodeToString(orc.PublicKey().SerializeCompressed())))

	verifier, err := oracle.NewVerifier(orc.PublicKey())
	if err != nil {
		logger.Fatal("failed to build callback verifier", zap.Error(err))
	}

	protocol, err := assessment.New(assessment.Config{
		Counselor: cipherwatch.Identity(cfg.Auth.Counselor),
		Client:    orc,
		Verifier:  verifier,
	})
	if err != nil {
		logger.Fatal("failed to build assessment protocol", zap.Error(err))
	}

	srv := httpapi.NewServer(protocol, codec, []byte(cfg.Auth.JWTSecret), logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return orc.Serve(ctx, protocol)
	})
	g.Go(func() error {
		return srv.Run(cfg.Server.Addr)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Fatal("daemon stopped", zap.Error(err))
	}
	logger.Info("daemon stopped")
}

func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}
