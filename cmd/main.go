package main

import (
	"context"
	"flag"
	"os"

	btvo "github.com/Pixel-Explorer/BTVO"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	cfg := btvo.ConfigFromEnv()
	addr := flag.String("addr", cfg.Addr(), "listen address")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()
	cfg.BindAddr = *addr

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("service", "btvo").Logger().
		Level(level)

	logger.Info().Str("version", version).Str("commit", commit).Msg("starting")

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	shutdown, err := btvo.InitTracer("btvo")
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to init tracer")
	}
	defer shutdown(context.Background())

	ctx := context.Background()

	ttsClient, err := btvo.NewTTSClient(ctx, cfg.TTSEndpoint)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create tts client")
	}
	defer ttsClient.Close()
	synth := btvo.NewGoogleSynthesizer(ttsClient)

	var mirror *btvo.ArtifactMirror
	if cfg.ArtifactBucket != "" {
		storageClient, err := btvo.NewStorageClient(ctx, cfg.StorageEndpoint)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create storage client")
		}
		defer storageClient.Close()
		mirror = btvo.NewArtifactMirror(storageClient, cfg.ArtifactBucket, logger)
	}

	srv, err := btvo.NewServer(cfg, logger, synth, mirror)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create server")
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
