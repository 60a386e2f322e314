package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"photomotion/internal/assets"
	"photomotion/internal/domain"
	"photomotion/internal/infra"
	"photomotion/internal/media"
	"photomotion/internal/providers/veo"
)

// generate animates a single photo from the command line and writes the
// resulting video to disk.
func main() {
	_ = godotenv.Load()

	var (
		imagePath = flag.String("image", "", "path to the photo to animate")
		promptArg = flag.String("prompt", "", "optional motion prompt")
		aspectArg = flag.String("aspect", "", "aspect ratio: landscape or portrait")
		outPath   = flag.String("out", "video.mp4", "output file")
	)
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if *imagePath == "" {
		logger.Fatal().Msg("-image is required")
	}
	if cfg.GeminiAPIKey == "" {
		logger.Fatal().Msg("GEMINI_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	image, err := media.EncodeFile(*imagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("could not read the image")
	}
	aspect, err := domain.ParseAspectRatio(*aspectArg)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid aspect ratio")
	}

	client, err := veo.NewClient(ctx, veo.Options{
		APIKey:       cfg.GeminiAPIKey,
		Model:        cfg.VeoModel,
		BaseURL:      cfg.GeminiBaseURL,
		PollInterval: cfg.PollInterval,
		Logger:       &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("could not build the generation client")
	}

	req := domain.GenerationRequest{
		Prompt:        *promptArg,
		ImageData:     image.Data,
		ImageMIMEType: image.MIMEType,
		Aspect:        aspect,
	}
	location, err := client.RunToCompletion(ctx, req, func(message string) {
		logger.Info().Msg(message)
	})
	if err != nil {
		logger.Fatal().Err(err).Msg(domain.UserMessage(err))
	}

	fetcher := assets.NewFetcher(nil, logger)
	asset, err := fetcher.Fetch(ctx, location, cfg.GeminiAPIKey)
	if err != nil {
		logger.Fatal().Err(err).Msg(domain.UserMessage(err))
	}
	if err := os.WriteFile(*outPath, asset.Data, 0o644); err != nil {
		logger.Fatal().Err(err).Msg("could not write the video")
	}
	logger.Info().Str("path", *outPath).Msg("video saved")
}
