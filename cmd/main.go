package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/gommon/log"

	"talespin/pkg/generate"
	"talespin/pkg/inference"
	"talespin/pkg/media"
	"talespin/pkg/server"
	"talespin/pkg/story"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required")
	}

	openAI := inference.NewOpenAIProvider(apiKey, os.Getenv("OPENAI_MODEL"))
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		openAI.ChangeBaseURL(base)
	}
	openAI.SetImageModel(os.Getenv("OPENAI_IMAGE_MODEL"))
	openAI.SetSpeech(os.Getenv("OPENAI_TTS_MODEL"), os.Getenv("OPENAI_TTS_VOICE"))

	var text inference.TextProvider = openAI
	var image inference.ImageProvider = openAI

	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		gemini, err := inference.NewGeminiProvider(geminiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			log.Fatal(err)
		}
		text = gemini
		image = gemini
	}

	store := media.NewStore(os.Getenv("DATA_DIR"))
	client := generate.NewClient(text, image, openAI, store)
	registry := story.NewRegistry(generate.NewSceneGenerator(client))

	srv := server.NewServer(ctx, registry, store.Root(), "web")
	srv.Echo.Logger.SetLevel(log.INFO)

	addr := ":8080"
	if envAddr := os.Getenv("PORT"); envAddr != "" {
		addr = ":" + envAddr
	}

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatal(err)
		}
		done()
		close(finishedShutDown)
	}()

	log.Infof("Server listening at %s", addr)
	if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(err)
	}
	<-finishedShutDown
}
