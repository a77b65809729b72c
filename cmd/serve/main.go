package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"linkage-renderer/internal/config"
	"linkage-renderer/internal/shape"
	"linkage-renderer/internal/viewer"
	"linkage-renderer/internal/web"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML config file")
	listen := flag.String("listen", "", "Listen address (default: 127.0.0.1:8080)")
	width := flag.Int("width", 0, "Frame width (default: 640)")
	height := flag.Int("height", 0, "Frame height (default: 480)")
	format := flag.String("format", "", "Format of pushed frames: webp, png or tga (default: webp)")

	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{
		Width:  *width,
		Height: *height,
		Format: *format,
		Listen: *listen,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opt, err := cfg.RenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	v, err := viewer.New(shape.NewCache(), opt, cfg.Step)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	imgFormat, _ := cfg.ImageFormat()
	hub := web.NewHub()
	session := web.NewSession(v, hub, imgFormat)
	session.UseBackdrops(cfg.Backdrops())
	go session.Run(ctx)

	fmt.Printf("Viewer: http://%s/ (%dx%d, %s frames)\n", cfg.Listen, cfg.Width, cfg.Height, imgFormat)

	errc := make(chan error, 1)
	go func() { errc <- web.NewServer(session, hub).ListenAndServe(cfg.Listen) }()

	select {
	case err := <-errc:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	case <-ctx.Done():
		fmt.Println("Shutting down.")
	}
}
