package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"foodpath"
	"foodpath/auth"
)

type debugConfig struct {
	Debug bool `env:"FOODPATH_DEBUG,default=false"`
}

func main() {
	foodpath.LoadEnv()

	var cfg foodpath.BackendConfig
	if err := foodpath.Decode(&cfg); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}
	var debug debugConfig
	if err := foodpath.Decode(&debug); err != nil {
		log.Fatalf("Failed to decode: %s", err)
	}
	cfg.BaseURL = argOr(1, cfg.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := auth.NewClient(cfg, nil)
	status := client.TestConnection(ctx)

	fmt.Printf("Backend:    %s\n", client.BaseURL())
	fmt.Printf("Connected:  %t\n", status.Success)
	fmt.Printf("Message:    %s\n", status.Message)
	fmt.Printf("Mock data:  %t\n", status.UsingMock())

	if debug.Debug {
		foodpath.Dump(os.Stderr, status)
	}
	if !status.Success {
		os.Exit(1)
	}
}

func argOr(i int, def string) string {
	if len(os.Args) > i && os.Args[i] != "" {
		return os.Args[i]
	}
	return def
}
