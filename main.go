package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/kizmotek/linearflow/pkg/cli"
)

func main() {
	// Local development loads credentials from .env; absence is fine.
	_ = godotenv.Load()

	if err := cli.Run(context.Background(), os.Args); err != nil {
		os.Exit(1)
	}
}
