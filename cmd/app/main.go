package main

import (
	"github.com/cinetrove/core/internal/app"
	"github.com/cinetrove/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
