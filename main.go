package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/BDNK1/sflowg-sholat/plugins/sholat"
	"github.com/BDNK1/sflowg-sholat/runtime"
	"github.com/gin-gonic/gin"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	nodesDir := os.Getenv("NODES_DIR")
	if nodesDir == "" {
		nodesDir = "nodes"
	}

	app, err := runtime.NewApp(nodesDir)
	if err != nil {
		log.Fatalf("Error initializing app: %v", err)
	}

	defs, err := app.RegisterNodes(map[string]runtime.NodeFactory{
		sholat.NodeType: func(def *runtime.WorkflowNode) (runtime.Node, error) {
			return sholat.New(def.Config)
		},
	})
	if err != nil {
		log.Fatalf("Error registering nodes: %v", err)
	}

	ctx := context.Background()
	if err := app.Container.Initialize(ctx); err != nil {
		log.Fatalf("Error initializing nodes: %v", err)
	}
	defer func() {
		if err := app.Container.Shutdown(ctx); err != nil {
			logger.Error("Error shutting down nodes", "error", err)
		}
	}()

	g := gin.Default()
	runner := runtime.NewRunner(logger, app.Container)

	for _, def := range defs {
		runtime.NewHttpHandler(def, runner, g)
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := g.Run(addr); err != nil {
		log.Fatalf("Error running server: %v", err)
	}
}
