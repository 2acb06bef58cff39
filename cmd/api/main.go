package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-attendance-punch/internal/app"
	"github.com/imrishuroy/go-attendance-punch/internal/aws"
	"github.com/imrishuroy/go-attendance-punch/internal/config"
	"github.com/imrishuroy/go-attendance-punch/internal/handlers"
)

func main() {
	cfg := config.Load()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	if !cfg.RunLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	r := handlers.NewRouter(handlers.HandlerConfig{
		Service:   app.NewService(cfg, clients, "api"),
		AccessLog: cfg.RunLocal,
	})

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		log.Printf("running local server on %s", cfg.ListenAddr)
		if err := r.Run(cfg.ListenAddr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter; routes stay rooted at "/" behind the stage prefix
	adapter := ginadapter.New(r)
	if cfg.RootPath != "" {
		adapter.StripBasePath(cfg.RootPath)
	}

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
