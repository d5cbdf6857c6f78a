package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"foodpath"
	"foodpath/catalog"
	"foodpath/grocery"
	"foodpath/store"
	"foodpath/tools"
)

type Results struct {
	Output any `json:"output"`
}

func main() {
	fn := func(ctx context.Context, call tools.Call) (Results, error) {
		var storeConfig foodpath.StoreConfig
		if err := foodpath.Decode(&storeConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}
		var catalogConfig foodpath.CatalogConfig
		if err := foodpath.Decode(&catalogConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}
		var pricingConfig foodpath.PricingConfig
		if err := foodpath.Decode(&pricingConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}
		var serverConfig foodpath.ServerConfig
		if err := foodpath.Decode(&serverConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		state, err := store.Open(ctx, storeConfig)
		if err != nil {
			slog.Error("SETUP: Failed to open store", "driver", storeConfig.Driver, "error", err)
			return Results{}, err
		}

		products, recipes, err := catalog.Open(ctx, state, catalogConfig)
		if err != nil {
			slog.Error("SETUP: Failed to load catalogs", "error", err)
			return Results{}, err
		}
		slog.Info("SETUP: Catalogs loaded",
			"products_count", len(products.All()),
			"recipes_count", len(recipes.All()))

		registry, err := tools.NewRegistry(tools.Deps{
			Products: products,
			Recipes:  recipes,
			State:    state,
			Pricing:  grocery.NewPricing(pricingConfig),
			Activity: foodpath.NewStdoutActivityLogger(),
		})
		if err != nil {
			slog.Error("SETUP: Failed to create tool registry", "error", err)
			return Results{}, err
		}

		telemetry, err := foodpath.InitTelemetry(ctx, serverConfig.Telemetry, foodpath.TracerNameLambda)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := telemetry.Shutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		ctx, span := telemetry.Tracer.Start(ctx, "tool."+call.Tool,
			trace.WithAttributes(attribute.String("tool.name", call.Tool)))
		defer span.End()

		output, err := call.Run(ctx, *registry)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("RESULT: Error running tool", "tool", call.Tool, "error", err)
			return Results{}, err
		}
		slog.Info("RESULT: Tool completed", "tool", call.Tool)

		return Results{Output: output}, nil
	}

	lambda.Start(fn)
}
