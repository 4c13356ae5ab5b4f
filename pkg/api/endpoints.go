package api

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hazyhaar/massive-bench/pkg/classifier"
	"github.com/hazyhaar/massive-bench/pkg/kit"
)

// MaxBatch is the largest number of utterances one batch call accepts.
const MaxBatch = 100

// Shared request/response types used by both HTTP and MCP transports.

type classifyReq struct {
	Locale string
	Text   string
}

type classifyBatchReq struct {
	Locale string
	Texts  []string
}

type batchResponse struct {
	Results []*ClassifyResult `json:"results"`
}

type localesResponse struct {
	Locales []classifier.ModelInfo `json:"locales"`
}

// endpoints are the three core actions, wrapped with the shared middleware.
type endpoints struct {
	classify      kit.Endpoint
	classifyBatch kit.Endpoint
	listLocales   kit.Endpoint
}

func newEndpoints(svc *Service, logger *slog.Logger) endpoints {
	wrap := func(name string, ep kit.Endpoint) kit.Endpoint {
		return kit.Chain(kit.WithRequestIDs(), kit.Logged(logger, name))(ep)
	}
	return endpoints{
		classify:      wrap("classify", classifyEndpoint(svc)),
		classifyBatch: wrap("classify_batch", classifyBatchEndpoint(svc)),
		listLocales:   wrap("list_locales", listLocalesEndpoint(svc)),
	}
}

func classifyEndpoint(svc *Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*classifyReq)
		if req.Text == "" {
			return nil, fmt.Errorf("empty utterance")
		}
		return svc.Classify(ctx, req.Locale, req.Text)
	}
}

func classifyBatchEndpoint(svc *Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*classifyBatchReq)
		if len(req.Texts) == 0 {
			return nil, fmt.Errorf("utterances array is empty")
		}
		if len(req.Texts) > MaxBatch {
			return nil, fmt.Errorf("too many utterances (max %d, got %d)", MaxBatch, len(req.Texts))
		}
		results := make([]*ClassifyResult, len(req.Texts))
		for i, text := range req.Texts {
			res, err := svc.Classify(ctx, req.Locale, text)
			if err != nil {
				return nil, err
			}
			results[i] = res
		}
		return batchResponse{Results: results}, nil
	}
}

func listLocalesEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		return localesResponse{Locales: svc.Models().ListModels()}, nil
	}
}
