package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/auth"
	"github.com/premialabs/premia/internal/domain/valueobject"
	"github.com/premialabs/premia/internal/ml"
	"github.com/premialabs/premia/internal/ml/feature"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	for _, role := range roles {
		if claims.HasRole(role) {
			return claims, nil
		}
	}
	return nil, status.Error(codes.PermissionDenied, "insufficient permissions")
}

// statusFromError maps use case errors to gRPC status codes.
func statusFromError(err error) error {
	var validationErr *valueobject.ValidationError
	var encodingErr *feature.EncodingError
	var unavailableErr *ml.ModelUnavailableError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &encodingErr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &unavailableErr):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

// Compile-time assertion that QuoteServiceHandler implements QuoteServiceServer.
var _ QuoteServiceServer = (*QuoteServiceHandler)(nil)

// QuoteServiceHandler implements the gRPC QuoteServiceServer interface.
type QuoteServiceHandler struct {
	UnimplementedQuoteServiceServer
	quote  *usecase.RequestQuote
	report *usecase.GetModelReport
	logger *slog.Logger
}

// NewQuoteServiceHandler creates a new gRPC handler.
func NewQuoteServiceHandler(
	quote *usecase.RequestQuote,
	report *usecase.GetModelReport,
	logger *slog.Logger,
) *QuoteServiceHandler {
	return &QuoteServiceHandler{
		quote:  quote,
		report: report,
		logger: logger,
	}
}

// Proto-aligned request/response message types.

// RequestQuoteRequest represents the proto RequestQuoteRequest message.
type RequestQuoteRequest struct {
	Age      int32   `json:"age"`
	Gender   string  `json:"gender"`
	BMI      float64 `json:"bmi"`
	Children int32   `json:"children"`
	Smoker   string  `json:"smoker"`
	Region   string  `json:"region"`
}

// QuoteMsg represents the proto Quote message.
type QuoteMsg struct {
	ID              string             `json:"id"`
	Premium         string             `json:"premium"`
	PremiumsByModel map[string]float64 `json:"premiums_by_model"`
	BestModel       string             `json:"best_model"`
	RiskLevel       string             `json:"risk_level"`
	CreatedAt       string             `json:"created_at"`
}

// RequestQuoteResponse represents the proto RequestQuoteResponse message.
type RequestQuoteResponse struct {
	Quote *QuoteMsg `json:"quote"`
}

// GetModelReportRequest represents the proto GetModelReportRequest message.
type GetModelReportRequest struct{}

// ModelMetricsMsg represents the proto ModelMetrics message.
type ModelMetricsMsg struct {
	MAE        float64 `json:"mae"`
	MSE        float64 `json:"mse"`
	RMSE       float64 `json:"rmse"`
	MAPE       float64 `json:"mape"`
	R2         float64 `json:"r2"`
	AdjustedR2 float64 `json:"adjusted_r2"`
}

// GetModelReportResponse represents the proto GetModelReportResponse message.
type GetModelReportResponse struct {
	State     string                      `json:"state"`
	BestModel string                      `json:"best_model"`
	TrainedAt string                      `json:"trained_at"`
	Models    map[string]*ModelMetricsMsg `json:"models"`
}

// RequestQuote quotes a premium for the caller's risk profile and stores it.
func (h *QuoteServiceHandler) RequestQuote(ctx context.Context, req *RequestQuoteRequest) (*RequestQuoteResponse, error) {
	claims, err := requireRole(ctx, auth.RoleCustomer, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.quote.Execute(ctx, dto.QuoteRequest{
		UserID:   claims.UserID,
		Age:      int(req.Age),
		Gender:   req.Gender,
		BMI:      req.BMI,
		Children: int(req.Children),
		Smoker:   req.Smoker,
		Region:   req.Region,
	})
	if err != nil {
		h.logger.Error("failed to quote premium",
			slog.String("user_id", claims.UserID.String()),
			slog.String("error", err.Error()),
		)
		return nil, statusFromError(err)
	}

	return &RequestQuoteResponse{
		Quote: &QuoteMsg{
			ID:              result.ID.String(),
			Premium:         result.Premium,
			PremiumsByModel: result.PremiumsByModel,
			BestModel:       result.BestModel,
			RiskLevel:       result.RiskLevel,
			CreatedAt:       result.CreatedAt.UTC().Format(time.RFC3339),
		},
	}, nil
}

// GetModelReport returns the engine state and per-model metrics.
func (h *QuoteServiceHandler) GetModelReport(ctx context.Context, req *GetModelReportRequest) (*GetModelReportResponse, error) {
	if _, err := requireRole(ctx, auth.RoleCustomer, auth.RoleAdmin); err != nil {
		return nil, err
	}

	report := h.report.Execute(ctx)

	models := make(map[string]*ModelMetricsMsg, len(report.Models))
	for name, m := range report.Models {
		models[name] = &ModelMetricsMsg{
			MAE:        m.MAE,
			MSE:        m.MSE,
			RMSE:       m.RMSE,
			MAPE:       m.MAPE,
			R2:         m.R2,
			AdjustedR2: m.AdjustedR2,
		}
	}

	trainedAt := ""
	if !report.TrainedAt.IsZero() {
		trainedAt = report.TrainedAt.UTC().Format(time.RFC3339)
	}

	return &GetModelReportResponse{
		State:     report.State,
		BestModel: report.BestModel,
		TrainedAt: trainedAt,
		Models:    models,
	}, nil
}
