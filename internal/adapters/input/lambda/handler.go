package lambda

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"

	"echonet-alexa-bridge/internal/domain/alexa"
	"echonet-alexa-bridge/internal/ports"
)

// Handler adapts the directive port to the Lambda runtime. Invocations never
// fail: errors are already encoded as Alexa ErrorResponses.
type Handler struct {
	directives ports.DirectivePort
	logger     *zap.Logger
}

func NewHandler(directives ports.DirectivePort, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{directives: directives, logger: logger}
}

func (h *Handler) Invoke(ctx context.Context, event json.RawMessage) (*alexa.Response, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		h.logger.Debug("lambda invocation", zap.String("aws_request_id", lc.AwsRequestID))
	}
	return h.directives.DispatchRaw(ctx, event), nil
}

// Start blocks serving Lambda invocations.
func (h *Handler) Start() {
	lambda.Start(h.Invoke)
}
