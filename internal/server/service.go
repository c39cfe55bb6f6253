package server

import (
	"context"
	"log/slog"
	"strconv"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/decisions-extractor/internal/common"
	"github.com/joseph-ayodele/decisions-extractor/internal/query"
	"github.com/joseph-ayodele/decisions-extractor/internal/utils"
)

type DecisionsService struct {
	query  *query.Service
	logger *slog.Logger
}

func NewDecisionsService(q *query.Service, logger *slog.Logger) *DecisionsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DecisionsService{query: q, logger: logger}
}

func (s *DecisionsService) GetDecision(ctx context.Context, in *wrapperspb.Int64Value) (*structpb.Struct, error) {
	id := in.GetValue()
	if id <= 0 {
		return nil, common.InvalidArgumentError("id must be positive")
	}
	d, found, err := s.query.Get(ctx, id)
	if err != nil {
		s.logger.Warn("get decision failed", "id", id, "error", err)
		return nil, common.InternalError("decision store unavailable")
	}
	if !found {
		return nil, common.NotFoundError(query.NotFoundMessage(strconv.FormatInt(id, 10)))
	}
	out, err := utils.ToPBDecision(d)
	if err != nil {
		return nil, common.InternalError("encode decision")
	}
	return out, nil
}

func (s *DecisionsService) SampleDecisions(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	recs, err := s.query.SampleDecisions(ctx)
	if err != nil {
		s.logger.Warn("sample decisions failed", "error", err)
		return nil, common.InternalError("decision store unavailable")
	}
	out, err := utils.ToPBDecisionList(recs)
	if err != nil {
		return nil, common.InternalError("encode decisions")
	}
	return out, nil
}

func (s *DecisionsService) Reply(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	text, err := s.query.Reply(ctx, in.GetValue())
	if err != nil {
		return nil, common.InternalError("reply failed")
	}
	return wrapperspb.String(text), nil
}
