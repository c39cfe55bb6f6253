package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/decisions-extractor/internal/entity"
	"github.com/joseph-ayodele/decisions-extractor/internal/utils"
)

// Client is a typed client for the DecisionQuery service.
type Client struct {
	cc    grpc.ClientConnInterface
	token string
}

func NewClient(cc grpc.ClientConnInterface, token string) *Client {
	return &Client{cc: cc, token: token}
}

func (c *Client) withToken(ctx context.Context) context.Context {
	if c.token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
}

func (c *Client) GetDecision(ctx context.Context, id int64, opts ...grpc.CallOption) (*entity.Decision, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(c.withToken(ctx), methodGetDecision, wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return utils.FromPBDecision(out)
}

func (c *Client) SampleDecisions(ctx context.Context, opts ...grpc.CallOption) ([]*entity.Decision, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(c.withToken(ctx), methodSampleDecisions, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return utils.FromPBDecisionList(out)
}

func (c *Client) Reply(ctx context.Context, text string, opts ...grpc.CallOption) (string, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(c.withToken(ctx), methodReply, wrapperspb.String(text), out, opts...); err != nil {
		return "", err
	}
	return out.GetValue(), nil
}
