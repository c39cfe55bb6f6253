package utils

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/joseph-ayodele/decisions-extractor/internal/entity"
)

func optValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// ToPBDecision encodes a record as a protobuf Struct; absent fields become null.
func ToPBDecision(d *entity.Decision) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":            d.ID,
		"decision_date": optValue(d.DecisionDate),
		"debt_amount":   optValue(d.DebtAmount),
		"fine_amount":   optValue(d.FineAmount),
	})
}

// FromPBDecision is the inverse of ToPBDecision.
func FromPBDecision(s *structpb.Struct) (*entity.Decision, error) {
	fields := s.GetFields()
	idv, ok := fields["id"]
	if !ok {
		return nil, fmt.Errorf("decision struct has no id")
	}
	opt := func(k string) *string {
		v, ok := fields[k]
		if !ok {
			return nil
		}
		if sv, ok := v.GetKind().(*structpb.Value_StringValue); ok {
			out := sv.StringValue
			return &out
		}
		return nil
	}
	return &entity.Decision{
		ID:           int64(idv.GetNumberValue()),
		DecisionDate: opt("decision_date"),
		DebtAmount:   opt("debt_amount"),
		FineAmount:   opt("fine_amount"),
	}, nil
}

// ToPBDecisionList encodes records as a ListValue of Structs.
func ToPBDecisionList(ds []*entity.Decision) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(ds))
	for _, d := range ds {
		s, err := ToPBDecision(d)
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(s))
	}
	return &structpb.ListValue{Values: values}, nil
}

// FromPBDecisionList is the inverse of ToPBDecisionList.
func FromPBDecisionList(l *structpb.ListValue) ([]*entity.Decision, error) {
	out := make([]*entity.Decision, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		s := v.GetStructValue()
		if s == nil {
			return nil, fmt.Errorf("decision list item %d is not a struct", i)
		}
		d, err := FromPBDecision(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
