package simulation

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-flock-sprites/pkg/behavior"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Messages understood by the FlockActor. They are protobuf well-known types
// so they travel through the goakt mailbox without generated code:
//
//	*emptypb.Empty          advance the flock by one tick
//	*structpb.Struct        {"rule": "cohesion", "value": 1.5} changes a weight
//	*wrapperspb.Int32Value  restart with that many boids
//	*wrapperspb.BoolValue   pause (true) or resume (false)

// NewTick returns the message that steps the flock once.
func NewTick() *emptypb.Empty { return &emptypb.Empty{} }

// NewWeightUpdate returns the message that sets the weight of rule to value.
func NewWeightUpdate(rule behavior.Rule, value float64) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"rule":  structpb.NewStringValue(rule.String()),
		"value": structpb.NewNumberValue(value),
	}}
}

// NewRestart returns the message that repopulates the flock with n boids.
func NewRestart(n int) *wrapperspb.Int32Value { return wrapperspb.Int32(int32(n)) }

// NewPause returns the message that pauses or resumes ticking.
func NewPause(paused bool) *wrapperspb.BoolValue { return wrapperspb.Bool(paused) }

// parseWeightUpdate reads back a message built by NewWeightUpdate.
func parseWeightUpdate(msg *structpb.Struct) (behavior.Rule, float64, error) {
	fields := msg.GetFields()
	name, ok := fields["rule"]
	if !ok {
		return 0, 0, fmt.Errorf("%w: weight update without rule", behavior.ErrInvalidConfig)
	}
	rule, err := behavior.ParseRule(name.GetStringValue())
	if err != nil {
		return 0, 0, err
	}
	value, ok := fields["value"]
	if !ok {
		return 0, 0, fmt.Errorf("%w: weight update for %s without value", behavior.ErrInvalidConfig, rule)
	}
	if _, isNumber := value.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return 0, 0, fmt.Errorf("%w: weight of %s is not a number", behavior.ErrInvalidConfig, rule)
	}
	return rule, value.GetNumberValue(), nil
}
