package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/skillet/internal/runtime"
	"github.com/smartchef/skillet/pkg/domain"
	"github.com/smartchef/skillet/pkg/graph"
)

// recordStep appends its name to the feedback field so tests can observe
// execution order through the state itself.
func recordStep(name string) graph.StepFunc {
	return func(ctx context.Context, state domain.State) (domain.Update, error) {
		return domain.Update{domain.FieldFeedback: state.Feedback + name + ";"}, nil
	}
}

func linearGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New().
		AddNode("first", recordStep("first")).
		AddNode("second", recordStep("second")).
		AddNode("third", recordStep("third")).
		SetEntryPoint("first").
		AddEdge("first", "second").
		AddEdge("second", "third").
		AddEdge("third", graph.End).
		Compile()
	require.NoError(t, err)
	return g
}

func TestRun_ExecutesInOrder(t *testing.T) {
	eng := runtime.NewEngine(linearGraph(t))
	final, err := eng.Run(context.Background(), domain.State{})
	require.NoError(t, err)
	assert.Equal(t, "first;second;third;", final.Feedback)
}

func TestRun_DoesNotMutateInitialState(t *testing.T) {
	initial := domain.State{Ingredients: []string{"rice"}}
	g, err := graph.New().
		AddNode("mutate", func(ctx context.Context, state domain.State) (domain.Update, error) {
			state.Ingredients[0] = "pasta"
			return domain.Update{domain.FieldIngredients: state.Ingredients}, nil
		}).
		SetEntryPoint("mutate").
		AddEdge("mutate", graph.End).
		Compile()
	require.NoError(t, err)

	final, err := runtime.NewEngine(g).Run(context.Background(), initial)
	require.NoError(t, err)
	assert.Equal(t, []string{"pasta"}, final.Ingredients)
	assert.Equal(t, []string{"rice"}, initial.Ingredients, "the caller's record must stay untouched")
}

func TestRun_FollowsRouter(t *testing.T) {
	g, err := graph.New().
		AddNode("decide", func(ctx context.Context, state domain.State) (domain.Update, error) {
			return nil, nil
		}).
		AddNode("left", recordStep("left")).
		AddNode("right", recordStep("right")).
		SetEntryPoint("decide").
		AddConditionalEdges("decide", func(s domain.State) graph.NodeID {
			if len(s.DietaryRestrictions) > 0 {
				return "left"
			}
			return "right"
		}, "left", "right").
		AddEdge("left", graph.End).
		AddEdge("right", graph.End).
		Compile()
	require.NoError(t, err)

	eng := runtime.NewEngine(g)

	final, err := eng.Run(context.Background(), domain.State{DietaryRestrictions: []string{"vegan"}})
	require.NoError(t, err)
	assert.Equal(t, "left;", final.Feedback)

	final, err = eng.Run(context.Background(), domain.State{})
	require.NoError(t, err)
	assert.Equal(t, "right;", final.Feedback)
}

func TestRun_StepErrorAbortsWithNodeName(t *testing.T) {
	g, err := graph.New().
		AddNode("boom", func(ctx context.Context, state domain.State) (domain.Update, error) {
			return nil, assert.AnError
		}).
		SetEntryPoint("boom").
		AddEdge("boom", graph.End).
		Compile()
	require.NoError(t, err)

	_, err = runtime.NewEngine(g).Run(context.Background(), domain.State{})
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "boom")
}

func TestRun_UnknownUpdateFieldAborts(t *testing.T) {
	g, err := graph.New().
		AddNode("bad", func(ctx context.Context, state domain.State) (domain.Update, error) {
			return domain.Update{"not_a_field": 1}, nil
		}).
		SetEntryPoint("bad").
		AddEdge("bad", graph.End).
		Compile()
	require.NoError(t, err)

	_, err = runtime.NewEngine(g).Run(context.Background(), domain.State{})
	assert.Error(t, err)
}

func TestRun_StrayRouteFailsLoudly(t *testing.T) {
	g, err := graph.New().
		AddNode("decide", func(ctx context.Context, state domain.State) (domain.Update, error) {
			return nil, nil
		}).
		AddNode("allowed", recordStep("allowed")).
		AddNode("stray", recordStep("stray")).
		SetEntryPoint("decide").
		AddConditionalEdges("decide", func(domain.State) graph.NodeID { return "stray" }, "allowed").
		AddEdge("allowed", graph.End).
		AddEdge("stray", graph.End).
		Compile()
	require.NoError(t, err)

	_, err = runtime.NewEngine(g).Run(context.Background(), domain.State{})
	assert.ErrorIs(t, err, graph.ErrRouteNotAllowed)
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runtime.NewEngine(linearGraph(t)).Run(ctx, domain.State{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_LifecycleHooks(t *testing.T) {
	var entered, left []string
	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			entered = append(entered, e.NodeID)
		},
		OnNodeLeave: func(ctx context.Context, e *domain.NodeEvent) {
			left = append(left, e.NodeID)
		},
	}

	eng := runtime.NewEngine(linearGraph(t), runtime.WithLifecycleHooks(hooks))
	_, err := eng.Run(context.Background(), domain.State{})
	require.NoError(t, err)

	assert.Equal(t, []string{"first", "second", "third"}, entered)
	assert.Equal(t, []string{"first", "second", "third"}, left)
}

func TestRun_SharesRunIDAcrossEvents(t *testing.T) {
	ids := map[string]struct{}{}
	hooks := domain.LifecycleHooks{
		OnNodeEnter: func(ctx context.Context, e *domain.NodeEvent) {
			ids[e.RunID] = struct{}{}
		},
	}

	eng := runtime.NewEngine(linearGraph(t), runtime.WithLifecycleHooks(hooks))
	_, err := eng.Run(context.Background(), domain.State{})
	require.NoError(t, err)
	assert.Len(t, ids, 1, "all events of one run carry the same run ID")

	_, err = eng.Run(context.Background(), domain.State{})
	require.NoError(t, err)
	assert.Len(t, ids, 2, "a new run gets a new run ID")
}
