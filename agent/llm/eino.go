package llm

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/Chative-Support-Agent/agent/contract"
)

var _ contractx.Generator = (*EinoGenerator)(nil)

// EinoGenerator runs a system+user prompt through an eino chat model graph.
type EinoGenerator struct {
	runner compose.Runnable[map[string]any, *schema.Message]
}

func NewEinoGenerator(ctx context.Context, chatModel einomodel.BaseChatModel) (*EinoGenerator, error) {
	runner, err := compileGenerateGraph(ctx, chatModel)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	return &EinoGenerator{runner: runner}, nil
}

func (g *EinoGenerator) Generate(ctx context.Context, system string, user string) (string, error) {
	msg, err := g.runner.Invoke(ctx, map[string]any{
		"system": system,
		"input":  user,
	})
	if err != nil {
		return "", fmt.Errorf("%w: generate: %v", contractx.ErrModelInvoke, err)
	}
	if msg == nil {
		return "", fmt.Errorf("%w: empty model response", contractx.ErrModelInvoke)
	}
	return msg.Content, nil
}

func compileGenerateGraph(
	ctx context.Context,
	chatModel einomodel.BaseChatModel,
) (compose.Runnable[map[string]any, *schema.Message], error) {
	template := einoprompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.UserMessage("{input}"),
	)

	graph := compose.NewGraph[map[string]any, *schema.Message]()
	if err := graph.AddChatTemplateNode("prompt", template); err != nil {
		return nil, fmt.Errorf("add generate prompt node: %w", err)
	}
	if err := graph.AddChatModelNode("model", chatModel); err != nil {
		return nil, fmt.Errorf("add generate model node: %w", err)
	}
	if err := graph.AddEdge(compose.START, "prompt"); err != nil {
		return nil, fmt.Errorf("add generate edge start->prompt: %w", err)
	}
	if err := graph.AddEdge("prompt", "model"); err != nil {
		return nil, fmt.Errorf("add generate edge prompt->model: %w", err)
	}
	if err := graph.AddEdge("model", compose.END); err != nil {
		return nil, fmt.Errorf("add generate edge model->end: %w", err)
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("llm.generate_graph"))
	if err != nil {
		return nil, fmt.Errorf("compile generate graph: %w", err)
	}
	return runner, nil
}
