package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/etnz/valuation"
	"github.com/etnz/valuation/docs"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// BookLoader returns the current book of positions and quotes. The assistant
// reloads it on every question so answers follow the files on disk.
type BookLoader func() (*valuation.Book, error)

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skills that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here primarily to understand the current valuation of his positions:
			marks, day and total profit and loss, and how fresh the quotes behind them are.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.

			The user will assume that you know about his position symbols, check the valuation first to understand what they are.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewMarketWatcher returns an expert grounded in Google Search for market news.
func NewMarketWatcher() *Expert {
	return &Expert{
		Name: "MarketWatcher",
		Description: `This is an expert market watcher,
		very well aware of financial products, markets and institutions,
		and of the latest news about companies and funds.
		Ask the MarketWatcher whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets, you can search and find anything related to
			financial institutions, companies, markets, funds etc. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewValuer returns the expert in charge of the user's book of positions.
func NewValuer(load BookLoader) *Expert {
	lib := []Function{payloadFunc(load), snapshotFunc(load), topicFunc()}

	return &Expert{
		Name: "Valuer",
		Description: `This is the Valuer. He is in charge of reading the user's book of positions
		and their latest quotes. He can value every position and report marks, day and total
		profit and loss, percentages and quote staleness.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are in charge of valuing the user's book of positions.
				You know how to use the Tools to extract relevant information about the user's positions.
				You are part of a team of experts, yours is everything about the user's book. They might ask
				you questions in approximative language, figure out what they meant.

				Use the available tools to get information about the user's book:
				  - the valuation payload with one row per position
				  - the snapshot time of the quotes
				  - the documentation topics about marks, sessions, pnl, staleness and timestamps
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Fn   func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Fn(ctx, id, args)
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func payloadFunc(load BookLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Payload",
			Description: `Payload values every position in the user's book and returns one JSON row
			per position: symbol, mark, mark source, day and total pnl, percentages and the quote
			staleness in seconds. A null mark means no usable price was available.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A JSON array with one row per position, in the book's order.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			book, err := load()
			if err != nil {
				return errResponse(id, "Payload", fmt.Errorf("could not load book: %w", err))
			}
			rows := book.EquitiesPayload(time.Now().UTC())
			out, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return errResponse(id, "Payload", err)
			}
			return okResponse(id, "Payload", string(out))
		},
	}
}

func snapshotFunc(load BookLoader) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Snapshot",
			Description: `Snapshot returns the instant the book's quotes were taken at,
			which is the most recent quote update time.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The snapshot time in RFC3339 format, or a message when unknown.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			book, err := load()
			if err != nil {
				return errResponse(id, "Snapshot", fmt.Errorf("could not load book: %w", err))
			}
			at, ok := book.SnapshotUpdatedAt()
			if !ok {
				return okResponse(id, "Snapshot", "no quote carries a usable timestamp")
			}
			return okResponse(id, "Snapshot", at.Format(time.RFC3339Nano))
		},
	}
}

func topicFunc() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Topic",
			Description: `Topic returns the documentation for a given topic.
			Available topics: marks, sessions, pnl, staleness, timestamps, readme.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The topic name, or '*' for all topics.",
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown documentation for the topic.",
			},
		},
		Fn: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			name, ok := args["name"].(string)
			if !ok {
				return errResponse(id, "Topic", fmt.Errorf("argument 'name' is not a string as expected but %T", args["name"]))
			}
			doc, err := docs.GetTopic(name)
			if err != nil {
				return errResponse(id, "Topic", err)
			}
			return okResponse(id, "Topic", doc)
		},
	}
}
