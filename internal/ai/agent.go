package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"bar-inventory/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// Agent reads supplier delivery notes with a vision model. It implements
// core.OrderCapturer.
type Agent struct {
	client *openai.Client
	model  string
}

var _ core.OrderCapturer = (*Agent)(nil)

func NewAgent(apiKey, model string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	if model == "" {
		model = string(shared.ChatModelGPT4o)
	}
	return &Agent{client: &client, model: model}
}

func capturePrompt(knownNames []string) string {
	products := "any"
	if len(knownNames) > 0 {
		products = strings.Join(knownNames, ", ")
	}
	return fmt.Sprintf(`You read hospitality supplier delivery notes (albaranes) for a bar.
Extract the order exactly as printed. Do not compute taxes.
Rules:
1. orderDate: the issue date as YYYY-MM-DD, or empty if you cannot read it.
2. supplierName: the issuing company.
3. totalAmount: the net total before tax as printed.
4. One entry in items per product row. Do not skip rows.
5. quantity is in units. When crates are listed with units per crate, multiply
   (e.g. "8 Moritz (24 u.)" is 192).
6. unitPrice is the unit price before tax with up to 4 decimals, or empty if not printed.
   linePrice is the line total before tax.
7. When a row matches one of the known products, use the known product name exactly.
All numbers are strings as printed.

Known products:
%s`, products)
}

// CaptureOrder sends the image with the catalog names and returns the parsed candidate.
func (a *Agent) CaptureOrder(ctx context.Context, image []byte, mimeType string, knownNames []string) (*core.CapturedOrder, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is empty", core.ErrValidation)
	}

	schemaStruct := generateSchema()
	schemaJSON, err := json.Marshal(schemaStruct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}

	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
	content := responses.ResponseInputMessageContentListParam{
		{OfInputText: &responses.ResponseInputTextParam{Text: capturePrompt(knownNames)}},
		{OfInputImage: &responses.ResponseInputImageParam{
			Detail:   responses.ResponseInputImageDetailHigh,
			ImageURL: openai.String(dataURL),
		}},
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(a.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "captured_purchase_order",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A supplier delivery note read line by line"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	out := resp.OutputText()
	if out == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var captured core.CapturedOrder
	if err := json.Unmarshal([]byte(out), &captured); err != nil {
		return nil, fmt.Errorf("failed to parse completion: %w", err)
	}
	return &captured, nil
}

func generateSchema() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v core.CapturedOrder
	return reflector.Reflect(v)
}
