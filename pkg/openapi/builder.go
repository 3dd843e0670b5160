package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/app"
	"github.com/goliatone/go-formbind/pkg/binding"
	"github.com/goliatone/go-formbind/pkg/model"
)

const (
	extensionBinding = "x-formbind-binding"
	extensionTrigger = "x-formbind-trigger"
	extensionSource  = "x-formbind-source"
	extensionInputs  = "x-formbind-inputs"
	extensionOutputs = "x-formbind-outputs"
)

// Build generates and validates the OpenAPI document for a.
func Build(ctx context.Context, a *app.App, options ...Option) (Document, error) {
	if a == nil {
		return Document{}, errors.New("openapi: app is nil")
	}
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	cfg := NewOptions(options...)

	page := a.Page()
	title := cfg.Title
	if title == "" {
		title = page.Title
	}
	if title == "" {
		title = "formbind app"
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       title,
			Description: page.Description,
			Version:     cfg.Version,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				"Errors": openapi3.NewSchemaRef("", sharedErrorsSchema),
			},
		},
	}
	if cfg.ServerURL != "" {
		doc.Servers = openapi3.Servers{&openapi3.Server{URL: cfg.ServerURL}}
	}

	var operations []Operation
	add := func(path, method string, op *openapi3.Operation) {
		item := doc.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			doc.Paths.Set(path, item)
		}
		item.SetOperation(method, op)
		operations = append(operations, Operation{
			ID:         op.OperationID,
			Method:     method,
			Path:       path,
			Summary:    op.Summary,
			Extensions: op.Extensions,
		})
	}

	add("/", "GET", htmlOperation("page", "Render the page with default values"))
	add("/healthz", "GET", healthOperation())
	add("/api/info", "GET", infoOperation())
	add("/openapi.json", "GET", specOperation())

	for _, b := range a.Bindings() {
		add(joinPath(cfg.EventPrefix, b.ID()), "POST", formEventOperation(b))
		add(joinPath(cfg.APIPrefix, b.ID()), "POST", jsonEventOperation(b))
	}

	if err := doc.Validate(ctx); err != nil {
		return Document{}, fmt.Errorf("openapi: validate: %w", err)
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("openapi: encode: %w", err)
	}
	return newDocument(raw, operations)
}

func formEventOperation(b *binding.Binding) *openapi3.Operation {
	properties := make(openapi3.Schemas, len(b.Inputs()))
	for _, field := range b.Inputs() {
		properties[field.ID] = openapi3.NewSchemaRef("", fieldSchema(*field))
	}
	body := openapi3.NewObjectSchema()
	body.Properties = properties

	op := openapi3.NewOperation()
	op.OperationID = "event-" + b.ID()
	op.Summary = fmt.Sprintf("Invoke %s and re-render the page", b.Func().Name())
	op.Tags = []string{"events"}
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithContent(openapi3.NewContentWithSchema(body, []string{"application/x-www-form-urlencoded"})),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, htmlResponse("Page with submitted inputs and computed outputs")),
		openapi3.WithStatus(422, htmlResponse("Page with field or form errors")),
		openapi3.WithStatus(429, htmlResponse("Rate limit exceeded")),
	)
	op.Extensions = bindingExtensions(b)
	return op
}

func jsonEventOperation(b *binding.Binding) *openapi3.Operation {
	n := uint64(len(b.Inputs()))
	inputs := openapi3.NewArraySchema().WithItems(openapi3.NewSchema())
	inputs.MinItems = n
	inputs.MaxItems = &n
	inputs.Description = "Positional values: " + describeFields(b.Inputs())

	m := uint64(len(b.Outputs()))
	outputs := openapi3.NewArraySchema().WithItems(openapi3.NewSchema())
	outputs.MinItems = m
	outputs.MaxItems = &m
	outputs.Description = "Positional results: " + describeFields(b.Outputs())

	request := openapi3.NewObjectSchema().WithProperty("data", inputs)
	request.Required = []string{"data"}

	response := openapi3.NewObjectSchema().
		WithProperty("data", outputs).
		WithProperty("event_id", openapi3.NewUUIDSchema()).
		WithProperty("rendered", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema())).
		WithProperty("display", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewStringSchema()))
	response.Required = []string{"data", "event_id"}

	op := openapi3.NewOperation()
	op.OperationID = "api-event-" + b.ID()
	op.Summary = fmt.Sprintf("Invoke %s with positional JSON values", b.Func().Name())
	op.Tags = []string{"events"}
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(request),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, jsonResponse("Computed outputs", response)),
		openapi3.WithStatus(400, errorsResponse("Malformed request body")),
		openapi3.WithStatus(404, errorsResponse("Unknown binding")),
		openapi3.WithStatus(422, errorsResponse("Invalid inputs or failing function")),
		openapi3.WithStatus(429, errorsResponse("Rate limit exceeded")),
	)
	op.Extensions = bindingExtensions(b)
	return op
}

func htmlOperation(id, summary string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = id
	op.Summary = summary
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(200, htmlResponse("HTML page")))
	return op
}

func healthOperation() *openapi3.Operation {
	body := openapi3.NewObjectSchema().WithProperty("status", openapi3.NewStringSchema())
	op := openapi3.NewOperation()
	op.OperationID = "health"
	op.Summary = "Liveness check"
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(200, jsonResponse("Service is up", body)))
	return op
}

func infoOperation() *openapi3.Operation {
	event := openapi3.NewObjectSchema().
		WithProperty("binding", openapi3.NewStringSchema()).
		WithProperty("trigger", openapi3.NewStringSchema().WithEnum(
			string(model.TriggerSubmit), string(model.TriggerClick), string(model.TriggerChange),
		)).
		WithProperty("source", openapi3.NewStringSchema()).
		WithProperty("inputs", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())).
		WithProperty("outputs", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))
	body := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("events", openapi3.NewArraySchema().WithItems(event))

	op := openapi3.NewOperation()
	op.OperationID = "info"
	op.Summary = "List the bindings of the app"
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(200, jsonResponse("Event table", body)))
	return op
}

func specOperation() *openapi3.Operation {
	op := openapi3.NewOperation()
	op.OperationID = "openapi"
	op.Summary = "This document"
	op.Responses = openapi3.NewResponses(openapi3.WithStatus(200, jsonResponse("OpenAPI document", openapi3.NewObjectSchema())))
	return op
}

func fieldSchema(field model.Field) *openapi3.Schema {
	var schema *openapi3.Schema
	switch field.Kind.ValueType() {
	case model.ValueTypeNumber:
		schema = openapi3.NewFloat64Schema()
		if field.Min != nil {
			schema = schema.WithMin(*field.Min)
		}
		if field.Max != nil {
			schema = schema.WithMax(*field.Max)
		}
	case model.ValueTypeBool:
		schema = openapi3.NewBoolSchema()
	default:
		schema = openapi3.NewStringSchema()
		if field.Kind.HasChoices() && len(field.Choices) > 0 {
			values := make([]any, len(field.Choices))
			for i, choice := range field.Choices {
				values[i] = choice
			}
			schema = schema.WithEnum(values...)
		}
	}
	schema.Title = field.DisplayLabel()
	schema.Description = field.Info
	// An unselected dropdown has no default the enum would accept.
	if value, err := model.CoerceValue(field, nil); err == nil && !(field.Kind.HasChoices() && value == "") {
		schema.Default = value
	}
	return schema
}

var sharedErrorsSchema = errorsSchema()

func errorsSchema() *openapi3.Schema {
	messages := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	detail := openapi3.NewObjectSchema().
		WithProperty("fields", openapi3.NewObjectSchema().WithAdditionalProperties(messages)).
		WithProperty("form", messages)
	return openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("errors", detail)
}

func htmlResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"text/html"})),
	}
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema),
	}
}

func errorsResponse(description string) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().
			WithDescription(description).
			WithJSONSchemaRef(openapi3.NewSchemaRef("#/components/schemas/Errors", sharedErrorsSchema)),
	}
}

func bindingExtensions(b *binding.Binding) map[string]any {
	return map[string]any{
		extensionBinding: b.ID(),
		extensionTrigger: string(b.Trigger()),
		extensionSource:  b.Source(),
		extensionInputs:  b.InputIDs(),
		extensionOutputs: b.OutputIDs(),
	}
}

func describeFields(fields []*model.Field) string {
	parts := make([]string, len(fields))
	for i, field := range fields {
		parts[i] = fmt.Sprintf("%d %s (%s)", i, field.ID, field.Kind.ValueType())
	}
	return strings.Join(parts, ", ")
}

func joinPath(prefix, segment string) string {
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(segment, "/")
}
