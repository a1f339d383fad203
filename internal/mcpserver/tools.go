package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/currency"
	"github.com/zephyrtronium/calc/history"
	"github.com/zephyrtronium/calc/panel/age"
	"github.com/zephyrtronium/calc/panel/bmi"
)

// Tool names
const (
	ToolEvaluate = "evaluate"
	ToolBMI      = "bmi"
	ToolAge      = "age"
	ToolConvert  = "convert"
)

// EvaluateTool evaluates arithmetic expressions.
type EvaluateTool struct {
	places int
	rec    history.Recorder
	log    *slog.Logger
}

// GetTool returns the MCP tool definition
func (t *EvaluateTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolEvaluate,
		mcp.WithDescription("Evaluate an arithmetic expression. Standard mode allows + - * / × ÷ and brackets. "+
			"Scientific mode adds ^, implicit multiplication, pi, e, and the functions "+strings.Join(calc.FuncNames(), ", ")+
			". Trigonometric functions use degrees."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Expression to evaluate, e.g. sin30+cos60")),
		mcp.WithString("mode", mcp.Description("Calculator mode"), mcp.Enum("standard", "scientific"), mcp.DefaultString("scientific")),
	)
}

// Handle processes the tool request
func (t *EvaluateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr := mcp.ParseString(req, "expression", "")
	modeName := mcp.ParseString(req, "mode", "scientific")
	slog.Debug("MCP tool called", "tool", ToolEvaluate, "expression", expr, "mode", modeName)

	mode, err := calc.ParseMode(modeName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r := calc.Evaluate(mode, expr, calc.RoundTo(t.places))
	record(ctx, t.rec, t.log, history.Entry{Panel: mode.String(), Input: expr, Output: r.String(), Failed: r.Failed()})
	if r.Failed() {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", calc.ErrorText, r.Err)), nil
	}
	return mcp.NewToolResultText(r.Text), nil
}

// BMITool computes body mass index.
type BMITool struct {
	rec history.Recorder
	log *slog.Logger
}

// GetTool returns the MCP tool definition
func (t *BMITool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolBMI,
		mcp.WithDescription("Compute body mass index and its category from weight and height"),
		mcp.WithNumber("weight_kg", mcp.Required(), mcp.Description("Weight in kilograms")),
		mcp.WithNumber("height_cm", mcp.Required(), mcp.Description("Height in centimeters")),
	)
}

// Handle processes the tool request
func (t *BMITool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	w := mcp.ParseFloat64(req, "weight_kg", 0)
	h := mcp.ParseFloat64(req, "height_cm", 0)
	slog.Debug("MCP tool called", "tool", ToolBMI, "weight_kg", w, "height_cm", h)

	input := fmt.Sprintf("%g kg, %g cm", w, h)
	r, err := bmi.Compute(w, h)
	if err != nil {
		record(ctx, t.rec, t.log, history.Entry{Panel: history.PanelBMI, Input: input, Output: bmi.ErrInvalidInput.Error(), Failed: true})
		return mcp.NewToolResultError(bmi.ErrInvalidInput.Error()), nil
	}
	record(ctx, t.rec, t.log, history.Entry{Panel: history.PanelBMI, Input: input, Output: r.String()})
	return mcp.NewToolResultText(r.String()), nil
}

// AgeTool computes age in whole years.
type AgeTool struct {
	now func() time.Time
	rec history.Recorder
	log *slog.Logger
}

// GetTool returns the MCP tool definition
func (t *AgeTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolAge,
		mcp.WithDescription("Compute age in whole years from a date of birth"),
		mcp.WithString("date_of_birth", mcp.Required(), mcp.Description("Date of birth as YYYY-MM-DD")),
		mcp.WithString("on", mcp.Description("Date to compute the age on as YYYY-MM-DD; defaults to today")),
	)
}

// Handle processes the tool request
func (t *AgeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dob := mcp.ParseString(req, "date_of_birth", "")
	on := mcp.ParseString(req, "on", "")
	slog.Debug("MCP tool called", "tool", ToolAge, "date_of_birth", dob, "on", on)

	today := t.now()
	if on != "" {
		d, err := age.Parse(on)
		if err != nil {
			return mcp.NewToolResultError(age.Message(err)), nil
		}
		today = d
	}
	r, err := age.Compute(dob, today)
	if err != nil {
		msg := age.Message(err)
		record(ctx, t.rec, t.log, history.Entry{Panel: history.PanelAge, Input: dob, Output: msg, Failed: true})
		return mcp.NewToolResultError(msg), nil
	}
	record(ctx, t.rec, t.log, history.Entry{Panel: history.PanelAge, Input: dob, Output: r.String()})
	return mcp.NewToolResultText(r.String()), nil
}

// ConvertTool converts between currencies at live rates.
type ConvertTool struct {
	conv *currency.Converter
	rec  history.Recorder
	log  *slog.Logger
}

// GetTool returns the MCP tool definition
func (t *ConvertTool) GetTool() mcp.Tool {
	return mcp.NewTool(ToolConvert,
		mcp.WithDescription("Convert an amount between currencies at current exchange rates. Supported: "+strings.Join(currency.Codes(), ", ")),
		mcp.WithNumber("amount", mcp.Required(), mcp.Description("Amount to convert")),
		mcp.WithString("from", mcp.Description("Source currency code"), mcp.DefaultString("USD")),
		mcp.WithString("to", mcp.Description("Target currency code"), mcp.DefaultString("INR")),
	)
}

// Handle processes the tool request
func (t *ConvertTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	amount := mcp.ParseFloat64(req, "amount", 0)
	from := mcp.ParseString(req, "from", "USD")
	to := mcp.ParseString(req, "to", "INR")
	slog.Debug("MCP tool called", "tool", ToolConvert, "amount", amount, "from", from, "to", to)

	input := fmt.Sprintf("%g %s to %s", amount, from, to)
	c, err := t.conv.Convert(ctx, amount, from, to)
	if err != nil {
		t.log.Warn("conversion failed", "from", from, "to", to, "error", err)
		msg := currency.Message(err)
		record(ctx, t.rec, t.log, history.Entry{Panel: history.PanelCurrency, Input: input, Output: msg, Failed: true})
		return mcp.NewToolResultError(msg), nil
	}
	record(ctx, t.rec, t.log, history.Entry{Panel: history.PanelCurrency, Input: input, Output: c.String()})
	return mcp.NewToolResultText(c.String()), nil
}
