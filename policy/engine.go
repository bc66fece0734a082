// Package policy implements the category matcher: a deterministic,
// first-match-wins rule evaluator over the incoming utterance. The rule set
// (keyword tables, injection patterns, and their priority order) is declared
// as a rego module so the ordering is visible configuration rather than
// control flow.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"

	"github.com/powderlabs/skitutor/domain"
)

// Engine evaluates the category rules. Prepare it once at startup; Classify
// is safe for concurrent use.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine compiles the given rule module. A malformed module is a startup
// error and should abort process start.
func NewEngine(ctx context.Context, rules string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.chatguard.category"),
		rego.Module("chatguard.rego", rules),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rules: %w", err)
	}

	return &Engine{query: query}, nil
}

// Classify assigns zero-or-one category to the raw utterance. Matching is
// case-insensitive and purely deterministic; categories are checked in the
// declared priority order and the first match wins.
func (e *Engine) Classify(ctx context.Context, utterance string) (domain.Category, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(map[string]interface{}{
		"message": utterance,
	}))
	if err != nil {
		return domain.CategoryNone, fmt.Errorf("failed to evaluate rules: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return domain.CategoryNone, nil
	}

	category, ok := results[0].Expressions[0].Value.(string)
	if !ok {
		return domain.CategoryNone, fmt.Errorf("rules returned %T, want string", results[0].Expressions[0].Value)
	}

	return domain.Category(category), nil
}

// DefaultRules is the category rule set. Priority order is the else chain of
// the category rule: equipment, medical, resort_recommendation,
// advanced_technique, injection_attempt. The equipment-before-medical order
// is load-bearing ("my boot hurts" is an equipment question) and existing
// callers depend on it.
const DefaultRules = `package chatguard

import rego.v1

default category := "none"

category := "equipment" if {
	some kw in equipment_keywords
	contains(lower(input.message), kw)
} else := "medical" if {
	medical
} else := "resort_recommendation" if {
	some kw in resort_keywords
	contains(lower(input.message), kw)
} else := "advanced_technique" if {
	some kw in advanced_keywords
	contains(lower(input.message), kw)
} else := "injection_attempt" if {
	injection
}

medical if {
	some kw in medical_keywords
	contains(lower(input.message), kw)
}

# "acl" must match as a whole word: as a bare substring it would catch
# "miracle" or "obstacle".
medical if {
	regex.match("\\bacl\\b", lower(input.message))
}

injection if {
	some pattern in injection_patterns
	regex.match(pattern, lower(input.message))
}

# "act as" counts as an override attempt unless it is the benign
# ski-instructor framing.
injection if {
	regex.match("act as ", lower(input.message))
	not regex.match("act as (a ski|instructor)", lower(input.message))
}

equipment_keywords := [
	"buy", "purchase", "rent", "rental", "what skis", "which skis", "ski brand", "ski model",
	"boot", "binding", "pole", "helmet", "gear", "equipment", "ski shop", "what shop"
]

medical_keywords := [
	"injury", "hurt", "pain", "ache", "sore", "sprain", "break",
	"twisted", "doctor", "hospital", "bleeding", "emergency", "ambulance",
	"knee", "wrist", "shoulder", "headache", "concussion"
]

resort_keywords := [
	"resort", "where should i ski", "which mountain", "which hill", "which slope", "where to ski",
	"which ski resort", "which ski mountain", "where can i ski", "cheapest ski resort",
	"best place to ski", "is this ski resort safe"
]

advanced_keywords := [
	"mogul", "powder", "backcountry", "off-piste", "carving",
	"racing", "jump", "trick", "park", "black diamond", "double black", "expert run",
	"unmarked run", "steep", "glade", "tree skiing", "compete", "edge control", "dynamic skiing"
]

injection_patterns := [
	"ignore.*previous",
	"you are now",
	"pretend you"
]
`
