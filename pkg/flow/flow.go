// Package flow provides in-memory construction and validation of a trigger
// node plus ordered action nodes before they become a persisted automation.
package flow

import (
	"errors"
	"strings"

	"github.com/flowforge/flowforge/pkg/models"
)

// StepSeparator joins action values when a flow is flattened into a draft.
const StepSeparator = " → "

// Validation errors reported by Draft. The caller decides how to surface
// them; nothing is persisted on failure.
var (
	ErrMissingName    = errors.New("automation name is required")
	ErrMissingTrigger = errors.New("flow trigger is not set")
	ErrNoActions      = errors.New("flow needs at least one action with a value")
)

// Flow is an in-progress, not-yet-persisted graph of one trigger node and
// one or more action nodes. Node IDs are stable for the lifetime of the
// flow; removed IDs are never reused.
type Flow struct {
	Name       string
	Category   string
	TemplateID string
	Nodes      []models.FlowNode
}

// New creates an empty two-node flow (a trigger and a single action) ready
// for editing.
func New() *Flow {
	return &Flow{
		Category: "custom",
		Nodes: []models.FlowNode{
			{ID: 1, Kind: models.NodeKindTrigger},
			{ID: 2, Kind: models.NodeKindAction},
		},
	}
}

// FromTemplate creates a two-node flow pre-filled from a template.
func FromTemplate(tpl models.Template) *Flow {
	return &Flow{
		Name:       tpl.Name,
		Category:   tpl.Category,
		TemplateID: tpl.ID,
		Nodes: []models.FlowNode{
			{ID: 1, Kind: models.NodeKindTrigger, Value: tpl.Trigger},
			{ID: 2, Kind: models.NodeKindAction, Value: tpl.Action},
		},
	}
}

// AddActionNode appends a new action node with a fresh ID and an empty
// value. There is no upper bound on the number of steps.
func (f *Flow) AddActionNode() models.FlowNode {
	maxID := 0
	for _, node := range f.Nodes {
		if node.ID > maxID {
			maxID = node.ID
		}
	}

	node := models.FlowNode{ID: maxID + 1, Kind: models.NodeKindAction}
	f.Nodes = append(f.Nodes, node)

	return node
}

// RemoveNode removes the node with the given ID. The trigger node is never
// removed, and the flow never shrinks below a trigger plus one action; in
// those cases (and for unknown IDs) the flow is returned unchanged. This is
// a UI-affordance guard, not a validation error.
func (f *Flow) RemoveNode(id int) {
	if len(f.Nodes) <= 2 {
		return
	}

	for i, node := range f.Nodes {
		if node.ID != id {
			continue
		}

		if node.Kind == models.NodeKindTrigger {
			return
		}

		f.Nodes = append(f.Nodes[:i], f.Nodes[i+1:]...)

		return
	}
}

// SetNodeValue replaces the value of the node with the given ID. Identity
// and order of nodes are untouched; unknown IDs are ignored.
func (f *Flow) SetNodeValue(id int, value string) {
	for i := range f.Nodes {
		if f.Nodes[i].ID == id {
			f.Nodes[i].Value = value

			return
		}
	}
}

// TriggerValue returns the value of the flow's trigger node.
func (f *Flow) TriggerValue() string {
	for _, node := range f.Nodes {
		if node.Kind == models.NodeKindTrigger {
			return node.Value
		}
	}

	return ""
}

// ActionValues returns the non-empty action values in node order. Empty
// action nodes are still being edited and are skipped.
func (f *Flow) ActionValues() []string {
	values := make([]string, 0, len(f.Nodes))

	for _, node := range f.Nodes {
		if node.Kind == models.NodeKindAction && node.Value != "" {
			values = append(values, node.Value)
		}
	}

	return values
}

// Draft flattens the flow into a candidate automation. The given name wins
// over the flow's pre-filled template name. Validation failures return one
// of ErrMissingName, ErrMissingTrigger or ErrNoActions and no draft.
func (f *Flow) Draft(name string) (models.Draft, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSpace(f.Name)
	}

	if name == "" {
		return models.Draft{}, ErrMissingName
	}

	trigger := f.TriggerValue()
	if trigger == "" {
		return models.Draft{}, ErrMissingTrigger
	}

	actions := f.ActionValues()
	if len(actions) == 0 {
		return models.Draft{}, ErrNoActions
	}

	joined := strings.Join(actions, StepSeparator)

	category := f.Category
	if category == "" {
		category = "custom"
	}

	nodes := make([]models.FlowNode, len(f.Nodes))
	copy(nodes, f.Nodes)

	return models.Draft{
		Name:        name,
		Description: trigger + StepSeparator + joined,
		Trigger:     trigger,
		Action:      joined,
		Category:    category,
		TemplateID:  f.TemplateID,
		Nodes:       nodes,
	}, nil
}
