package models

// NodeKind distinguishes the single trigger node of a flow from its action
// nodes.
type NodeKind string

const (
	NodeKindTrigger NodeKind = "trigger"
	NodeKindAction  NodeKind = "action"
)

// FlowNode is one node of an in-progress flow. IDs are sequence-unique
// within a flow and stable across edits in one editing session; values are
// free text and may be empty while the user is still editing.
type FlowNode struct {
	ID    int      `json:"id"`
	Kind  NodeKind `json:"kind"`
	Value string   `json:"value"`
}
