package types

import (
	"fmt"
	"strings"
)

// SchemaError means the document could not be parsed into the typed model.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("malformed topology document: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// FieldViolation is one structural constraint failure, addressed by field path.
type FieldViolation struct {
	Path    string
	Message string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Path, v.Message)
}

// ValidationError carries all violations found in a document, not just the
// first. Independent constraints are cheap to check exhaustively.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Violations)+1)
	lines = append(lines, fmt.Sprintf("topology validation failed (%d violations)", len(e.Violations)))
	for _, v := range e.Violations {
		lines = append(lines, "  "+v.String())
	}
	return strings.Join(lines, "\n")
}

func (e *ValidationError) add(path, format string, args ...interface{}) {
	e.Violations = append(e.Violations, FieldViolation{Path: path, Message: fmt.Sprintf(format, args...)})
}

// UnresolvedPeerError is raised when a link references an undeclared node.
type UnresolvedPeerError struct {
	LinkIndex int
	NodeName  string
}

func (e *UnresolvedPeerError) Error() string {
	return fmt.Sprintf("links[%d]: endpoint %q does not match any declared node", e.LinkIndex, e.NodeName)
}

// DuplicateInterfaceAssignmentError is raised when two links claim the same
// interface slot of one node.
type DuplicateInterfaceAssignmentError struct {
	NodeName  string
	Interface string
}

func (e *DuplicateInterfaceAssignmentError) Error() string {
	return fmt.Sprintf("node %q: interface %q assigned by more than one link", e.NodeName, e.Interface)
}

// VlanParentNotFoundError is raised when a VLAN names a parent interface that
// was not produced by link resolution on the same node.
type VlanParentNotFoundError struct {
	NodeName string
	VLANID   int
	Parent   string
}

func (e *VlanParentNotFoundError) Error() string {
	return fmt.Sprintf("node %q: vlan %d references unknown parent interface %q", e.NodeName, e.VLANID, e.Parent)
}

// UnknownInterfaceReferenceError is raised when a routing block (OSPF area or
// RIP interface list) names an interface that exists neither among the node's
// resolved interfaces nor its VLANs.
type UnknownInterfaceReferenceError struct {
	NodeName  string
	Context   string
	Interface string
}

func (e *UnknownInterfaceReferenceError) Error() string {
	return fmt.Sprintf("node %q: %s references unknown interface %q", e.NodeName, e.Context, e.Interface)
}

// TemplateError is a per-node, per-template rendering failure.
type TemplateError struct {
	NodeName string
	Set      string
	Template string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("node %q: template %s/%s: %v", e.NodeName, e.Set, e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// RenderErrors aggregates TemplateErrors collected over one generation run.
type RenderErrors struct {
	Errors []*TemplateError
}

func (e *RenderErrors) Error() string {
	lines := make([]string, 0, len(e.Errors)+1)
	lines = append(lines, fmt.Sprintf("rendering failed for %d template(s)", len(e.Errors)))
	for _, te := range e.Errors {
		lines = append(lines, "  "+te.Error())
	}
	return strings.Join(lines, "\n")
}
