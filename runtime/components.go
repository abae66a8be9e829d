package runtime

import (
	"net/http"
	"strings"
)

// NodeProperty declares one user-facing parameter of a node type.
type NodeProperty struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Type        string `json:"type" yaml:"type"`
	Default     any    `json:"default" yaml:"default"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// NodeDescription is the static metadata a host renders for a node type.
type NodeDescription struct {
	Name         string         `json:"name"`
	DisplayName  string         `json:"displayName"`
	Description  string         `json:"description"`
	Group        []string       `json:"group"`
	Version      int            `json:"version"`
	Icon         string         `json:"icon,omitempty"`
	UsableAsTool bool           `json:"usableAsTool"`
	Properties   []NodeProperty `json:"properties"`
}

// Property returns the declared property with the given name.
func (d NodeDescription) Property(name string) (NodeProperty, bool) {
	for _, p := range d.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return NodeProperty{}, false
}

// NodeIdentity identifies a configured node instance inside a workflow.
type NodeIdentity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	TypeVersion int    `json:"typeVersion"`
}

// WorkflowNode is a node instance as configured in a definition file.
type WorkflowNode struct {
	ID             string         `yaml:"id"`
	Name           string         `yaml:"name"`
	Type           string         `yaml:"type"`
	TypeVersion    int            `yaml:"typeVersion"`
	ContinueOnFail bool           `yaml:"continueOnFail"`
	Parameters     map[string]any `yaml:"parameters"`
	Config         map[string]any `yaml:"config"`
	Entrypoint     Entrypoint     `yaml:"entrypoint"`
}

type Entrypoint struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

// Identity returns the identity used in error wrappers.
func (w *WorkflowNode) Identity() NodeIdentity {
	name := w.Name
	if name == "" {
		name = w.ID
	}
	return NodeIdentity{
		ID:          w.ID,
		Name:        name,
		Type:        w.Type,
		TypeVersion: w.TypeVersion,
	}
}

// EntrypointRoute returns the method and path the definition is served under.
// The method defaults to POST and the path to /nodes/<id>.
func (w *WorkflowNode) EntrypointRoute() (method, path string) {
	method = strings.ToUpper(w.Entrypoint.Method)
	if method == "" {
		method = http.MethodPost
	}
	path = w.Entrypoint.Path
	if path == "" {
		path = "/nodes/" + w.ID
	}
	return method, path
}
