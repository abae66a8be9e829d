package runtime

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// NodeFactory builds a configured node instance from one definition.
type NodeFactory func(def *WorkflowNode) (Node, error)

type App struct {
	Container   *Container
	Definitions []*WorkflowNode // sorted by file name
	Nodes       map[string]*WorkflowNode
}

// NewApp loads every node definition in nodesDir.
func NewApp(nodesDir string) (*App, error) {
	nodes, err := LoadNodes(nodesDir)
	if err != nil {
		return nil, err
	}

	app := App{
		Container:   NewContainer(),
		Definitions: nodes,
		Nodes:       make(map[string]*WorkflowNode, len(nodes)),
	}
	for _, n := range nodes {
		app.Nodes[n.ID] = n
	}
	return &app, nil
}

// RegisterNodes builds one node per definition, in definition order, with the
// factory registered for its type. Each node is registered under its
// definition id, so definitions of the same type never share config.
// Definitions whose type has no factory are skipped. It returns the
// definitions that got a node.
func (a *App) RegisterNodes(factories map[string]NodeFactory) ([]*WorkflowNode, error) {
	var registered []*WorkflowNode
	for _, def := range a.Definitions {
		factory, ok := factories[def.Type]
		if !ok {
			slog.Warn("No node factory for type, skipping", "node", def.ID, "type", def.Type)
			continue
		}

		node, err := factory(def)
		if err != nil {
			return nil, fmt.Errorf("error configuring node %s: %w", def.ID, err)
		}
		if err := a.Container.RegisterNode(def.ID, node); err != nil {
			return nil, fmt.Errorf("error registering node %s: %w", def.ID, err)
		}
		registered = append(registered, def)
	}
	return registered, nil
}

// LoadNodes reads all *.yaml and *.yml node definitions in dir, sorted by file name.
func LoadNodes(dir string) ([]*WorkflowNode, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("error reading directory: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	seen := make(map[string]string, len(files))
	routes := make(map[string]string, len(files))
	nodes := make([]*WorkflowNode, 0, len(files))
	for _, file := range files {
		node, err := readNode(file)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[node.ID]; dup {
			return nil, fmt.Errorf("duplicate node id %q in %s and %s", node.ID, prev, file)
		}
		seen[node.ID] = file

		method, path := node.EntrypointRoute()
		route := method + " " + path
		if prev, dup := routes[route]; dup {
			return nil, fmt.Errorf("duplicate entrypoint %s in %s and %s", route, prev, file)
		}
		routes[route] = file

		nodes = append(nodes, node)
	}
	return nodes, nil
}

func readNode(file string) (*WorkflowNode, error) {
	yamlFile, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("error reading YAML file: %w", err)
	}
	return ParseNode(yamlFile)
}

// ParseNode decodes a single node definition and resolves environment
// references in its parameters and config.
func ParseNode(data []byte) (*WorkflowNode, error) {
	var node WorkflowNode
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("error unmarshalling YAML: %w", err)
	}

	if node.ID == "" {
		return nil, fmt.Errorf("node definition is missing an id")
	}
	if node.Type == "" {
		return nil, fmt.Errorf("node %q is missing a type", node.ID)
	}
	if node.TypeVersion == 0 {
		node.TypeVersion = 1
	}

	for k, v := range node.Parameters {
		resolved, err := resolveEnvVar(v)
		if err != nil {
			return nil, fmt.Errorf("node %q parameter %q: %w", node.ID, k, err)
		}
		node.Parameters[k] = resolved
	}
	for k, v := range node.Config {
		resolved, err := resolveEnvVar(v)
		if err != nil {
			return nil, fmt.Errorf("node %q config %q: %w", node.ID, k, err)
		}
		node.Config[k] = resolved
	}

	return &node, nil
}

// envVarPattern matches ${VAR} and ${VAR:default} syntax
var envVarPattern = regexp.MustCompile(`^\$\{([A-Z_][A-Z0-9_]*)(:[^}]*)?\}$`)

// resolveEnvVar resolves environment variables in definition values
func resolveEnvVar(value any) (any, error) {
	strValue, ok := value.(string)
	if !ok {
		return value, nil
	}

	matches := envVarPattern.FindStringSubmatch(strValue)
	if matches == nil {
		return value, nil
	}

	varName := matches[1]
	defaultPart := matches[2]

	if envValue, exists := os.LookupEnv(varName); exists {
		return envValue, nil
	}

	if defaultPart != "" {
		return strings.TrimPrefix(defaultPart, ":"), nil
	}

	return nil, fmt.Errorf("required environment variable not set: %s", varName)
}
