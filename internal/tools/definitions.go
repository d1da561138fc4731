package tools

import "jarvis/internal/providers"

// Executor is a function the model can call by name.
type Executor func(args map[string]string) string

// Definition pairs a tool spec with its implementation.
type Definition struct {
	Spec    providers.ToolDef
	Execute Executor
}

// Set is a dispatchable collection of tool definitions. It satisfies the
// chat engine's Dispatcher interface.
type Set struct {
	defs []Definition
}

// NewSet returns the full tool set backed by the terminal-jarvis binary.
func NewSet() *Set {
	return &Set{defs: defaultDefs(Run, Launch)}
}

// Specs returns the tool definitions advertised to the model.
func (s *Set) Specs() []providers.ToolDef {
	specs := make([]providers.ToolDef, len(s.defs))
	for i, d := range s.defs {
		specs[i] = d.Spec
	}
	return specs
}

// Dispatch executes a tool by name. Unknown names are reported as text so
// the model can correct itself.
func (s *Set) Dispatch(name string, args map[string]string) string {
	for _, d := range s.defs {
		if d.Spec.Name == name {
			return d.Execute(args)
		}
	}
	return "unknown tool: " + name
}

func noParams() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}

func toolNameParam(desc string, required bool) map[string]interface{} {
	p := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"tool_name": map[string]interface{}{
				"type":        "string",
				"description": desc,
			},
		},
	}
	if required {
		p["required"] = []string{"tool_name"}
	}
	return p
}

func defaultDefs(run func(args ...string) string, launch func(name string) string) []Definition {
	return []Definition{
		{
			Spec: providers.ToolDef{
				Name:        "list_tools",
				Description: "List all available AI coding tools and their installation status.",
				Parameters:  noParams(),
			},
			Execute: func(map[string]string) string { return run("list") },
		},
		{
			Spec: providers.ToolDef{
				Name:        "get_tool_info",
				Description: "Get detailed information about a specific AI coding tool.",
				Parameters:  toolNameParam("Name of the tool (e.g. claude, gemini, aider, goose).", true),
			},
			Execute: func(args map[string]string) string { return run("info", args["tool_name"]) },
		},
		{
			Spec: providers.ToolDef{
				Name:        "launch_tool",
				Description: "Launch an AI coding tool interactively. Control returns when the user exits the tool.",
				Parameters:  toolNameParam("Name of the tool to launch (e.g. claude, gemini, aider).", true),
			},
			Execute: func(args map[string]string) string { return launch(args["tool_name"]) },
		},
		{
			Spec: providers.ToolDef{
				Name:        "install_tool",
				Description: "Install an AI coding tool.",
				Parameters:  toolNameParam("Name of the tool to install (e.g. aider, goose, llxprt).", true),
			},
			Execute: func(args map[string]string) string { return run("install", args["tool_name"]) },
		},
		{
			Spec: providers.ToolDef{
				Name:        "update_tool",
				Description: "Update one or all AI coding tools. Leave tool_name empty to update all.",
				Parameters:  toolNameParam("Name of the tool to update. Omit to update all tools.", false),
			},
			Execute: func(args map[string]string) string {
				if name := args["tool_name"]; name != "" {
					return run("update", name)
				}
				return run("update")
			},
		},
		{
			Spec: providers.ToolDef{
				Name:        "show_status",
				Description: "Show the health dashboard for all AI coding tools.",
				Parameters:  noParams(),
			},
			Execute: func(map[string]string) string { return run("status") },
		},
		{
			Spec: providers.ToolDef{
				Name:        "get_auth_help",
				Description: "Show authentication setup instructions for a specific AI coding tool.",
				Parameters:  toolNameParam("Name of the tool to get auth help for (e.g. claude, gemini).", true),
			},
			Execute: func(args map[string]string) string { return run("auth", "help", args["tool_name"]) },
		},
		{
			Spec: providers.ToolDef{
				Name:        "show_config",
				Description: "Show the current Terminal Jarvis configuration.",
				Parameters:  noParams(),
			},
			Execute: func(map[string]string) string { return run("config", "show") },
		},
		{
			Spec: providers.ToolDef{
				Name:        "clear_cache",
				Description: "Clear the version cache to force fresh tool detection.",
				Parameters:  noParams(),
			},
			Execute: func(map[string]string) string { return run("cache", "clear") },
		},
	}
}
