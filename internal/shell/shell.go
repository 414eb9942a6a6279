// Package shell renders the zsh integration code that wires the helper
// binary into the completion system.
package shell

import (
	_ "embed"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Embedded zsh templates, compiled into the binary at build time

//go:embed templates/plugin.zsh.tmpl
var pluginTemplate string

//go:embed templates/hook.zsh.tmpl
var hookTemplate string

// PluginParams configures the rendered zsh plugin
type PluginParams struct {
	// Helper is the helper binary name or path used inside the plugin
	Helper string
	// Commands are the optimizer commands to register completion for
	Commands []string
}

func (p PluginParams) normalized() PluginParams {
	out := p
	if out.Helper == "" {
		out.Helper = "mlircomp"
	}
	if len(out.Commands) == 0 {
		out.Commands = []string{"mlir-opt"}
	}
	return out
}

// GeneratePlugin renders the zsh completion plugin for the given
// commands. The output is valid zsh whether sourced from .zshrc or
// installed as an fpath file.
func GeneratePlugin(params PluginParams) (string, error) {
	return render("plugin", pluginTemplate, params.normalized())
}

// GenerateHook renders the eval-able hook wrapper around the plugin
func GenerateHook(params PluginParams) (string, error) {
	plugin, err := GeneratePlugin(params)
	if err != nil {
		return "", err
	}

	data := struct {
		Helper string
		Plugin string
	}{
		Helper: params.normalized().Helper,
		Plugin: strings.TrimSuffix(plugin, "\n"),
	}
	return render("hook", hookTemplate, data)
}

func render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
