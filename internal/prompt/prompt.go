package prompt

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Package prompt holds the template for the shopping-list generation prompt.
// The wording is Spanish to match the backend's audience; deployments can
// override it via a YAML file without rebuilding.

// Template is the configurable portion of the generation prompt.
type Template struct {
	Preamble     string `yaml:"preamble"`
	Instructions string `yaml:"instructions"`
	NoneLabel    string `yaml:"none_label"`
}

// Default returns the built-in template.
func Default() Template {
	return Template{
		Preamble: "Eres un asistente de cocina experto. Tu tarea es crear una lista de compras detallada.",
		Instructions: "Por favor, genera una lista de todos los ingredientes necesarios para preparar todas las recetas, " +
			"excluyendo los que el usuario ya tiene. Agrupa los ingredientes por categoría (ej. Verduras, Carnes, Lácteos, Despensa) " +
			"y especifica cantidades aproximadas si es posible. El formato de la respuesta debe ser claro y fácil de leer. " +
			"No incluyas los nombres de las recetas en la lista final, solo los ingredientes a comprar.",
		NoneLabel: "Ninguno",
	}
}

// Load reads a template override from path. A missing or empty path yields
// the default template; a present but unparseable file is an error.
func Load(path string) (Template, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Template{}, fmt.Errorf("read prompt file: %w", err)
	}

	tpl := Default()
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return Template{}, fmt.Errorf("parse prompt file %s: %w", path, err)
	}
	return tpl, nil
}

// Render builds the full prompt for the given recipes and owned ingredients.
func (t Template) Render(recipes, owned []string) string {
	have := t.NoneLabel
	if len(owned) > 0 {
		have = strings.Join(owned, ", ")
	}

	var b strings.Builder
	b.WriteString(t.Preamble)
	b.WriteString("\n\nBasado en las siguientes recetas que el usuario quiere preparar:\n- ")
	b.WriteString(strings.Join(recipes, ", "))
	b.WriteString("\n\nY teniendo en cuenta que el usuario ya tiene los siguientes ingredientes en casa:\n- ")
	b.WriteString(have)
	b.WriteString("\n\n")
	b.WriteString(t.Instructions)
	return b.String()
}
