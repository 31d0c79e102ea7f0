package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Prompt is the fixed instruction set sent with every capture. Operators can
// override it with a YAML file; the built-in default matches the contract the
// monitored clients were rolled out with.
type Prompt struct {
	Model  string   `yaml:"model"`
	Text   string   `yaml:"text"`
	Labels []string `yaml:"labels"`
}

var defaultPrompt = Prompt{
	Model: "vision-medium",
	Text: "You are reviewing a desktop screenshot from a monitored workstation. " +
		"Respond with a JSON object containing: summary (one sentence of what the user is doing), " +
		"productivity (one of: productive, neutral, unproductive), " +
		"applications (visible application names), content_types (e.g. code, email, video, document).",
	Labels: []string{"productive", "neutral", "unproductive"},
}

func LoadPrompt(path string) (Prompt, error) {
	if path == "" {
		return defaultPrompt, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Prompt{}, err
	}
	prompt := defaultPrompt
	if err := yaml.Unmarshal(data, &prompt); err != nil {
		return Prompt{}, fmt.Errorf("parse prompt file: %w", err)
	}
	if prompt.Text == "" || len(prompt.Labels) == 0 {
		return Prompt{}, fmt.Errorf("prompt file %s: text and labels are required", path)
	}
	return prompt, nil
}

func (p Prompt) labelAllowed(label string) bool {
	for _, allowed := range p.Labels {
		if allowed == label {
			return true
		}
	}
	return false
}
