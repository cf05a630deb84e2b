package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted is returned when the user interrupts an interactive prompt.
var ErrAborted = errors.New("ampgen: aborted")

// promptDriver abstracts the prompt library so init can be tested without
// a real terminal.
type promptDriver interface {
	Input(message, def string) (string, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyDriver struct{}

func (surveyDriver) Input(message, def string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Confirm(message string, def bool) (bool, error) {
	var out bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

type initAnswers struct {
	CatalogDir string
	BaseURL    string
	Example    bool
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("ampgen init", flag.ExitOnError)
	yes := fs.Bool("yes", false, "accept defaults without prompting")
	if err := fs.Parse(args); err != nil {
		return err
	}

	answers := initAnswers{
		CatalogDir: "./components",
		BaseURL:    "http://localhost:8080",
		Example:    true,
	}
	if !*yes {
		var err error
		answers, err = askInit(surveyDriver{}, answers)
		if err != nil {
			return err
		}
	}

	if err := scaffold(".", answers); err != nil {
		return err
	}

	fmt.Println("wrote ampgen.yaml")
	if answers.Example {
		fmt.Printf("wrote %s\n", filepath.Join(answers.CatalogDir, "hello"))
	}
	fmt.Println("run `ampgen serve` to preview, `ampgen build` to export")
	return nil
}

func askInit(driver promptDriver, defaults initAnswers) (initAnswers, error) {
	out := defaults

	dir, err := driver.Input("Component catalog directory:", defaults.CatalogDir)
	if err != nil {
		return initAnswers{}, err
	}
	if strings.TrimSpace(dir) != "" {
		out.CatalogDir = dir
	}

	base, err := driver.Input("Site base URL:", defaults.BaseURL)
	if err != nil {
		return initAnswers{}, err
	}
	if strings.TrimSpace(base) != "" {
		out.BaseURL = base
	}

	out.Example, err = driver.Confirm("Create an example component?", defaults.Example)
	if err != nil {
		return initAnswers{}, err
	}
	return out, nil
}

func scaffold(root string, answers initAnswers) error {
	configPath := filepath.Join(root, "ampgen.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("ampgen: %s already exists", configPath)
	}

	cfg := fmt.Sprintf(`site:
  base_url: %s
  amp_prefix: /amp

catalog:
  dir: %s

build:
  out_dir: ./dist
  targets: [web, amp]

serve:
  addr: :8080
`, answers.BaseURL, answers.CatalogDir)

	if err := os.WriteFile(configPath, []byte(cfg), 0o644); err != nil {
		return fmt.Errorf("ampgen: write config: %w", err)
	}

	if !answers.Example {
		return nil
	}
	return writeExample(filepath.Join(root, answers.CatalogDir, "hello"))
}

func writeExample(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ampgen: create %s: %w", dir, err)
	}

	files := map[string]string{
		"component.yaml": `doc: Minimal greeting card.
props:
  type: object
  properties:
    name:
      type: string
      default: world
`,
		"hello.html": `<section class="hello" web-data-component="hello" amp-bind-text="'Hello ' + name">
  <h1>Hello, {{ props.name }}!</h1>
</section>
`,
		"hello.css": `.hello {
  font-family: system-ui, sans-serif;
  padding: 2rem;
}

.hello h1 {
  margin: 0;
}
`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("ampgen: write %s: %w", name, err)
		}
	}
	return nil
}
