package docs

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with itself.
	// It checks two things:
	// 1. Every topic listed in readme.md can be loaded with GetTopic.
	// 2. Every .md file (excluding readme.md itself) is listed in readme.md.

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		matches := topicRegex.FindStringSubmatch(scanner.Text())
		if len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("failed to list topics: %v", err)
	}
	for _, topic := range all {
		found := false
		for _, listed := range topicsInReadme {
			if listed == topic {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in readme.md", topic)
		}
	}
}

func TestTopicsHaveTitle(t *testing.T) {
	// Every topic must start with a level-1 heading, so that concatenated
	// output ('*') reads as a document with one section per topic.
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			content, err := os.ReadFile(file)
			if err != nil {
				t.Fatal(err)
			}
			root := goldmark.DefaultParser().Parse(text.NewReader(content))
			first := root.FirstChild()
			h, ok := first.(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("%s does not start with a level-1 heading", file)
			}
		})
	}
}

func TestSnapshotFormatExamples(t *testing.T) {
	// Every json fenced block in snapshot-format.md must hold valid JSON
	// lines carrying a known kind, so the examples stay copy-pasteable.
	content, err := os.ReadFile("snapshot-format.md")
	if err != nil {
		t.Fatal(err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	blocks := 0
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok || string(fenced.Language(content)) != "json" {
			return ast.WalkContinue, nil
		}
		blocks++
		for i := 0; i < fenced.Lines().Len(); i++ {
			seg := fenced.Lines().At(i)
			line := strings.TrimSpace(string(seg.Value(content)))
			if line == "" {
				continue
			}
			var obj struct {
				Kind string `json:"kind"`
			}
			if err := json.Unmarshal([]byte(line), &obj); err != nil {
				t.Errorf("invalid JSON example: %v\n%s", err, line)
				continue
			}
			switch obj.Kind {
			case "account", "commodity", "price":
			default:
				t.Errorf("example has unknown kind %q: %s", obj.Kind, line)
			}
		}
		return ast.WalkContinue, nil
	})
	if blocks == 0 {
		t.Error("snapshot-format.md has no json examples")
	}
}
