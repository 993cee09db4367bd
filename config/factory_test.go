package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/eventrec/eventrec/core"
	"github.com/eventrec/eventrec/pipeline"
)

const pipelineYAML = `
pipeline:
  name: post-process
  nodes:
    - type: filter
      config:
        rule: "item.score < 0.1"
        blocklist: ["banned"]
    - type: rerank.topn
      config:
        n: 2
`

func TestDefaultFactoryBuildsPipelineFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(pipelineYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := pipeline.LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	p, err := cfg.BuildPipeline(DefaultFactory(Sources{}))
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(p.Nodes))
	}

	items := []*core.Item{
		{ID: "a", Score: 0.9},
		{ID: "banned", Score: 0.8},
		{ID: "b", Score: 0.5},
		{ID: "c", Score: 0.3},
		{ID: "low", Score: 0.05},
	}
	out, err := p.Run(context.Background(), &core.RecommendContext{UserID: "u1"}, items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// rule drops "low", blocklist drops "banned", topn keeps 2
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		ids := make([]string, len(out))
		for i, it := range out {
			ids[i] = it.ID
		}
		t.Fatalf("got %v, want [a b]", ids)
	}
}

func TestFactoryUnknownNodeType(t *testing.T) {
	f := DefaultFactory(Sources{})
	if _, err := f.Build("rank.lr", nil); err == nil {
		t.Fatal("want error for unregistered node type")
	}
}
