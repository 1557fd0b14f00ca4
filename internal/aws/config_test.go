package aws

import (
	"context"
	"testing"
)

func TestLoadAWSConfig_DefaultRegion(t *testing.T) {
	t.Setenv("AWS_REGION", "")

	cfg, err := LoadAWSConfig(context.Background())
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("expected default region us-east-1, got %q", cfg.Region)
	}
}

func TestLoadAWSConfig_RegionFromEnv(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := LoadAWSConfig(context.Background())
	if err != nil {
		t.Fatalf("expected config to load, got %v", err)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("expected region eu-west-1, got %q", cfg.Region)
	}
}
