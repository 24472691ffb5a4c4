package config

import (
	"os"
	"path/filepath"
	"testing"
)

// 配置文件写在测试二进制所在目录，两个用例共享同一路径，不并行

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	exeDir, err := GetExeDir()
	if err != nil {
		t.Fatalf("exe dir: %v", err)
	}
	configPath := filepath.Join(exeDir, "config.toml")
	t.Cleanup(func() { _ = os.Remove(configPath) })

	cfg := DefaultConfig()
	cfg.Server.Port = 23456
	cfg.Data.DataDir = "roundtrip-data"
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Server.Port != 23456 || loaded.Data.DataDir != "roundtrip-data" {
		t.Fatalf("unexpected config: %+v", loaded)
	}

	_, info, err := LoadConfigWithInfo()
	if err != nil {
		t.Fatalf("load with info: %v", err)
	}
	if !info.PortSpecified {
		t.Fatalf("port should be marked as specified")
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	exeDir, err := GetExeDir()
	if err != nil {
		t.Fatalf("exe dir: %v", err)
	}
	_ = os.Remove(filepath.Join(exeDir, "config.toml"))

	cfg, info, err := LoadConfigWithInfo()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if info.PortSpecified {
		t.Fatalf("missing file should not mark port as specified")
	}
	want := DefaultConfig()
	if cfg.Server.Port != want.Server.Port || cfg.Data.DataDir != want.Data.DataDir {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestGetDataPath(t *testing.T) {
	cfg := DefaultConfig()
	got := GetDataPath(cfg, "uploads", "run.xlsx")

	if filepath.Base(got) != "run.xlsx" {
		t.Fatalf("unexpected filename: %s", got)
	}
	if filepath.Base(filepath.Dir(got)) != "uploads" {
		t.Fatalf("unexpected subdir: %s", got)
	}
	if filepath.Base(filepath.Dir(filepath.Dir(got))) != cfg.Data.DataDir {
		t.Fatalf("unexpected data dir: %s", got)
	}
}
