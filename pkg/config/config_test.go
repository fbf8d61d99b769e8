package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultLocatorConfig(t *testing.T) {
	config := DefaultLocatorConfig()

	if config.Backend != "pywinauto" {
		t.Errorf("默认 Backend 应为 pywinauto, 实际为 %s", config.Backend)
	}
	if time.Duration(config.PollInterval) != 200*time.Millisecond {
		t.Errorf("默认 PollInterval 应为 200ms, 实际为 %v", time.Duration(config.PollInterval))
	}
	if time.Duration(config.FindTimeout) != time.Second {
		t.Errorf("默认 FindTimeout 应为 1s, 实际为 %v", time.Duration(config.FindTimeout))
	}

	t.Logf("默认配置: %+v", config)
}

func TestManagerSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	if manager.Exists() {
		t.Error("初始时配置文件不应存在")
	}

	config := &LocatorConfig{
		Backend:      "cdp",
		PollInterval: Duration(50 * time.Millisecond),
		FindTimeout:  Duration(3 * time.Second),
		ChromeURL:    "ws://127.0.0.1:9222/devtools/browser/abc",
		MaxDepth:     8,
		LogLevel:     "DEBUG",
	}

	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if !manager.Exists() {
		t.Error("保存后配置文件应存在")
	}

	data, _ := os.ReadFile(manager.GetConfigFile())
	if !strings.Contains(string(data), `"find_timeout": "3s"`) {
		t.Errorf("时长应以文本保存: %s", data)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if *loaded != *config {
		t.Errorf("配置不匹配: 期望 %+v, 实际 %+v", config, loaded)
	}
}

func TestManagerYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	manager := NewManagerWithFile(path)

	config := DefaultLocatorConfig()
	config.SnapshotFile = "tree.json"
	config.PollInterval = Duration(100 * time.Millisecond)
	if err := manager.Save(config); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "poll_interval: 100ms") {
		t.Errorf("YAML 内容不符合预期:\n%s", data)
	}

	loaded, err := manager.Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if *loaded != *config {
		t.Errorf("配置不匹配: 期望 %+v, 实际 %+v", config, loaded)
	}
}

func TestManagerPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("backend: cdp\nfind_timeout: 5s\n"), 0600); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	config, err := NewManagerWithFile(path).Load()
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if config.Backend != "cdp" || time.Duration(config.FindTimeout) != 5*time.Second {
		t.Errorf("文件中的值未生效: %+v", config)
	}
	if time.Duration(config.PollInterval) != 200*time.Millisecond {
		t.Errorf("缺省字段应保持默认值, 实际 %v", time.Duration(config.PollInterval))
	}
}

func TestManagerClear(t *testing.T) {
	manager := NewManagerWithDir(t.TempDir())

	if err := manager.Save(DefaultLocatorConfig()); err != nil {
		t.Fatalf("保存配置失败: %v", err)
	}
	if err := manager.Clear(); err != nil {
		t.Fatalf("清除配置失败: %v", err)
	}
	if manager.Exists() {
		t.Error("清除后配置文件不应存在")
	}

	// 清除不存在的文件不应报错
	if err := manager.Clear(); err != nil {
		t.Errorf("清除不存在的配置不应报错: %v", err)
	}
}

func TestManagerLoadCorruptedFile(t *testing.T) {
	tempDir := t.TempDir()
	manager := NewManagerWithDir(tempDir)

	configFile := filepath.Join(tempDir, "config.json")
	if err := os.WriteFile(configFile, []byte("not valid json"), 0600); err != nil {
		t.Fatalf("创建测试文件失败: %v", err)
	}

	config, err := manager.Load()
	if err == nil {
		t.Error("加载损坏的配置应返回错误")
	}
	if config == nil {
		t.Error("即使出错也应返回默认配置")
	}
}

func TestManagerLoadBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("find_timeout: soon\n"), 0600)

	if _, err := NewManagerWithFile(path).Load(); err == nil {
		t.Error("无效时长应返回错误")
	}
}

func TestDefaultManager(t *testing.T) {
	manager := GetDefaultManager()
	if manager == nil {
		t.Fatal("GetDefaultManager 返回 nil")
	}

	homeDir, _ := os.UserHomeDir()
	expectedDir := filepath.Join(homeDir, ".zoey-uia")
	if manager.GetConfigDir() != expectedDir {
		t.Errorf("默认配置目录应为 %s, 实际为 %s", expectedDir, manager.GetConfigDir())
	}
}
