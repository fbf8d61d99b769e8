package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration 以 "200ms" / "1s" 形式读写的时长
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("无效的时长 %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// LocatorConfig 元素定位配置
type LocatorConfig struct {
	Backend      string   `json:"backend" yaml:"backend"`
	PollInterval Duration `json:"poll_interval" yaml:"poll_interval"`
	FindTimeout  Duration `json:"find_timeout" yaml:"find_timeout"`
	PythonPath   string   `json:"python_path,omitempty" yaml:"python_path,omitempty"`
	ChromeURL    string   `json:"chrome_url,omitempty" yaml:"chrome_url,omitempty"`
	SnapshotFile string   `json:"snapshot_file,omitempty" yaml:"snapshot_file,omitempty"`
	MaxDepth     int      `json:"max_depth" yaml:"max_depth"`
	LogLevel     string   `json:"log_level" yaml:"log_level"`
	LogFile      string   `json:"log_file,omitempty" yaml:"log_file,omitempty"`
}

// DefaultLocatorConfig 默认配置
func DefaultLocatorConfig() *LocatorConfig {
	return &LocatorConfig{
		Backend:      "pywinauto",
		PollInterval: Duration(200 * time.Millisecond),
		FindTimeout:  Duration(time.Second),
		MaxDepth:     12,
		LogLevel:     "INFO",
	}
}

// Manager 配置管理器，按文件扩展名选择 JSON 或 YAML
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器，默认 ~/.zoey-uia/config.json
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return NewManagerWithDir(filepath.Join(homeDir, ".zoey-uia"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.json"),
	}
}

// NewManagerWithFile 使用指定配置文件（.json / .yaml / .yml）
func NewManagerWithFile(path string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(path),
		configFile: path,
	}
}

func (m *Manager) isYAML() bool {
	switch strings.ToLower(filepath.Ext(m.configFile)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件不存在时返回默认值，文件中缺省的字段保持默认值
func (m *Manager) Load() (*LocatorConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return DefaultLocatorConfig(), nil
	}

	data, err := os.ReadFile(m.configFile)
	if err != nil {
		return DefaultLocatorConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultLocatorConfig()
	if m.isYAML() {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return DefaultLocatorConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}

	return config, nil
}

// Save 保存配置
func (m *Manager) Save(config *LocatorConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	var data []byte
	var err error
	if m.isYAML() {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*LocatorConfig, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *LocatorConfig) error {
	return defaultManager.Save(config)
}
