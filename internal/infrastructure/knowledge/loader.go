// Package knowledge 加载领导力模块数据并维护系统提示词
package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/listerdale/chatbot/internal/domain/knowledge"
	"gopkg.in/yaml.v3"
)

//go:embed modules.json
var defaultModules []byte

// LoadDefault 读取内置模块列表
func LoadDefault() ([]knowledge.Module, error) {
	return Parse(defaultModules, ".json")
}

// LoadFile 读取模块文件，支持 .json / .yaml / .yml
func LoadFile(path string) ([]knowledge.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read modules file: %w", err)
	}
	modules, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return modules, nil
}

// Parse 按扩展名解析模块数据
func Parse(data []byte, ext string) ([]knowledge.Module, error) {
	var modules []knowledge.Module
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &modules); err != nil {
			return nil, fmt.Errorf("failed to parse modules json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &modules); err != nil {
			return nil, fmt.Errorf("failed to parse modules yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported modules file extension %q", ext)
	}

	if err := validate(modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func validate(modules []knowledge.Module) error {
	if len(modules) == 0 {
		return fmt.Errorf("modules file is empty")
	}
	for i, m := range modules {
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("module %d: title is required", i)
		}
		if strings.TrimSpace(m.URL) == "" {
			return fmt.Errorf("module %d (%s): url is required", i, m.Title)
		}
	}
	return nil
}
