// Package prompt 提供提示词模板渲染功能
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"ai_helpdesk_mini/internal/models"
)

// placeholderPattern 匹配模板中的{name}占位符
var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// MissingVariableError 模板占位符缺少对应变量
type MissingVariableError struct {
	Name string // 缺失的占位符名称
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("模板变量缺失: %s", e.Name)
}

// Render 渲染消息模板，将每条消息内容中的{key}替换为vars[key]
// 输入消息不会被修改，返回新的消息列表，顺序与输入一致
func Render(messages []models.Message, vars map[string]string) ([]models.Message, error) {
	rendered := make([]models.Message, 0, len(messages))
	for _, msg := range messages {
		content, err := renderContent(msg.Content, vars)
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, models.Message{Role: msg.Role, Content: content})
	}
	return rendered, nil
}

// renderContent 渲染单条消息内容
func renderContent(content string, vars map[string]string) (string, error) {
	// 先校验所有占位符都有对应变量
	for _, match := range placeholderPattern.FindAllStringSubmatch(content, -1) {
		name := match[1]
		if _, ok := vars[name]; !ok {
			return "", &MissingVariableError{Name: name}
		}
	}

	result := placeholderPattern.ReplaceAllStringFunc(content, func(m string) string {
		name := strings.Trim(m, "{}")
		return vars[name]
	})
	return result, nil
}
