package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"ai_helpdesk_mini/internal/models"
)

// writeTempFile 在临时目录写入测试文件并返回路径
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}
	return path
}

// fakeClient 测试用模型客户端桩
// Chat按chatReplies依次返回；ChatStream逐块回调chunks后返回streamErr
type fakeClient struct {
	chatReplies []string
	chatErr     error
	chunks      []string
	streamErr   error

	chatCalls   [][]models.Message
	streamCalls [][]models.Message
}

func (f *fakeClient) Chat(ctx context.Context, messages []models.Message) (string, error) {
	f.chatCalls = append(f.chatCalls, messages)
	if f.chatErr != nil {
		return "", f.chatErr
	}
	if len(f.chatReplies) == 0 {
		return "", fmt.Errorf("没有预设回复")
	}
	reply := f.chatReplies[0]
	f.chatReplies = f.chatReplies[1:]
	return reply, nil
}

func (f *fakeClient) ChatStream(ctx context.Context, messages []models.Message, emit func(delta string) error) error {
	f.streamCalls = append(f.streamCalls, messages)
	for _, chunk := range f.chunks {
		if err := emit(chunk); err != nil {
			return err
		}
	}
	return f.streamErr
}
