package service

import (
	"log"
	"strings"
	"unicode/utf8"
)

const maxAILogRunes = 256

// logAIExchange 记录 AI 接口的输入与输出摘要，超长内容截断
func logAIExchange(kind, phase string, parts ...string) {
	content := strings.TrimSpace(strings.Join(parts, " | "))
	if content == "" {
		log.Printf("[AI %s] %s: <empty>", kind, phase)
		return
	}

	n := utf8.RuneCountInString(content)
	if n > maxAILogRunes {
		content = string([]rune(content)[:maxAILogRunes]) + "…"
	}
	log.Printf("[AI %s] %s (runes=%d): %s", kind, phase, n, content)
}
