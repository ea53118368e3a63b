package utils

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()

	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	t.Cleanup(func() {
		log.SetOutput(prev)
	})

	fn()

	return buf.String()
}

func Test_Log_FormatsArgsThroughVariadicParams(t *testing.T) {
	tests := []struct {
		name     string
		logFn    func()
		expected string
	}{
		{
			name: "info_with_args",
			logFn: func() {
				LogInfo("Component", "заявка %d от пользователя %d", 7, 42)
			},
			expected: "заявка 7 от пользователя 42",
		},
		{
			name: "success_with_args",
			logFn: func() {
				LogSuccess("Component", "осталось экземпляров %d", 3)
			},
			expected: "осталось экземпляров 3",
		},
		{
			name: "warning_with_args",
			logFn: func() {
				LogWarning("Component", "пользователь %s не найден", "x@y.ru")
			},
			expected: "пользователь x@y.ru не найден",
		},
		{
			name: "message_without_args_kept_verbatim",
			logFn: func() {
				LogInfo("Component", "статус: 100%")
			},
			expected: "статус: 100%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureLog(t, tt.logFn)
			assert.Contains(t, out, tt.expected)
			assert.Contains(t, out, "[Component]")
		})
	}
}
