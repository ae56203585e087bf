package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReceiptFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		receipt := GenerateReceipt()
		assert.True(t, strings.HasPrefix(receipt, "MPESA-"))
		assert.Len(t, receipt, len("MPESA-")+10)
		assert.False(t, seen[receipt], "receipts must not repeat: %s", receipt)
		seen[receipt] = true
	}
}
