package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const receiptAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateReceipt produces a Daraja-style confirmation code, e.g.
// "MPESA-QGH7TK2M9X". Collision odds are negligible at this volume.
func GenerateReceipt() string {
	code := make([]byte, 10)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(receiptAlphabet))))
		code[i] = receiptAlphabet[n.Int64()]
	}
	return fmt.Sprintf("MPESA-%s", code)
}
