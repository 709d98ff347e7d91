package city

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"strconv"
	"strings"
)

// Checksummer computes a keyed digest over (identity, grid, money) for
// callers that need tamper-evidence beyond request validation. It is an
// opt-in primitive: the default validation pipeline does not invoke it.
type Checksummer struct {
	Secret []byte
}

func (c Checksummer) Checksum(identity string, g Grid, money int64) string {
	mac := hmac.New(sha256.New, c.Secret)
	mac.Write([]byte(identity))
	mac.Write([]byte(":"))
	mac.Write([]byte(flattenGrid(g)))
	mac.Write([]byte(":"))
	mac.Write([]byte(strconv.FormatInt(money, 10)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (c Checksummer) Verify(identity string, g Grid, money int64, provided string) bool {
	expected := c.Checksum(identity, g, money)
	return hmac.Equal([]byte(expected), []byte(provided))
}

func flattenGrid(g Grid) string {
	var sb strings.Builder
	for _, row := range g {
		for _, cell := range row {
			sb.WriteString(strconv.Itoa(cell))
			sb.WriteByte(',')
		}
	}
	return sb.String()
}
