package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"
)

// Friend codes look like GM-7KQ2-9XWD. The alphabet drops characters that
// read ambiguously when shared out loud or handwritten (0/O, 1/I).
const friendCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const friendCodeAttempts = 8

func randomChunk(length int) string {
	var b strings.Builder
	max := big.NewInt(int64(len(friendCodeAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			panic(err)
		}
		b.WriteByte(friendCodeAlphabet[n.Int64()])
	}
	return b.String()
}

func buildFriendCode() string {
	return fmt.Sprintf("GM-%s-%s", randomChunk(4), randomChunk(4))
}

// GenerateUniqueFriendCode returns a friend code not currently in use.
// exists reports whether a candidate is already taken. After a bounded
// number of collisions it falls back to a timestamp-based code, which is
// unique in practice and keeps registration from failing outright.
func GenerateUniqueFriendCode(exists func(code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < friendCodeAttempts; attempt++ {
		candidate := buildFriendCode()
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	return fmt.Sprintf("GM-%s-%s", ts, randomChunk(4)), nil
}
