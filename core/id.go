package core

import (
	"crypto/rand"
	"encoding/base64"
	"strconv"
)

func newToken() (string, error) {
	var buf [24]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf[:]), nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func parseID(value string) (int64, bool) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
