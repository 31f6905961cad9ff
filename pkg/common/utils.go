package common

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the name, collapses runs of non-alphanumeric characters
// into single hyphens and trims leading/trailing hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlnum.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateReferralCode produces a short collision-resistant identifier: a
// random token fragment plus a base-36 timestamp suffix. Uniqueness is not
// checked against the store; the token space makes collisions negligible.
func GenerateReferralCode() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}
