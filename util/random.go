package util

import (
	crand "crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/rand"

	"github.com/dontcallmebro/BQL-APP/data"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

func init() {
	rand.Seed(uint64(time.Now().UnixNano()))
}

// RandomInt generates a random integer between min and max
func RandomInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// RandomFloat generates a random float in [min, max)
func RandomFloat(min, max float64) float64 {
	return min + rand.Float64()*(max-min)
}

// RandomString generates a random string of length n
func RandomString(n int) string {
	var sb strings.Builder
	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[rand.Intn(k)]
		sb.WriteByte(c)
	}

	return sb.String()
}

// RandomTenor picks one of the supported tenors
func RandomTenor() string {
	tenors := data.Tenors()
	return tenors[rand.Intn(len(tenors))]
}

// RandomDate generates a random weekday in 2020-2029
func RandomDate() time.Time {
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, rand.Intn(3650))
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// RandomEmail generates a random email
func RandomEmail() string {
	return fmt.Sprintf("%s@email.com", RandomString(6))
}

// GenerateAPIKey returns a key of the form prefix.secret with an 8 character prefix.
func GenerateAPIKey() (prefix, key string, err error) {
	b := make([]byte, 24)
	if _, err = crand.Read(b); err != nil {
		return "", "", err
	}
	prefix = base64.RawURLEncoding.EncodeToString(b[:6])
	secret := base64.RawURLEncoding.EncodeToString(b[6:])
	return prefix, prefix + "." + secret, nil
}
