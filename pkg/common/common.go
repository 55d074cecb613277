package common

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/pbkdf2"
)

const (
	ENABLED  = "enabled"
	DISABLED = "disabled"

	NA = "N/A"
)

var snowflakeNode *snowflake.Node

func init() {
	rand.New(rand.NewSource(time.Now().UnixNano()))
	var err error
	snowflakeNode, err = snowflake.NewNode(rand.Int63n(1023))
	if err != nil {
		panic(err)
	}
}

// UUIDint64 returns a new snowflake id
func UUIDint64() int64 {
	return snowflakeNode.Generate().Int64()
}

// UUID returns a new snowflake id in string form
func UUID() string {
	return snowflakeNode.Generate().String()
}

// GetSecretSalt reads the password salt from the environment,
// falling back to a static default
func GetSecretSalt() string {
	if salt := os.Getenv("PHARMADMIN_SECRET_SALT"); salt != "" {
		return salt
	}
	return "pharmadmin-static-salt"
}

// Sha256HashWithSalt derives a hex encoded password hash with PBKDF2-SHA256
func Sha256HashWithSalt(src string, salt string) string {
	dk := pbkdf2.Key([]byte(src), []byte(salt), 4096, 32, sha256.New)
	return hex.EncodeToString(dk)
}

func MustStoi64(v string) int64 {
	i, _ := strconv.ParseInt(v, 10, 64)
	return i
}

func FmtFloat64(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func IsEmptyOrNA(v string) bool {
	return v == "" || v == NA
}
