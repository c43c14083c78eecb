package id

import (
	"crypto/md5"
	"io"
	"strconv"

	"github.com/gofrs/uuid"
)

// GenTraceID new normal traceID
func GenTraceID() string {
	return GenUUIDString()
}

// GenUUIDString new uuid
func GenUUIDString() string {
	return uuid.Must(uuid.NewV4()).String()
}

// Num2Str convert uint64 to number string
func Num2Str(id uint64) string {
	return strconv.FormatUint(id, 10)
}

// Str2Num convert number string to uint64
func Str2Num(idStr string) uint64 {
	v, _ := strconv.ParseUint(idStr, 10, 64)
	return v
}

// UUIDByName new uuid string from name, deterministic per namespace
func UUIDByName(uuidStr, name string) string {
	ns, e := uuid.FromString(uuidStr)
	if e != nil {
		panic(e)
	}

	return uuid.NewV5(ns, name).String()
}

// UUIDFromString new uuid string from string
func UUIDFromString(text string) string {
	h := md5.New()
	io.WriteString(h, text)
	sum := h.Sum(nil)
	sum[6] = (sum[6] & 0x0f) | 0x30
	sum[8] = (sum[8] & 0x3f) | 0x80
	return uuid.FromBytesOrNil(sum).String()
}
