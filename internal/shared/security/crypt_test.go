package security

import (
	"bytes"
	"testing"

	"github.com/go-think/openssl"
)

func TestZipUnZip_往返一致(t *testing.T) {
	src := []byte(`{"name":"game.action","msg":{"type":"END_TURN"}}`)
	zipped, err := Zip(src)
	if err != nil {
		t.Fatalf("Zip err=%v", err)
	}
	got, err := UnZip(zipped)
	if err != nil {
		t.Fatalf("UnZip err=%v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("期望解压后与原文一致，got=%q", got)
	}
}

func TestAesCBC_加解密往返(t *testing.T) {
	key := []byte(RandSeq(16))
	src := []byte("hello dominion")

	enc, err := AesCBCEncrypt(src, key, key, openssl.ZEROS_PADDING)
	if err != nil {
		t.Fatalf("encrypt err=%v", err)
	}
	dec, err := AesCBCDecrypt(enc, key, key, openssl.ZEROS_PADDING)
	if err != nil {
		t.Fatalf("decrypt err=%v", err)
	}
	// ZEROS_PADDING 会在尾部补零，比较时去掉。
	if !bytes.Equal(bytes.TrimRight(dec, "\x00"), src) {
		t.Fatalf("期望解密后与原文一致，got=%q", dec)
	}
}

func TestRandSeq_长度与字符集(t *testing.T) {
	s := RandSeq(16)
	if len(s) != 16 {
		t.Fatalf("期望长度 16，got=%d", len(s))
	}
	for _, r := range s {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			t.Fatalf("意外字符 %q", r)
		}
	}
}
