package utils

import "testing"

func TestStampRoundTrip(t *testing.T) {
	const stamp = int64(1700000000)
	str := Stamp2str(stamp)
	if str == "" {
		t.Fatal("Stamp2str 返回空串")
	}
	if got := Str2stamp(str); got != stamp {
		t.Fatalf("round trip = %d, want %d", got, stamp)
	}
}

func TestStampEdgeCases(t *testing.T) {
	if Stamp2str(0) != "" {
		t.Fatal("0 时间戳应返回空串")
	}
	if Str2stamp("not-a-time") != 0 {
		t.Fatal("非法字符串应返回0")
	}
}
