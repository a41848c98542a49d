package utils

import "testing"

func TestSnowflake_节点号越界应失败(t *testing.T) {
	if _, err := NewSnowflake(-1); err == nil {
		t.Fatalf("期望负节点号返回错误")
	}
	if _, err := NewSnowflake(maxNodeID + 1); err == nil {
		t.Fatalf("期望超上限节点号返回错误")
	}
}

func TestSnowflake_id单调递增且不重复(t *testing.T) {
	sf, err := NewSnowflake(1)
	if err != nil {
		t.Fatalf("NewSnowflake err=%v", err)
	}

	const n = 5000
	prev := int64(0)
	for i := 0; i < n; i++ {
		id := sf.NextID()
		if id <= prev {
			t.Fatalf("期望严格递增，prev=%d id=%d", prev, id)
		}
		prev = id
	}
}
