package timegrid

import (
	"sort"
	"testing"
)

func TestValidDay(t *testing.T) {
	for _, d := range Days {
		if !ValidDay(d) {
			t.Errorf("星期 %d 应合法", d)
		}
	}
	for _, d := range []int{-1, 0, 7, 100} {
		if ValidDay(d) {
			t.Errorf("星期 %d 不应合法", d)
		}
	}
}

func TestDayName(t *testing.T) {
	if DayName(1) != "周一" || DayName(6) != "周六" {
		t.Errorf("星期名称错误: %s %s", DayName(1), DayName(6))
	}
	if DayName(7) != "" {
		t.Error("周日不在网格内，应返回空串")
	}
}

func TestPad(t *testing.T) {
	cases := map[string]string{
		"8:00":  "08:00",
		"08:00": "08:00",
		"13:30": "13:30",
		"":      "",
		"abc":   "abc",
		"9:5":   "09:5",
	}
	for in, want := range cases {
		if got := Pad(in); got != want {
			t.Errorf("Pad(%q) = %q，期望 %q", in, got, want)
		}
	}
}

func TestCompare_ZeroPaddedLexicographic(t *testing.T) {
	if !Before("08:00", "09:30") || !Before("09:30", "13:00") {
		t.Error("期望 08:00 < 09:30 < 13:00")
	}
	// 未补零的 "9:00" 与 "09:00" 等价
	if Compare("9:00", "09:00") != 0 {
		t.Error("期望 9:00 与 09:00 相等")
	}
	// 补零后 "9:00" 早于 "10:00"（纯字典序会得到相反结果）
	if !Before("9:00", "10:00") {
		t.Error("期望 9:00 早于 10:00")
	}
	if Before("10:00", "10:00") {
		t.Error("相同时间不应严格早于自身")
	}
}

func TestCompare_SortsMixedInput(t *testing.T) {
	times := []string{"13:00", "8:00", "09:30", "10:15", "7:45"}
	sort.Slice(times, func(i, j int) bool { return Compare(times[i], times[j]) < 0 })

	want := []string{"7:45", "8:00", "09:30", "10:15", "13:00"}
	for i := range want {
		if times[i] != want[i] {
			t.Fatalf("排序结果 %v，期望 %v", times, want)
		}
	}
}

func TestWellFormed(t *testing.T) {
	for _, ok := range []string{"08:00", "8:00", "23:59", "0:00"} {
		if !WellFormed(ok) {
			t.Errorf("%q 应为合法时间", ok)
		}
	}
	for _, bad := range []string{"", "24:00", "12:60", "1200", "ab:cd", "123:00", "08:0"} {
		if WellFormed(bad) {
			t.Errorf("%q 不应为合法时间", bad)
		}
	}
}

func TestSpellings(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"8:00", []string{"08:00", "8:00"}},
		{"08:00", []string{"08:00", "8:00"}},
		{"0:30", []string{"00:30", "0:30"}},
		{"13:30", []string{"13:30"}},
		{"10:00", []string{"10:00"}},
	}
	for _, tc := range cases {
		got := Spellings(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("Spellings(%q) = %v，期望 %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Spellings(%q) = %v，期望 %v", tc.in, got, tc.want)
			}
		}
		// 每种写法都与输入等价
		for _, sp := range got {
			if Compare(sp, tc.in) != 0 {
				t.Errorf("%q 与 %q 应等价", sp, tc.in)
			}
		}
	}
}
