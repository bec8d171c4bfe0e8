package value

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day         = 24 * time.Hour
	maxDuration = time.Duration(1<<63 - 1)
)

// FormatDuration renders d as [-][d.]hh:mm:ss[.fffffffff].
func FormatDuration(d time.Duration) string {
	var sb strings.Builder
	u := uint64(d)
	if d < 0 {
		sb.WriteByte('-')
		u = -u
	}
	days := u / uint64(day)
	u -= days * uint64(day)
	if days > 0 {
		sb.WriteString(strconv.FormatUint(days, 10))
		sb.WriteByte('.')
	}
	h := u / uint64(time.Hour)
	u -= h * uint64(time.Hour)
	m := u / uint64(time.Minute)
	u -= m * uint64(time.Minute)
	s := u / uint64(time.Second)
	u -= s * uint64(time.Second)
	pad2(&sb, h)
	sb.WriteByte(':')
	pad2(&sb, m)
	sb.WriteByte(':')
	pad2(&sb, s)
	if u > 0 {
		frac := strconv.FormatUint(u+uint64(time.Second), 10)[1:]
		sb.WriteByte('.')
		sb.WriteString(strings.TrimRight(frac, "0"))
	}
	return sb.String()
}

func pad2(sb *strings.Builder, v uint64) {
	if v < 10 {
		sb.WriteByte('0')
	}
	sb.WriteString(strconv.FormatUint(v, 10))
}

var durationRE = regexp.MustCompile(`^(-)?(?:(\d+)\.)?(\d+):(\d+)(?::(\d+)(?:\.(\d{1,9}))?)?$`)

// ParseDuration accepts [-][d.]h:m[:s[.f]], a bare day count, or Go
// duration syntax such as "1h30m".
func ParseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if m := durationRE.FindStringSubmatch(s); m != nil {
		days, _ := strconv.ParseUint(orZero(m[2]), 10, 32)
		h, _ := strconv.ParseUint(m[3], 10, 32)
		mi, _ := strconv.ParseUint(m[4], 10, 32)
		sec, _ := strconv.ParseUint(orZero(m[5]), 10, 32)
		neg := m[1] != ""
		if h > 23 || mi > 59 || sec > 59 || days > uint64(maxDuration/day) {
			return 0, false
		}
		var ns uint64
		if m[6] != "" {
			frac := m[6] + strings.Repeat("0", 9-len(m[6]))
			ns, _ = strconv.ParseUint(frac, 10, 64)
		}
		total := days*uint64(day) + h*uint64(time.Hour) + mi*uint64(time.Minute) + sec*uint64(time.Second) + ns
		limit := uint64(maxDuration)
		if neg {
			limit++
		}
		if total > limit {
			return 0, false
		}
		d := time.Duration(total)
		if neg {
			d = -d
		}
		return d, true
	}
	if days, err := strconv.ParseInt(s, 10, 32); err == nil {
		if days > int64(maxDuration/day) || days < -int64(maxDuration/day) {
			return 0, false
		}
		return time.Duration(days) * day, true
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
