package kinematics

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinToothCount 最小齿数
// 安全余量：更少的齿数下齿根与基圆接近，齿形质量没有保证
const MinToothCount = 8

var (
	// ErrInvalidInput 齿数不是正整数
	ErrInvalidInput = errors.New("invalid input")
	// ErrImpossibleToothCount 推导出的齿数不是整数或小于 1
	ErrImpossibleToothCount = errors.New("impossible tooth count")
	// ErrRatioMismatch 齿数不满足 ring = sun + 2·planet
	ErrRatioMismatch = errors.New("tooth counts do not satisfy ring = sun + 2*planet")
	// ErrTooFewTeeth 齿数低于 MinToothCount
	ErrTooFewTeeth = errors.New("too few teeth")
)

// Member 行星轮系中的构件
type Member int

const (
	MemberNone Member = iota
	MemberSun
	MemberPlanet
	MemberRing
)

// String 返回构件名称
func (m Member) String() string {
	switch m {
	case MemberSun:
		return "sun"
	case MemberPlanet:
		return "planet"
	case MemberRing:
		return "ring"
	default:
		return "none"
	}
}

// ParseMember 解析构件名称（sun/planet/ring），空串返回 MemberNone
func ParseMember(name string) (Member, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return MemberNone, nil
	case "sun":
		return MemberSun, nil
	case "planet":
		return MemberPlanet, nil
	case "ring":
		return MemberRing, nil
	default:
		return MemberNone, fmt.Errorf("unknown gear member %q", name)
	}
}

// ParseToothCount 解析用户输入的齿数
// 非数字、非整数（如 "3.5"）或小于 1 均返回 ErrInvalidInput
func ParseToothCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: tooth count %q is not an integer", ErrInvalidInput, s)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: tooth count must be positive, got %d", ErrInvalidInput, n)
	}
	return n, nil
}

// Derive 由另外两个齿数推导缺失的一个（ring = sun + 2·planet）
//
// 参数:
//   - t: 已知齿数，missing 对应字段被忽略
//   - missing: 需要推导的构件
//
// 返回:
//   - Teeth: 补全后的齿数
//   - error: 已知齿数非正返回 ErrInvalidInput；结果非整数或小于 1 返回 ErrImpossibleToothCount
func Derive(t Teeth, missing Member) (Teeth, error) {
	check := func(name string, v int) error {
		if v < 1 {
			return fmt.Errorf("%w: %s tooth count must be positive, got %d", ErrInvalidInput, name, v)
		}
		return nil
	}

	switch missing {
	case MemberSun:
		if err := errors.Join(check("ring", t.Ring), check("planet", t.Planet)); err != nil {
			return t, err
		}
		t.Sun = t.Ring - 2*t.Planet
		if t.Sun < 1 {
			return t, fmt.Errorf("%w: sun = %d - 2*%d = %d", ErrImpossibleToothCount, t.Ring, t.Planet, t.Sun)
		}
	case MemberPlanet:
		if err := errors.Join(check("ring", t.Ring), check("sun", t.Sun)); err != nil {
			return t, err
		}
		diff := t.Ring - t.Sun
		if diff%2 != 0 || diff/2 < 1 {
			return t, fmt.Errorf("%w: planet = (%d - %d) / 2 is not a positive integer", ErrImpossibleToothCount, t.Ring, t.Sun)
		}
		t.Planet = diff / 2
	case MemberRing:
		if err := errors.Join(check("sun", t.Sun), check("planet", t.Planet)); err != nil {
			return t, err
		}
		t.Ring = t.Sun + 2*t.Planet
	default:
		return t, fmt.Errorf("%w: no member selected for derivation", ErrInvalidInput)
	}
	return t, nil
}

// DeriveFromInput 解析两个文本输入并推导第三个
// 输入对应 missing 之外的两个构件，按 sun、planet、ring 顺序排列
func DeriveFromInput(missing Member, first, second string) (Teeth, error) {
	a, err := ParseToothCount(first)
	if err != nil {
		return Teeth{}, err
	}
	b, err := ParseToothCount(second)
	if err != nil {
		return Teeth{}, err
	}

	var t Teeth
	switch missing {
	case MemberSun:
		t = Teeth{Planet: a, Ring: b}
	case MemberPlanet:
		t = Teeth{Sun: a, Ring: b}
	case MemberRing:
		t = Teeth{Sun: a, Planet: b}
	}
	return Derive(t, missing)
}

// ValidateTrain 校验齿数组合
// allowMismatch 为 true 时允许不满足齿数关系（尽力可视化，啮合会错位）
func ValidateTrain(t Teeth, allowMismatch bool) error {
	for _, f := range []struct {
		name string
		v    int
	}{{"sun", t.Sun}, {"planet", t.Planet}, {"ring", t.Ring}} {
		if f.v < MinToothCount {
			return fmt.Errorf("%w: %s has %d teeth, minimum is %d", ErrTooFewTeeth, f.name, f.v, MinToothCount)
		}
	}
	if !allowMismatch && t.Ring != t.Sun+2*t.Planet {
		return fmt.Errorf("%w: sun=%d planet=%d ring=%d", ErrRatioMismatch, t.Sun, t.Planet, t.Ring)
	}
	return nil
}
