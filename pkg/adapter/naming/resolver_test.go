// 指示: miu200521358
package naming

import "testing"

func TestMirrorNameResolvesJapanesePrefix(t *testing.T) {
	resolver := NewConventionResolver(nil)
	cases := [][2]string{
		{"左腕", "右腕"},
		{"右ひじ", "左ひじ"},
		{"左足ＩＫ", "右足ＩＫ"},
	}
	for _, c := range cases {
		mirrored, resolved := resolver.MirrorName(c[0])
		if !resolved || mirrored != c[1] {
			t.Fatalf("ミラー名不一致: %s -> %s (resolved=%v)", c[0], mirrored, resolved)
		}
	}
}

func TestMirrorNameResolvesPrefixConventions(t *testing.T) {
	resolver := NewConventionResolver(nil)
	cases := [][2]string{
		{"L_Arm", "R_Arm"},
		{"R_Elbow", "L_Elbow"},
		{"LeftArm", "RightArm"},
		{"rightLeg", "leftLeg"},
	}
	for _, c := range cases {
		mirrored, resolved := resolver.MirrorName(c[0])
		if !resolved || mirrored != c[1] {
			t.Fatalf("ミラー名不一致: %s -> %s (resolved=%v)", c[0], mirrored, resolved)
		}
	}
}

func TestMirrorNameResolvesSuffixConventions(t *testing.T) {
	resolver := NewConventionResolver(nil)
	cases := [][2]string{
		{"Arm_L", "Arm_R"},
		{"Arm.R", "Arm.L"},
		{"arm_l", "arm_r"},
		{"arm.r", "arm.l"},
		{"UpperArmLeft", "UpperArmRight"},
	}
	for _, c := range cases {
		mirrored, resolved := resolver.MirrorName(c[0])
		if !resolved || mirrored != c[1] {
			t.Fatalf("ミラー名不一致: %s -> %s (resolved=%v)", c[0], mirrored, resolved)
		}
	}
}

func TestMirrorNameIsSymmetric(t *testing.T) {
	resolver := NewConventionResolver(nil)
	for _, name := range []string{"左腕", "Arm_L", "L_Arm", "arm.l"} {
		mirrored, resolved := resolver.MirrorName(name)
		if !resolved {
			t.Fatalf("解決に失敗: %s", name)
		}
		back, resolved := resolver.MirrorName(mirrored)
		if !resolved || back != name {
			t.Fatalf("往復で元に戻りません: %s -> %s -> %s", name, mirrored, back)
		}
	}
}

func TestMirrorNamePrefersExtraPairs(t *testing.T) {
	resolver := NewConventionResolver(map[string]string{
		"腕グループA": "腕グループB",
	})

	mirrored, resolved := resolver.MirrorName("腕グループA")
	if !resolved || mirrored != "腕グループB" {
		t.Fatalf("明示ペアが解決されません: %s (resolved=%v)", mirrored, resolved)
	}
	mirrored, resolved = resolver.MirrorName("腕グループB")
	if !resolved || mirrored != "腕グループA" {
		t.Fatalf("明示ペアの逆方向が解決されません: %s (resolved=%v)", mirrored, resolved)
	}
}

func TestMirrorNameExtraPairsOverrideConventions(t *testing.T) {
	resolver := NewConventionResolver(map[string]string{
		"左腕": "右腕捩",
	})
	mirrored, resolved := resolver.MirrorName("左腕")
	if !resolved || mirrored != "右腕捩" {
		t.Fatalf("明示ペアが規約より優先されていません: %s", mirrored)
	}
}

func TestMirrorNameUnresolvableNames(t *testing.T) {
	resolver := NewConventionResolver(nil)
	for _, name := range []string{"センター", "Spine", "L_", "_L", "Left", "左"} {
		if mirrored, resolved := resolver.MirrorName(name); resolved {
			t.Fatalf("解決不能な名前が解決されました: %s -> %s", name, mirrored)
		}
	}
}
