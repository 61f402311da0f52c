package munitions

import "testing"

func TestBombLoadoutUnits(t *testing.T) {
	var l BombLoadout
	if !l.Empty() {
		t.Fatal("zero loadout should be empty")
	}
	l[BombHE] = 2
	l[BombArrowIV] = 1
	l[BombLAA] = 1
	if got := l.Units(); got != 2+5+2 {
		t.Errorf("Units() = %d, want 9", got)
	}
	if l.HasGuided() {
		t.Error("HE/Arrow IV/LAA carry no guided ordnance")
	}
	l[BombLaserGuided] = 1
	if !l.HasGuided() {
		t.Error("laser-guided bomb should count as guided")
	}
	named := l.Named()
	if named["HE"] != 2 || named["Laser-Guided"] != 1 {
		t.Errorf("Named() = %v", named)
	}
}

func TestBombAvailability(t *testing.T) {
	if BombRocket.AvailableIn(3050) {
		t.Error("rocket launcher pods should not exist in 3050")
	}
	if !BombHE.AvailableIn(2400) {
		t.Error("HE bombs are always available")
	}
	b, ok := ParseBombType("fae large")
	if !ok || b != BombFAELarge {
		t.Errorf("ParseBombType(fae large) = %v, %v", b, ok)
	}
}
