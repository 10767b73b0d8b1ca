package text

import "testing"

func TestToWindows1252(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "Ascenseur", "Ascenseur"},
		{"latin accents", "Évaluation", "\xc9valuation"},
		{"decomposed accent", "e\u0301", "\xe9"},
		{"oe ligature", "Maîtrise d'œuvre", "Ma\xeetrise d'\x9cuvre"},
		{"right quote", "Numéro d’identification", "Num\xe9ro d\x92identification"},
		{"en dash", "Toulouse – Narbonne", "Toulouse \x96 Narbonne"},
		{"narrow nbsp folded", "8\u202fmm", "8 mm"},
		{"unsupported rune", "电梯", "??"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToWindows1252(tt.in); got != tt.want {
				t.Errorf("ToWindows1252(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	if got, want := Normalize("Re\u0301f\u00a0A"), "Réf A"; got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}
